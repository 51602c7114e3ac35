package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"taka_track/internal/config"
	"taka_track/internal/models"
)

// EmailNotifier sends HTML mail over SMTP.
type EmailNotifier struct {
	cfg *config.EmailConfig
}

func NewEmailNotifier(cfg *config.EmailConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

func (n *EmailNotifier) SendNewReport(ctx context.Context, report *models.Report, owner *models.User) error {
	subject := fmt.Sprintf("New Report Submitted - %s", report.GarbageType)
	body := n.buildHTMLBody("⚠️ New Report Submitted",
		"A new garbage report requires attention.", report, owner)
	return n.send([]string{n.cfg.OpsEmail}, subject, body)
}

func (n *EmailNotifier) SendReportResolved(ctx context.Context, report *models.Report, owner *models.User) error {
	userSubject := fmt.Sprintf("✅ Your Report Has Been Resolved - %s", report.GarbageType)
	userBody := n.buildHTMLBody("✅ Report Resolved",
		fmt.Sprintf("Good news, %s! Your garbage report has been resolved. Thank you for helping keep the community clean.", owner.Name),
		report, owner)
	if err := n.send([]string{owner.Email}, userSubject, userBody); err != nil {
		return err
	}

	opsSubject := fmt.Sprintf("Report Resolved - %s", report.GarbageType)
	opsBody := n.buildHTMLBody("🗑️ Report Resolved (Ops Copy)",
		fmt.Sprintf("Report #%d was marked resolved. The owner (%s) has been notified.", report.ID, owner.Email),
		report, owner)
	return n.send([]string{n.cfg.OpsEmail}, opsSubject, opsBody)
}

func (n *EmailNotifier) send(to []string, subject, body string) error {
	if n.cfg.SMTPHost == "" || n.cfg.FromEmail == "" {
		logrus.Warn("email config missing, skipping notification")
		return nil
	}
	recipients := make([]string, 0, len(to))
	for _, addr := range to {
		if strings.TrimSpace(addr) != "" {
			recipients = append(recipients, addr)
		}
	}
	if len(recipients) == 0 {
		logrus.Warn("email recipient empty, skipping notification")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.FromEmail)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(n.cfg.SMTPHost, n.cfg.SMTPPort, n.cfg.SMTPUser, n.cfg.SMTPPass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func (n *EmailNotifier) buildHTMLBody(heading, lead string, report *models.Report, owner *models.User) string {
	template := `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8" />
<style>
  body { font-family: Arial, sans-serif; background: #f6f7fb; color: #1f2937; }
  .card { max-width: 600px; margin: 24px auto; background: #ffffff; border-radius: 12px; overflow: hidden; border: 1px solid #e5e7eb; }
  .header { background: #0f172a; color: #ffffff; padding: 16px 20px; font-size: 16px; font-weight: bold; }
  .content { padding: 20px; }
  .row { margin: 6px 0; }
  .label { font-weight: bold; color: #4b5563; }
  .footer { padding: 12px 20px; font-size: 12px; color: #6b7280; border-top: 1px solid #e5e7eb; }
</style>
</head>
<body>
  <div class="card">
    <div class="header">%s</div>
    <div class="content">
      <p>%s</p>
      <div class="row"><span class="label">Report ID:</span> %d</div>
      <div class="row"><span class="label">Garbage Type:</span> %s</div>
      <div class="row"><span class="label">Description:</span> %s</div>
      <div class="row"><span class="label">Location:</span> Lat: %.4f, Lng: %.4f</div>
      <div class="row"><span class="label">Status:</span> %s</div>
      <div class="row"><span class="label">Reported By:</span> %s (%s)</div>
      <div class="row"><span class="label">Reported On:</span> %s</div>
    </div>
    <div class="footer">TakaTrack — automated notification, do not reply.</div>
  </div>
</body>
</html>`

	return fmt.Sprintf(template,
		heading, lead,
		report.ID, report.GarbageType, report.Description,
		report.Latitude, report.Longitude, report.Status,
		owner.Name, owner.Email,
		report.CreatedAt.Format("2006-01-02 15:04:05"),
	)
}
