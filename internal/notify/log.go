package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"taka_track/internal/models"
)

// LogNotifier records notifications to the application log instead of
// dispatching mail. Used when SMTP is not configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) SendNewReport(ctx context.Context, report *models.Report, owner *models.User) error {
	logrus.WithFields(logrus.Fields{
		"event":        "new_report",
		"report_id":    report.ID,
		"garbage_type": report.GarbageType,
		"owner":        owner.Email,
	}).Info("notification")
	return nil
}

func (n *LogNotifier) SendReportResolved(ctx context.Context, report *models.Report, owner *models.User) error {
	logrus.WithFields(logrus.Fields{
		"event":     "report_resolved",
		"report_id": report.ID,
		"owner":     owner.Email,
	}).Info("notification")
	return nil
}
