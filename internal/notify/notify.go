package notify

import (
	"context"

	"taka_track/internal/models"
)

// Notifier dispatches transactional mail for report lifecycle events.
// Callers treat dispatch as fire-and-forget: failures are logged, never
// propagated into the triggering request.
type Notifier interface {
	// SendNewReport tells the operations address a report was submitted.
	SendNewReport(ctx context.Context, report *models.Report, owner *models.User) error
	// SendReportResolved tells the owner their report was resolved and
	// copies the operations address.
	SendReportResolved(ctx context.Context, report *models.Report, owner *models.User) error
}
