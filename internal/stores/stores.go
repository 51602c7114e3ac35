package stores

import (
	"context"
	"errors"

	"github.com/twpayne/go-geom"

	"taka_track/internal/models"
)

var (
	// ErrNotFound is returned when no record matches the given id or email.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a signup collides with an existing email.
	ErrDuplicateEmail = errors.New("email already in use")
)

// ReportFilter narrows a report listing. A nil Bounds means no spatial filter,
// an empty Status means no status filter.
type ReportFilter struct {
	Bounds *geom.Bounds
	Status string
}

// ReportStats are aggregate counts over the full report store.
type ReportStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Resolved int64 `json:"resolved"`
}

// UserStore persists user credentials and roles.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// ReportStore persists citizen reports. Listings are always newest first.
type ReportStore interface {
	Create(ctx context.Context, report *models.Report) error
	ListByUser(ctx context.Context, userID uint) ([]models.Report, error)
	List(ctx context.Context, filter ReportFilter) ([]models.Report, error)
	FindByID(ctx context.Context, id uint) (*models.Report, error)
	Save(ctx context.Context, report *models.Report) error
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (ReportStats, error)
}
