package stores

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/twpayne/go-geom"

	"taka_track/internal/models"
)

// MemoryUserStore is an in-memory UserStore used by tests and local runs
// without a database.
type MemoryUserStore struct {
	mu     sync.RWMutex
	nextID uint
	users  map[uint]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{nextID: 1, users: make(map[uint]models.User)}
}

func (s *MemoryUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.nextID++
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := u
	return &out, nil
}

// MemoryReportStore is an in-memory ReportStore. It enforces the same model
// invariants the GORM hooks do and projects owners from a sibling user store.
type MemoryReportStore struct {
	mu      sync.RWMutex
	nextID  uint
	reports map[uint]models.Report
	users   *MemoryUserStore
}

func NewMemoryReportStore(users *MemoryUserStore) *MemoryReportStore {
	return &MemoryReportStore{nextID: 1, reports: make(map[uint]models.Report), users: users}
}

func (s *MemoryReportStore) Create(ctx context.Context, report *models.Report) error {
	if report.Status == "" {
		report.Status = models.StatusPending
	}
	if err := report.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	report.ID = s.nextID
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt
	s.nextID++
	s.reports[report.ID] = *report
	return nil
}

func (s *MemoryReportStore) ListByUser(ctx context.Context, userID uint) ([]models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Report
	for _, r := range s.reports {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryReportStore) List(ctx context.Context, filter ReportFilter) ([]models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Report
	for _, r := range s.reports {
		if filter.Bounds != nil &&
			!filter.Bounds.OverlapsPoint(geom.XY, geom.Coord{r.Longitude, r.Latitude}) {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		out = append(out, s.project(r))
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryReportStore) FindByID(ctx context.Context, id uint) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := s.project(r)
	return &out, nil
}

func (s *MemoryReportStore) Save(ctx context.Context, report *models.Report) error {
	if err := report.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[report.ID]; !ok {
		return ErrNotFound
	}
	report.UpdatedAt = time.Now()
	stored := *report
	stored.User = nil
	s.reports[report.ID] = stored
	return nil
}

func (s *MemoryReportStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[id]; !ok {
		return ErrNotFound
	}
	delete(s.reports, id)
	return nil
}

func (s *MemoryReportStore) Stats(ctx context.Context) (ReportStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stats ReportStats
	for _, r := range s.reports {
		stats.Total++
		switch r.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusResolved:
			stats.Resolved++
		}
	}
	return stats, nil
}

// project attaches the owning user (name/email only) when known.
func (s *MemoryReportStore) project(r models.Report) models.Report {
	if s.users == nil {
		return r
	}
	if u, err := s.users.FindByID(context.Background(), r.UserID); err == nil {
		r.User = &models.User{Model: u.Model, Name: u.Name, Email: u.Email, Role: u.Role}
	}
	return r
}

func sortNewestFirst(reports []models.Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].CreatedAt.Equal(reports[j].CreatedAt) {
			return reports[i].ID > reports[j].ID
		}
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
}
