package repositories

import (
	"context"

	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/models"
)

// ResidentFilter holds the optional, AND-combined list filters. Each
// non-empty field becomes one parameterized clause; there is no string
// concatenation anywhere in the query path.
type ResidentFilter struct {
	Search   string // substring over names, household number, resident id, contact number
	AgeGroup string // fixed bucket label; unrecognized labels are ignored
	Gender   string // exact match
	Street   string // exact address match
}

// IsZero reports whether no filter is set
func (f *ResidentFilter) IsZero() bool {
	return f == nil || (f.Search == "" && f.AgeGroup == "" && f.Gender == "" && f.Street == "")
}

// GroupCount is one row of a grouped aggregate
type GroupCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// ResidentRepository defines resident repository interface
type ResidentRepository interface {
	Create(ctx context.Context, resident *models.Resident) error
	GetByID(ctx context.Context, id uint) (*models.Resident, error)
	GetByIDAny(ctx context.Context, id uint) (*models.Resident, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	FindByResidentID(ctx context.Context, residentID string) (*models.Resident, error)
	Update(ctx context.Context, resident *models.Resident) error
	UpdateAge(ctx context.Context, id uint, age int) error
	SoftDelete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *ResidentFilter, offset, limit int) ([]*models.Resident, int64, error)
	ListAllActive(ctx context.Context) ([]*models.Resident, error)
	CountActive(ctx context.Context) (int64, error)
	CountByGender(ctx context.Context) ([]GroupCount, error)
	CountByStreet(ctx context.Context) ([]GroupCount, error)
	CountByEducationalAttainment(ctx context.Context) ([]GroupCount, error)
	ActiveDatesOfBirth(ctx context.Context) ([]string, error)
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	EmailTakenByOther(ctx context.Context, email string, id uint) (bool, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, role, search string, offset, limit int) ([]*models.User, int64, error)
	Count(ctx context.Context) (int64, error)
}

// RoleRepository defines role repository interface
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*models.Role, error)
}

// AuditLogRepository defines audit log repository interface.
// Append-only: there is deliberately no update or delete.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}
