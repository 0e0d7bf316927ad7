package repositories

import (
	"context"
	"strings"

	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// residentRepository implements ResidentRepository interface
type residentRepository struct {
	db *gorm.DB
}

// NewResidentRepository creates a new resident repository
func NewResidentRepository(db *gorm.DB) ResidentRepository {
	return &residentRepository{db: db}
}

// applyFilter appends one parameterized clause per set filter field
func applyFilter(q *gorm.DB, filter *ResidentFilter) *gorm.DB {
	if filter == nil {
		return q
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(household_number) LIKE ? OR LOWER(resident_id) LIKE ? OR LOWER(contact_number) LIKE ?",
			term, term, term, term, term,
		)
	}
	if filter.AgeGroup != "" {
		if lo, hi, ok := models.AgeGroupBounds(filter.AgeGroup); ok {
			q = q.Where("age >= ? AND age <= ?", lo, hi)
		}
	}
	if filter.Gender != "" {
		q = q.Where("gender = ?", filter.Gender)
	}
	if filter.Street != "" {
		q = q.Where("address = ?", filter.Street)
	}
	return q
}

// active returns a fresh query scoped to active residents
func (r *residentRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Resident{}).Where("is_active = ?", true)
}

// Create assigns the next resident_id and inserts the row. The read-max
// then insert sequence runs inside one transaction so two concurrent
// creates cannot hand out the same id.
func (r *residentRepository) Create(ctx context.Context, resident *models.Resident) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&models.Resident{}).
			Where("resident_id LIKE ?", "RES-%").
			Pluck("resident_id", &ids).Error; err != nil {
			return err
		}

		max := 0
		for _, id := range ids {
			if n := models.ResidentIDNumber(id); n > max {
				max = n
			}
		}

		resident.ResidentID = models.FormatResidentID(max + 1)
		return tx.Create(resident).Error
	})
}

// GetByID gets an active resident by ID. Soft-deleted rows are not found.
func (r *residentRepository) GetByID(ctx context.Context, id uint) (*models.Resident, error) {
	var resident models.Resident
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&resident).Error
	if err != nil {
		return nil, err
	}
	return &resident, nil
}

// GetByIDAny gets a resident by ID regardless of the active flag.
// Update and delete operate on soft-deleted rows too.
func (r *residentRepository) GetByIDAny(ctx context.Context, id uint) (*models.Resident, error) {
	var resident models.Resident
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&resident).Error
	if err != nil {
		return nil, err
	}
	return &resident, nil
}

// ExistsByID checks row existence regardless of the active flag
func (r *residentRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Resident{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// FindByResidentID gets a resident by its RES-NNN identifier
func (r *residentRepository) FindByResidentID(ctx context.Context, residentID string) (*models.Resident, error) {
	var resident models.Resident
	err := r.db.WithContext(ctx).
		Where("resident_id = ?", residentID).
		First(&resident).Error
	if err != nil {
		return nil, err
	}
	return &resident, nil
}

// Update persists all fields of a resident
func (r *residentRepository) Update(ctx context.Context, resident *models.Resident) error {
	return r.db.WithContext(ctx).Save(resident).Error
}

// UpdateAge rewrites the stored age column without touching updated_at.
// Used by the nightly refresh job, not by request handlers.
func (r *residentRepository) UpdateAge(ctx context.Context, id uint, age int) error {
	return r.db.WithContext(ctx).Model(&models.Resident{}).
		Where("id = ?", id).
		UpdateColumn("age", age).Error
}

// SoftDelete marks a resident inactive. The row is never removed.
func (r *residentRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Resident{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// List lists active residents matching the filter, ordered by last name
func (r *residentRepository) List(ctx context.Context, filter *ResidentFilter, offset, limit int) ([]*models.Resident, int64, error) {
	var total int64
	if err := applyFilter(r.active(ctx), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var residents []*models.Resident
	err := applyFilter(r.active(ctx), filter).
		Order("last_name ASC").
		Offset(offset).
		Limit(limit).
		Find(&residents).Error

	return residents, total, err
}

// ListAllActive returns every active resident, unpaginated
func (r *residentRepository) ListAllActive(ctx context.Context) ([]*models.Resident, error) {
	var residents []*models.Resident
	err := r.active(ctx).Find(&residents).Error
	return residents, err
}

// CountActive counts active residents
func (r *residentRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.active(ctx).Count(&total).Error
	return total, err
}

// CountByGender counts active residents grouped by gender
func (r *residentRepository) CountByGender(ctx context.Context) ([]GroupCount, error) {
	var rows []GroupCount
	err := r.active(ctx).
		Select("gender AS label, COUNT(*) AS count").
		Group("gender").
		Scan(&rows).Error
	return rows, err
}

// CountByStreet counts active residents grouped by address
func (r *residentRepository) CountByStreet(ctx context.Context) ([]GroupCount, error) {
	var rows []GroupCount
	err := r.active(ctx).
		Select("address AS label, COUNT(*) AS count").
		Group("address").
		Scan(&rows).Error
	return rows, err
}

// CountByEducationalAttainment counts active residents grouped by attainment
func (r *residentRepository) CountByEducationalAttainment(ctx context.Context) ([]GroupCount, error) {
	var rows []GroupCount
	err := r.active(ctx).
		Select("educational_attainment AS label, COUNT(*) AS count").
		Group("educational_attainment").
		Scan(&rows).Error
	return rows, err
}

// ActiveDatesOfBirth returns the date_of_birth of every active resident.
// The stats endpoint derives ages from these instead of the stored column.
func (r *residentRepository) ActiveDatesOfBirth(ctx context.Context) ([]string, error) {
	var dates []string
	err := r.active(ctx).
		Where("date_of_birth IS NOT NULL AND date_of_birth != ''").
		Pluck("date_of_birth", &dates).Error
	return dates, err
}
