package repositories

import (
	"context"
	"strings"

	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID with its role
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Role").Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by exact email match with its role
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail checks if email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// EmailTakenByOther checks if another user already holds an email
func (r *userRepository) EmailTakenByOther(ctx context.Context, email string, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? AND id != ?", email, id).
		Count(&count).Error
	return count > 0, err
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete hard-deletes a user. Users are not soft-deleted.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

// listQuery builds the filtered base query; built fresh for count and fetch
func (r *userRepository) listQuery(ctx context.Context, role, search string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN roles ON roles.id = users.role_id")
	if role != "" {
		q = q.Where("roles.name = ?", role)
	}
	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ?", term, term)
	}
	return q
}

// List lists users with pagination, admins first then name ascending
func (r *userRepository) List(ctx context.Context, role, search string, offset, limit int) ([]*models.User, int64, error) {
	var total int64
	if err := r.listQuery(ctx, role, search).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*models.User
	err := r.listQuery(ctx, role, search).
		Preload("Role").
		Order("CASE WHEN roles.name = 'admin' THEN 0 ELSE 1 END, users.name ASC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error

	return users, total, err
}

// Count counts all users
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error
	return total, err
}
