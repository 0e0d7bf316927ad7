package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/models"
	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/repositories"
	"github.com/darickquinto0629/ulevha/internal/pkg/password"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// UserService handles operator account management
type UserService struct {
	userRepo repositories.UserRepository
	roleRepo repositories.RoleRepository
	audit    *AuditService
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	audit *AuditService,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		audit:    audit,
	}
}

// CreateUserInput represents admin user creation input
type CreateUserInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
}

// UpdateUserInput represents partial user update input. Role and
// IsActive are honored only for admin callers; handlers clear them for
// self-service updates.
type UpdateUserInput struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	Role        *string `json:"role"`
	DateOfBirth *string `json:"date_of_birth"`
	Gender      *string `json:"gender"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	IsActive    *bool   `json:"is_active"`
}

// List lists users, admins first then name ascending
func (s *UserService) List(ctx context.Context, role, search string, offset, limit int) ([]*models.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, role, search, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, total, nil
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// Create creates an operator account on behalf of an admin
func (s *UserService) Create(ctx context.Context, input *CreateUserInput, actorID uint, meta ClientMeta) (*models.UserResponse, error) {
	var missing []string
	if input.Name == "" {
		missing = append(missing, "name")
	}
	if input.Email == "" {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if input.DateOfBirth == "" {
		missing = append(missing, "date_of_birth")
	}
	if input.Gender == "" {
		missing = append(missing, "gender")
	}
	if input.Address == "" {
		missing = append(missing, "address")
	}
	if input.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	roleName := input.Role
	if roleName == "" {
		roleName = models.RoleStaff
	}
	role, err := s.roleRepo.GetByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRole
		}
		return nil, err
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:        input.Name,
		Email:       input.Email,
		Password:    hashed,
		RoleID:      role.ID,
		Role:        *role,
		DateOfBirth: input.DateOfBirth,
		Gender:      input.Gender,
		Address:     input.Address,
		Phone:       input.Phone,
		IsActive:    true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actorID, models.ActionUserCreated,
		fmt.Sprintf("Created user: %s", user.Email), meta)

	log.Printf("✅ User created by admin %d: %s", actorID, user.Email)

	return user.ToResponse(), nil
}

// Update applies a partial update to a user. The password is re-hashed
// only when a new one is supplied.
func (s *UserService) Update(ctx context.Context, id uint, input *UpdateUserInput, actorID uint, meta ClientMeta) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Name == nil && input.Email == nil && input.Password == nil &&
		input.Role == nil && input.DateOfBirth == nil && input.Gender == nil &&
		input.Address == nil && input.Phone == nil && input.IsActive == nil {
		return nil, ErrNoFieldsToUpdate
	}

	if input.Email != nil && *input.Email != user.Email {
		taken, err := s.userRepo.EmailTakenByOther(ctx, *input.Email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = *input.Email
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Password != nil && *input.Password != "" {
		hashed, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if input.Role != nil {
		role, err := s.roleRepo.GetByName(ctx, *input.Role)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidRole
			}
			return nil, err
		}
		user.RoleID = role.ID
		user.Role = *role
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = *input.DateOfBirth
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actorID, models.ActionUserUpdated,
		fmt.Sprintf("Updated user: %d", user.ID), meta)

	return user.ToResponse(), nil
}

// Delete hard-deletes a user. There is no soft-delete for operator
// accounts, unlike residents.
func (s *UserService) Delete(ctx context.Context, id uint, actorID uint, meta ClientMeta) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, &actorID, models.ActionUserDeleted,
		fmt.Sprintf("Deleted user: %d", id), meta)

	log.Printf("✅ User deleted by admin %d: %d", actorID, id)
	return nil
}
