package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/models"
	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/repositories"
	"github.com/darickquinto0629/ulevha/internal/config"
	"github.com/darickquinto0629/ulevha/internal/pkg/jwt"
	"github.com/darickquinto0629/ulevha/internal/pkg/password"

	"gorm.io/gorm"
)

// Auth errors
var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountInactive       = errors.New("account is inactive")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrInvalidRole           = errors.New("invalid role")
	ErrInvalidToken          = errors.New("invalid token")
	ErrTokenExpired          = errors.New("token expired")
	ErrUserInactiveOrMissing = errors.New("user not found or inactive")
)

// MissingFieldsError lists every required field absent from a request.
// All offending fields are reported in one combined message.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	roleRepo repositories.RoleRepository
	audit    *AuditService
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	audit *AuditService,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		audit:    audit,
		cfg:      cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
}

// AuthResult represents a successful login
type AuthResult struct {
	Token string               `json:"token"`
	User  *models.UserResponse `json:"user"`
}

// Login authenticates an operator account and mints a session token.
// Unknown email and wrong password produce the same error so callers
// cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, input *LoginInput, meta ClientMeta) (*AuthResult, error) {
	// 1. Find user by exact email match
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Check if account is active
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Mint session token
	token, err := jwt.Generate(
		user.ID,
		user.Email,
		user.Name,
		user.Role.Name,
		s.cfg.JWT.Secret,
		s.cfg.JWT.ExpiryHours,
	)
	if err != nil {
		return nil, err
	}

	// 5. Record audit entry (best-effort)
	s.audit.Record(ctx, &user.ID, models.ActionLogin, "User logged in", meta)

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResult{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// Register creates a new operator account. The open endpoint defaults
// the role to staff.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput, meta ClientMeta) (*models.UserResponse, error) {
	// 1. Check if email already registered
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	// 2. Resolve role
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

	// 3. Hash password
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 4. Create user
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

	// 5. Record audit entry (best-effort)
	s.audit.Record(ctx, &user.ID, models.ActionRegister,
		fmt.Sprintf("User registered with role: %s", role.Name), meta)

	log.Printf("✅ User registered: %s (role: %s)", user.Email, role.Name)

	return user.ToResponse(), nil
}

// Verify resolves a session token to a live user record. A deactivated
// user keeps a decodable token; this lookup is where it stops working.
func (s *AuthService) Verify(ctx context.Context, token string) (*models.User, error) {
	claims, err := jwt.Validate(token, s.cfg.JWT.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserInactiveOrMissing
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserInactiveOrMissing
	}

	return user, nil
}
