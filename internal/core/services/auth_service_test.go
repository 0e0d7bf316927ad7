package services

import (
	"context"
	"testing"

	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMeta = ClientMeta{IP: "127.0.0.1", UserAgent: "test"}

func registerUser(t *testing.T, svc *AuthService, email, pass, role string) *models.UserResponse {
	t.Helper()
	user, err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Test User",
		Email:    email,
		Password: pass,
		Role:     role,
	}, testMeta)
	require.NoError(t, err)
	return user
}

func TestRegisterDefaultsToStaff(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	user := registerUser(t, svc, "staff@example.com", "pass123", "")
	assert.Equal(t, models.RoleStaff, user.Role)
	assert.True(t, user.IsActive)

	assert.EqualValues(t, 1, countAuditEntries(t, db, models.ActionRegister))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	registerUser(t, svc, "dup@example.com", "pass123", "")
	_, err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Other",
		Email:    "dup@example.com",
		Password: "pass456",
	}, testMeta)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegisterInvalidRole(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	_, err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Test",
		Email:    "x@example.com",
		Password: "pass123",
		Role:     "superuser",
	}, testMeta)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLoginSuccess(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	registerUser(t, svc, "ana@example.com", "pass123", models.RoleAdmin)

	result, err := svc.Login(context.Background(), &LoginInput{
		Email:    "ana@example.com",
		Password: "pass123",
	}, testMeta)
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Equal(t, "ana@example.com", result.User.Email)
	assert.Equal(t, models.RoleAdmin, result.User.Role)

	// The minted token resolves back to the same user
	user, err := svc.Verify(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, user.ID)

	assert.EqualValues(t, 1, countAuditEntries(t, db, models.ActionLogin))
}

func TestLoginBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	registerUser(t, svc, "ana@example.com", "pass123", "")

	// Unknown email and wrong password yield the same error
	_, err := svc.Login(context.Background(), &LoginInput{
		Email:    "nobody@example.com",
		Password: "pass123",
	}, testMeta)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email:    "ana@example.com",
		Password: "wrong",
	}, testMeta)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Failed attempts leave no login audit entry
	assert.EqualValues(t, 0, countAuditEntries(t, db, models.ActionLogin))
}

func TestLoginInactiveAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	user := registerUser(t, svc, "gone@example.com", "pass123", "")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	_, err := svc.Login(context.Background(), &LoginInput{
		Email:    "gone@example.com",
		Password: "pass123",
	}, testMeta)
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestVerifyDeactivatedUser(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	registerUser(t, svc, "late@example.com", "pass123", "")
	result, err := svc.Login(context.Background(), &LoginInput{
		Email:    "late@example.com",
		Password: "pass123",
	}, testMeta)
	require.NoError(t, err)

	// Deactivation takes effect on the next verify even though the
	// token itself is still decodable
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", result.User.ID).Update("is_active", false).Error)

	_, err = svc.Verify(context.Background(), result.Token)
	assert.ErrorIs(t, err, ErrUserInactiveOrMissing)
}

func TestVerifyGarbageToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	_, err := svc.Verify(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
