package services

import (
	"context"
	"testing"

	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUserInput(email string) *CreateUserInput {
	return &CreateUserInput{
		Name:        "Staff Member",
		Email:       email,
		Password:    "pass123",
		DateOfBirth: "1995-05-05",
		Gender:      "Female",
		Address:     "Mabini Street",
		Phone:       "0917-000-0000",
	}
}

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)
	svc := newUserServiceForTest(db)

	user, err := svc.Create(context.Background(), validUserInput("staff@example.com"), 1, testMeta)
	require.NoError(t, err)

	assert.Equal(t, "staff@example.com", user.Email)
	assert.Equal(t, models.RoleStaff, user.Role)
	assert.True(t, user.IsActive)

	assert.EqualValues(t, 1, countAuditEntries(t, db, models.ActionUserCreated))
}

func TestCreateUserMissingFields(t *testing.T) {
	db := newTestDB(t)
	svc := newUserServiceForTest(db)

	_, err := svc.Create(context.Background(), &CreateUserInput{Email: "x@example.com"}, 1, testMeta)
	require.Error(t, err)

	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.ElementsMatch(t,
		[]string{"name", "password", "date_of_birth", "gender", "address", "phone"},
		missing.Fields)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newUserServiceForTest(db)

	_, err := svc.Create(context.Background(), validUserInput("dup@example.com"), 1, testMeta)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validUserInput("dup@example.com"), 1, testMeta)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestCreateUserInvalidRole(t *testing.T) {
	db := newTestDB(t)
	svc := newUserServiceForTest(db)

	input := validUserInput("x@example.com")
	input.Role = "superuser"
	_, err := svc.Create(context.Background(), input, 1, testMeta)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestListUsersAdminsFirst(t *testing.T) {
	db := newTestDB(t)
	svc := newUserServiceForTest(db)

	staff := validUserInput("aaa@example.com")
	staff.Name = "Aaron Staff"
	_, err := svc.Create(context.Background(), staff, 1, testMeta)
	require.NoError(t, err)

	admin := validUserInput("zzz@example.com")
	admin.Name = "Zoe Admin"
	admin.Role = models.RoleAdmin
	_, err = svc.Create(context.Background(), admin, 1, testMeta)
	require.NoError(t, err)

	users, total, err := svc.List(context.Background(), "", "", 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	// Admins sort before staff regardless of name order
	assert.Equal(t, models.RoleAdmin, users[0].Role)
	assert.Equal(t, models.RoleStaff, users[1].Role)

	// Role filter
	users, _, err = svc.List(context.Background(), models.RoleStaff, "", 0, 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Aaron Staff", users[0].Name)

	// Search over name and email
	users, _, err = svc.List(context.Background(), "", "zoe", 0, 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Zoe Admin", users[0].Name)
}

func TestUpdateUser(t *testing.T) {
	db := newTestDB(t)
	svc := newUserServiceForTest(db)

	user, err := svc.Create(context.Background(), validUserInput("u@example.com"), 1, testMeta)
	require.NoError(t, err)

	name := "New Name"
	role := models.RoleAdmin
	updated, err := svc.Update(context.Background(), user.ID, &UpdateUserInput{
		Name: &name,
		Role: &role,
	}, 1, testMeta)
	require.NoError(t, err)

	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	// Untouched fields survive
	assert.Equal(t, "u@example.com", updated.Email)

	assert.EqualValues(t, 1, countAuditEntries(t, db, models.ActionUserUpdated))
}

func TestUpdateUserNoFields(t *testing.T) {
	db := newTestDB(t)
	svc := newUserServiceForTest(db)

	user, err := svc.Create(context.Background(), validUserInput("u@example.com"), 1, testMeta)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), user.ID, &UpdateUserInput{}, 1, testMeta)
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
}

func TestUpdateUserEmailCollision(t *testing.T) {
	db := newTestDB(t)
	svc := newUserServiceForTest(db)

	_, err := svc.Create(context.Background(), validUserInput("first@example.com"), 1, testMeta)
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), validUserInput("second@example.com"), 1, testMeta)
	require.NoError(t, err)

	taken := "first@example.com"
	_, err = svc.Update(context.Background(), second.ID, &UpdateUserInput{Email: &taken}, 1, testMeta)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newUserServiceForTest(db)
	authSvc := newAuthServiceForTest(db)

	user, err := svc.Create(context.Background(), validUserInput("p@example.com"), 1, testMeta)
	require.NoError(t, err)

	newPass := "fresh-pass"
	_, err = svc.Update(context.Background(), user.ID, &UpdateUserInput{Password: &newPass}, 1, testMeta)
	require.NoError(t, err)

	_, err = authSvc.Login(context.Background(), &LoginInput{
		Email:    "p@example.com",
		Password: "fresh-pass",
	}, testMeta)
	assert.NoError(t, err)

	_, err = authSvc.Login(context.Background(), &LoginInput{
		Email:    "p@example.com",
		Password: "pass123",
	}, testMeta)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDeleteUserIsHard(t *testing.T) {
	db := newTestDB(t)
	svc := newUserServiceForTest(db)

	user, err := svc.Create(context.Background(), validUserInput("gone@example.com"), 1, testMeta)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), user.ID, 1, testMeta))

	_, err = svc.GetByID(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// No residual row, unlike resident soft-delete
	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	assert.EqualValues(t, 1, countAuditEntries(t, db, models.ActionUserDeleted))

	err = svc.Delete(context.Background(), user.ID, 1, testMeta)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
