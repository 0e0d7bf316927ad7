package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidate(t *testing.T) {
	token, err := Generate(7, "ana@example.com", "Ana", "staff", testSecret, 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Validate(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, "ulevha", claims.Issuer)
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := Generate(1, "a@b.c", "A", "admin", testSecret, 1)
	require.NoError(t, err)

	_, err = Validate(token, "another-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateExpired(t *testing.T) {
	// Negative expiry puts exp in the past
	token, err := Generate(1, "a@b.c", "A", "admin", testSecret, -1)
	require.NoError(t, err)

	_, err = Validate(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateGarbage(t *testing.T) {
	_, err := Validate("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = Validate("", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
