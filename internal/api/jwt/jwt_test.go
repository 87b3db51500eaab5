package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT(42, "student@example.com", 0)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userId, email, role, err := ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, uint(42), userId)
	require.Equal(t, "student@example.com", email)
	require.Equal(t, uint(0), role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, _, _, err := ValidateToken("not-a-token")
	require.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateJWT(7, "student@example.com", 1)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, _, _, err = ValidateToken(token)
	require.Error(t, err)
}
