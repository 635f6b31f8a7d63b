package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewJWTService(Config{Secret: "test-secret", Issuer: "records-api", ExpiryHours: 1})

	token, err := svc.Issue("subject-1", "doc@example.com", []string{"hospital"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "subject-1", claims.Subject)
	assert.Equal(t, "doc@example.com", claims.Email)
	assert.Equal(t, []string{"hospital"}, claims.Groups)
	assert.NotEmpty(t, claims.TokenID)
	assert.False(t, claims.ExpiresAt.IsZero())
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(Config{Secret: "secret-a", Issuer: "records-api", ExpiryHours: 1})
	verifier := NewJWTService(Config{Secret: "secret-b", Issuer: "records-api", ExpiryHours: 1})

	token, err := issuer.Issue("subject-1", "doc@example.com", nil)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	issuer := NewJWTService(Config{Secret: "secret", Issuer: "someone-else", ExpiryHours: 1})
	verifier := NewJWTService(Config{Secret: "secret", Issuer: "records-api", ExpiryHours: 1})

	token, err := issuer.Issue("subject-1", "doc@example.com", nil)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewJWTService(Config{Secret: "secret", Issuer: "records-api", ExpiryHours: 1})

	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
