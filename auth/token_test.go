package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/errs"
)

func TestTokenRoundTrip(t *testing.T) {
	provider := NewTokenProvider("test-secret", time.Hour)

	original := Principal{UserID: uuid.New(), Username: "alice", Role: RoleAdmin}
	token, err := provider.Generate(original)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := provider.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := NewTokenProvider("secret-a", time.Hour)
	verifier := NewTokenProvider("secret-b", time.Hour)

	token, err := issuer.Generate(Principal{UserID: uuid.New(), Username: "alice", Role: RoleUser})
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.True(t, errs.IsUnauthorized(err))
}

func TestTokenExpiredRejected(t *testing.T) {
	provider := NewTokenProvider("test-secret", -time.Minute)

	token, err := provider.Generate(Principal{UserID: uuid.New(), Username: "alice", Role: RoleUser})
	require.NoError(t, err)

	_, err = provider.Validate(token)
	assert.True(t, errs.IsUnauthorized(err))
}

func TestTokenGarbageRejected(t *testing.T) {
	provider := NewTokenProvider("test-secret", time.Hour)

	_, err := provider.Validate("not-a-token")
	assert.True(t, errs.IsUnauthorized(err))
}

func TestRequireWriteRole(t *testing.T) {
	assert.True(t, errs.IsUnauthorized(Anonymous.RequireWriteRole()))

	viewer := Principal{UserID: uuid.New(), Username: "v", Role: "ROLE_VIEWER"}
	assert.True(t, errs.IsForbidden(viewer.RequireWriteRole()))

	admin := Principal{UserID: uuid.New(), Username: "a", Role: RoleAdmin}
	assert.NoError(t, admin.RequireWriteRole())

	user := Principal{UserID: uuid.New(), Username: "u", Role: RoleUser}
	assert.NoError(t, user.RequireWriteRole())
}
