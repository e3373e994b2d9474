package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synagogue-manager/internal/synagogue/domain/model"
)

func newTestVerifier(t *testing.T, ttl time.Duration) *TokenVerifier {
	t.Helper()
	v, err := NewTokenVerifier("test-secret-key", "synagogue-manager", ttl)
	require.NoError(t, err)
	return v
}

func TestNewTokenVerifier_Validation(t *testing.T) {
	_, err := NewTokenVerifier("", "issuer", time.Hour)
	assert.Error(t, err)
	_, err = NewTokenVerifier("secret", "", time.Hour)
	assert.Error(t, err)
	_, err = NewTokenVerifier("secret", "issuer", 0)
	assert.Error(t, err)
}

func TestVerifyToken_RoundTrip(t *testing.T) {
	v := newTestVerifier(t, time.Hour)
	ctx := context.Background()

	user := model.User{
		UID:         "uid-1",
		Email:       "gabbai@shul.org",
		Role:        model.RoleGabbai,
		DisplayName: "הגבאי",
	}
	token, err := v.IssueToken(ctx, user)
	require.NoError(t, err)

	got, err := v.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", got.UID)
	assert.Equal(t, "gabbai@shul.org", got.Email)
	assert.Equal(t, model.RoleGabbai, got.Role)
	assert.True(t, got.Role.AtLeastGabbai())
}

func TestVerifyToken_UnknownRoleDefaultsToMember(t *testing.T) {
	v := newTestVerifier(t, time.Hour)
	ctx := context.Background()

	token, err := v.IssueToken(ctx, model.User{UID: "uid-1", Role: model.Role("owner")})
	require.NoError(t, err)

	got, err := v.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, got.Role)
}

func TestVerifyToken_Expired(t *testing.T) {
	v := newTestVerifier(t, time.Millisecond)
	ctx := context.Background()

	token, err := v.IssueToken(ctx, model.User{UID: "uid-1"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = v.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	issuerSide := newTestVerifier(t, time.Hour)
	verifierSide, err := NewTokenVerifier("other-secret", "synagogue-manager", time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	token, err := issuerSide.IssueToken(ctx, model.User{UID: "uid-1"})
	require.NoError(t, err)

	_, err = verifierSide.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestVerifyToken_Malformed(t *testing.T) {
	v := newTestVerifier(t, time.Hour)
	ctx := context.Background()

	_, err := v.VerifyToken(ctx, "")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = v.VerifyToken(ctx, "not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyToken_MissingUID(t *testing.T) {
	v := newTestVerifier(t, time.Hour)
	ctx := context.Background()

	token, err := v.IssueToken(ctx, model.User{Email: "gabbai@shul.org"})
	require.NoError(t, err)

	_, err = v.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
