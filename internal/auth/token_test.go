package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anshul/ecommerce-store/backend/internal/common"
)

func TestTokenService_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("test-secret"), time.Hour)

	token, err := svc.Issue(42, "alice", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenService_Expired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("test-secret"), -time.Second)

	token, err := svc.Issue(1, "bob", "user")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService([]byte("right-secret"), time.Hour)
	verifier := NewTokenService([]byte("wrong-secret"), time.Hour)

	token, err := issuer.Issue(1, "bob", "user")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestTokenService_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("test-secret"), time.Hour)

	for _, tok := range []string{"", "garbage", "not.a.jwt", "a.b"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, common.ErrTokenInvalid, "token %q", tok)
	}
}

func TestTokenService_Tampered(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("test-secret"), time.Hour)

	token, err := svc.Issue(7, "carol", "user")
	require.NoError(t, err)

	// Flipping any character anywhere in the token must cause rejection.
	for _, i := range []int{0, len(token) / 4, len(token) / 2, len(token) - 1} {
		flipped := []byte(token)
		if flipped[i] == 'A' {
			flipped[i] = 'B'
		} else {
			flipped[i] = 'A'
		}
		_, err := svc.Verify(string(flipped))
		assert.Error(t, err, "tampered at index %d", i)
	}
}

func TestTokenService_RoleClaimPreserved(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("test-secret"), time.Hour)

	token, err := svc.Issue(3, "root", "admin")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}
