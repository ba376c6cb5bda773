package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService(t *testing.T) {
	svc := NewJWTService("test-secret", "test-issuer", time.Hour)

	t.Run("round trips claims", func(t *testing.T) {
		token, err := svc.GenerateToken("jordan@example.com", "jordan@example.com", RoleCandidate)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "jordan@example.com", claims.Subject)
		assert.Equal(t, RoleCandidate, claims.Role)
		assert.True(t, claims.ExpiresAt.After(time.Now()))
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		other := NewJWTService("other-secret", "test-issuer", time.Hour)
		token, err := other.GenerateToken("x", "x", RoleRecruiter)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := NewJWTService("test-secret", "test-issuer", -time.Minute)
		token, err := expired.GenerateToken("x", "x", RoleCandidate)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.Error(t, err)
	})
}
