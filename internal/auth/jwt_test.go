package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hugh/staffhub/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 24*time.Hour)

	userID := uuid.New()
	orgID := uuid.New()
	email := "test@example.com"

	t.Run("generates valid token", func(t *testing.T) {
		token, err := jwtService.GenerateToken(userID, orgID, email)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		// Should be parseable
		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, orgID, claims.OrganisationID)
		assert.Equal(t, email, claims.Email)
	})

	t.Run("token contains correct issuer and subject", func(t *testing.T) {
		token, err := jwtService.GenerateToken(userID, orgID, email)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "staffhub", claims.Issuer)
		assert.Equal(t, userID.String(), claims.Subject)
	})

	t.Run("identity carries all claims", func(t *testing.T) {
		token, err := jwtService.GenerateToken(userID, orgID, email)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)

		identity := claims.Identity()
		assert.Equal(t, userID, identity.UserID)
		assert.Equal(t, orgID, identity.OrganisationID)
		assert.Equal(t, email, identity.Email)
	})
}

func TestJWTService_ValidateToken(t *testing.T) {
	userID := uuid.New()
	orgID := uuid.New()
	email := "test@example.com"

	t.Run("validates correct token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour)

		token, err := jwtService.GenerateToken(userID, orgID, email)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 1*time.Millisecond)

		token, err := jwtService.GenerateToken(userID, orgID, email)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = jwtService.ValidateToken(token)
		assert.Equal(t, auth.ErrExpiredToken, err)
	})

	t.Run("rejects tampered token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour)

		token, err := jwtService.GenerateToken(userID, orgID, email)
		require.NoError(t, err)

		_, err = jwtService.ValidateToken(token + "tampered")
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects token signed with different secret", func(t *testing.T) {
		jwtService1 := auth.NewJWTService("secret-1", 24*time.Hour)
		jwtService2 := auth.NewJWTService("secret-2", 24*time.Hour)

		token, err := jwtService1.GenerateToken(userID, orgID, email)
		require.NoError(t, err)

		_, err = jwtService2.ValidateToken(token)
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects malformed token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour)

		_, err := jwtService.ValidateToken("not-a-valid-jwt")
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects empty token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour)

		_, err := jwtService.ValidateToken("")
		assert.Equal(t, auth.ErrInvalidToken, err)
	})
}

func TestHashPassword(t *testing.T) {
	t.Run("hash verifies against original password", func(t *testing.T) {
		hash, err := auth.HashPassword("secret1")
		require.NoError(t, err)
		assert.NotEqual(t, "secret1", hash)
		assert.True(t, auth.CheckPassword("secret1", hash))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		hash, err := auth.HashPassword("secret1")
		require.NoError(t, err)
		assert.False(t, auth.CheckPassword("secret2", hash))
	})
}
