package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/orderhub/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "unit-test-secret-0123456789abcdef",
		AccessTokenExpiration: expiration,
		Issuer:                "orderhub-test",
	})
}

func TestGenerate(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	token, err := svc.Generate("admin", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)
}

func TestValidate(t *testing.T) {
	t.Run("round-trips claims", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)

		token, err := svc.Generate("admin", "admin")
		require.NoError(t, err)

		claims, err := svc.Validate(token.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, "orderhub-test", claims.Issuer)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)

		_, err := svc.Validate("definitely-not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)
		other := NewJWTService(config.JWTConfig{
			Secret:                "a-completely-different-secret-key",
			AccessTokenExpiration: time.Hour,
			Issuer:                "orderhub-test",
		})

		token, err := other.Generate("admin", "admin")
		require.NoError(t, err)

		_, err = svc.Validate(token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		svc := newTestJWTService(-time.Minute)

		token, err := svc.Generate("admin", "admin")
		require.NoError(t, err)

		_, err = svc.Validate(token.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects a non-HMAC signing method", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)

		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			Username: "admin",
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Validate(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects claims without a username", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)

		now := time.Now()
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
		}).SignedString([]byte("unit-test-secret-0123456789abcdef"))
		require.NoError(t, err)

		_, err = svc.Validate(signed)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})
}
