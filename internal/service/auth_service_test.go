package service

import (
	"testing"
	"time"

	"github.com/campusdesk/studentdir/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authConfig(t *testing.T, password string) *config.Config {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     time.Hour,
		BcryptCost:    4, // Minimum cost keeps tests fast.
		AdminUsername: "admin",
	}
	if password != "" {
		svc := NewAuthService(cfg)
		hash, err := svc.HashPassword(password)
		require.NoError(t, err)
		cfg.AdminPassHash = hash
	}
	return cfg
}

func TestLoginRoundTrip(t *testing.T) {
	svc := NewAuthService(authConfig(t, "secret-pass"))

	token, err := svc.Login("admin", "secret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(authConfig(t, "secret-pass"))

	_, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody", "secret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledWithoutHash(t *testing.T) {
	svc := NewAuthService(authConfig(t, ""))

	_, err := svc.Login("admin", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc := NewAuthService(authConfig(t, "secret-pass"))

	token, err := svc.Login("admin", "secret-pass")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)

	other := NewAuthService(&config.Config{JWTSecret: "other-secret", JWTExpiry: time.Hour})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
