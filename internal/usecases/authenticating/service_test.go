package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lrodrigues/costura-backoffice-api/internal/config"
	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "segredo-de-teste"

func signToken(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()

	claims := &domain.Claims{
		UserID: "user-1",
		Name:   "Luana",
		Role:   domain.RoleOwner,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func newTestService() Authenticator {
	return NewService(&config.Config{SecretKey: testSecret})
}

func TestValidateTokenValido(t *testing.T) {
	service := newTestService()

	tokenString := signToken(t, testSecret, time.Now().Add(time.Hour))

	claims, err := service.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleOwner, claims.Role)
	assert.Equal(t, "user-1", claims.TenantID())
}

func TestValidateTokenExpirado(t *testing.T) {
	service := newTestService()

	tokenString := signToken(t, testSecret, time.Now().Add(-time.Hour))

	_, err := service.ValidateToken(tokenString)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExpiredToken))
}

func TestValidateTokenAssinaturaErrada(t *testing.T) {
	service := newTestService()

	tokenString := signToken(t, "outro-segredo", time.Now().Add(time.Hour))

	_, err := service.ValidateToken(tokenString)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidateTokenVazio(t *testing.T) {
	service := newTestService()

	_, err := service.ValidateToken("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingToken))
}
