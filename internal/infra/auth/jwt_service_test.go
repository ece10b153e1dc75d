package auth

import (
	"testing"
	"time"

	"tapcard/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAccessSecret = "test_access_secret_key_very_long_for_testing"

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret

	return cfg
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func TestJWTService_ValidateAccessToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(testAccessSecret))
	require.NoError(t, err)

	userID := uuid.New()
	token := signToken(t, testAccessSecret, jwt.MapClaims{
		"sub": userID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(15 * time.Minute).Unix(),
	})

	got, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTService_RejectsBadTokens(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(testAccessSecret))
	require.NoError(t, err)

	userID := uuid.New()

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "clearly-not-a-jwt-token-format"},
		{"wrong secret", signToken(t, "some-other-secret", jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(time.Minute).Unix(),
		})},
		{"expired", signToken(t, testAccessSecret, jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(-time.Minute).Unix(),
		})},
		{"missing subject", signToken(t, testAccessSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Minute).Unix(),
		})},
		{"non-uuid subject", signToken(t, testAccessSecret, jwt.MapClaims{
			"sub": "not-a-uuid",
			"exp": time.Now().Add(time.Minute).Unix(),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(newTestConfig(""))
	assert.Error(t, err)
}
