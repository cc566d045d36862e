package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpass/internal/domain"
	"mpass/internal/service"
)

func TestAccessTokenService_IssueAndValidate(t *testing.T) {
	svc := service.NewAccessTokenService(testTokenConfig())

	token, err := svc.IssueToken("android-bridge")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "android-bridge", claims.Subject)
}

func TestAccessTokenService_IssueToken_RequiresCaller(t *testing.T) {
	_, err := service.NewAccessTokenService(testTokenConfig()).IssueToken("  ")
	assert.Error(t, err)
}

func TestAccessTokenService_ValidateToken_RejectsClientState(t *testing.T) {
	cfg := testTokenConfig()
	state, err := service.NewClientStateCodec(cfg).Encode(domain.ClientState{RequiredFieldIDs: []string{"a"}})
	require.NoError(t, err)

	_, err = service.NewAccessTokenService(cfg).ValidateToken(state)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAccessTokenService_ValidateToken_WrongSecret(t *testing.T) {
	other := testTokenConfig()
	other.Secret = "another-secret"
	token, err := service.NewAccessTokenService(other).IssueToken("android-bridge")
	require.NoError(t, err)

	_, err = service.NewAccessTokenService(testTokenConfig()).ValidateToken(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAccessTokenService_ValidateToken_Expired(t *testing.T) {
	cfg := testTokenConfig()
	cfg.AccessExpiry = time.Hour
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := service.NewAccessTokenServiceWithClock(cfg, func() time.Time { return now })

	token, err := svc.IssueToken("android-bridge")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAccessTokenService_ValidateToken_Garbage(t *testing.T) {
	_, err := service.NewAccessTokenService(testTokenConfig()).ValidateToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
