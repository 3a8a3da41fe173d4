package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ehealth-portal-server/internal/config"
	"ehealth-portal-server/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                 "test-secret",
		JWTRefreshSecret:          "test-refresh-secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 168,
	}
}

func TestGenerateAndValidateTokens(t *testing.T) {
	cfg := testConfig()

	access, refresh, err := GenerateTokens("doc@example.com", "Grace Hope", models.RoleDoctor, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := ValidateToken(access, cfg.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "doc@example.com", claims.Email)
	assert.Equal(t, "Grace Hope", claims.Name)
	assert.Equal(t, models.RoleDoctor, claims.Role)

	refreshClaims, err := ValidateToken(refresh, cfg.JWTRefreshSecret)
	require.NoError(t, err)
	assert.Equal(t, "doc@example.com", refreshClaims.Email)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	cfg := testConfig()
	access, _, err := GenerateTokens("pat@example.com", "Pat Smith", models.RolePatient, cfg)
	require.NoError(t, err)

	_, err = ValidateToken(access, "some-other-secret")
	assert.Error(t, err)
}

func TestValidateTokenRejectsRefreshAsAccess(t *testing.T) {
	cfg := testConfig()
	_, refresh, err := GenerateTokens("pat@example.com", "Pat Smith", models.RolePatient, cfg)
	require.NoError(t, err)

	_, err = ValidateToken(refresh, cfg.JWTSecret)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", "test-secret")
	assert.Error(t, err)
}
