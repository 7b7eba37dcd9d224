package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/config"
	"crmdesk/models"
)

func TestJWTRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	user := &models.User{Role: models.RoleAdmin}
	user.ID = 42

	token, err := GenerateJWTToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWTToken(token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestParseJWTTokenRejectsTampered(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	user := &models.User{Role: models.RoleSales}
	user.ID = 7

	token, err := GenerateJWTToken(user)
	require.NoError(t, err)

	_, err = ParseJWTToken(token + "x")
	assert.Error(t, err)
}

func TestParseJWTTokenRejectsWrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	user := &models.User{Role: models.RoleSales}
	user.ID = 7

	token, err := GenerateJWTToken(user)
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "rotated-secret"
	_, err = ParseJWTToken(token)
	assert.Error(t, err)
}

func TestParseJWTTokenRejectsGarbage(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	_, err := ParseJWTToken("not.a.token")
	assert.Error(t, err)
}
