package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "disk", cfg.Blob.Driver)
	assert.Equal(t, "uploads", cfg.Blob.Dir)
	assert.Equal(t, "admin@app.com", cfg.Admin.Email)
	assert.Equal(t, 15, cfg.JWTExpirationMinutes)
	assert.Equal(t, 10, cfg.OTPExpiryMinutes)
	assert.Contains(t, cfg.Database.DSN, "parseTime=True")
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("BLOB_DRIVER", "s3")
	t.Setenv("BLOB_S3_BUCKET", "ehealth-attachments")
	t.Setenv("DB_NAME", "portal")
	t.Setenv("OTP_EXPIRY_MINUTES", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "s3", cfg.Blob.Driver)
	assert.Equal(t, "ehealth-attachments", cfg.Blob.Bucket)
	assert.Contains(t, cfg.Database.DSN, "/portal?")
	assert.Equal(t, 5, cfg.OTPExpiryMinutes)
}

func TestLoadConfigRejectsBadNumbers(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_MINUTES", "soon")
	_, err := LoadConfig()
	assert.Error(t, err)
}
