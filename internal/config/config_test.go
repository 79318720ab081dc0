package config

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		App: AppConfig{
			Environment: "development",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Data: DataConfig{
			BasePath: "/some/path",
		},
		Upload: UploadConfig{
			Path:     "/some/path/uploads",
			MaxBytes: defaultMaxUploadBytes,
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validTestConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_TokenKeyLength(t *testing.T) {
	cfg := validTestConfig()

	// No key configured is fine, one gets generated at startup.
	require.NoError(t, cfg.Validate())

	key, err := hex.DecodeString(strings.Repeat("ab", 32))
	require.NoError(t, err)
	cfg.Auth.TokenKey = key
	assert.NoError(t, cfg.Validate())

	cfg.Auth.TokenKey = key[:16]
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_TOKEN_KEY")
}

func TestValidate_InvalidEnvironment(t *testing.T) {
	cfg := validTestConfig()
	cfg.App.Environment = "test"
	assert.Error(t, cfg.Validate())
}

func TestValidate_InvalidUploadMaxBytes(t *testing.T) {
	cfg := validTestConfig()
	cfg.Upload.MaxBytes = 0
	assert.Error(t, cfg.Validate())
}
