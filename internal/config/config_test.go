package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{BasePath: "/some/path"},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validTestConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validTestConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"WARN", true}, // case insensitive
		{"verbose", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validTestConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_EmptyDataPath(t *testing.T) {
	cfg := validTestConfig()
	cfg.Data.BasePath = ""

	err := cfg.Validate()
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	abs, err := expandPath("/already/absolute", "")
	require.NoError(t, err)
	assert.Equal(t, "/already/absolute", abs)

	// Empty path falls back to default.
	got, err := expandPath("", "/default/path")
	require.NoError(t, err)
	assert.Equal(t, "/default/path", got)

	// Relative paths become absolute.
	got, err = expandPath("relative/dir", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestExpandDataPath_Default(t *testing.T) {
	cfg := &Config{}
	err := cfg.expandDataPath()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.Data.BasePath))
	assert.Contains(t, cfg.Data.BasePath, "Mealdex")
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment\nMEALDEX_TEST_KEY=hello\nMEALDEX_TEST_QUOTED=\"world\"\n"
	require.NoError(t, writeFile(envPath, content))

	t.Setenv("MEALDEX_TEST_KEY", "")
	t.Setenv("MEALDEX_TEST_QUOTED", "")

	err := loadEnvFile(envPath)
	require.NoError(t, err)
	assert.Equal(t, "hello", getConfigValue("", "MEALDEX_TEST_KEY", ""))
	assert.Equal(t, "world", getConfigValue("", "MEALDEX_TEST_QUOTED", ""))
}

func TestLoadEnvFile_Missing(t *testing.T) {
	err := loadEnvFile("/nonexistent/.env")
	assert.Error(t, err)
}
