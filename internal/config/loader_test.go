package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pointConfigPathsAt redirects both config lookups into temp locations for
// the duration of a test.
func pointConfigPathsAt(t *testing.T, userPath, projectPath string) {
	t.Helper()

	origUser := getUserConfigPath
	origProject := getProjectConfigPath
	getUserConfigPath = func() (string, error) { return userPath, nil }
	getProjectConfigPath = func() (string, error) { return projectPath, nil }
	t.Cleanup(func() {
		getUserConfigPath = origUser
		getProjectConfigPath = origProject
	})
}

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, configFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_DefaultsWhenNoFilesExist(t *testing.T) {
	dir := t.TempDir()
	pointConfigPathsAt(t, filepath.Join(dir, "user", configFileName), filepath.Join(dir, "project", configFileName))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.Equal(t, DefaultResendBaseURL, cfg.Email.BaseURL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_ProjectOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	projectPath := writeConfigFile(t, dir, `
server:
  port: 9090
  transport: sse
logging:
  level: debug
`)
	pointConfigPathsAt(t, filepath.Join(dir, "missing", configFileName), projectPath)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, TransportSSE, cfg.Server.Transport)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched settings keep their defaults
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, DefaultResendBaseURL, cfg.Email.BaseURL)
}

func TestLoadConfig_ProjectOverridesUser(t *testing.T) {
	userDir := t.TempDir()
	projectDir := t.TempDir()

	userPath := writeConfigFile(t, userDir, `
server:
  port: 7000
email:
  baseURL: https://user.example.com
`)
	projectPath := writeConfigFile(t, projectDir, `
server:
  port: 9000
`)
	pointConfigPathsAt(t, userPath, projectPath)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	// User-layer settings not overridden by the project survive
	assert.Equal(t, "https://user.example.com", cfg.Email.BaseURL)
}

func TestLoadConfig_MalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	projectPath := writeConfigFile(t, dir, "server: [not a mapping")
	pointConfigPathsAt(t, filepath.Join(dir, "missing", configFileName), projectPath)

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestMergeConfigs_ZeroValuesDoNotOverride(t *testing.T) {
	base := GetDefaultConfig()
	merged := mergeConfigs(base, Config{})
	assert.Equal(t, base, merged)
}
