package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/shalinks/internal/foundation/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shalinks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://github.com", cfg.Repository.Host)
	assert.Equal(t, "origin", cfg.Repository.Remote)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Equal(t, ":8088", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_FileValuesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
repository:
  host: https://ghe.example.com/
  owner: acme
  name: widgets
logging:
  level: debug
  format: json
server:
  read_timeout: 3s
metrics:
  enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "acme", cfg.Repository.Owner)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, ":8088", cfg.Server.Address)
	assert.True(t, cfg.Metrics.Enabled)

	repo, err := cfg.ResolveRepository()
	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example.com/acme/widgets", repo.String())
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("SHALINKS_TEST_OWNER", "desktop")
	path := writeConfig(t, "repository:\n  owner: ${SHALINKS_TEST_OWNER}\n  name: desktop\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "desktop", cfg.Repository.Owner)
}

func TestLoad_EnvOverridesWin(t *testing.T) {
	t.Setenv(EnvRepository, "other/thing")
	t.Setenv(EnvHost, "https://git.example.org")
	t.Setenv(EnvLogLevel, "WARN")
	path := writeConfig(t, "repository:\n  owner: desktop\n  name: desktop\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other", cfg.Repository.Owner)
	assert.Equal(t, "thing", cfg.Repository.Name)
	assert.Equal(t, "https://git.example.org", cfg.Repository.Host)
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
}

func TestLoad_InvalidEnvRepository(t *testing.T) {
	t.Setenv(EnvRepository, "missing-slash")

	_, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "repository: [\n"},
		{"owner without name", "repository:\n  owner: desktop\n"},
		{"bad owner", "repository:\n  owner: \"a b\"\n  name: x\n"},
		{"bad host", "repository:\n  host: github.com\n  owner: a\n  name: b\n"},
		{"bad level", "logging:\n  level: loud\n"},
		{"bad format", "logging:\n  format: xml\n"},
		{"bad metrics path", "metrics:\n  path: metrics\n"},
		{"negative body limit", "server:\n  max_body_bytes: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig), "got %v", err)
		})
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shalinks.yaml")

	require.NoError(t, Init(path, false))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "desktop", cfg.Repository.Owner)
	assert.True(t, cfg.Metrics.Enabled)

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	require.NoError(t, Init(path, true))
}

func TestResolveRepository_DetectsFromGit(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&ggitcfg.RemoteConfig{Name: "origin", URLs: []string{"git@github.com:desktop/desktop.git"}})
	require.NoError(t, err)

	cfg := Default()
	cfg.Repository.DetectFrom = dir

	got, err := cfg.ResolveRepository()
	require.NoError(t, err)
	assert.Equal(t, "desktop/desktop", got.NameWithOwner())
}

func TestResolveRepository_NothingToDetect(t *testing.T) {
	cfg := Default()
	cfg.Repository.DetectFrom = t.TempDir()

	_, err := cfg.ResolveRepository()
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestParseLogLevel(t *testing.T) {
	for raw, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		got, err := ParseLogLevel(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseLogLevel("verbose")
	require.Error(t, err)
}
