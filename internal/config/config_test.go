package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Empty(t, cfg.API.URL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Poll.Interval)
	assert.Equal(t, 10, cfg.Board.Slots)
	assert.Equal(t, "US/Central", cfg.Board.Timezone)
	assert.Empty(t, cfg.Server.Listen)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)

	content := `
version: 1
api:
  url: https://icinga.example.com:5665/
  username: board
  password: secret
  insecure_skip_verify: true
  timeout: 5s
poll:
  interval: 1m
board:
  slots: 6
  timezone: Australia/Sydney
server:
  listen: ":8080"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "https://icinga.example.com:5665", cfg.API.URL, "trailing slash trimmed")
	assert.Equal(t, "board", cfg.API.Username)
	assert.Equal(t, "secret", cfg.API.Password)
	assert.True(t, cfg.API.InsecureSkipVerify)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, time.Minute, cfg.Poll.Interval)
	assert.Equal(t, 6, cfg.Board.Slots)
	assert.Equal(t, "Australia/Sydney", cfg.Board.Timezone)
	assert.Equal(t, ":8080", cfg.Server.Listen)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("api:\n  url: http://localhost:5665\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5665", cfg.API.URL)
	assert.Equal(t, DefaultPollInterval, cfg.Poll.Interval)
	assert.Equal(t, DefaultSlots, cfg.Board.Slots)
	assert.Equal(t, "US/Central", cfg.Board.Timezone)
	assert.Equal(t, DefaultAPITimeout, cfg.API.Timeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("api:\n  url: http://localhost:5665\n  password: fromfile\n"), 0644))

	t.Setenv("STATUSBOARD_API_PASSWORD", "fromenv")
	t.Setenv("STATUSBOARD_POLL_INTERVAL", "5s")
	t.Setenv("STATUSBOARD_BOARD_SLOTS", "4")

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "fromenv", cfg.API.Password)
	assert.Equal(t, 5*time.Second, cfg.Poll.Interval)
	assert.Equal(t, 4, cfg.Board.Slots)
}

func TestLoad_NoFileUsesEnv(t *testing.T) {
	t.Setenv("STATUSBOARD_API_URL", "https://mon.internal:5665")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://mon.internal:5665", cfg.API.URL)
	assert.Equal(t, DefaultSlots, cfg.Board.Slots)
}

func TestLoad_ExpandsCredentials(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("api:\n  url: http://x\n  username: ${ICINGA_USER}\n  password: ${ICINGA_PASS}\n"), 0644))

	t.Setenv("ICINGA_USER", "root")
	t.Setenv("ICINGA_PASS", "s3cret")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "root", cfg.API.Username)
	assert.Equal(t, "s3cret", cfg.API.Password)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0644))
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Failed to read config file")
	})

	t.Run("bad duration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("poll:\n  interval: soon\n"), 0644))
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid config format")
	})
}

func TestFind(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0644))

		found, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Specified config file not found")
	})

	t.Run("parent directory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("version: 1\n"), 0644))
		sub := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(sub, 0755))
		chdir(t, sub)

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, ConfigFileName), evalSymlinks(t, found, root))
	})

	t.Run("stops at git root", func(t *testing.T) {
		outer := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(outer, ConfigFileName), []byte("version: 1\n"), 0644))
		repo := filepath.Join(outer, "repo")
		require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0755))
		chdir(t, repo)
		t.Setenv("HOME", t.TempDir())

		found, err := Find("")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

// evalSymlinks maps found back under root when the temp dir is reached
// through a symlink (macOS /var -> /private/var).
func evalSymlinks(t *testing.T, found, root string) string {
	t.Helper()
	realRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	realFound, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	rel, err := filepath.Rel(realRoot, realFound)
	require.NoError(t, err)
	return filepath.Join(root, rel)
}

func TestResolve_NoFile(t *testing.T) {
	repo := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(repo, ".git"), 0755))
	chdir(t, repo)
	t.Setenv("HOME", t.TempDir())

	cfg, path, err := Resolve("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultSlots, cfg.Board.Slots)
}

func TestExpand(t *testing.T) {
	t.Setenv("SB_TEST_VAR", "value")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"${SB_TEST_VAR}", "value"},
		{"pre-${SB_TEST_VAR}-post", "pre-value-post"},
		{"${SB_TEST_UNSET_VAR}", ""},
		{"$SB_TEST_VAR", "$SB_TEST_VAR"},
		{"pa$$word", "pa$$word"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Expand(tt.in), "Expand(%q)", tt.in)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", ExpandTilde(""))
	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, filepath.Join(home, "x.yaml"), ExpandTilde("~/x.yaml"))
	assert.Equal(t, "/etc/x.yaml", ExpandTilde("/etc/x.yaml"))
}

func TestWriteAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", ConfigFileName)

	cfg := DefaultConfig()
	cfg.API.URL = "https://icinga.example.com:5665"
	cfg.API.Username = "board"
	cfg.API.Password = "${ICINGA_PASSWORD}"
	cfg.API.InsecureSkipVerify = true
	cfg.Poll.Interval = 45 * time.Second
	cfg.Board.Slots = 8
	cfg.Board.Timezone = "US/Pacific"
	cfg.Server.Listen = ":9090"

	require.NoError(t, Write(path, cfg, false))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Monitoring API base URL")
	assert.Contains(t, string(data), "interval: 45s")

	t.Setenv("ICINGA_PASSWORD", "hunter2")
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.API.URL, loaded.API.URL)
	assert.Equal(t, "hunter2", loaded.API.Password)
	assert.True(t, loaded.API.InsecureSkipVerify)
	assert.Equal(t, cfg.Poll.Interval, loaded.Poll.Interval)
	assert.Equal(t, cfg.Board, loaded.Board)
	assert.Equal(t, cfg.Server, loaded.Server)
	assert.NoError(t, Validate(loaded))
}

func TestWrite_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0644))

	err := Write(path, DefaultConfig(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, _ := os.ReadFile(path)
	assert.Equal(t, "keep", string(data))

	require.NoError(t, Write(path, DefaultConfig(), true))
	data, _ = os.ReadFile(path)
	assert.Contains(t, string(data), "version: 1")
}
