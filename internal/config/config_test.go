package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestDefaults(t *testing.T) {
	home, wd := t.TempDir(), t.TempDir()
	cfg, err := Load(Options{HomeDir: home, WorkDir: wd, LookupEnv: envMap(nil)})
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, ".tada"), cfg.Storage.Dir)
	assert.Equal(t, DefaultKey, cfg.Storage.Key)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "classic", cfg.UI.Theme)
	assert.Equal(t, filepath.Join(home, ".tada", "tada.db"), cfg.SQLitePath())
}

func TestFileLayering(t *testing.T) {
	home, wd := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(home, ".tada", "config.toml"), `
[storage]
backend = "sqlite"
dir = "~/todos"

[ui]
theme = "neon"
group = true
`)
	writeFile(t, filepath.Join(wd, ".tada.toml"), `
[ui]
theme = "mono"
`)

	cfg, err := Load(Options{HomeDir: home, WorkDir: wd, LookupEnv: envMap(nil)})
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, "todos"), cfg.Storage.Dir)
	assert.Equal(t, "mono", cfg.UI.Theme, "project file wins over user file")
	assert.True(t, cfg.UI.Group)
}

func TestEnvOverrides(t *testing.T) {
	home, wd := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(home, ".tada", "config.toml"), `
[log]
level = "info"
`)
	cfg, err := Load(Options{HomeDir: home, WorkDir: wd, LookupEnv: envMap(map[string]string{
		"TADA_BACKEND":   "Memory",
		"TADA_DATA_DIR":  "rel/data",
		"TADA_LOG_LEVEL": "debug",
		"TADA_THEME":     "neon",
		"NO_COLOR":       "",
	})})
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(wd, "rel", "data"), cfg.Storage.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "neon", cfg.UI.Theme)
	assert.Equal(t, "never", cfg.UI.Color)
}

func TestExplicitPath(t *testing.T) {
	home, wd := t.TempDir(), t.TempDir()
	p := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, p, `
[storage]
key = "other-slot"
`)
	cfg, err := Load(Options{Path: p, HomeDir: home, WorkDir: wd, LookupEnv: envMap(nil)})
	require.NoError(t, err)
	assert.Equal(t, "other-slot", cfg.Storage.Key)

	_, err = Load(Options{Path: filepath.Join(wd, "missing.toml"), HomeDir: home, WorkDir: wd, LookupEnv: envMap(nil)})
	assert.Error(t, err)
}

func TestInvalid(t *testing.T) {
	cases := map[string]string{
		"bad backend": "[storage]\nbackend = \"postgres\"\n",
		"empty key":   "[storage]\nkey = \"\"\n",
		"bad format":  "[log]\nformat = \"xml\"\n",
		"bad color":   "[ui]\ncolor = \"sometimes\"\n",
		"unknown key": "[storage]\nbackend = \"file\"\nflavour = \"vanilla\"\n",
		"bad toml":    "[storage\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			home, wd := t.TempDir(), t.TempDir()
			writeFile(t, filepath.Join(wd, ".tada.toml"), body)
			_, err := Load(Options{HomeDir: home, WorkDir: wd, LookupEnv: envMap(nil)})
			assert.Error(t, err)
		})
	}
}
