// Package config loads tada settings.
//
// Sources, lowest priority first:
//  1. Defaults
//  2. User config file (~/.tada/config.toml, or $TADA_CONFIG)
//  3. Project config file (.tada.toml in the current directory)
//  4. Environment variables (TADA_*)
//
// CLI flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	DefaultKey       = "todo-storage"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultTheme     = "classic"

	userConfigName    = "config.toml"
	projectConfigName = ".tada.toml"
	sqliteFileName    = "tada.db"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`
}

type StorageConfig struct {
	Backend string `toml:"backend"` // file | sqlite | memory
	Dir     string `toml:"dir"`
	Key     string `toml:"key"`
}

type LogConfig struct {
	Level  string `toml:"level"`  // debug | info | warn | error
	Format string `toml:"format"` // text | json | logfmt
}

type UIConfig struct {
	Theme string `toml:"theme"` // classic | neon | mono
	Group bool   `toml:"group"`
	Color string `toml:"color"` // auto | always | never
}

// Options control where Load looks. Zero values mean the real environment.
type Options struct {
	Path      string // explicit config file; must exist when set
	HomeDir   string
	WorkDir   string
	LookupEnv func(string) (string, bool)
}

// Default returns the built-in settings.
func Default(home string) *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Dir:     filepath.Join(home, ".tada"),
			Key:     DefaultKey,
		},
		Log: LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		UI:  UIConfig{Theme: DefaultTheme, Color: "auto"},
	}
}

// Load resolves the configuration.
func Load(opt Options) (*Config, error) {
	if opt.LookupEnv == nil {
		opt.LookupEnv = os.LookupEnv
	}
	if opt.HomeDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("home: %w", err)
		}
		opt.HomeDir = home
	}
	if opt.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		opt.WorkDir = wd
	}

	cfg := Default(opt.HomeDir)

	path := opt.Path
	if path == "" {
		if v, ok := opt.LookupEnv("TADA_CONFIG"); ok && v != "" {
			path = v
		}
	}
	if path != "" {
		if err := decodeFile(cfg, expandPath(path, opt.HomeDir)); err != nil {
			return nil, err
		}
	} else {
		user := filepath.Join(opt.HomeDir, ".tada", userConfigName)
		if err := decodeFileIfExists(cfg, user); err != nil {
			return nil, err
		}
	}
	if err := decodeFileIfExists(cfg, filepath.Join(opt.WorkDir, projectConfigName)); err != nil {
		return nil, err
	}

	loadFromEnv(cfg, opt.LookupEnv)

	cfg.Storage.Dir = expandPath(cfg.Storage.Dir, opt.HomeDir)
	if !filepath.IsAbs(cfg.Storage.Dir) {
		cfg.Storage.Dir = filepath.Join(opt.WorkDir, cfg.Storage.Dir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, 0, len(undec))
		for _, k := range undec {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func decodeFileIfExists(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return decodeFile(cfg, path)
}

func loadFromEnv(cfg *Config, lookup func(string) (string, bool)) {
	get := func(name string) (string, bool) {
		v, ok := lookup(name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get("TADA_BACKEND"); ok {
		cfg.Storage.Backend = v
	}
	if v, ok := get("TADA_DATA_DIR"); ok {
		cfg.Storage.Dir = v
	}
	if v, ok := get("TADA_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := get("TADA_THEME"); ok {
		cfg.UI.Theme = v
	}
	if _, ok := lookup("NO_COLOR"); ok {
		cfg.UI.Color = "never"
	}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q (want file, sqlite or memory)", c.Storage.Backend)
	}
	if c.Storage.Key == "" {
		return errors.New("storage.key: must not be empty")
	}
	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	switch c.UI.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("ui.color: want auto, always or never, got %q", c.UI.Color)
	}
	return nil
}

// SQLitePath is the database file used by the sqlite backend.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.Storage.Dir, sqliteFileName)
}

func expandPath(p, home string) string {
	p = os.ExpandEnv(p)
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:])
	}
	return p
}
