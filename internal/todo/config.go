package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Default locations, relative to the user's home directory.
const (
	DirName         = ".todoz"
	StoreFileName   = "todos.json"
	ConfigFileName  = "config.json"
	HistoryFileName = "history"
)

// MaxSessionMinutes caps pomodoro and break lengths (one day).
const MaxSessionMinutes = 24 * 60

// Config holds all configuration options.
type Config struct {
	// From the config file (serialized)
	StoreFile       string `json:"store_file"`
	Color           *bool  `json:"color,omitempty"`
	History         *bool  `json:"history,omitempty"`
	PomodoroMinutes int    `json:"pomodoro_minutes,omitempty"`
	BreakMinutes    int    `json:"break_minutes,omitempty"`
	LogLevel        string `json:"log_level,omitempty"`

	// Resolved paths (computed, not serialized)
	Home         string `json:"-"`
	DataDir      string `json:"-"` // <home>/.todoz
	StoreFileAbs string `json:"-"`
	HistoryFile  string `json:"-"`

	// Source is the config file that was loaded, empty if defaults only.
	Source string `json:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		StoreFile:       StoreFileName,
		Color:           boolPtr(true),
		History:         boolPtr(true),
		PomodoroMinutes: 25,
		BreakMinutes:    5,
		LogLevel:        "warn",
	}
}

// ColorEnabled reports whether coloured output is configured.
func (c Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

// HistoryEnabled reports whether prompt history should be kept.
func (c Config) HistoryEnabled() bool {
	return c.History == nil || *c.History
}

// HomeDir resolves the user's home directory from env, falling back to the
// OS user database. Returns [ErrNoHomeDir] when neither knows.
func HomeDir(env map[string]string) (string, error) {
	if home := env["HOME"]; home != "" {
		return home, nil
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", ErrNoHomeDir
	}

	return home, nil
}

// LoadConfig resolves configuration with the following precedence (highest wins):
// 1. Defaults
// 2. <home>/.todoz/config.json (JSON with comments, if it exists)
//
// All paths in the returned Config are absolute. When the config file cannot
// be used, LoadConfig still returns the resolved defaults together with the
// error so callers can warn and carry on.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig()

	if home == "" {
		return cfg, ErrNoHomeDir
	}

	cfg.Home = home
	cfg.DataDir = filepath.Join(home, DirName)
	cfgPath := filepath.Join(cfg.DataDir, ConfigFileName)

	fileCfg, loaded, err := loadConfigFile(cfgPath)
	if err == nil && loaded {
		merged := mergeConfig(cfg, fileCfg)

		err = validateConfig(merged)
		if err == nil {
			cfg = merged
			cfg.Source = cfgPath
		} else {
			err = fmt.Errorf("%w %s: %w", ErrConfigInvalid, cfgPath, err)
		}
	}

	cfg.resolvePaths()

	return cfg, err
}

func (c *Config) resolvePaths() {
	c.StoreFileAbs = c.StoreFile
	if !filepath.IsAbs(c.StoreFileAbs) {
		c.StoreFileAbs = filepath.Join(c.DataDir, c.StoreFileAbs)
	}

	c.HistoryFile = filepath.Join(c.DataDir, HistoryFileName)
}

// loadConfigFile loads a config file. A missing file is not an error.
// Returns the config, whether the file was loaded, and any error.
func loadConfigFile(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigRead, path, err)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(standardized, &raw); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	// An explicit "" would silently fall back to the default otherwise.
	if v, ok := raw["store_file"]; ok && strings.TrimSpace(string(v)) == `""` {
		return Config{}, ErrStoreFileEmpty
	}

	var cfg Config

	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.StoreFile != "" {
		base.StoreFile = overlay.StoreFile
	}

	if overlay.Color != nil {
		base.Color = overlay.Color
	}

	if overlay.History != nil {
		base.History = overlay.History
	}

	if overlay.PomodoroMinutes != 0 {
		base.PomodoroMinutes = overlay.PomodoroMinutes
	}

	if overlay.BreakMinutes != 0 {
		base.BreakMinutes = overlay.BreakMinutes
	}

	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}

	return base
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

func validateConfig(cfg Config) error {
	if cfg.StoreFile == "" {
		return ErrStoreFileEmpty
	}

	if cfg.PomodoroMinutes < 0 || cfg.BreakMinutes < 0 {
		return errors.New("pomodoro_minutes and break_minutes must be positive")
	}

	if cfg.PomodoroMinutes > MaxSessionMinutes || cfg.BreakMinutes > MaxSessionMinutes {
		return fmt.Errorf("pomodoro_minutes and break_minutes must be at most %d", MaxSessionMinutes)
	}

	for _, lvl := range validLogLevels {
		if cfg.LogLevel == lvl {
			return nil
		}
	}

	return fmt.Errorf("log_level must be one of %s, got %q", strings.Join(validLogLevels, "|"), cfg.LogLevel)
}

func boolPtr(b bool) *bool {
	return &b
}
