// Package config resolves ajar's runtime settings from JSONC config files,
// the environment and command-line flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
	"golang.org/x/text/language"
)

var (
	errConfigFileNotFound = errors.New("config file not found")
	errConfigFileRead     = errors.New("cannot read config file")
	errConfigInvalid      = errors.New("invalid config file")
	errEmptyField         = errors.New("cannot be empty")
	errOrderPrefix        = errors.New("order_prefix must contain only letters")
	errLocale             = errors.New("unknown locale")
	errDebounce           = errors.New("debounce_ms cannot be negative")
)

// Config holds all configuration options.
type Config struct {
	DataFile    string `json:"data_file"`
	StateDir    string `json:"state_dir"`
	OrderPrefix string `json:"order_prefix"`
	Locale      string `json:"locale"`
	DebounceMS  int    `json:"debounce_ms"`
	Actor       string `json:"actor,omitempty"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// Flags carries command-line overrides. Empty fields are not applied.
type Flags struct {
	DataFile string
	StateDir string
	Actor    string
}

// FileName is the project config file name.
const FileName = ".ajar.json"

// Environment variables that override config files.
const (
	EnvData     = "AJAR_DATA"
	EnvStateDir = "AJAR_STATE_DIR"
	EnvActor    = "AJAR_ACTOR"
)

// Default returns the default configuration.
func Default() Config {
	return Config{
		DataFile:    "dataBahanAjar.json",
		StateDir:    ".ajar",
		OrderPrefix: "DO",
		Locale:      "id",
		DebounceMS:  200,
	}
}

// Load resolves configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config ($XDG_CONFIG_HOME/ajar/config.json or ~/.config/ajar/config.json)
// 3. Project config file (.ajar.json in workDir, if exists)
// 4. Explicit config file via configPath (replaces the project file)
// 5. Environment (AJAR_DATA, AJAR_STATE_DIR, AJAR_ACTOR)
// 6. Flags
//
// Relative data_file and state_dir paths are resolved against workDir.
// The actor is resolved last, see ResolveActor.
func Load(workDir, configPath string, flags Flags, env []string) (Config, Sources, error) {
	cfg := Default()
	var sources Sources

	if path := globalConfigPath(env); path != "" {
		fileCfg, loaded, err := loadFile(path, false)
		if err != nil {
			return Config{}, Sources{}, err
		}
		if loaded {
			sources.Global = path
			cfg = merge(cfg, fileCfg)
		}
	}

	projectPath := filepath.Join(workDir, FileName)
	mustExist := false
	if configPath != "" {
		projectPath = configPath
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}
		mustExist = true
	}
	fileCfg, loaded, err := loadFile(projectPath, mustExist)
	if err != nil {
		return Config{}, Sources{}, err
	}
	if loaded {
		sources.Project = projectPath
		cfg = merge(cfg, fileCfg)
	}

	cfg = merge(cfg, Config{
		DataFile: lookupEnv(env, EnvData),
		StateDir: lookupEnv(env, EnvStateDir),
	})
	cfg = merge(cfg, Config{DataFile: flags.DataFile, StateDir: flags.StateDir})

	cfg.Actor = ResolveActor(flags.Actor, cfg.Actor, env)
	cfg.DataFile = resolvePath(workDir, cfg.DataFile)
	cfg.StateDir = resolvePath(workDir, cfg.StateDir)

	if err := Validate(cfg); err != nil {
		return Config{}, Sources{}, err
	}
	return cfg, sources, nil
}

// Validate checks a resolved configuration.
func Validate(cfg Config) error {
	if cfg.DataFile == "" {
		return fmt.Errorf("data_file %w", errEmptyField)
	}
	if cfg.StateDir == "" {
		return fmt.Errorf("state_dir %w", errEmptyField)
	}
	if cfg.OrderPrefix == "" {
		return fmt.Errorf("order_prefix %w", errEmptyField)
	}
	for _, r := range cfg.OrderPrefix {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return errOrderPrefix
		}
	}
	if _, err := language.Parse(cfg.Locale); err != nil {
		return fmt.Errorf("%w %q: %w", errLocale, cfg.Locale, err)
	}
	if cfg.DebounceMS < 0 {
		return errDebounce
	}
	return nil
}

// LocaleTag returns the collation locale. Validate guarantees it parses.
func (c Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Indonesian
	}
	return tag
}

// Format returns the config as formatted JSON.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}
	return string(data), nil
}

// globalConfigPath returns the path to the global config file.
// Returns empty string if home directory cannot be determined.
func globalConfigPath(env []string) string {
	if xdg := lookupEnv(env, "XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ajar", "config.json")
	}
	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, ".config", "ajar", "config.json")
	}
	return ""
}

// loadFile loads a config file. If mustExist is false, missing files return zero config.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return Config{}, false, fmt.Errorf("%w: %s", errConfigFileNotFound, path)
			}
			return Config{}, false, nil
		}
		return Config{}, false, fmt.Errorf("%w: %s", errConfigFileRead, path)
	}

	cfg, err := parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}
	return cfg, true, nil
}

func parse(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	// Explicitly empty paths are rejected rather than silently ignored
	var raw map[string]any
	_ = json.Unmarshal(standardized, &raw)
	for _, key := range []string{"data_file", "state_dir", "order_prefix"} {
		if v, ok := raw[key].(string); ok && v == "" {
			return Config{}, fmt.Errorf("%s %w", key, errEmptyField)
		}
	}
	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.DataFile != "" {
		base.DataFile = overlay.DataFile
	}
	if overlay.StateDir != "" {
		base.StateDir = overlay.StateDir
	}
	if overlay.OrderPrefix != "" {
		base.OrderPrefix = overlay.OrderPrefix
	}
	if overlay.Locale != "" {
		base.Locale = overlay.Locale
	}
	if overlay.DebounceMS != 0 {
		base.DebounceMS = overlay.DebounceMS
	}
	if overlay.Actor != "" {
		base.Actor = overlay.Actor
	}
	return base
}

func resolvePath(workDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

// lookupEnv reads a variable from env, which uses os.Environ's KEY=value form.
func lookupEnv(env []string, key string) string {
	for i := len(env) - 1; i >= 0; i-- {
		if after, ok := strings.CutPrefix(env[i], key+"="); ok {
			return after
		}
	}
	return ""
}
