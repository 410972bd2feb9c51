package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"
)

// Config represents the claude-md-bench configuration.
type Config struct {
	Provider       string        `json:"provider"`
	Model          string        `json:"model"`
	Host           string        `json:"host,omitempty"`
	TimeoutSeconds int           `json:"timeoutSeconds"`
	Format         string        `json:"format"`
	OutDir         string        `json:"outDir,omitempty"`
	MinScore       float64       `json:"minScore,omitempty"`
	RubricFile     string        `json:"rubricFile,omitempty"`
	Iterations     int           `json:"iterations"`
	Cache          CacheConfig   `json:"cache"`
	Privacy        PrivacyConfig `json:"privacy"`
}

// CacheConfig controls the response cache.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// PrivacyConfig controls secret redaction behavior.
type PrivacyConfig struct {
	RedactSecrets bool `json:"redactSecrets"`
}

// Providers lists the valid provider names.
var Providers = []string{"ollama", "lmstudio", "anthropic", "gemini"}

// Formats lists the valid report file formats. "both" writes text and html.
var Formats = []string{"text", "html", "json", "sarif", "both"}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Provider:       "ollama",
		Model:          "llama3.1",
		TimeoutSeconds: 120,
		Format:         "both",
		Iterations:     3,
		Cache:          CacheConfig{Enabled: true, TTLSeconds: 86400},
		Privacy:        PrivacyConfig{RedactSecrets: true},
	}
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ConfigDir returns the platform-appropriate config directory.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "claude-md-bench"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "claude-md-bench"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "claude-md-bench"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "claude-md-bench"), nil
	default:
		return filepath.Join(home, ".config", "claude-md-bench"), nil
	}
}

// ConfigPath returns the full path to the config file, honoring the
// CLAUDE_MD_BENCH_CONFIG override.
func ConfigPath() (string, error) {
	if p := os.Getenv("CLAUDE_MD_BENCH_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ReportsDir returns the directory report files are written to. An explicit
// OutDir wins; the default is ~/.claude-md-bench/reports.
func ReportsDir(cfg Config) (string, error) {
	if cfg.OutDir != "" {
		return cfg.OutDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".claude-md-bench", "reports"), nil
}

// LoadFile loads config from path, or from the default config file when path
// is empty. Returns zero Config and nil error if the file doesn't exist.
func LoadFile(path string) (Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to the config file path, creating parent directories as
// needed.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	buf, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, buf, 0o644)
}

// Load resolves the effective configuration. Later sources win: defaults,
// then the config file, then environment variables, then the flag override
// map (which only carries flags the user actually set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fromFile, err := LoadFile(overrides["config"])
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fromFile)
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	mergeOverrides(&cfg, overrides)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations no command could run with.
func Validate(cfg Config) error {
	if !contains(Providers, cfg.Provider) {
		return fmt.Errorf("unknown provider %q (valid: %v)", cfg.Provider, Providers)
	}
	if !contains(Formats, cfg.Format) {
		return fmt.Errorf("unknown format %q (valid: %v)", cfg.Format, Formats)
	}
	if cfg.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", cfg.TimeoutSeconds)
	}
	if cfg.MinScore < 0 || cfg.MinScore > 100 {
		return fmt.Errorf("min score must be in 0-100, got %g", cfg.MinScore)
	}
	if cfg.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", cfg.Iterations)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// overrideString and overrideInt apply a source value only when it is set.
func overrideString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func overrideInt(dst *int, src int) {
	if src > 0 {
		*dst = src
	}
}

func mergeFile(dst *Config, src Config) {
	overrideString(&dst.Provider, src.Provider)
	overrideString(&dst.Model, src.Model)
	overrideString(&dst.Host, src.Host)
	overrideInt(&dst.TimeoutSeconds, src.TimeoutSeconds)
	overrideString(&dst.Format, src.Format)
	overrideString(&dst.OutDir, src.OutDir)
	if src.MinScore > 0 {
		dst.MinScore = src.MinScore
	}
	overrideString(&dst.RubricFile, src.RubricFile)
	overrideInt(&dst.Iterations, src.Iterations)
	overrideString(&dst.Cache.Dir, src.Cache.Dir)
	overrideInt(&dst.Cache.TTLSeconds, src.Cache.TTLSeconds)
	// JSON's zero value for bool is false, so unset and false are
	// indistinguishable in a simple merge. Disabling cache or redaction is
	// done via flags and env, not the config file.
	dst.Cache.Enabled = dst.Cache.Enabled || src.Cache.Enabled
	dst.Privacy.RedactSecrets = dst.Privacy.RedactSecrets || src.Privacy.RedactSecrets
}

func mergeEnv(cfg *Config) error {
	overrideString(&cfg.Provider, os.Getenv("CLAUDE_MD_BENCH_PROVIDER"))
	overrideString(&cfg.Model, os.Getenv("CLAUDE_MD_BENCH_MODEL"))
	overrideString(&cfg.Host, os.Getenv("CLAUDE_MD_BENCH_HOST"))
	if v := os.Getenv("CLAUDE_MD_BENCH_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CLAUDE_MD_BENCH_TIMEOUT: %w", err)
		}
		cfg.TimeoutSeconds = n
	}
	overrideString(&cfg.Format, os.Getenv("CLAUDE_MD_BENCH_FORMAT"))
	overrideString(&cfg.OutDir, os.Getenv("CLAUDE_MD_BENCH_OUT_DIR"))
	if v := os.Getenv("CLAUDE_MD_BENCH_NO_CACHE"); v == "1" || v == "true" {
		cfg.Cache.Enabled = false
	}
	return nil
}

// Flag values arrive as strings. The typed flags were already validated by
// the CLI layer, so unparseable numbers here are skipped rather than
// surfaced twice.
func mergeOverrides(cfg *Config, overrides map[string]string) {
	for key, v := range overrides {
		if v == "" {
			continue
		}
		switch key {
		case "provider":
			cfg.Provider = v
		case "model":
			cfg.Model = v
		case "host":
			cfg.Host = v
		case "timeout":
			if n, err := strconv.Atoi(v); err == nil {
				cfg.TimeoutSeconds = n
			}
		case "format":
			cfg.Format = v
		case "outDir":
			cfg.OutDir = v
		case "minScore":
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				cfg.MinScore = f
			}
		case "rubricFile":
			cfg.RubricFile = v
		case "iterations":
			if n, err := strconv.Atoi(v); err == nil {
				cfg.Iterations = n
			}
		case "noCache":
			if v == "true" {
				cfg.Cache.Enabled = false
			}
		}
	}
}

// SetField assigns one field by its config key. Unknown keys are an error.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "host":
		cfg.Host = value
	case "timeout":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeout must be an integer: %w", err)
		}
		cfg.TimeoutSeconds = n
	case "format":
		cfg.Format = value
	case "outDir":
		cfg.OutDir = value
	case "minScore":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("minScore must be a number: %w", err)
		}
		cfg.MinScore = f
	case "rubricFile":
		cfg.RubricFile = value
	case "iterations":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("iterations must be an integer: %w", err)
		}
		cfg.Iterations = n
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}
