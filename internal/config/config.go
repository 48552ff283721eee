package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Config represents the relnotes configuration.
type Config struct {
	Provider         string        `json:"provider"`
	Model            string        `json:"model"`
	SystemPromptFile string        `json:"systemPromptFile"`
	MaxTokens        int           `json:"maxTokens"`
	DiffLineLimit    int           `json:"diffLineLimit"`
	PerPage          int           `json:"perPage"`
	SearchAsYouPage  bool          `json:"searchAsYouPage"`
	Format           string        `json:"format"`
	Cache            CacheConfig   `json:"cache"`
	Privacy          PrivacyConfig `json:"privacy"`
}

// CacheConfig controls caching of generated release notes.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// PrivacyConfig controls redaction of the prompt body.
type PrivacyConfig struct {
	RedactSecrets bool     `json:"redactSecrets"`
	RedactPaths   []string `json:"redactPaths"`
}

// Default returns a Config with all defaults applied. Model is intentionally
// empty: it must be provided by the file, env or flags.
func Default() Config {
	return Config{
		Provider:         "openai",
		SystemPromptFile: filepath.Join("prompts", "system_prompt.md"),
		MaxTokens:        4096,
		DiffLineLimit:    50,
		PerPage:          100,
		Format:           "text",
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
			RedactPaths:   []string{"**/.env", "**/*.pem", "**/*secrets*"},
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for relnotes.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "relnotes"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "relnotes"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "relnotes"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "relnotes"), nil
	default:
		return filepath.Join(home, ".config", "relnotes"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. The second return value is
// false when no file exists.
func LoadFile() (Config, bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, false, nil
		}
		return Config{}, false, fmt.Errorf("reading config file: %w", err)
	}
	// Start from defaults so booleans absent from the file keep their default.
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, true, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, ok, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	if ok {
		cfg = fileCfg
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func mergeEnv(cfg *Config) error {
	if v := os.Getenv("RELNOTES_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("RELNOTES_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("RELNOTES_SYSTEM_PROMPT"); v != "" {
		cfg.SystemPromptFile = v
	}
	if v := os.Getenv("RELNOTES_DIFF_LINE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RELNOTES_DIFF_LINE_LIMIT must be an integer: %w", err)
		}
		cfg.DiffLineLimit = n
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, v := range overrides {
		if v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return err
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "systemPromptFile":
		cfg.SystemPromptFile = value
	case "format":
		switch value {
		case "text", "json", "markdown":
			cfg.Format = value
		default:
			return fmt.Errorf("format must be one of text, json, markdown: got %q", value)
		}
	case "maxTokens":
		return setPositiveInt(&cfg.MaxTokens, key, value)
	case "diffLineLimit":
		return setPositiveInt(&cfg.DiffLineLimit, key, value)
	case "perPage":
		if err := setPositiveInt(&cfg.PerPage, key, value); err != nil {
			return err
		}
		if cfg.PerPage > 100 {
			return fmt.Errorf("perPage must be at most 100, got %d", cfg.PerPage)
		}
	case "searchAsYouPage":
		return setBool(&cfg.SearchAsYouPage, key, value)
	case "cache.enabled":
		return setBool(&cfg.Cache.Enabled, key, value)
	case "cache.dir":
		cfg.Cache.Dir = value
	case "cache.ttlSeconds":
		return setPositiveInt(&cfg.Cache.TTLSeconds, key, value)
	case "privacy.redactSecrets":
		return setBool(&cfg.Privacy.RedactSecrets, key, value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func setPositiveInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", key, n)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s must be true or false: %w", key, err)
	}
	*dst = b
	return nil
}
