package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config is the immutable pipeline configuration. It is built once by Load
// and threaded through construction; no component reads ambient state.
type Config struct {
	Provider           string        `mapstructure:"provider" json:"provider"`
	Model              string        `mapstructure:"model" json:"model"`
	Mode               string        `mapstructure:"mode" json:"mode"`
	Format             string        `mapstructure:"format" json:"format"`
	RulesFile          string        `mapstructure:"rules_file" json:"rulesFile,omitempty"`
	IgnoreFile         string        `mapstructure:"ignore_file" json:"ignoreFile"`
	Patterns           []string      `mapstructure:"patterns" json:"patterns,omitempty"`
	Workers            int           `mapstructure:"workers" json:"workers"`
	FileTimeoutSeconds int           `mapstructure:"file_timeout_seconds" json:"fileTimeoutSeconds"`
	MaxFileBytes       int           `mapstructure:"max_file_bytes" json:"maxFileBytes"`
	WebhookURL         string        `mapstructure:"webhook_url" json:"webhookUrl,omitempty"`
	// StaticTools maps lowercased language tags to a tool command and its
	// arguments, e.g. "python" -> ["flake8"].
	StaticTools map[string][]string `mapstructure:"static_tools" json:"staticTools"`
	Cache       CacheConfig         `mapstructure:"cache" json:"cache"`
	Privacy     PrivacyConfig       `mapstructure:"privacy" json:"privacy"`
}

// CacheConfig controls response caching.
type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled" json:"enabled"`
	Dir        string `mapstructure:"dir" json:"dir,omitempty"`
	TTLSeconds int    `mapstructure:"ttl_seconds" json:"ttlSeconds"`
}

// PrivacyConfig controls redaction before generative review.
type PrivacyConfig struct {
	RedactSecrets bool     `mapstructure:"redact_secrets" json:"redactSecrets"`
	RedactPaths   []string `mapstructure:"redact_paths" json:"redactPaths,omitempty"`
}

// ToolFor returns the static tool command and args for a language tag, or
// ok=false when none is configured.
func (c Config) ToolFor(tag string) (tool string, args []string, ok bool) {
	spec, found := c.StaticTools[strings.ToLower(tag)]
	if !found || len(spec) == 0 {
		return "", nil, false
	}
	return spec[0], spec[1:], true
}

// ConfigDir returns the platform-appropriate config directory.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "loupe"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "loupe"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "loupe"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "loupe"), nil
	default:
		return filepath.Join(home, ".config", "loupe"), nil
	}
}

// ConfigPath returns the default config file location.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "loupe.yaml"), nil
}

// DefaultYAML is the annotated template written by `loupe config init`.
const DefaultYAML = `# loupe configuration
provider: ollama          # ollama, lmstudio, anthropic
model: deepseek-r1:1.5b
mode: generative          # generative, static
format: markdown          # markdown, text, json
ignore_file: .gitignore
workers: 1
file_timeout_seconds: 120
max_file_bytes: 1048576

# Uncomment to post a completion summary:
# webhook_url: https://hooks.slack.com/services/...

static_tools:
  python: [flake8]
  javascript: [eslint]
  typescript: [eslint]
  c: [clang-tidy]
  c++: [clang-tidy]
  java: [clang-tidy]

cache:
  enabled: true
  ttl_seconds: 86400

privacy:
  redact_secrets: true
  redact_paths: ["**/.env", "*secrets*"]
`

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("provider", "ollama")
	v.SetDefault("model", "deepseek-r1:1.5b")
	v.SetDefault("mode", "generative")
	v.SetDefault("format", "markdown")
	v.SetDefault("ignore_file", ".gitignore")
	v.SetDefault("workers", 1)
	v.SetDefault("file_timeout_seconds", 120)
	v.SetDefault("max_file_bytes", 1048576)
	v.SetDefault("static_tools", map[string][]string{
		"python":     {"flake8"},
		"javascript": {"eslint"},
		"typescript": {"eslint"},
		"c":          {"clang-tidy"},
		"c++":        {"clang-tidy"},
		"java":       {"clang-tidy"},
	})
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl_seconds", 86400)
	v.SetDefault("privacy.redact_secrets", true)
	v.SetDefault("privacy.redact_paths", []string{"**/.env", "*secrets*"})

	v.SetEnvPrefix("LOUPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load builds the effective config by merging defaults <- config file <-
// LOUPE_* environment <- CLI overrides. The overrides map holds only
// non-zero flag values.
func Load(configFile string, overrides map[string]string) (Config, error) {
	v := newViper()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("loupe")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		// A missing config file is fine; defaults and env still apply.
		_ = v.ReadInConfig()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if err := applyOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyOverrides(cfg *Config, overrides map[string]string) error {
	for key, value := range overrides {
		if value == "" {
			continue
		}
		switch key {
		case "provider":
			cfg.Provider = value
		case "model":
			cfg.Model = value
		case "mode":
			cfg.Mode = value
		case "format":
			cfg.Format = value
		case "rulesFile":
			cfg.RulesFile = value
		case "ignoreFile":
			cfg.IgnoreFile = value
		case "webhookURL":
			cfg.WebhookURL = value
		case "workers":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("workers must be an integer: %w", err)
			}
			cfg.Workers = n
		case "fileTimeoutSeconds":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("file timeout must be an integer: %w", err)
			}
			cfg.FileTimeoutSeconds = n
		case "maxFileBytes":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("max file bytes must be an integer: %w", err)
			}
			cfg.MaxFileBytes = n
		case "noCache":
			cfg.Cache.Enabled = false
		case "noRedact":
			cfg.Privacy.RedactSecrets = false
		default:
			return fmt.Errorf("unknown config override: %s", key)
		}
	}
	return nil
}

// Validate checks the merged config for values no pipeline can run with.
func (c Config) Validate() error {
	switch c.Mode {
	case "generative", "static":
	default:
		return fmt.Errorf("invalid mode %q (generative, static)", c.Mode)
	}
	switch c.Format {
	case "markdown", "text", "json":
	default:
		return fmt.Errorf("invalid format %q (markdown, text, json)", c.Format)
	}
	switch c.Provider {
	case "ollama", "lmstudio", "anthropic":
	default:
		return fmt.Errorf("invalid provider %q (ollama, lmstudio, anthropic)", c.Provider)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.FileTimeoutSeconds < 0 {
		return fmt.Errorf("file timeout must not be negative")
	}
	return nil
}
