// Package config loads chat-transcripts settings from a YAML file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/chat-transcripts/internal"
	"github.com/iksnae/chat-transcripts/internal/export"
	"github.com/iksnae/chat-transcripts/internal/title"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable, e.g. CHAT_TRANSCRIPTS_OUTPUT_DIR
const EnvPrefix = "CHAT_TRANSCRIPTS"

const (
	KeyOutputDir       = "output_dir"
	KeySource          = "source"
	KeyFormat          = "format"
	KeyLimit           = "limit"
	KeyTitleModel      = "title_model"
	KeyNoAITitle       = "no_ai_title"
	KeyGeminiDir       = "gemini_dir"
	KeyClaudeDir       = "claude_dir"
	KeyGoogleAPIKey    = "google_api_key"
	KeyAnthropicAPIKey = "anthropic_api_key"
	KeyOpenAIAPIKey    = "openai_api_key"
	KeyOpenAIBaseURL   = "openai_base_url"
	KeyOllamaHost      = "ollama_host"
)

// flagKeys maps command-line flag names to config keys
var flagKeys = map[string]string{
	"output-dir":  KeyOutputDir,
	"source":      KeySource,
	"format":      KeyFormat,
	"limit":       KeyLimit,
	"model":       KeyTitleModel,
	"no-ai-title": KeyNoAITitle,
	"gemini-dir":  KeyGeminiDir,
	"claude-dir":  KeyClaudeDir,
}

// providerEnv lists the conventional variables each provider key is also read from
var providerEnv = map[string][]string{
	KeyGoogleAPIKey:    {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	KeyAnthropicAPIKey: {"ANTHROPIC_API_KEY"},
	KeyOpenAIAPIKey:    {"OPENAI_API_KEY"},
	KeyOpenAIBaseURL:   {"OPENAI_BASE_URL"},
	KeyOllamaHost:      {"OLLAMA_HOST"},
}

// Config is the effective configuration
type Config struct {
	OutputDir       string `mapstructure:"output_dir" yaml:"output_dir"`
	Source          string `mapstructure:"source" yaml:"source"`
	Format          string `mapstructure:"format" yaml:"format"`
	Limit           int    `mapstructure:"limit" yaml:"limit"`
	TitleModel      string `mapstructure:"title_model" yaml:"title_model"`
	NoAITitle       bool   `mapstructure:"no_ai_title" yaml:"no_ai_title"`
	GeminiDir       string `mapstructure:"gemini_dir" yaml:"gemini_dir,omitempty"`
	ClaudeDir       string `mapstructure:"claude_dir" yaml:"claude_dir,omitempty"`
	GoogleAPIKey    string `mapstructure:"google_api_key" yaml:"google_api_key,omitempty"`
	AnthropicAPIKey string `mapstructure:"anthropic_api_key" yaml:"anthropic_api_key,omitempty"`
	OpenAIAPIKey    string `mapstructure:"openai_api_key" yaml:"openai_api_key,omitempty"`
	OpenAIBaseURL   string `mapstructure:"openai_base_url" yaml:"openai_base_url,omitempty"`
	OllamaHost      string `mapstructure:"ollama_host" yaml:"ollama_host,omitempty"`

	// Path is the config file that was read, if any
	Path string `mapstructure:"-" yaml:"-"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		OutputDir:  "transcripts",
		Source:     string(internal.FilterAll),
		Format:     export.DefaultFormat,
		Limit:      internal.DefaultListLimit,
		TitleModel: title.DefaultModel,
	}
}

// DefaultPath returns ~/.config/chat-transcripts/config.yaml, honoring
// XDG_CONFIG_HOME when set
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "chat-transcripts", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "chat-transcripts", "config.yaml"), nil
}

// Loader assembles a Config from its sources
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a Loader with defaults and environment bindings in place
func NewLoader() *Loader {
	v := viper.New()

	def := Default()
	v.SetDefault(KeyOutputDir, def.OutputDir)
	v.SetDefault(KeySource, def.Source)
	v.SetDefault(KeyFormat, def.Format)
	v.SetDefault(KeyLimit, def.Limit)
	v.SetDefault(KeyTitleModel, def.TitleModel)
	v.SetDefault(KeyNoAITitle, def.NoAITitle)
	for _, key := range []string{KeyGeminiDir, KeyClaudeDir, KeyGoogleAPIKey, KeyAnthropicAPIKey, KeyOpenAIAPIKey, KeyOpenAIBaseURL, KeyOllamaHost} {
		v.SetDefault(key, "")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, names := range providerEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(key)
		_ = v.BindEnv(append([]string{key, prefixed}, names...)...)
	}

	return &Loader{v: v}
}

// BindFlags binds every known flag present in flags; flags that were set
// on the command line override file and environment values
func (l *Loader) BindFlags(flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := l.v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// Load reads path (or the default path when empty) and returns the merged
// configuration. A missing default file is not an error; a missing explicit
// file is.
func (l *Loader) Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if _, err := os.Stat(path); err == nil {
		l.v.SetConfigFile(path)
		l.v.SetConfigType("yaml")
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		cfg.Path = path
	} else if explicit || !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no command can work with
func (c *Config) Validate() error {
	if _, err := internal.ParseSourceFilter(c.Source); err != nil {
		return err
	}
	if _, err := export.NewExporter(c.Format); err != nil {
		return err
	}
	if c.Limit < 1 {
		return fmt.Errorf("limit must be at least 1, got %d", c.Limit)
	}
	if c.OutputDir == "" {
		return errors.New("output_dir must not be empty")
	}
	return nil
}

// SourceFilter returns the parsed source filter
func (c *Config) SourceFilter() internal.SourceFilter {
	filter, err := internal.ParseSourceFilter(c.Source)
	if err != nil {
		return internal.FilterAll
	}
	return filter
}

// TranscriptPaths returns the Gemini and Claude roots, applying overrides
func (c *Config) TranscriptPaths() (internal.TranscriptPaths, error) {
	return internal.GetTranscriptPaths(c.GeminiDir, c.ClaudeDir)
}

// Providers returns the title model credentials
func (c *Config) Providers() title.ProviderConfig {
	return title.ProviderConfig{
		GoogleAPIKey:    c.GoogleAPIKey,
		AnthropicAPIKey: c.AnthropicAPIKey,
		OpenAIAPIKey:    c.OpenAIAPIKey,
		OpenAIBaseURL:   c.OpenAIBaseURL,
		OllamaHost:      c.OllamaHost,
	}
}

// Redacted returns a copy safe to print, with API keys masked
func (c *Config) Redacted() *Config {
	out := *c
	out.GoogleAPIKey = mask(c.GoogleAPIKey)
	out.AnthropicAPIKey = mask(c.AnthropicAPIKey)
	out.OpenAIAPIKey = mask(c.OpenAIAPIKey)
	return &out
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "****" + secret[len(secret)-4:]
}

// YAML renders the configuration as YAML
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteDefault writes the default configuration to path, creating parent
// directories. An existing file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	data, err := Default().YAML()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	header := "# chat-transcripts configuration\n" +
		"# API keys may also come from GEMINI_API_KEY, ANTHROPIC_API_KEY or OPENAI_API_KEY.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
