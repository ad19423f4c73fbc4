// Package config loads application configuration and initializes logging.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Catalog   CatalogConfig   `yaml:"catalog" mapstructure:"catalog"`
	Generator GeneratorConfig `yaml:"generator" mapstructure:"generator"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Merge     MergeConfig     `yaml:"merge" mapstructure:"merge"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// CatalogConfig locates the static framework/question document.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// GeneratorConfig selects and configures the text-generation provider.
type GeneratorConfig struct {
	// Provider is "completion" (OpenAI-style chat completions endpoint)
	// or "anthropic".
	Provider       string  `yaml:"provider" mapstructure:"provider"`
	Key            string  `yaml:"key" mapstructure:"key"`
	BaseURL        string  `yaml:"base_url" mapstructure:"base_url"`
	Model          string  `yaml:"model" mapstructure:"model"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
}

// AnthropicConfig holds Anthropic API settings for the alternate provider.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// MergeConfig tunes the merge orchestrator.
type MergeConfig struct {
	Workers         int     `yaml:"workers" mapstructure:"workers"`
	CallTimeoutSecs int     `yaml:"call_timeout_secs" mapstructure:"call_timeout_secs"`
	Temperature     float64 `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens       int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	TopP            float64 `yaml:"top_p" mapstructure:"top_p"`
	CacheSize       int     `yaml:"cache_size" mapstructure:"cache_size"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ESGMERGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("catalog.path", "frameworks.json")
	v.SetDefault("generator.provider", "completion")
	v.SetDefault("generator.base_url", "https://api.perplexity.ai")
	v.SetDefault("generator.model", "sonar-pro")
	v.SetDefault("generator.requests_per_sec", 5)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("merge.workers", 5)
	v.SetDefault("merge.call_timeout_secs", 5)
	v.SetDefault("merge.temperature", 0.7)
	v.SetDefault("merge.max_tokens", 150)
	v.SetDefault("merge.cache_size", 100)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
