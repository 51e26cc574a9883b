// Package config loads runtime options from flags, TRADUTOR_* environment
// variables and an optional tradutor.yaml file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nguyenvanduocit/tradutor/pkg/translator"
)

const (
	KeyPort           = "port"
	KeyProvider       = "provider"
	KeyModel          = "model"
	KeyBaseURL        = "base_url"
	KeyAPIKey         = "api_key"
	KeyRateLimit      = "rate_limit"
	KeyCacheTTL       = "cache_ttl"
	KeyRequestTimeout = "request_timeout"
	KeyLogLevel       = "log_level"
)

type Config struct {
	Port     string
	LogLevel slog.Level
	// APIKey seeds the session credential. It is never written anywhere.
	APIKey     string
	Translator translator.Config
}

// New returns a viper instance with defaults, environment bindings and the
// config file search path set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyPort, "3000")
	v.SetDefault(KeyProvider, translator.ProviderGroq)
	v.SetDefault(KeyModel, "")
	v.SetDefault(KeyBaseURL, "")
	v.SetDefault(KeyRateLimit, 0)
	v.SetDefault(KeyCacheTTL, time.Duration(0))
	v.SetDefault(KeyRequestTimeout, time.Duration(0))
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix("tradutor")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("tradutor")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "tradutor"))
	}

	return v
}

// Load reads the optional config file and decodes v.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}

	provider := strings.ToLower(v.GetString(KeyProvider))
	if provider != translator.ProviderGroq && provider != translator.ProviderAnthropic {
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}

	rateLimit := v.GetInt(KeyRateLimit)
	if rateLimit < 0 {
		return nil, fmt.Errorf("%s must not be negative", KeyRateLimit)
	}

	return &Config{
		Port:     v.GetString(KeyPort),
		LogLevel: level,
		APIKey:   apiKey(v, provider),
		Translator: translator.Config{
			Provider:       provider,
			Model:          v.GetString(KeyModel),
			BaseURL:        v.GetString(KeyBaseURL),
			RequestTimeout: v.GetDuration(KeyRequestTimeout),
			RateLimit:      rateLimit,
			CacheTTL:       v.GetDuration(KeyCacheTTL),
		},
	}, nil
}

// apiKey falls back to the provider's conventional environment variable.
func apiKey(v *viper.Viper, provider string) string {
	if key := v.GetString(KeyAPIKey); key != "" {
		return key
	}
	switch provider {
	case translator.ProviderAnthropic:
		return os.Getenv("ANTHROPIC_KEY")
	default:
		return os.Getenv("GROQ_API_KEY")
	}
}
