package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Togather-Foundation/topicdir/internal/secrets"
)

// DefaultAllowedOrigins is the CORS allow-list used when CORS_ALLOWED_ORIGINS is unset.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"https://cloe-frontend.vercel.app",
}

type Config struct {
	Server      ServerConfig
	Auth        AuthConfig
	CORS        CORSConfig
	Logging     LoggingConfig
	Tracing     TracingConfig
	Environment string `validate:"oneof=development test staging production"`
}

type ServerConfig struct {
	Host string
	Port int `validate:"min=1,max=65535"`
}

type AuthConfig struct {
	// APIKey is the shared secret every authenticated request must present.
	APIKey string `validate:"required"`
	// Header is the request header carrying the credential.
	Header     string `validate:"required"`
	SecretsDir string
}

type CORSConfig struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

type LoggingConfig struct {
	Level  string
	Format string `validate:"oneof=json console"`
}

type TracingConfig struct {
	Enabled      bool
	Exporter     string `validate:"oneof=stdout otlp none"`
	ServiceName  string `validate:"required"`
	OTLPEndpoint string
	SampleRate   float64 `validate:"gte=0,lte=1"`
}

// ErrAPIKeyRequired is returned when no API key is configured anywhere.
var ErrAPIKeyRequired = errors.New("API_KEY is required")

// lookupFunc resolves a configuration key, returning "" when unset.
type lookupFunc func(key string) string

// LoadDotEnv loads variables from .env files into the process environment
// without overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Load builds the configuration from environment variables.
func Load() (Config, error) {
	return load(os.Getenv)
}

// LoadFile builds the configuration from a YAML (or any viper-supported) file
// whose keys are the lowercase environment variable names. Environment
// variables take precedence over file values.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	return load(func(key string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		return v.GetString(strings.ToLower(key))
	})
}

func load(lookup lookupFunc) (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: getEnv(lookup, "SERVER_HOST", "0.0.0.0"),
			Port: getEnvInt(lookup, "SERVER_PORT", 8000),
		},
		Auth: AuthConfig{
			APIKey:     getEnv(lookup, "API_KEY", ""),
			Header:     getEnv(lookup, "API_KEY_HEADER", "X-API-Key"),
			SecretsDir: getEnv(lookup, "SECRETS_DIR", ".secrets"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList(lookup, "CORS_ALLOWED_ORIGINS", DefaultAllowedOrigins),
		},
		Logging: LoggingConfig{
			Level:  getEnv(lookup, "LOG_LEVEL", "info"),
			Format: getEnv(lookup, "LOG_FORMAT", "json"),
		},
		Tracing: TracingConfig{
			Enabled:      getEnvBool(lookup, "TRACING_ENABLED", false),
			Exporter:     getEnv(lookup, "TRACING_EXPORTER", "stdout"),
			ServiceName:  getEnv(lookup, "TRACING_SERVICE_NAME", "topic-directory"),
			OTLPEndpoint: getEnv(lookup, "OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			SampleRate:   getEnvFloat(lookup, "TRACING_SAMPLE_RATE", 1.0),
		},
		Environment: getEnv(lookup, "ENVIRONMENT", "development"),
	}

	if cfg.Auth.APIKey == "" {
		stored, err := secrets.Load(cfg.Auth.SecretsDir)
		if err != nil {
			return Config{}, err
		}
		cfg.Auth.APIKey = stored[secrets.APIKey]
	}
	if cfg.Auth.APIKey == "" {
		return Config{}, fmt.Errorf("%w (set it or write %s/%s)", ErrAPIKeyRequired, cfg.Auth.SecretsDir, secrets.APIKey)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func getEnv(lookup lookupFunc, key, fallback string) string {
	if value := lookup(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(lookup lookupFunc, key string, fallback int) int {
	value := lookup(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(lookup lookupFunc, key string, fallback bool) bool {
	value := lookup(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(lookup lookupFunc, key string, fallback float64) float64 {
	value := lookup(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(lookup lookupFunc, key string, fallback []string) []string {
	value := lookup(key)
	if value == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
