package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/noah-isme/minimart-pos/internal/common"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv         string
	ProductsPath   string
	PromotionsPath string
	LogFormat      string
	LogLevel       string
	MemberBps      int
	MemberCap      int64
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:         valueOrDefault(k.String("APP_ENV"), "development"),
		ProductsPath:   valueOrDefault(k.String("PRODUCTS_PATH"), "public/products.md"),
		PromotionsPath: valueOrDefault(k.String("PROMOTIONS_PATH"), "public/promotions.md"),
		LogFormat:      valueOrDefault(k.String("OBS_LOG_FORMAT"), "console"),
		LogLevel:       valueOrDefault(k.String("OBS_LOG_LEVEL"), "info"),
		MemberBps:      common.AtoiDefault(k.String("MEMBERSHIP_RATE_BPS"), 3000),
		MemberCap:      common.Int64Default(k.String("MEMBERSHIP_CAP"), 8000),
	}

	if cfg.MemberBps < 0 || cfg.MemberBps > 10000 {
		return nil, fmt.Errorf("MEMBERSHIP_RATE_BPS out of range: %d", cfg.MemberBps)
	}
	if cfg.MemberCap < 0 {
		return nil, fmt.Errorf("MEMBERSHIP_CAP must be non-negative: %d", cfg.MemberCap)
	}

	return cfg, nil
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
