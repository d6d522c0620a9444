// Package config loads the application configuration from environment
// variables.
//
// Environment Variables:
//
// HTTP:
//   - HTTP_ADDR: listen address (default: :8080)
//
// LLM:
//   - LLM_API_KEY: API key for the LLM provider (required)
//   - LLM_API_URL: API endpoint URL (default: https://api.openai.com/v1)
//   - LLM_MODEL: model name (default: gpt-4o)
//   - LLM_MAX_TOKENS: maximum tokens for responses (default: 1000)
//   - LLM_TEMPERATURE: sampling temperature (default: 0.7)
//   - LLM_TIMEOUT: request timeout in seconds (default: 30)
//   - LLM_SITE_URL: site URL for the HTTP referer header (optional)
//   - LLM_APP_NAME: application name for the X-Title header (optional)
//
// Store:
//   - STORE_DRIVER: memory or sqlite (default: memory)
//   - STORE_SQLITE_PATH: sqlite file path (default: data/platform.db)
//   - STORE_SEED: seed the demo catalog on startup (default: true)
//
// Translate:
//   - TRANSLATE_BACKEND: llm or static (default: llm)
//   - TRANSLATE_CACHE_TTL_DAYS: cache entry lifetime (default: 30)
//   - TRANSLATE_CACHE_MAX: cache trim threshold (default: 1000)
//   - TRANSLATE_CACHE_TRIM_TO: entries kept after a trim (default: 500)
//
// Maintenance:
//   - MAINT_CACHE_SWEEP_CRON: cache eviction schedule (default: 0 * * * *)
//   - MAINT_WEEKLY_RESET_CRON: weekly hours reset schedule (default: 0 0 * * 1)
package config

import (
	"fmt"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
)

const (
	StoreDriverMemory = "memory"
	StoreDriverSQLite = "sqlite"

	TranslateBackendLLM    = "llm"
	TranslateBackendStatic = "static"
)

type Config struct {
	HTTP      HTTPConfig      `json:"http"`
	LLM       LLMConfig       `json:"llm"`
	Store     StoreConfig     `json:"store"`
	Translate TranslateConfig `json:"translate"`
	Maint     MaintConfig     `json:"maintenance"`
}

type HTTPConfig struct {
	Addr string `json:"addr"`
}

// LLMConfig holds the configuration for the LLM client. Any
// OpenAI-compatible provider works.
type LLMConfig struct {
	APIKey      string  `json:"api_key"`
	APIURL      string  `json:"api_url"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Timeout     int     `json:"timeout"`
	SiteURL     string  `json:"site_url"`
	AppName     string  `json:"app_name"`
}

type StoreConfig struct {
	Driver     string `json:"driver"`
	SQLitePath string `json:"sqlite_path"`
	Seed       bool   `json:"seed"`
}

type TranslateConfig struct {
	Backend      string `json:"backend"`
	CacheTTLDays int    `json:"cache_ttl_days"`
	CacheMax     int    `json:"cache_max"`
	CacheTrimTo  int    `json:"cache_trim_to"`
}

type MaintConfig struct {
	CacheSweepCron  string `json:"cache_sweep_cron"`
	WeeklyResetCron string `json:"weekly_reset_cron"`
}

// Option is a function type for adjusting Config after the environment load.
type Option func(*Config)

// NewFromEnv creates a Config from environment variables and options.
func NewFromEnv(opts ...Option) (*Config, error) {
	config := &Config{
		HTTP: HTTPConfig{
			Addr: getEnvString("HTTP_ADDR", ":8080"),
		},
		LLM: LLMConfig{
			APIKey:      getEnvString("LLM_API_KEY", ""),
			APIURL:      getEnvString("LLM_API_URL", "https://api.openai.com/v1"),
			Model:       getEnvString("LLM_MODEL", "gpt-4o"),
			MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 1000),
			Temperature: getEnvFloat("LLM_TEMPERATURE", 0.7),
			Timeout:     getEnvInt("LLM_TIMEOUT", 30),
			SiteURL:     getEnvString("LLM_SITE_URL", ""),
			AppName:     getEnvString("LLM_APP_NAME", ""),
		},
		Store: StoreConfig{
			Driver:     getEnvString("STORE_DRIVER", StoreDriverMemory),
			SQLitePath: getEnvString("STORE_SQLITE_PATH", "data/platform.db"),
			Seed:       getEnvBool("STORE_SEED", true),
		},
		Translate: TranslateConfig{
			Backend:      getEnvString("TRANSLATE_BACKEND", TranslateBackendLLM),
			CacheTTLDays: getEnvInt("TRANSLATE_CACHE_TTL_DAYS", 30),
			CacheMax:     getEnvInt("TRANSLATE_CACHE_MAX", 1000),
			CacheTrimTo:  getEnvInt("TRANSLATE_CACHE_TRIM_TO", 500),
		},
		Maint: MaintConfig{
			CacheSweepCron:  getEnvString("MAINT_CACHE_SWEEP_CRON", "0 * * * *"),
			WeeklyResetCron: getEnvString("MAINT_WEEKLY_RESET_CRON", "0 0 * * 1"),
		},
	}

	for _, opt := range opts {
		opt(config)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks if all required configuration is properly set
func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverSQLite:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverMemory, StoreDriverSQLite, c.Store.Driver)
	}
	switch c.Translate.Backend {
	case TranslateBackendLLM, TranslateBackendStatic:
	default:
		return fmt.Errorf("TRANSLATE_BACKEND must be %q or %q, got %q", TranslateBackendLLM, TranslateBackendStatic, c.Translate.Backend)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required")
	}
	return nil
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat gets a float value from environment variables with default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvBool gets a boolean value from environment variables with default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
