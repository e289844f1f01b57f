// Package config reads the payview configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	APIURL      string // base URL of the PayClone REST API
	Token       string // bearer token, overrides the session file
	UserID      int64  // viewing user, overrides the session file
	SessionFile string
	Currency    string
	Timezone    string // IANA name or "Local"
	Port        int
	LogLevel    string
	LogPretty   bool
	GeminiModel string
}

// Load reads configuration from environment variables, after loading the
// given .env files (".env" when none) if they exist.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// Load .env file if it exists
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("cannot load %s: %w", f, err)
		}
	}

	cfg := &Config{
		APIURL:      getEnv("PAYVIEW_API_URL", "http://localhost:8080/api"),
		Token:       getEnv("PAYVIEW_TOKEN", ""),
		UserID:      getEnvAsInt64("PAYVIEW_USER_ID", 0),
		SessionFile: getEnv("PAYVIEW_SESSION_FILE", defaultSessionFile()),
		Currency:    strings.ToUpper(getEnv("PAYVIEW_CURRENCY", "INR")),
		Timezone:    getEnv("PAYVIEW_TIMEZONE", "Local"),
		Port:        getEnvAsInt("PAYVIEW_PORT", 8090),
		LogLevel:    getEnv("PAYVIEW_LOG_LEVEL", "info"),
		LogPretty:   getEnvAsBool("PAYVIEW_LOG_PRETTY", false),
		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("PAYVIEW_API_URL %q must be an http(s) URL", c.APIURL)
	}
	if c.UserID < 0 {
		return fmt.Errorf("PAYVIEW_USER_ID %d must be positive", c.UserID)
	}
	if len(c.Currency) != 3 {
		return fmt.Errorf("PAYVIEW_CURRENCY %q must be an ISO 4217 code", c.Currency)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PAYVIEW_PORT %d is out of range", c.Port)
	}
	return nil
}

// Location returns the time zone calendar days are computed in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("PAYVIEW_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Addr returns the listen address of the server.
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".payview-session.json"
	}
	return dir + string(os.PathSeparator) + "payview" + string(os.PathSeparator) + "session.json"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
