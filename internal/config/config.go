package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Store drivers accepted in STORE_DRIVER.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction   bool
	ProdOrigins    []string
	HTTPAddr       string
	TrustedProxies []string

	StoreDriver string
	DataDir     string
	DocumentKey string
	DBDSN       string

	// Location is the zone booking dates and times are read in.
	Location       *time.Location
	PhoneRulesPath string

	RegisterRateLimit float64
	RegisterRateBurst int
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	return FromEnv()
}

// FromEnv builds the configuration from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}

	// Production origins, comma separated (default: empty)
	cfg.ProdOrigins = splitList(getEnv("PROD_ORIGINS", ""))

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Proxies allowed to set X-Forwarded-For, comma separated IPs or CIDRs (default: none)
	cfg.TrustedProxies = splitList(getEnv("TRUSTED_PROXIES", ""))
	for _, p := range cfg.TrustedProxies {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q", p)
			}
		}
	}

	cfg.StoreDriver = getEnv("STORE_DRIVER", DriverFile)
	cfg.DataDir = getEnv("DATA_DIR", "./data")
	cfg.DocumentKey = getEnv("DOCUMENT_KEY", "users")
	if strings.TrimSpace(cfg.DocumentKey) == "" {
		return nil, fmt.Errorf("DOCUMENT_KEY must not be empty")
	}

	switch cfg.StoreDriver {
	case DriverFile, DriverMemory:
	case DriverPostgres:
		// Database DSN is required for the postgres store
		cfg.DBDSN = os.Getenv("DB_DSN")
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required when STORE_DRIVER is %s", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	loc, err := time.LoadLocation(getEnv("BOOKING_TZ", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TZ: %w", err)
	}
	cfg.Location = loc

	cfg.PhoneRulesPath = getEnv("PHONE_RULES_PATH", "")

	// Registration throttle per client IP (default: 1 req/s, burst 5, 0 disables)
	cfg.RegisterRateLimit, err = getEnvAsFloat("REGISTER_RATE_LIMIT", 1)
	if err != nil {
		return nil, fmt.Errorf("invalid REGISTER_RATE_LIMIT: %w", err)
	}
	cfg.RegisterRateBurst, err = getEnvAsInt("REGISTER_RATE_BURST", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid REGISTER_RATE_BURST: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set and non-empty,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		// Return 0 and a wrapped error to provide context
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid number: %w", key, valStr, err)
	}

	return val, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
