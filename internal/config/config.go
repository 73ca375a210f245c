package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const ModeProduction = "production"

// DashboardConfig holds settings for the dashboard binary.
type DashboardConfig struct {
	Mode        string        // deployment mode from NODE
	Addr        string        // listen address for the dashboard page
	BackendURL  string        // base URL of the users API, chosen by Mode
	HTTPTimeout time.Duration // overall timeout of one users API call
}

func (c DashboardConfig) IsProduction() bool { return c.Mode == ModeProduction }

// ServerConfig holds settings for the users API binary.
type ServerConfig struct {
	Port               string
	StoreDriver        string // "postgres" or "sqlite"
	DatabaseURL        string
	SQLitePath         string
	CORSAllowedOrigins []string
}

// LoadEnvFile loads .env if present. A missing file is not an error.
func LoadEnvFile() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] could not load .env file: %v", err)
	}
}

// LoadDashboard reads the dashboard settings. NODE=production selects
// PROD_BACKEND_URL, anything else selects DEV_BACKEND_URL.
func LoadDashboard() (*DashboardConfig, error) {
	timeout, err := getEnvDuration("HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg := &DashboardConfig{
		Mode:        getEnv("NODE", "development"),
		Addr:        getEnv("DASHBOARD_ADDR", ":5173"),
		HTTPTimeout: timeout,
	}
	cfg.BackendURL = BackendURLFor(cfg.Mode)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BackendURLFor picks the users API base URL for a deployment mode.
func BackendURLFor(mode string) string {
	if mode == ModeProduction {
		return getEnv("PROD_BACKEND_URL", "")
	}
	return getEnv("DEV_BACKEND_URL", "http://localhost:8080")
}

func (c *DashboardConfig) Validate() error {
	if c.BackendURL == "" {
		if c.IsProduction() {
			return fmt.Errorf("PROD_BACKEND_URL environment variable is not set; required when NODE=production")
		}
		return fmt.Errorf("DEV_BACKEND_URL is empty")
	}
	if !strings.HasPrefix(c.BackendURL, "http://") && !strings.HasPrefix(c.BackendURL, "https://") {
		return fmt.Errorf("backend url %q must start with http:// or https://", c.BackendURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *DashboardConfig) String() string {
	return fmt.Sprintf("Dashboard{mode: %s, addr: %s, backend: %s, timeout: %s}", c.Mode, c.Addr, c.BackendURL, c.HTTPTimeout)
}

// LoadServer reads the users API settings.
func LoadServer() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Port:               getEnv("PORT", "8080"),
		StoreDriver:        getEnv("STORE_DRIVER", "postgres"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		SQLitePath:         getEnv("SQLITE_PATH", "users.db"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
	switch cfg.StoreDriver {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL required when STORE_DRIVER=postgres")
		}
	case "sqlite":
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want postgres or sqlite)", cfg.StoreDriver)
	}
	return cfg, nil
}

// String masks the database URL.
func (c *ServerConfig) String() string {
	db := c.SQLitePath
	if c.StoreDriver == "postgres" {
		db = "*** (masked) ***"
	}
	return fmt.Sprintf("Server{port: %s, store: %s, db: %s, cors: %v}", c.Port, c.StoreDriver, db, c.CORSAllowedOrigins)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
