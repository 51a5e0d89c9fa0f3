package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultOperatorEmail is the only address allowed to log in as operator
// unless OPERATOR_EMAIL overrides it.
const DefaultOperatorEmail = "admin@naturalfarm.com"

// Config is loaded once at startup and never mutated afterwards.
type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	OperatorEmail string
	PublicBaseURL string
	StorageDir    string
	LogLevel      string

	// StrictOrderTransitions enables the transition table; otherwise any
	// status may follow any other.
	StrictOrderTransitions bool
	// RestrictInvoiceAccess limits invoices to parties of the order.
	RestrictInvoiceAccess bool
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// a missing .env is fine in containers
	_ = godotenv.Load()

	cfg := Config{
		Port:                   getenv("APP_PORT", "8080"),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		OperatorEmail:          getenv("OPERATOR_EMAIL", DefaultOperatorEmail),
		PublicBaseURL:          strings.TrimRight(getenv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		StorageDir:             getenv("STORAGE_DIR", "./data"),
		LogLevel:               getenv("LOG_LEVEL", "info"),
		StrictOrderTransitions: getbool("STRICT_ORDER_TRANSITIONS"),
		RestrictInvoiceAccess:  getbool("RESTRICT_INVOICE_ACCESS"),
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getbool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
