package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers for the persisted visitor storage.
const (
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

// Config holds everything the storefront needs at startup.
type Config struct {
	Port string

	// --- Upstream shop API ---
	APIBaseURL string
	APITimeout time.Duration

	// --- Visitor storage ---
	StorageDriver string
	DSN           string
	SessionTTL    time.Duration

	// --- Visitor cookie ---
	VisitorSecret string
	VisitorCookie string
	VisitorTTL    time.Duration
	SecureCookie  bool // COOKIE_SECURE=true, for HTTPS deployments

	AllowedOrigins []string

	// --- Shop display settings ---
	Currency    string
	ShippingFee float64
}

// Load reads the .env file (if any) and the process environment.
// All missing required values are reported together.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function. Load uses os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	var errs []error

	cfg := Config{
		Port:          orDefault(getenv("PORT"), "8080"),
		APIBaseURL:    strings.TrimRight(getenv("API_BASE_URL"), "/"),
		StorageDriver: orDefault(getenv("STORAGE_DRIVER"), DriverMySQL),
		DSN:           getenv("DB_DSN_PRIMARY"),
		VisitorSecret: getenv("VISITOR_SECRET"),
		VisitorCookie: orDefault(getenv("VISITOR_COOKIE"), "tts_visitor"),
		SecureCookie:  getenv("COOKIE_SECURE") == "true",
		Currency:      orDefault(getenv("SHOP_CURRENCY"), "EGP"),
	}

	cfg.APITimeout = duration(getenv, "API_TIMEOUT", 15*time.Second, &errs)
	cfg.SessionTTL = duration(getenv, "SESSION_TTL", 30*time.Minute, &errs)
	cfg.VisitorTTL = duration(getenv, "VISITOR_TTL", 720*time.Hour, &errs)

	cfg.ShippingFee = 50
	if raw := getenv("SHIPPING_FEE"); raw != "" {
		fee, err := strconv.ParseFloat(raw, 64)
		if err != nil || fee < 0 {
			errs = append(errs, fmt.Errorf("SHIPPING_FEE: invalid amount %q", raw))
		} else {
			cfg.ShippingFee = fee
		}
	}

	for _, origin := range strings.Split(orDefault(getenv("ALLOWED_ORIGINS"), "http://localhost:5173"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if cfg.APIBaseURL == "" {
		errs = append(errs, errors.New("API_BASE_URL is required"))
	}
	if cfg.VisitorSecret == "" {
		errs = append(errs, errors.New("VISITOR_SECRET is required"))
	}
	switch cfg.StorageDriver {
	case DriverMySQL:
		if cfg.DSN == "" {
			errs = append(errs, errors.New("DB_DSN_PRIMARY is required for the mysql storage driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER: unknown driver %q", cfg.StorageDriver))
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func duration(getenv func(string) string, key string, def time.Duration, errs *[]error) time.Duration {
	raw := getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		return def
	}
	return d
}
