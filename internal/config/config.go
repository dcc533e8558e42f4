package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage drivers understood by the server.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Password hashing modes.
const (
	HashingBcrypt    = "bcrypt"
	HashingPlaintext = "plaintext"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Env               string
	Port              string
	StorageDriver     string
	DatabaseURL       string
	JWTSecret         string
	JWTIssuer         string
	JWTTTL            time.Duration
	CORSOrigins       []string
	PasswordHashing   string
	Location          *time.Location
	StoreTimeout      time.Duration
	AdminAuthRequired bool
	AdminEmail        string
	AdminPassword     string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Env:               fallback(os.Getenv("ENV"), "development"),
		Port:              fallback(os.Getenv("PORT"), "3000"),
		StorageDriver:     strings.ToLower(fallback(os.Getenv("STORAGE_DRIVER"), DriverPostgres)),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:         strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:         fallback(os.Getenv("JWT_ISSUER"), "attendance-api"),
		JWTTTL:            minutes(os.Getenv("JWT_TTL_MINUTES"), 60),
		CORSOrigins:       parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		PasswordHashing:   strings.ToLower(fallback(os.Getenv("PASSWORD_HASHING"), HashingBcrypt)),
		StoreTimeout:      seconds(os.Getenv("STORE_TIMEOUT_SECONDS"), 5),
		AdminAuthRequired: parseBool(os.Getenv("ADMIN_AUTH_REQUIRED")),
		AdminEmail:        strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
	}

	loc, err := time.LoadLocation(fallback(os.Getenv("ATTENDANCE_TZ"), "Local"))
	if err != nil {
		return Config{}, fmt.Errorf("ATTENDANCE_TZ: %w", err)
	}
	cfg.Location = loc

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = databaseURLFromParts()
	}

	switch cfg.StorageDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL (or DB_HOST/DB_NAME) is required")
		}
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	switch cfg.PasswordHashing {
	case HashingBcrypt, HashingPlaintext:
	default:
		return Config{}, fmt.Errorf("unsupported PASSWORD_HASHING %q", cfg.PasswordHashing)
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return Config{}, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// databaseURLFromParts assembles a postgres URL from the discrete DB_* variables.
func databaseURLFromParts() string {
	host := strings.TrimSpace(os.Getenv("DB_HOST"))
	name := strings.TrimSpace(os.Getenv("DB_NAME"))
	if host == "" || name == "" {
		return ""
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%s", host, fallback(os.Getenv("DB_PORT"), "5432")),
		Path:   "/" + name,
	}
	if user := strings.TrimSpace(os.Getenv("DB_USER")); user != "" {
		if pw := os.Getenv("DB_PASSWORD"); pw != "" {
			u.User = url.UserPassword(user, pw)
		} else {
			u.User = url.User(user)
		}
	}
	q := url.Values{}
	q.Set("sslmode", fallback(os.Getenv("DB_SSLMODE"), "require"))
	u.RawQuery = q.Encode()
	return u.String()
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func minutes(value string, def int) time.Duration {
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
		return time.Duration(n) * time.Minute
	}
	return time.Duration(def) * time.Minute
}

func seconds(value string, def int) time.Duration {
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return time.Duration(def) * time.Second
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && b
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
