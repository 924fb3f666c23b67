package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses the connection pool lifetime
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  The admin credential is shared by all
// operators: AdminSecretHash (bcrypt) is preferred, AdminSecret is the
// plain fallback compared in constant time.  At least one must be set.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	DBUser          string // database username
	DBPass          string // database password (optional)
	DBHost          string // database host address
	DBPort          string // database port number
	DBName          string // database name
	JWTSecret       string // secret used to sign admin JWTs
	AccessTTLMin    int    // admin token time-to-live in minutes
	AdminSecretHash string // bcrypt hash of the shared admin secret
	AdminSecret     string // plain shared admin secret (fallback)

	DBMaxOpenConns int           // connection pool ceiling
	DBMaxIdleConns int           // idle connections kept warm
	DBConnLifetime time.Duration // max lifetime of a pooled connection
}

// Load reads configuration values from environment variables and
// returns a Config.  Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:             must("APP_ENV"),
		Port:            must("APP_PORT"),
		DBUser:          must("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"), // empty allowed
		DBHost:          must("DB_HOST"),
		DBPort:          must("DB_PORT"),
		DBName:          must("DB_NAME"),
		JWTSecret:       must("JWT_SECRET"),
		AccessTTLMin:    mustInt("ACCESS_TOKEN_TTL_MIN"),
		AdminSecretHash: os.Getenv("ADMIN_SECRET_HASH"),
		AdminSecret:     os.Getenv("ADMIN_SECRET"),
		DBMaxOpenConns:  envInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:  envInt("DB_MAX_IDLE_CONNS", 25),
		DBConnLifetime:  envDur("DB_CONN_LIFETIME", 30*time.Minute),
	}
	if cfg.AdminSecretHash == "" && cfg.AdminSecret == "" {
		log.Fatal("set ADMIN_SECRET_HASH or ADMIN_SECRET; without a credential nobody can administer the system")
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
