package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Only the JWT secret is mandatory; everything
// else falls back to a development-friendly default so the server can run
// against a local MongoDB with nothing but JWT_SECRET set.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	MongoURI      string // MongoDB connection string
	DBName        string // database holding the movies/series/usuarios collections
	JWTSecret     string // secret used to sign session tokens
	SessionTTLMin int    // session token time-to-live in minutes
	BcryptCost    int    // bcrypt cost for password hashing
	SeedData      bool   // insert sample records into empty collections on startup
	AuditConsumer bool   // run the catalog.audit consumer inside this process
}

// Load reads configuration values from environment variables and returns a
// Config.  JWT_SECRET is enforced by must() and a missing value causes the
// program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:           getenv("APP_ENV", "dev"),
		Port:          getenv("PORT", "3000"),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:        getenv("DB_NAME", "watchnow"),
		JWTSecret:     must("JWT_SECRET"),
		SessionTTLMin: envInt("SESSION_TTL_MIN", 60),
		BcryptCost:    envInt("BCRYPT_COST", 10),
		SeedData:      envBool("SEED_DATA", true),
		AuditConsumer: envBool("AUDIT_CONSUMER_ENABLED", false),
	}
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

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func envBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "":
		return def
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return def
}
