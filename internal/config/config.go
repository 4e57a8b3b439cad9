package config // package config loads application configuration from environment variables

import (
	"flag"    // flag lets the server point at an alternative .env file
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings trims and splits list-valued variables
	"time"    // time parses durations such as JWT_EXPIRY

	"github.com/joho/godotenv" // godotenv loads KEY=VALUE files into the process environment
)

// DefaultJWTSecret is the literal fallback used when JWT_SECRET is unset.  It
// is only acceptable for local development; production deployments must set
// JWT_SECRET explicitly.
const DefaultJWTSecret = "oscar-explorer-dev-secret"

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Defaults mirror what a local docker-compose
// deployment of the dataset uses.
type Config struct {
	Env         string        // application environment (dev, test, prod)
	Port        string        // API_PORT, HTTP port to listen on
	DB          DBConfig      // PostgreSQL connection settings
	JWTSecret   string        // secret used to sign JWTs
	JWTExpiry   time.Duration // lifetime of issued tokens
	BcryptCost  int           // bcrypt cost for password hashing
	CORSOrigins []string      // allowed origins for the browser front-end
	Log         LogConfig     // logger level and format
}

// DBConfig groups the PostgreSQL settings.  MaxConns bounds the number of
// concurrent database sessions held by the shared pool.
type DBConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	SSLMode       string
	MaxConns      int
	WatchInterval time.Duration
}

// LogConfig selects the zerolog level and output format.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration values from the environment and returns a
// Config.  An optional env file is loaded first: the -env flag wins over
// ENV_FILE, and a plain .env in the working directory is used when
// neither is set.  Missing files are not an error.
func Load() Config {
	loadEnvFile()
	return FromEnv()
}

// FromEnv builds a Config from the current process environment without
// touching env files.  Tests use it after t.Setenv.
func FromEnv() Config {
	return Config{
		Env:  envStr("APP_ENV", "dev"),
		Port: envStr("API_PORT", "8080"),
		DB: DBConfig{
			Host:          envStr("DB_HOST", "localhost"),
			Port:          envStr("DB_PORT", "5432"),
			User:          envStr("DB_USER", "postgres"),
			Password:      os.Getenv("DB_PASSWORD"), // empty allowed
			Name:          envStr("DB_NAME", "oscars"),
			SSLMode:       envStr("DB_SSLMODE", "disable"),
			MaxConns:      envInt("DB_MAX_CONNS", 20),
			WatchInterval: envDur("DB_WATCH_INTERVAL", 15*time.Second),
		},
		JWTSecret:   envStr("JWT_SECRET", DefaultJWTSecret),
		JWTExpiry:   ParseExpiry(envStr("JWT_EXPIRY", "24h"), 24*time.Hour),
		BcryptCost:  envInt("BCRYPT_COST", 10),
		CORSOrigins: splitList(envStr("CORS_ORIGINS", "*")),
		Log: LogConfig{
			Level:  envStr("LOG_LEVEL", "info"),
			Format: envStr("LOG_FORMAT", "json"),
		},
	}
}

// ParseExpiry understands the formats accepted for JWT_EXPIRY: Go durations
// ("24h", "90m"), whole days ("7d") and bare seconds ("3600").  Anything
// else, zero or negative values fall back to def.
func ParseExpiry(s string, def time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return def
		}
		return time.Duration(n) * time.Second
	}
	if strings.HasSuffix(s, "d") {
		n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || n <= 0 {
			return def
		}
		return time.Duration(n) * 24 * time.Hour
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func loadEnvFile() {
	path := os.Getenv("ENV_FILE")
	if flag.Lookup("env") == nil {
		flag.StringVar(&path, "env", path, "path to env file")
	}
	if !flag.Parsed() {
		flag.Parse()
	}
	if path != "" {
		_ = godotenv.Load(path)
		return
	}
	_ = godotenv.Load()
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
