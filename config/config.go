// Package config loads the meal planner configuration from the environment.
package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Solver   SolverConfig
	Cache    CacheConfig
	Recorder RecorderConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	RateLimit       int
	RateWindow      time.Duration
	CORSOrigins     []string
	MaxBodyBytes    int64
	SwaggerUser     string
	SwaggerPass     string
}

// SolverConfig holds optimizer defaults.
type SolverConfig struct {
	// LotSize is the purchase increment in hundredths of a package.
	LotSize           int64
	Workers           int
	DefaultTimeBudget time.Duration
	MaxTimeBudget     time.Duration
	MaxMealCount      int
	WeightProtein     float64
	WeightCholesterol float64
	WeightDislike     float64
}

// CacheConfig holds solution cache configuration.
type CacheConfig struct {
	Enabled bool
	Size    int
	TTL     time.Duration
}

// RecorderConfig holds plan history recorder configuration.
type RecorderConfig struct {
	Buffer    int
	Workers   int
	Retention time.Duration
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled      bool
	APIKeys      map[string]bool
	JWTSecretKey string
	JWTIssuer    string
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	Enabled      bool
	URI          string
	DatabaseName string
	MaxPoolSize  uint64
	MinPoolSize  uint64
	// SeedCatalogFile is stored as the first catalog version when none is active.
	SeedCatalogFile string

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getEnvDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 40*time.Second),
			RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 35*time.Second),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
			RateLimit:       getEnvInt("RATE_LIMIT", 60),
			RateWindow:      getEnvDuration("RATE_WINDOW", time.Minute),
			CORSOrigins:     parseList(os.Getenv("CORS_ORIGINS"), defaultCORSOrigins),
			MaxBodyBytes:    int64(getEnvInt("MAX_BODY_BYTES", 4<<20)),
			SwaggerUser:     getEnv("SWAGGER_USER", ""),
			SwaggerPass:     getEnv("SWAGGER_PASS", ""),
		},
		Solver: SolverConfig{
			LotSize:           int64(getEnvInt("LOT_SIZE", 100)),
			Workers:           getEnvInt("SOLVER_WORKERS", runtime.NumCPU()),
			DefaultTimeBudget: getEnvDuration("SOLVER_DEFAULT_TIME_BUDGET", 5*time.Second),
			MaxTimeBudget:     getEnvDuration("SOLVER_MAX_TIME_BUDGET", 30*time.Second),
			MaxMealCount:      getEnvInt("MAX_MEAL_COUNT", 20),
			WeightProtein:     getEnvFloat("WEIGHT_PROTEIN", 1.0),
			WeightCholesterol: getEnvFloat("WEIGHT_CHOLESTEROL", 0.1),
			WeightDislike:     getEnvFloat("WEIGHT_DISLIKE", 10.0),
		},
		Cache: CacheConfig{
			Enabled: getEnvBool("CACHE_ENABLED", true),
			Size:    getEnvInt("CACHE_SIZE", 1000),
			TTL:     getEnvDuration("CACHE_TTL", 10*time.Minute),
		},
		Recorder: RecorderConfig{
			Buffer:    getEnvInt("RECORDER_BUFFER", 1000),
			Workers:   getEnvInt("RECORDER_WORKERS", 2),
			Retention: getEnvDuration("PLAN_RUN_RETENTION", 30*24*time.Hour),
		},
		Auth: AuthConfig{
			Enabled:      getEnvBool("AUTH_ENABLED", false),
			APIKeys:      parseAPIKeys(os.Getenv("API_KEYS")),
			JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
			JWTIssuer:    getEnv("JWT_ISSUER", "meal-planner"),
		},
		Database: DatabaseConfig{
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "meal_planner"),
			MaxPoolSize:                    uint64(getEnvInt("MONGODB_MAX_POOL_SIZE", 50)),
			MinPoolSize:                    uint64(getEnvInt("MONGODB_MIN_POOL_SIZE", 5)),
			SeedCatalogFile:                getEnv("CATALOG_SEED_FILE", ""),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
	}
}

var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseAPIKeys(s string) map[string]bool {
	if s == "" {
		return nil
	}
	keys := strings.Split(s, ",")
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			result[k] = true
		}
	}
	return result
}

// parseList splits a comma separated value; an empty value yields defaults.
func parseList(s string, defaults []string) []string {
	if strings.TrimSpace(s) == "" {
		return append([]string(nil), defaults...)
	}
	var result []string
	for _, p := range strings.Split(s, ",") {
		if item := strings.TrimSpace(p); item != "" {
			result = append(result, item)
		}
	}
	return result
}
