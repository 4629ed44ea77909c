package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppName                string
	AppVersion             string
	AppURL                 string
	Debug                  bool
	LogLevel               string
	DatabaseDriver         string
	DatabaseDSN            string
	DBMaxOpenConns         int
	CORSOrigins            []string
	DefaultPageSize        int
	MaxPageSize            int
	RedisAddr              string
	RedisStreamKey         string
	ShutdownTimeoutSeconds int
}

// Load reads the configuration from the environment. A .env file, if any,
// must already have been loaded by the caller.
func Load() (Config, error) {
	var errs []error

	appHost := getEnv("APP_HOST", "0.0.0.0")
	appPort := getEnv("APP_PORT", "8000")

	cfg := Config{
		AppName:                getEnv("APP_NAME", "Task Management API"),
		AppVersion:             getEnv("APP_VERSION", "1.0.0"),
		AppURL:                 net.JoinHostPort(appHost, appPort),
		Debug:                  getEnvAsBool("DEBUG", false, &errs),
		LogLevel:               strings.ToUpper(getEnv("LOG_LEVEL", "INFO")),
		DatabaseDriver:         strings.ToLower(getEnv("DATABASE_DRIVER", DriverSQLite)),
		DatabaseDSN:            getEnv("DATABASE_DSN", "tasks.db"),
		DBMaxOpenConns:         getEnvAsInt("DB_MAX_OPEN_CONNS", 10, &errs),
		CORSOrigins:            getEnvAsList("CORS_ORIGINS", []string{"*"}),
		DefaultPageSize:        getEnvAsInt("DEFAULT_PAGE_SIZE", 100, &errs),
		MaxPageSize:            getEnvAsInt("MAX_PAGE_SIZE", 1000, &errs),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisStreamKey:         getEnv("REDIS_STREAM_KEY", "task_events"),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20, &errs),
	}

	errs = append(errs, validate(cfg)...)
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

// EventsEnabled reports whether task events go to Redis.
func (c Config) EventsEnabled() bool {
	return c.RedisAddr != ""
}

func validate(cfg Config) []error {
	var errs []error
	if cfg.DatabaseDriver != DriverSQLite && cfg.DatabaseDriver != DriverPostgres {
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER must be %q or %q", DriverSQLite, DriverPostgres))
	}
	if cfg.DatabaseDSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN must not be empty"))
	}
	if cfg.DBMaxOpenConns <= 0 {
		errs = append(errs, errors.New("DB_MAX_OPEN_CONNS must be greater than 0"))
	}
	if _, ok := logLevels[cfg.LogLevel]; !ok {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR, OFF", cfg.LogLevel))
	}
	if cfg.DefaultPageSize <= 0 {
		errs = append(errs, errors.New("DEFAULT_PAGE_SIZE must be greater than 0"))
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		errs = append(errs, errors.New("MAX_PAGE_SIZE must not be less than DEFAULT_PAGE_SIZE"))
	}
	if cfg.EventsEnabled() && cfg.RedisStreamKey == "" {
		errs = append(errs, errors.New("REDIS_STREAM_KEY must not be empty when REDIS_ADDR is set"))
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0"))
	}
	return errs
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int, errs *[]error) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid integer value for %s", key))
			return defaultVal
		}
		return i
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool, errs *[]error) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid boolean value for %s", key))
			return defaultVal
		}
		return b
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
