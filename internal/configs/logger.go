package config

import (
	"os"

	"github.com/labstack/gommon/log"
)

var logLevels = map[string]log.Lvl{
	"DEBUG": log.DEBUG,
	"INFO":  log.INFO,
	"WARN":  log.WARN,
	"ERROR": log.ERROR,
	"OFF":   log.OFF,
}

// NewLogger returns the process logger. Structured calls (Infoj and
// friends) print one JSON object per line.
func NewLogger(cfg Config) *log.Logger {
	logger := log.New(cfg.AppName)
	logger.SetOutput(os.Stdout)
	logger.SetHeader(`{"time":"${time_rfc3339}","level":"${level}","prefix":"${prefix}"}`)
	logger.SetLevel(logLevels[cfg.LogLevel])
	if cfg.Debug {
		logger.SetLevel(log.DEBUG)
	}
	return logger
}
