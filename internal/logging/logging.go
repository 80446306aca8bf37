// Package logging constructs the console logger from configuration.
package logging

import (
	"io"

	"github.com/charmbracelet/log"

	"aitodo/internal/config"
)

// New builds a leveled logger writing to w. Unknown levels fall back
// to warn, unknown formats to text.
func New(w io.Writer, cfg *config.Config) *log.Logger {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.WarnLevel
	}
	formatter := log.TextFormatter
	if cfg.LogFormat == "json" {
		formatter = log.JSONFormatter
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: cfg.LogTimestamps,
		Prefix:          "aitodo",
	})
}
