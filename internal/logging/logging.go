// Package logging holds the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
)

// Options selects the level and handler format.
type Options struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

var def atomic.Value

func init() {
	cfg := &slog.HandlerOptions{Level: slog.LevelInfo}
	def.Store(slog.New(slog.NewTextHandler(os.Stderr, cfg)))
}

// Configure replaces the default logger, writing to stderr.
func Configure(opts Options) {
	ConfigureWriter(os.Stderr, opts)
}

// ConfigureWriter replaces the default logger, writing to w.
func ConfigureWriter(w io.Writer, opts Options) {
	cfg := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(w, cfg)
	} else {
		h = slog.NewTextHandler(w, cfg)
	}
	def.Store(slog.New(h))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// L returns the current default logger.
func L() *slog.Logger {
	l, _ := def.Load().(*slog.Logger)
	return l
}

// InitFromEnv configures the logger from GESTUREKIT_LOG_LEVEL and
// GESTUREKIT_LOG_JSON.
func InitFromEnv() {
	json, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv("GESTUREKIT_LOG_JSON")))
	Configure(Options{Level: os.Getenv("GESTUREKIT_LOG_LEVEL"), JSON: json})
}
