package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Config holds the runtime settings of the comparison backend. The map and
// styling constants live in mapcfg and are not configurable.
type Config struct {
	ServerAddress    string
	DatabasePath     string
	LogLevel         string
	HistoryRetention time.Duration
	PruneInterval    time.Duration
}

// Load reads configuration from the environment, falling back to defaults.
func Load() (Config, error) {
	cfg := Config{
		ServerAddress:    envOrDefault("DC_SERVER_ADDR", ":4444"),
		DatabasePath:     envOrDefault("DC_DB_PATH", "comparer.db"),
		LogLevel:         envOrDefault("DC_LOG_LEVEL", "info"),
		HistoryRetention: 30 * 24 * time.Hour,
		PruneInterval:    time.Hour,
	}

	if retentionStr := os.Getenv("DC_HISTORY_RETENTION"); retentionStr != "" {
		duration, err := time.ParseDuration(retentionStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DC_HISTORY_RETENTION value %q: %w", retentionStr, err)
		}
		cfg.HistoryRetention = duration
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// NewLogger builds a slog.Logger for the given level. Interactive terminals
// get colored tint output, everything else gets JSON lines.
func NewLogger(level string) (*slog.Logger, error) {
	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	case "info", "":
		slogLevel = slog.LevelInfo
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	var handler slog.Handler
	if term.IsTerminal(int(os.Stdout.Fd())) {
		handler = tint.NewHandler(os.Stdout, &tint.Options{Level: slogLevel})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel})
	}
	return slog.New(handler), nil
}
