// Package logger holds the process-wide structured logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

type Config struct {
	Level  string
	JSON   bool
	Writer io.Writer
}

var (
	mu     sync.RWMutex
	global = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

// ParseLevel accepts debug, info, warn and error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logger: unknown level %q", s)
	}
}

// Setup replaces the global logger. Output goes to stderr unless cfg.Writer
// is set, leaving stdout to results.
func Setup(cfg Config) error {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	mu.Lock()
	global = slog.New(h)
	mu.Unlock()
	return nil
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Discard silences logging, e.g. in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
