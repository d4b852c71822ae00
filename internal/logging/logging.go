package logging

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
)

type Options struct {
	Level  string
	JSON   bool
	Writer io.Writer // nil → os.Stderr
}

var def atomic.Value

func init() {
	def.Store(New(Options{}))
}

// Configure swaps the process logger. Never point Writer at stdout: stdout
// belongs to the message stream read by the orchestrator.
func Configure(opts Options) {
	def.Store(New(opts))
}

// New builds a logger without installing it.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	cfg := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(w, cfg))
	}
	return slog.New(slog.NewTextHandler(w, cfg))
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

func L() *slog.Logger {
	l, _ := def.Load().(*slog.Logger)
	return l
}

// InitFromEnv reads E2ESOURCE_LOG_LEVEL and E2ESOURCE_LOG_JSON.
func InitFromEnv() {
	opts := Options{Level: os.Getenv("E2ESOURCE_LOG_LEVEL")}
	if b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv("E2ESOURCE_LOG_JSON"))); err == nil {
		opts.JSON = b
	}
	Configure(opts)
}
