package infrastructure

import (
	"io"
	"log/slog"

	"github.com/JaimeStill/promptiverse/internal/config"
)

// NewLogger creates the process logger writing to w in the configured
// format at the configured minimum level.
func NewLogger(cfg *config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
