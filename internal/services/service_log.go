package services

import (
	"context"
	"log/slog"
)

// logServiceError logs a failed service call with its action and trace ID
func logServiceError(ctx context.Context, logger *slog.Logger, action, message string, err error, attrs ...slog.Attr) {
	allAttrs := []slog.Attr{
		slog.String("action", action),
		slog.String("error", err.Error()),
	}
	allAttrs = append(allAttrs, attrs...)

	logger.LogAttrs(ctx, slog.LevelError, message, allAttrs...)
}
