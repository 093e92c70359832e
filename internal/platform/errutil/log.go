// Package errutil logs errors with the structured context attached by oops.
package errutil

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
)

// LogError logs an error with structured context if it's an oops error.
// For oops errors, it extracts the message, domain, code and context.
// For standard errors, it logs the error string.
func LogError(ctx context.Context, logger *slog.Logger, msg string, err error, attrs ...any) {
	if logger == nil {
		logger = slog.Default()
	}
	if oopsErr, ok := oops.AsOops(err); ok {
		attrs = append(attrs, "error", oopsErr.Error())
		if domain := oopsErr.Domain(); domain != "" {
			attrs = append(attrs, "domain", domain)
		}
		if code := oopsErr.Code(); code != nil {
			attrs = append(attrs, "code", code)
		}
		if c := oopsErr.Context(); len(c) > 0 {
			attrs = append(attrs, "context", c)
		}
		logger.ErrorContext(ctx, msg, attrs...)
		return
	}
	attrs = append(attrs, "error", err)
	logger.ErrorContext(ctx, msg, attrs...)
}
