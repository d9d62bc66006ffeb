package log

import (
	"context"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, &logger)
}

// WithUser tags the request logger in ctx with the acting user.
func WithUser(ctx context.Context, userID uint) context.Context {
	return WithLogger(ctx, Ctx(ctx).With().Uint(FieldUserID, userID).Logger())
}

// Ctx returns the request logger stored in ctx. Calls made outside an HTTP
// request (startup, tests) get the global logger.
func Ctx(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zerolog.Logger); ok {
		return l
	}
	l := L()
	return &l
}
