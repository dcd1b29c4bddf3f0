package composables

import (
	"context"

	"github.com/sirupsen/logrus"
)

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// UseLogger returns the logger carried by ctx, or nil when none was set.
// Callers are expected to tolerate a nil entry for optional logging.
func UseLogger(ctx context.Context) *logrus.Entry {
	switch typed := ctx.Value(loggerKey).(type) {
	case *logrus.Entry:
		return typed
	case *logrus.Logger:
		return logrus.NewEntry(typed)
	default:
		return nil
	}
}
