package log

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// GetLogger returns the stdr backed logr.Logger used by the command line
// tools, at the verbosity given by their -v flag:
// 0 prints the collision summary of every strategy,
// 1 adds the strategies being hashed and 2 every bucket insert.
// Verbosities outside [0, 2] fall back to 0.
func GetLogger(v int) logr.Logger {
	logger := stdr.New(nil).WithName("bucketstat")
	if v > 2 || v < 0 {
		logger.Info("invalid verbosity, only the collision summaries are logged", "v", v)
		v = 0
	}
	stdr.SetVerbosity(v)

	return logger
}

// ContextWithLogger returns a context that has a logr.Logger contained inside,
// which can then be used by experiment runs and bucket tables.
func ContextWithLogger(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}

// GetLoggerFromContextWithName returns a logr.Logger if it was contained in the context
// otherwise, it returns a logger that discards everything.
func GetLoggerFromContextWithName(ctx context.Context, name string) logr.Logger {
	logger := logr.FromContextOrDiscard(ctx)

	if name != "" {
		return logger.WithName(name)
	}
	return logger
}
