package mongo

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo/options"
)

// logSink adapts a *slog.Logger to the driver's options.LogSink. The driver
// passes alternating key/value pairs, which is exactly what slog expects.
type logSink struct {
	logger *slog.Logger
}

var _ options.LogSink = (*logSink)(nil)

func (s *logSink) Info(level int, message string, keysAndValues ...any) {
	lvl := slog.LevelInfo
	if level >= int(options.LogLevelDebug) {
		lvl = slog.LevelDebug
	}
	s.logger.Log(context.Background(), lvl, message, keysAndValues...)
}

func (s *logSink) Error(err error, message string, keysAndValues ...any) {
	s.logger.Error(message, append(keysAndValues[:len(keysAndValues):len(keysAndValues)], "error", err)...)
}
