package mongo

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogSink(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sink := &logSink{logger: slog.New(zapslog.NewHandler(core))}

	sink.Info(int(options.LogLevelInfo), "Connection pool created", "serverHost", "db", "serverPort", 27017)
	sink.Info(int(options.LogLevelDebug), "Command started", "commandName", "find")
	sink.Error(errors.New("boom"), "Command failed", "commandName", "find")

	entries := logs.All()
	require.Len(t, entries, 3)

	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Equal(t, "Connection pool created", entries[0].Message)
	require.Equal(t, "db", entries[0].ContextMap()["serverHost"])

	require.Equal(t, zapcore.DebugLevel, entries[1].Level)
	require.Equal(t, "find", entries[1].ContextMap()["commandName"])

	require.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	require.Equal(t, "boom", entries[2].ContextMap()["error"])
}
