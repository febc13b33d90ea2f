package logging

import (
	"accounts/internal/core/domain/account"
	"accounts/internal/core/domain/logging"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEntriesBecomeFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLoggerWithCore(core)

	log.Info(context.Background(), "Account has been created.", logging.Entry("username", "test"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, "Account has been created.", entry.Message)
	require.Equal(t, zapcore.InfoLevel, entry.Level)
	require.Equal(t, "test", entry.ContextMap()["username"])
}

func TestLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLoggerWithCore(core)
	ctx := context.Background()

	log.Debug(ctx, "debug")
	log.Info(ctx, "info")
	log.Warning(ctx, "warning")
	log.Error(ctx, "error")

	levels := []zapcore.Level{}
	for _, entry := range logs.All() {
		levels = append(levels, entry.Level)
	}
	require.Equal(
		t,
		[]zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel},
		levels,
	)
}

func TestSecretsAreMasked(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLoggerWithCore(core)

	log.Info(
		context.Background(),
		"test",
		logging.Entry("password", account.RawPassword("plain-password")),
		logging.Entry("token", account.ConfirmationToken("plain-token")),
	)

	fields := logs.All()[0].ContextMap()
	require.Equal(t, "***", fields["password"])
	require.Equal(t, "***", fields["token"])
}
