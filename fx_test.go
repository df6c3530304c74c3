package altsvc

import (
	"bytes"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dep2p/go-altsvc/internal/util/logger"
)

func TestWithZapLogger_ReceivesLifecycleEvents(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	newTestNegotiator(t, WithZapLogger(zap.New(core)))

	assert.Equal(t, 1, observed.FilterMessage("started").Len())
	assert.NotZero(t, observed.FilterMessage("provided").Len())
}

func TestWithZapLogger_Nil(t *testing.T) {
	assert.Error(t, WithZapLogger(nil)(newOptions()))
}

func TestFxEventLogger_FollowsSubsystemLevel(t *testing.T) {
	t.Cleanup(func() { logger.SetLevel("altsvc/fx", slog.LevelInfo) })

	logger.SetLevel("altsvc/fx", slog.LevelInfo)
	quiet, ok := fxEventLogger(newOptions()).(*fxevent.ZapLogger)
	require.True(t, ok)
	assert.False(t, quiet.Logger.Core().Enabled(zapcore.InfoLevel))

	logger.SetLevel("altsvc/fx", slog.LevelDebug)
	verbose, ok := fxEventLogger(newOptions()).(*fxevent.ZapLogger)
	require.True(t, ok)
	assert.True(t, verbose.Logger.Core().Enabled(zapcore.DebugLevel))
}

func TestFxEventLogger_WritesToLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetLevel("altsvc/fx", slog.LevelDebug)
	t.Cleanup(func() {
		logger.SetLevel("altsvc/fx", slog.LevelInfo)
		logger.SetOutput(os.Stderr)
	})

	n, _, _ := newTestNegotiator(t)
	require.NoError(t, n.Close())

	out := buf.String()
	assert.Contains(t, out, "altsvc/fx")
	assert.Contains(t, out, "started")
}
