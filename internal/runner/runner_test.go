package runner_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aelexs/timeval/internal/config"
	"github.com/aelexs/timeval/internal/runner"
	"github.com/aelexs/timeval/pkg/timeval"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func restoreDefaultLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestRun_PassesConfigToTask(t *testing.T) {
	restoreDefaultLogger(t)
	t.Setenv("TSCONV_INPUT", "millis")

	var got *config.Config
	err := runner.Run(context.Background(), runner.Params{
		Name:      "testcmd",
		LogWriter: &bytes.Buffer{},
		Task: func(_ context.Context, cfg *config.Config, logger *slog.Logger) error {
			got = cfg
			assert.NotNil(t, logger)
			return nil
		},
	})

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, config.InputMillis, got.Input)
}

func TestRun_ReturnsTaskErrorUnchanged(t *testing.T) {
	restoreDefaultLogger(t)

	err := runner.Run(context.Background(), runner.Params{
		Name:      "testcmd",
		LogWriter: &bytes.Buffer{},
		Task: func(context.Context, *config.Config, *slog.Logger) error {
			return timeval.ErrClockWentBackward
		},
	})

	assert.ErrorIs(t, err, timeval.ErrClockWentBackward)
	assert.Equal(t, timeval.KindClockWentBackward, timeval.KindOf(err))
}

func TestRun_ConfigErrorSkipsTask(t *testing.T) {
	restoreDefaultLogger(t)
	t.Setenv("TSCONV_OUTPUT", "xml")

	called := false
	err := runner.Run(context.Background(), runner.Params{
		Name:      "testcmd",
		LogWriter: &bytes.Buffer{},
		Task: func(context.Context, *config.Config, *slog.Logger) error {
			called = true
			return nil
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.False(t, called)
}

func TestRun_CancellationReachesTask(t *testing.T) {
	restoreDefaultLogger(t)
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	errCh := make(chan error, 1)
	var logs bytes.Buffer
	go func() {
		errCh <- runner.Run(ctx, runner.Params{
			Name:      "testcmd",
			LogWriter: &logs,
			Task: func(ctx context.Context, _ *config.Config, _ *slog.Logger) error {
				close(started)
				<-ctx.Done()
				return ctx.Err()
			},
		})
	}()

	<-started
	cancel()

	select {
	case err := <-errCh:
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Contains(t, logs.String(), "received shutdown signal")
	case <-time.After(runner.ShutdownOTELTimeout + 5*time.Second):
		t.Fatal("run did not return after cancellation")
	}
}

func TestRun_LogsWithServiceName(t *testing.T) {
	restoreDefaultLogger(t)
	t.Setenv("TSCONV_LOG_LEVEL", "debug")

	var buf bytes.Buffer
	err := runner.Run(context.Background(), runner.Params{
		Name:      "testcmd",
		LogWriter: &buf,
		Task: func(context.Context, *config.Config, *slog.Logger) error {
			return nil
		},
	})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"service":"tsconv"`)
	assert.Contains(t, buf.String(), "starting task")
}
