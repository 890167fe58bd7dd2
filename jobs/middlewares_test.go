package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/checkmarble/asset-lists/utils"
	"github.com/cockroachdb/errors"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
)

func testJob() *rivertype.JobRow {
	return &rivertype.JobRow{
		ID:          42,
		Kind:        "list_change",
		Attempt:     1,
		Queue:       "list_changes",
		EncodedArgs: []byte(`{"event":{"list_id":"list"}}`),
	}
}

func TestRecovererMiddleware(t *testing.T) {
	m := NewRecoveredMiddleware()

	err := m.Work(context.Background(), testJob(), func(ctx context.Context) error {
		panic("boom")
	})
	assert.ErrorContains(t, err, "panic in list_change job n°42: boom")

	err = m.Work(context.Background(), testJob(), func(ctx context.Context) error {
		return nil
	})
	assert.NoError(t, err)
}

func TestLoggerMiddleware_storesJobLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewLoggerMiddleware(logger)

	err := m.Work(context.Background(), testJob(), func(ctx context.Context) error {
		assert.NotSame(t, slog.Default(), utils.LoggerFromContext(ctx))
		return nil
	})
	assert.NoError(t, err)
}

func TestLoggerMiddleware_returnsJobError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewLoggerMiddleware(logger)
	jobErr := errors.New("pg_notify failed")

	err := m.Work(context.Background(), testJob(), func(ctx context.Context) error {
		return jobErr
	})
	assert.ErrorIs(t, err, jobErr)
}

func TestSentryMiddleware_runsInnerJob(t *testing.T) {
	m := NewSentryMiddleware()
	called := false

	err := m.Work(context.Background(), testJob(), func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}
