package repositories

import (
	"context"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/utils"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const DEFAULT_TRANSACTION_RETRY_ATTEMPTS = 3

type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Transaction interface {
	Executor
	RawTx() pgx.Tx
}

type ExecutorGetter struct {
	connectionPool *pgxpool.Pool
	retryAttempts  uint
}

func NewExecutorGetter(pool *pgxpool.Pool, retryAttempts uint) ExecutorGetter {
	if retryAttempts == 0 {
		retryAttempts = DEFAULT_TRANSACTION_RETRY_ATTEMPTS
	}
	return ExecutorGetter{
		connectionPool: pool,
		retryAttempts:  retryAttempts,
	}
}

// Transaction runs fn in a database transaction. Transactions aborted by postgres because of a
// serialization failure or a deadlock are replayed from the start: this is the only retry in the
// write path, business errors returned by fn are never retried.
func (g ExecutorGetter) Transaction(ctx context.Context, fn func(tx Transaction) error) error {
	err := retry.Do(
		func() error {
			return pgx.BeginFunc(ctx, g.connectionPool, func(tx pgx.Tx) error {
				return fn(&PgTx{tx: tx})
			})
		},
		retry.Context(ctx),
		retry.Attempts(g.retryAttempts),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return IsSerializationFailureError(err) || IsDeadlockError(err)
		}),
		retry.OnRetry(func(n uint, err error) {
			utils.LoggerFromContext(ctx).WarnContext(ctx,
				"transaction aborted by the database, retrying", "attempt", n+1, "error", err.Error())
		}),
	)

	// helper: The callback can return ErrIgnoreRollBackError
	// to explicitly specify that the error should be ignored.
	if errors.Is(err, models.ErrIgnoreRollBackError) {
		return nil
	}
	return err
}

func (g ExecutorGetter) GetExecutor() Executor {
	return &PgExecutor{exec: g.connectionPool}
}

type PgExecutor struct {
	exec *pgxpool.Pool
}

func (e PgExecutor) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return e.exec.Exec(ctx, sql, args...)
}

func (e PgExecutor) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return e.exec.Query(ctx, sql, args...)
}

func (e PgExecutor) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return e.exec.QueryRow(ctx, sql, args...)
}

type PgTx struct {
	tx pgx.Tx
}

func (t PgTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.tx.Exec(ctx, sql, args...)
}

func (t PgTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.tx.Query(ctx, sql, args...)
}

func (t PgTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.tx.QueryRow(ctx, sql, args...)
}

func (t PgTx) RawTx() pgx.Tx {
	return t.tx
}
