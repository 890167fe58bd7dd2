package executor_factory

import (
	"context"

	"github.com/checkmarble/asset-lists/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
)

// ExecutorFactoryStub runs the repositories against a pgxmock pool, for sql level tests.
type ExecutorFactoryStub struct {
	Mock pgxmock.PgxPoolIface
}

func NewExecutorFactoryStub() ExecutorFactoryStub {
	pool, _ := pgxmock.NewPool()

	return ExecutorFactoryStub{
		Mock: pool,
	}
}

type PgExecutorStub struct {
	pgxmock.PgxPoolIface
}

func (stub ExecutorFactoryStub) NewExecutor() repositories.Executor {
	return PgExecutorStub{
		stub.Mock,
	}
}

// Transaction runs fn directly on the mock pool, no BEGIN/COMMIT is expected.
func (stub ExecutorFactoryStub) Transaction(ctx context.Context, fn func(tx repositories.Transaction) error) error {
	return fn(PgExecutorStub{stub.Mock})
}

func (stub PgExecutorStub) RawTx() pgx.Tx {
	return nil
}
