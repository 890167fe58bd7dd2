package repositories

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
)

type options struct {
	riverClient           *river.Client[pgx.Tx]
	transactionRetryCount uint
}

type Option func(*options)

func WithRiverClient(client *river.Client[pgx.Tx]) Option {
	return func(o *options) {
		o.riverClient = client
	}
}

func WithTransactionRetryCount(count uint) Option {
	return func(o *options) {
		o.transactionRetryCount = count
	}
}

type Repositories struct {
	ExecutorGetter          ExecutorGetter
	AssetListRepository     *AssetListDbRepository
	TaskQueueRepository     TaskQueueRepository
	ListChangeNotifications ListChangeNotificationRepository
}

func NewRepositories(pool *pgxpool.Pool, opts ...Option) Repositories {
	options := &options{}
	for _, opt := range opts {
		opt(options)
	}

	return Repositories{
		ExecutorGetter:          NewExecutorGetter(pool, options.transactionRetryCount),
		AssetListRepository:     NewAssetListDbRepository(),
		TaskQueueRepository:     NewTaskQueueRepository(options.riverClient),
		ListChangeNotifications: NewListChangeNotificationRepository(),
	}
}
