package usecases

import (
	"github.com/checkmarble/asset-lists/repositories"
	"github.com/checkmarble/asset-lists/usecases/executor_factory"
	"github.com/checkmarble/asset-lists/usecases/worker_jobs"
)

type Usecases struct {
	Repositories repositories.Repositories
	appName      string
	apiVersion   string
}

type Option func(*options)

func WithAppName(appName string) Option {
	return func(o *options) {
		o.appName = appName
	}
}

func WithApiVersion(apiVersion string) Option {
	return func(o *options) {
		o.apiVersion = apiVersion
	}
}

type options struct {
	appName    string
	apiVersion string
}

func NewUsecases(repositories repositories.Repositories, opts ...Option) Usecases {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return Usecases{
		Repositories: repositories,
		appName:      o.appName,
		apiVersion:   o.apiVersion,
	}
}

func (usecases *Usecases) NewExecutorFactory() executor_factory.ExecutorFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewTransactionFactory() executor_factory.TransactionFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewListChangeNotifier() ListChangeNotifier {
	return NewListChangeNotifier(usecases.Repositories.TaskQueueRepository)
}

func (usecases *Usecases) NewVersionUsecase() VersionUsecase {
	return VersionUsecase{
		ApiVersion: usecases.apiVersion,
	}
}

func (usecases *Usecases) NewLivenessUsecase() LivenessUsecase {
	return LivenessUsecase{
		executorFactory: usecases.NewExecutorFactory(),
		healthChecker:   usecases.Repositories.AssetListRepository,
	}
}

func (usecases *Usecases) NewListChangeWorker() *worker_jobs.ListChangeWorker {
	return worker_jobs.NewListChangeWorker(
		usecases.Repositories.ExecutorGetter,
		usecases.Repositories.ListChangeNotifications,
	)
}
