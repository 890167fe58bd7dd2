package usecases

import (
	"context"

	"github.com/checkmarble/asset-lists/repositories"
	"github.com/checkmarble/asset-lists/usecases/executor_factory"
)

type livenessRepository interface {
	Liveness(ctx context.Context, exec repositories.Executor) error
}

type LivenessUsecase struct {
	executorFactory executor_factory.ExecutorFactory
	healthChecker   livenessRepository
}

func (u *LivenessUsecase) Liveness(ctx context.Context) error {
	return u.healthChecker.Liveness(ctx, u.executorFactory.NewExecutor())
}

type VersionUsecase struct {
	ApiVersion string
}
