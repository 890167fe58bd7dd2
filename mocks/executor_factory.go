package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/checkmarble/asset-lists/repositories"
)

type ExecutorFactory struct {
	mock.Mock
}

func (e *ExecutorFactory) NewExecutor() repositories.Executor {
	args := e.Called()
	return args.Get(0).(repositories.Executor)
}
