package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/repositories"
)

type TaskQueueRepository struct {
	mock.Mock
}

func (m *TaskQueueRepository) EnqueueListChangeTask(
	ctx context.Context,
	tx repositories.Transaction,
	event models.ListChangeEvent,
) error {
	args := m.Called(ctx, tx, event)
	return args.Error(0)
}
