package repositories

import (
	"context"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/utils"

	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
)

const (
	nbRetriesListChange = 5 // at 1sec*attempt^4, that's about 10min for the 5th attempt
	priorityListChange  = 2 // nb: higher number is lower priority (between 1 and 4)
)

type TaskQueueRepository interface {
	EnqueueListChangeTask(ctx context.Context, tx Transaction, event models.ListChangeEvent) error
}

type riverRepository struct {
	client *river.Client[pgx.Tx]
}

func NewTaskQueueRepository(client *river.Client[pgx.Tx]) TaskQueueRepository {
	return riverRepository{client: client}
}

// EnqueueListChangeTask inserts the change notification in the same transaction as the mutation, so
// that a notification is sent if and only if the mutation commits.
func (r riverRepository) EnqueueListChangeTask(
	ctx context.Context,
	tx Transaction,
	event models.ListChangeEvent,
) error {
	res, err := r.client.InsertTx(ctx, tx.RawTx(), models.ListChangeJobArgs{
		Event: event,
	}, &river.InsertOpts{
		MaxAttempts: nbRetriesListChange,
		Priority:    priorityListChange,
		Queue:       models.LIST_CHANGE_QUEUE_NAME,
	})
	if err != nil {
		return err
	}
	utils.LoggerFromContext(ctx).DebugContext(ctx, "Enqueued list change task",
		"list_id", event.ListId, "operation", event.Operation, "job_id", res.Job.ID)
	return nil
}
