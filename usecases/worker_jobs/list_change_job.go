package worker_jobs

import (
	"context"
	"time"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/repositories"
	"github.com/checkmarble/asset-lists/utils"

	"github.com/riverqueue/river"
)

type listChangePublisher interface {
	PublishListChange(ctx context.Context, exec repositories.Executor, event models.ListChangeEvent) error
}

type executorGetter interface {
	GetExecutor() repositories.Executor
}

// ListChangeWorker fans out the committed list changes to the realtime subscribers.
type ListChangeWorker struct {
	river.WorkerDefaults[models.ListChangeJobArgs]

	executorGetter executorGetter
	publisher      listChangePublisher
}

func NewListChangeWorker(executorGetter executorGetter, publisher listChangePublisher) *ListChangeWorker {
	return &ListChangeWorker{
		executorGetter: executorGetter,
		publisher:      publisher,
	}
}

func (w *ListChangeWorker) Timeout(job *river.Job[models.ListChangeJobArgs]) time.Duration {
	return 10 * time.Second
}

func (w *ListChangeWorker) Work(ctx context.Context, job *river.Job[models.ListChangeJobArgs]) error {
	event := job.Args.Event
	if err := w.publisher.PublishListChange(ctx, w.executorGetter.GetExecutor(), event); err != nil {
		return err
	}

	utils.LoggerFromContext(ctx).DebugContext(ctx, "published list change",
		"list_id", event.ListId,
		"kind", event.Kind,
		"operation", event.Operation)
	return nil
}
