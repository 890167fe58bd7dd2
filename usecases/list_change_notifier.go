package usecases

import (
	"context"
	"time"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/repositories"
	"github.com/checkmarble/asset-lists/utils"
)

type listChangeTaskEnqueuer interface {
	EnqueueListChangeTask(ctx context.Context, tx repositories.Transaction, event models.ListChangeEvent) error
}

// ListChangeNotifier publishes list_mutated and suggestion_changed events keyed by list id. Events
// are enqueued in the transaction of the mutation, and are delivered only if it commits.
type ListChangeNotifier struct {
	taskQueueRepository listChangeTaskEnqueuer
}

func NewListChangeNotifier(taskQueueRepository listChangeTaskEnqueuer) ListChangeNotifier {
	return ListChangeNotifier{taskQueueRepository: taskQueueRepository}
}

func (n ListChangeNotifier) ListMutated(
	ctx context.Context,
	tx repositories.Transaction,
	listId string,
	operation string,
	actorId models.UserId,
) error {
	return n.taskQueueRepository.EnqueueListChangeTask(ctx, tx, models.ListChangeEvent{
		Kind:       models.ListChangeListMutated,
		ListId:     listId,
		Operation:  operation,
		ActorId:    actorId,
		OccurredAt: time.Now(),
	})
}

func (n ListChangeNotifier) SuggestionChanged(
	ctx context.Context,
	tx repositories.Transaction,
	suggestion models.ListSuggestion,
	operation string,
	actorId models.UserId,
) error {
	return n.taskQueueRepository.EnqueueListChangeTask(ctx, tx, models.ListChangeEvent{
		Kind:         models.ListChangeSuggestionChanged,
		ListId:       suggestion.ListId,
		Operation:    operation,
		SuggestionId: suggestion.Id,
		ActorId:      actorId,
		OccurredAt:   time.Now(),
	})
}

// to be called once the transaction is committed
func trackMutation(operation string) {
	utils.MetricListMutations.WithLabelValues(operation).Inc()
}
