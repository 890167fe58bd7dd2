package usecases

import (
	"context"
	"time"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/repositories"
	"github.com/checkmarble/asset-lists/usecases/executor_factory"
	"github.com/checkmarble/asset-lists/usecases/security"
	"github.com/checkmarble/asset-lists/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type ListSuggestionUsecaseRepository interface {
	listAccessReader
	listPositionsRepository
	TouchAssetList(ctx context.Context, exec repositories.Executor, listId string, updatedBy models.UserId) error
	GetSectionItem(ctx context.Context, exec repositories.Executor, listId string, assetId string,
		addedBy models.UserId) (*models.ListItem, error)
	DeleteListItem(ctx context.Context, exec repositories.Executor, itemId string) error
	GetSuggestionById(ctx context.Context, exec repositories.Executor, suggestionId string,
		forUpdate bool) (models.ListSuggestion, error)
	ListSuggestions(ctx context.Context, exec repositories.Executor, filter models.SuggestionFilter) ([]models.ListSuggestion, error)
	FindPendingSuggestion(ctx context.Context, exec repositories.Executor,
		key models.PendingSuggestionKey) (*models.ListSuggestion, error)
	CreateSuggestion(ctx context.Context, exec repositories.Executor, input models.ProposeSuggestionInput,
		proposedBy models.UserId, newSuggestionId string) error
	UpdateSuggestionStatus(ctx context.Context, exec repositories.Executor, input models.UpdateSuggestionStatusInput) error
	DeletePendingSuggestion(ctx context.Context, exec repositories.Executor, suggestionId string) error
}

type ListSuggestionUsecase struct {
	enforceSecurity    security.EnforceSecurityAssetList
	credentials        models.Credentials
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         ListSuggestionUsecaseRepository
	positions          listPositions
	notifier           ListChangeNotifier
}

func (usecase *ListSuggestionUsecase) callerId() models.UserId {
	return usecase.credentials.ActorIdentity.UserId
}

// lockSuggestionList locks the list of the suggestion, then reads the suggestion again under the lock.
func (usecase *ListSuggestionUsecase) lockSuggestionList(
	ctx context.Context,
	tx repositories.Transaction,
	suggestionId string,
) (models.ListAccess, models.ListSuggestion, error) {
	suggestion, err := usecase.repository.GetSuggestionById(ctx, tx, suggestionId, false)
	if err != nil {
		return models.ListAccess{}, models.ListSuggestion{}, err
	}
	access, err := loadListAccess(ctx, usecase.repository, tx, suggestion.ListId, true)
	if err != nil {
		return models.ListAccess{}, models.ListSuggestion{}, err
	}
	suggestion, err = usecase.repository.GetSuggestionById(ctx, tx, suggestionId, true)
	if err != nil {
		return models.ListAccess{}, models.ListSuggestion{}, err
	}
	return access, suggestion, nil
}

// ProposeSuggestion creates a pending suggestion for the target user to add or remove an asset in
// their own section of the list.
func (usecase *ListSuggestionUsecase) ProposeSuggestion(
	ctx context.Context,
	input models.ProposeSuggestionInput,
) (models.ListSuggestion, error) {
	if err := validateInput(input); err != nil {
		return models.ListSuggestion{}, err
	}
	if input.TargetUserId == usecase.callerId() {
		return models.ListSuggestion{}, errors.WithStack(models.ErrSuggestionToSelf)
	}

	suggestion, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory, func(
		tx repositories.Transaction,
	) (models.ListSuggestion, error) {
		access, err := loadListAccess(ctx, usecase.repository, tx, input.ListId, true)
		if err != nil {
			return models.ListSuggestion{}, err
		}
		if err := usecase.enforceSecurity.ProposeSuggestion(access); err != nil {
			return models.ListSuggestion{}, err
		}
		if !access.HasWriteStanding(input.TargetUserId) {
			return models.ListSuggestion{}, errors.WithStack(models.ErrSuggestionTargetHasNoSection)
		}

		existing, err := usecase.repository.FindPendingSuggestion(ctx, tx, models.PendingSuggestionKey{
			ListId:       input.ListId,
			AssetId:      input.AssetId,
			Kind:         input.Kind,
			TargetUserId: input.TargetUserId,
		})
		if err != nil {
			return models.ListSuggestion{}, err
		}
		if existing != nil {
			return models.ListSuggestion{}, errors.Wrapf(models.ErrDuplicateSuggestion,
				"suggestion %s is already pending", existing.Id)
		}

		newSuggestionId := uuid.NewString()
		if err := usecase.repository.CreateSuggestion(ctx, tx, input, usecase.callerId(), newSuggestionId); err != nil {
			return models.ListSuggestion{}, err
		}
		suggestion, err := usecase.repository.GetSuggestionById(ctx, tx, newSuggestionId, false)
		if err != nil {
			return models.ListSuggestion{}, err
		}
		if err := usecase.notifier.SuggestionChanged(ctx, tx, suggestion,
			models.OperationPropose, usecase.callerId()); err != nil {
			return models.ListSuggestion{}, err
		}
		return suggestion, nil
	})
	if err != nil {
		return models.ListSuggestion{}, err
	}

	utils.MetricSuggestionTransitions.WithLabelValues(string(models.SuggestionStatusPending)).Inc()
	trackMutation(models.OperationPropose)
	return suggestion, nil
}

// RespondToSuggestion accepts or rejects a pending suggestion addressed to the caller. Accepting
// applies the change to the caller's section in the same transaction as the status change, so that
// the suggestion stays pending if the change fails.
func (usecase *ListSuggestionUsecase) RespondToSuggestion(
	ctx context.Context,
	input models.RespondToSuggestionInput,
) (models.ListSuggestion, error) {
	if err := validateInput(input); err != nil {
		return models.ListSuggestion{}, err
	}
	logger := utils.LoggerFromContext(ctx)

	suggestion, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory, func(
		tx repositories.Transaction,
	) (models.ListSuggestion, error) {
		access, suggestion, err := usecase.lockSuggestionList(ctx, tx, input.SuggestionId)
		if err != nil {
			return models.ListSuggestion{}, err
		}
		if err := usecase.enforceSecurity.RespondToSuggestion(suggestion); err != nil {
			return models.ListSuggestion{}, err
		}
		if suggestion.Status != models.SuggestionStatusPending {
			return models.ListSuggestion{}, errors.Wrapf(models.ErrSuggestionNotPending,
				"suggestion %s is %s", suggestion.Id, suggestion.Status)
		}

		if input.Decision == models.SuggestionDecisionAccept {
			changed, err := usecase.applySuggestion(ctx, tx, access, suggestion)
			if err != nil {
				return models.ListSuggestion{}, err
			}
			if changed {
				if err := usecase.repository.TouchAssetList(ctx, tx, suggestion.ListId, usecase.callerId()); err != nil {
					return models.ListSuggestion{}, err
				}
				if err := usecase.notifier.ListMutated(ctx, tx, suggestion.ListId,
					models.OperationRespond, usecase.callerId()); err != nil {
					return models.ListSuggestion{}, err
				}
			} else {
				logger.DebugContext(ctx, "accepted suggestion did not change the list",
					"suggestion_id", suggestion.Id, "kind", suggestion.Kind)
			}
		}

		if err := usecase.repository.UpdateSuggestionStatus(ctx, tx, models.UpdateSuggestionStatusInput{
			Id:           suggestion.Id,
			Status:       input.Decision.ResultingStatus(),
			ResponseNote: input.ResponseNote,
			RespondedAt:  time.Now(),
		}); err != nil {
			return models.ListSuggestion{}, err
		}
		suggestion, err = usecase.repository.GetSuggestionById(ctx, tx, suggestion.Id, false)
		if err != nil {
			return models.ListSuggestion{}, err
		}
		if err := usecase.notifier.SuggestionChanged(ctx, tx, suggestion,
			models.OperationRespond, usecase.callerId()); err != nil {
			return models.ListSuggestion{}, err
		}
		return suggestion, nil
	})
	if err != nil {
		return models.ListSuggestion{}, err
	}

	utils.MetricSuggestionTransitions.WithLabelValues(string(suggestion.Status)).Inc()
	trackMutation(models.OperationRespond)
	return suggestion, nil
}

// applySuggestion performs the item change of an accepted suggestion in the target's section. The
// capabilities of the target are evaluated again at this point. Adding an asset that is already in
// the section, or removing one that is not there any more, changes nothing and is not an error.
func (usecase *ListSuggestionUsecase) applySuggestion(
	ctx context.Context,
	tx repositories.Transaction,
	access models.ListAccess,
	suggestion models.ListSuggestion,
) (bool, error) {
	existing, err := usecase.repository.GetSectionItem(ctx, tx, suggestion.ListId,
		suggestion.AssetId, suggestion.TargetUserId)
	if err != nil {
		return false, err
	}

	switch suggestion.Kind {
	case models.SuggestionKindAdd:
		if err := usecase.enforceSecurity.AddItem(access); err != nil {
			return false, err
		}
		if existing != nil {
			return false, nil
		}
		_, err := usecase.positions.createItemInSection(ctx, tx, models.AddListItemInput{
			ListId:  suggestion.ListId,
			AssetId: suggestion.AssetId,
		}, suggestion.TargetUserId)
		return err == nil, err

	case models.SuggestionKindRemove:
		if existing == nil {
			return false, nil
		}
		if err := usecase.enforceSecurity.RemoveItem(access, *existing); err != nil {
			return false, err
		}
		if err := usecase.repository.DeleteListItem(ctx, tx, existing.Id); err != nil {
			return false, err
		}
		return true, nil
	}

	return false, errors.Wrapf(models.InvariantViolationError, "unknown suggestion kind %q", suggestion.Kind)
}

// CancelSuggestion withdraws a pending suggestion. The suggestion is erased rather than kept with
// a cancelled status.
func (usecase *ListSuggestionUsecase) CancelSuggestion(ctx context.Context, suggestionId string) error {
	err := usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		_, suggestion, err := usecase.lockSuggestionList(ctx, tx, suggestionId)
		if err != nil {
			return err
		}
		if err := usecase.enforceSecurity.CancelSuggestion(suggestion); err != nil {
			return err
		}
		if suggestion.Status != models.SuggestionStatusPending {
			return errors.Wrapf(models.ErrSuggestionNotPending,
				"suggestion %s is %s", suggestion.Id, suggestion.Status)
		}

		if err := usecase.repository.DeletePendingSuggestion(ctx, tx, suggestionId); err != nil {
			return err
		}
		return usecase.notifier.SuggestionChanged(ctx, tx, suggestion, models.OperationCancel, usecase.callerId())
	})
	if err != nil {
		return err
	}

	utils.MetricSuggestionTransitions.WithLabelValues(string(models.SuggestionStatusCancelled)).Inc()
	trackMutation(models.OperationCancel)
	return nil
}

func (usecase *ListSuggestionUsecase) GetSuggestion(ctx context.Context, suggestionId string) (models.ListSuggestion, error) {
	suggestion, err := usecase.repository.GetSuggestionById(ctx, usecase.executorFactory.NewExecutor(), suggestionId, false)
	if err != nil {
		return models.ListSuggestion{}, err
	}
	if suggestion.ProposedBy != usecase.callerId() && suggestion.TargetUserId != usecase.callerId() {
		return models.ListSuggestion{}, errors.Wrapf(models.ForbiddenError,
			"suggestion %s is not addressed to or sent by the caller", suggestionId)
	}
	return suggestion, nil
}

// ListSuggestions returns the caller's incoming and outgoing suggestions, optionally restricted to
// one list and one status.
func (usecase *ListSuggestionUsecase) ListSuggestions(
	ctx context.Context,
	listId *string,
	status *models.SuggestionStatus,
) (models.UserSuggestions, error) {
	exec := usecase.executorFactory.NewExecutor()
	if listId != nil {
		access, err := loadListAccess(ctx, usecase.repository, exec, *listId, false)
		if err != nil {
			return models.UserSuggestions{}, err
		}
		if err := usecase.enforceSecurity.ReadList(access); err != nil {
			return models.UserSuggestions{}, err
		}
	}

	callerId := usecase.callerId()
	suggestions, err := usecase.repository.ListSuggestions(ctx, exec, models.SuggestionFilter{
		ListId:       listId,
		ProposedBy:   &callerId,
		TargetUserId: &callerId,
		Status:       status,
	})
	if err != nil {
		return models.UserSuggestions{}, err
	}
	return models.PartitionSuggestions(suggestions, callerId), nil
}
