package usecases

import (
	"context"
	"slices"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/repositories"
	"github.com/checkmarble/asset-lists/usecases/executor_factory"
	"github.com/checkmarble/asset-lists/usecases/ordering"
	"github.com/checkmarble/asset-lists/usecases/security"

	"github.com/cockroachdb/errors"
)

type ListItemUsecaseRepository interface {
	listAccessReader
	listPositionsRepository
	TouchAssetList(ctx context.Context, exec repositories.Executor, listId string, updatedBy models.UserId) error
	ListItems(ctx context.Context, exec repositories.Executor, listId string) ([]models.ListItem, error)
	GetListItemById(ctx context.Context, exec repositories.Executor, itemId string, forUpdate bool) (models.ListItem, error)
	DeleteListItem(ctx context.Context, exec repositories.Executor, itemId string) error
}

type ListItemUsecase struct {
	enforceSecurity    security.EnforceSecurityAssetList
	credentials        models.Credentials
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         ListItemUsecaseRepository
	positions          listPositions
	notifier           ListChangeNotifier
}

func (usecase *ListItemUsecase) callerId() models.UserId {
	return usecase.credentials.ActorIdentity.UserId
}

// ListItems returns the items of the list, ungrouped items first, each partition in position order.
func (usecase *ListItemUsecase) ListItems(ctx context.Context, listId string) ([]models.ListItem, error) {
	exec := usecase.executorFactory.NewExecutor()
	access, err := loadListAccess(ctx, usecase.repository, exec, listId, false)
	if err != nil {
		return nil, err
	}
	if err := usecase.enforceSecurity.ReadList(access); err != nil {
		return nil, err
	}
	return usecase.repository.ListItems(ctx, exec, listId)
}

// lockItemList locks the list of the item, then reads the item again under the lock.
func (usecase *ListItemUsecase) lockItemList(
	ctx context.Context,
	tx repositories.Transaction,
	itemId string,
) (models.ListAccess, models.ListItem, error) {
	item, err := usecase.repository.GetListItemById(ctx, tx, itemId, false)
	if err != nil {
		return models.ListAccess{}, models.ListItem{}, err
	}
	access, err := loadListAccess(ctx, usecase.repository, tx, item.ListId, true)
	if err != nil {
		return models.ListAccess{}, models.ListItem{}, err
	}
	item, err = usecase.repository.GetListItemById(ctx, tx, itemId, true)
	if err != nil {
		return models.ListAccess{}, models.ListItem{}, err
	}
	return access, item, nil
}

func (usecase *ListItemUsecase) commitMutation(
	ctx context.Context,
	tx repositories.Transaction,
	listId string,
	operation string,
) error {
	if err := usecase.repository.TouchAssetList(ctx, tx, listId, usecase.callerId()); err != nil {
		return err
	}
	return usecase.notifier.ListMutated(ctx, tx, listId, operation, usecase.callerId())
}

// AddItem adds the asset to the caller's section of the list, at the end of its partition.
func (usecase *ListItemUsecase) AddItem(ctx context.Context, input models.AddListItemInput) (models.ListItem, error) {
	if err := validateInput(input); err != nil {
		return models.ListItem{}, err
	}

	item, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory, func(
		tx repositories.Transaction,
	) (models.ListItem, error) {
		access, err := loadListAccess(ctx, usecase.repository, tx, input.ListId, true)
		if err != nil {
			return models.ListItem{}, err
		}
		if err := usecase.enforceSecurity.AddItem(access); err != nil {
			return models.ListItem{}, err
		}

		newItemId, err := usecase.positions.createItemInSection(ctx, tx, input, usecase.callerId())
		if err != nil {
			return models.ListItem{}, err
		}
		if err := usecase.commitMutation(ctx, tx, input.ListId, models.OperationAddItem); err != nil {
			return models.ListItem{}, err
		}
		return usecase.repository.GetListItemById(ctx, tx, newItemId, false)
	})
	if err != nil {
		return models.ListItem{}, err
	}
	trackMutation(models.OperationAddItem)
	return item, nil
}

func (usecase *ListItemUsecase) RemoveItem(ctx context.Context, itemId string) error {
	err := usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		access, item, err := usecase.lockItemList(ctx, tx, itemId)
		if err != nil {
			return err
		}
		if err := usecase.enforceSecurity.RemoveItem(access, item); err != nil {
			return err
		}

		if err := usecase.repository.DeleteListItem(ctx, tx, itemId); err != nil {
			return err
		}
		return usecase.commitMutation(ctx, tx, item.ListId, models.OperationRemoveItem)
	})
	if err != nil {
		return err
	}
	trackMutation(models.OperationRemoveItem)
	return nil
}

func (usecase *ListItemUsecase) SetItemNote(ctx context.Context, itemId string, note string) (models.ListItem, error) {
	if len(note) > 2000 {
		return models.ListItem{}, errors.Wrap(models.BadParameterError, "note is too long")
	}

	item, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory, func(
		tx repositories.Transaction,
	) (models.ListItem, error) {
		access, item, err := usecase.lockItemList(ctx, tx, itemId)
		if err != nil {
			return models.ListItem{}, err
		}
		if err := usecase.enforceSecurity.EditItem(access, item); err != nil {
			return models.ListItem{}, err
		}

		if err := usecase.repository.UpdateListItem(ctx, tx, models.UpdateListItemInput{
			Id:   itemId,
			Note: &note,
		}); err != nil {
			return models.ListItem{}, err
		}
		if err := usecase.commitMutation(ctx, tx, item.ListId, models.OperationSetItemNote); err != nil {
			return models.ListItem{}, err
		}
		return usecase.repository.GetListItemById(ctx, tx, itemId, false)
	})
	if err != nil {
		return models.ListItem{}, err
	}
	trackMutation(models.OperationSetItemNote)
	return item, nil
}

// MoveItemToGroup moves the item to the end of the group, or of the ungrouped items when groupId
// is nil.
func (usecase *ListItemUsecase) MoveItemToGroup(ctx context.Context, itemId string, groupId *string) (models.ListItem, error) {
	item, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory, func(
		tx repositories.Transaction,
	) (models.ListItem, error) {
		access, item, err := usecase.lockItemList(ctx, tx, itemId)
		if err != nil {
			return models.ListItem{}, err
		}
		if err := usecase.enforceSecurity.EditItem(access, item); err != nil {
			return models.ListItem{}, err
		}
		if sameGroup(item.GroupId, groupId) {
			return item, nil
		}
		if err := usecase.positions.checkGroupOfList(ctx, tx, item.ListId, groupId); err != nil {
			return models.ListItem{}, err
		}

		partition, err := usecase.positions.loadItemPartition(ctx, tx, item.ListId, groupId)
		if err != nil {
			return models.ListItem{}, err
		}
		position := ordering.NextKey(partition.siblings)
		if err := usecase.repository.UpdateListItem(ctx, tx, models.UpdateListItemInput{
			Id:       itemId,
			SetGroup: true,
			GroupId:  groupId,
			Position: &position,
		}); err != nil {
			return models.ListItem{}, err
		}
		if err := usecase.commitMutation(ctx, tx, item.ListId, models.OperationMoveItem); err != nil {
			return models.ListItem{}, err
		}
		return usecase.repository.GetListItemById(ctx, tx, itemId, false)
	})
	if err != nil {
		return models.ListItem{}, err
	}
	trackMutation(models.OperationMoveItem)
	return item, nil
}

// ReorderItem moves the item at fromIndex of the partition to toIndex, toIndex being its index once
// the move is done. It returns the partition in its new order.
func (usecase *ListItemUsecase) ReorderItem(ctx context.Context, input models.ReorderItemInput) ([]models.ListItem, error) {
	var rebalanced bool
	items, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory, func(
		tx repositories.Transaction,
	) ([]models.ListItem, error) {
		access, err := loadListAccess(ctx, usecase.repository, tx, input.ListId, true)
		if err != nil {
			return nil, err
		}
		if err := usecase.enforceSecurity.ReadList(access); err != nil {
			return nil, err
		}
		if err := usecase.positions.checkGroupOfList(ctx, tx, input.ListId, input.GroupId); err != nil {
			return nil, err
		}

		partition, err := usecase.positions.loadItemPartition(ctx, tx, input.ListId, input.GroupId)
		if err != nil {
			return nil, err
		}
		items, siblings := partition.items, partition.siblings
		if input.FromIndex < 0 || input.FromIndex >= len(siblings) {
			return nil, errors.Wrapf(models.ErrPositionOutOfRange, "no item at index %d", input.FromIndex)
		}
		movedIdx := slices.IndexFunc(items, func(i models.ListItem) bool { return i.Id == siblings[input.FromIndex].Id })
		if err := usecase.enforceSecurity.EditItem(access, items[movedIdx]); err != nil {
			return nil, err
		}

		result, err := ordering.Move(siblings, input.FromIndex, input.ToIndex)
		if err != nil {
			return nil, err
		}
		if len(result.Assignments) == 0 && !partition.backfilled {
			return usecase.repository.ListPartitionItems(ctx, tx, input.ListId, input.GroupId, false)
		}
		if err := usecase.positions.applyItemAssignments(ctx, tx, result.Assignments); err != nil {
			return nil, err
		}
		rebalanced = result.Rebalanced
		if err := usecase.commitMutation(ctx, tx, input.ListId, models.OperationReorderItem); err != nil {
			return nil, err
		}
		return usecase.repository.ListPartitionItems(ctx, tx, input.ListId, input.GroupId, false)
	})
	if err != nil {
		return nil, err
	}
	trackMutation(models.OperationReorderItem)
	trackRebalance(rebalanced, rebalanceScopeItems)
	return items, nil
}

// BackfillPositions gives a position key to every item and group of the list that has none.
// It returns the number of keys written.
func (usecase *ListItemUsecase) BackfillPositions(ctx context.Context, listId string) (int, error) {
	count, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory, func(
		tx repositories.Transaction,
	) (int, error) {
		access, err := loadListAccess(ctx, usecase.repository, tx, listId, true)
		if err != nil {
			return 0, err
		}
		if err := usecase.enforceSecurity.WriteGroups(access); err != nil {
			return 0, err
		}

		items, err := usecase.repository.ListItems(ctx, tx, listId)
		if err != nil {
			return 0, err
		}
		partitions := make(map[string][]models.ListItem)
		for _, item := range items {
			key := ""
			if item.GroupId != nil {
				key = *item.GroupId
			}
			partitions[key] = append(partitions[key], item)
		}

		count := 0
		for _, partition := range partitions {
			assignments := ordering.Backfill(itemSiblings(partition))
			if err := usecase.positions.applyItemAssignments(ctx, tx, assignments); err != nil {
				return 0, err
			}
			count += len(assignments)
		}

		groups, err := usecase.repository.ListGroups(ctx, tx, listId, true)
		if err != nil {
			return 0, err
		}
		assignments := ordering.Backfill(groupSiblings(groups))
		if err := usecase.positions.applyGroupAssignments(ctx, tx, assignments); err != nil {
			return 0, err
		}
		count += len(assignments)

		if count == 0 {
			return 0, nil
		}
		return count, usecase.notifier.ListMutated(ctx, tx, listId, models.OperationBackfill, usecase.callerId())
	})
	if err != nil {
		return 0, err
	}
	if count > 0 {
		trackMutation(models.OperationBackfill)
	}
	return count, nil
}

func sameGroup(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
