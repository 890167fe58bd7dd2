package usecases

import (
	"context"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/repositories"
	"github.com/checkmarble/asset-lists/usecases/executor_factory"
	"github.com/checkmarble/asset-lists/usecases/ordering"
	"github.com/checkmarble/asset-lists/usecases/security"

	"github.com/google/uuid"
)

type ListGroupUsecaseRepository interface {
	listAccessReader
	listPositionsRepository
	TouchAssetList(ctx context.Context, exec repositories.Executor, listId string, updatedBy models.UserId) error
	CreateListGroup(ctx context.Context, exec repositories.Executor, input models.CreateListGroupInput, newGroupId string) error
	DeleteListGroup(ctx context.Context, exec repositories.Executor, groupId string) error
}

type ListGroupUsecase struct {
	enforceSecurity    security.EnforceSecurityAssetList
	credentials        models.Credentials
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         ListGroupUsecaseRepository
	positions          listPositions
	notifier           ListChangeNotifier
}

func (usecase *ListGroupUsecase) callerId() models.UserId {
	return usecase.credentials.ActorIdentity.UserId
}

func (usecase *ListGroupUsecase) commitMutation(
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

func (usecase *ListGroupUsecase) ListGroups(ctx context.Context, listId string) ([]models.ListGroup, error) {
	exec := usecase.executorFactory.NewExecutor()
	access, err := loadListAccess(ctx, usecase.repository, exec, listId, false)
	if err != nil {
		return nil, err
	}
	if err := usecase.enforceSecurity.ReadList(access); err != nil {
		return nil, err
	}
	return usecase.repository.ListGroups(ctx, exec, listId, false)
}

// lockGroupList locks the list of the group, then reads the group again under the lock.
func (usecase *ListGroupUsecase) lockGroupList(
	ctx context.Context,
	tx repositories.Transaction,
	groupId string,
) (models.ListAccess, models.ListGroup, error) {
	group, err := usecase.repository.GetListGroupById(ctx, tx, groupId)
	if err != nil {
		return models.ListAccess{}, models.ListGroup{}, err
	}
	access, err := loadListAccess(ctx, usecase.repository, tx, group.ListId, true)
	if err != nil {
		return models.ListAccess{}, models.ListGroup{}, err
	}
	group, err = usecase.repository.GetListGroupById(ctx, tx, groupId)
	if err != nil {
		return models.ListAccess{}, models.ListGroup{}, err
	}
	return access, group, nil
}

// CreateGroup appends a new group after the existing ones.
func (usecase *ListGroupUsecase) CreateGroup(ctx context.Context, input models.CreateListGroupInput) (models.ListGroup, error) {
	if err := validateInput(input); err != nil {
		return models.ListGroup{}, err
	}

	group, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory, func(
		tx repositories.Transaction,
	) (models.ListGroup, error) {
		access, err := loadListAccess(ctx, usecase.repository, tx, input.ListId, true)
		if err != nil {
			return models.ListGroup{}, err
		}
		if err := usecase.enforceSecurity.WriteGroups(access); err != nil {
			return models.ListGroup{}, err
		}

		partition, err := usecase.positions.loadGroupPartition(ctx, tx, input.ListId)
		if err != nil {
			return models.ListGroup{}, err
		}
		input.Position = ordering.NextKey(partition.siblings)

		newGroupId := uuid.NewString()
		if err := usecase.repository.CreateListGroup(ctx, tx, input, newGroupId); err != nil {
			return models.ListGroup{}, err
		}
		if err := usecase.commitMutation(ctx, tx, input.ListId, models.OperationCreateGroup); err != nil {
			return models.ListGroup{}, err
		}
		return usecase.repository.GetListGroupById(ctx, tx, newGroupId)
	})
	if err != nil {
		return models.ListGroup{}, err
	}
	trackMutation(models.OperationCreateGroup)
	return group, nil
}

// UpdateGroup changes the name, color or collapsed flag of the group. Positions are only changed
// through ReorderGroup.
func (usecase *ListGroupUsecase) UpdateGroup(ctx context.Context, input models.UpdateListGroupInput) (models.ListGroup, error) {
	input.Position = nil
	if err := validateInput(input); err != nil {
		return models.ListGroup{}, err
	}

	group, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory, func(
		tx repositories.Transaction,
	) (models.ListGroup, error) {
		access, group, err := usecase.lockGroupList(ctx, tx, input.Id)
		if err != nil {
			return models.ListGroup{}, err
		}
		if err := usecase.enforceSecurity.WriteGroups(access); err != nil {
			return models.ListGroup{}, err
		}

		if err := usecase.repository.UpdateListGroup(ctx, tx, input); err != nil {
			return models.ListGroup{}, err
		}
		if err := usecase.commitMutation(ctx, tx, group.ListId, models.OperationUpdateGroup); err != nil {
			return models.ListGroup{}, err
		}
		return usecase.repository.GetListGroupById(ctx, tx, input.Id)
	})
	if err != nil {
		return models.ListGroup{}, err
	}
	trackMutation(models.OperationUpdateGroup)
	return group, nil
}

// DeleteGroup deletes the group. Its items become ungrouped and are appended, in their order,
// after the existing ungrouped items.
func (usecase *ListGroupUsecase) DeleteGroup(ctx context.Context, groupId string) error {
	err := usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		access, group, err := usecase.lockGroupList(ctx, tx, groupId)
		if err != nil {
			return err
		}
		if err := usecase.enforceSecurity.WriteGroups(access); err != nil {
			return err
		}

		moving, err := usecase.positions.loadItemPartition(ctx, tx, group.ListId, &group.Id)
		if err != nil {
			return err
		}
		ungrouped, err := usecase.positions.loadItemPartition(ctx, tx, group.ListId, nil)
		if err != nil {
			return err
		}

		next := ordering.NextKey(ungrouped.siblings)
		for i, sibling := range moving.siblings {
			position := next + int64(i)*ordering.GAP
			if err := usecase.repository.UpdateListItem(ctx, tx, models.UpdateListItemInput{
				Id:       sibling.Id,
				SetGroup: true,
				GroupId:  nil,
				Position: &position,
			}); err != nil {
				return err
			}
		}

		if err := usecase.repository.DeleteListGroup(ctx, tx, groupId); err != nil {
			return err
		}
		return usecase.commitMutation(ctx, tx, group.ListId, models.OperationDeleteGroup)
	})
	if err != nil {
		return err
	}
	trackMutation(models.OperationDeleteGroup)
	return nil
}

// ReorderGroup moves the group at fromIndex to toIndex and returns the groups in their new order.
func (usecase *ListGroupUsecase) ReorderGroup(ctx context.Context, input models.ReorderGroupInput) ([]models.ListGroup, error) {
	var rebalanced bool
	groups, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory, func(
		tx repositories.Transaction,
	) ([]models.ListGroup, error) {
		access, err := loadListAccess(ctx, usecase.repository, tx, input.ListId, true)
		if err != nil {
			return nil, err
		}
		if err := usecase.enforceSecurity.WriteGroups(access); err != nil {
			return nil, err
		}

		partition, err := usecase.positions.loadGroupPartition(ctx, tx, input.ListId)
		if err != nil {
			return nil, err
		}
		result, err := ordering.Move(partition.siblings, input.FromIndex, input.ToIndex)
		if err != nil {
			return nil, err
		}
		if len(result.Assignments) > 0 {
			if err := usecase.positions.applyGroupAssignments(ctx, tx, result.Assignments); err != nil {
				return nil, err
			}
		}
		if len(result.Assignments) > 0 || partition.backfilled {
			if err := usecase.commitMutation(ctx, tx, input.ListId, models.OperationReorderGroup); err != nil {
				return nil, err
			}
		}
		rebalanced = result.Rebalanced
		return usecase.repository.ListGroups(ctx, tx, input.ListId, false)
	})
	if err != nil {
		return nil, err
	}
	trackMutation(models.OperationReorderGroup)
	trackRebalance(rebalanced, rebalanceScopeGroups)
	return groups, nil
}
