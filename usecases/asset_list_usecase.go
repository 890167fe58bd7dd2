package usecases

import (
	"context"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/repositories"
	"github.com/checkmarble/asset-lists/usecases/executor_factory"
	"github.com/checkmarble/asset-lists/usecases/security"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type AssetListUsecaseRepository interface {
	listAccessReader
	ListAssetListsOfUser(ctx context.Context, exec repositories.Executor, userId models.UserId) ([]models.AssetList, error)
	CreateAssetList(ctx context.Context, exec repositories.Executor, input models.CreateAssetListInput, newListId string) error
	UpdateAssetList(ctx context.Context, exec repositories.Executor, input models.UpdateAssetListInput) error
	UpdateAssetListType(ctx context.Context, exec repositories.Executor, listId string,
		listType models.ListType, updatedBy models.UserId) error
	DeleteAssetList(ctx context.Context, exec repositories.Executor, listId string) error
	AddMember(ctx context.Context, exec repositories.Executor, input models.AddListMemberInput) error
	UpdateMemberPermission(ctx context.Context, exec repositories.Executor, listId string,
		userId models.UserId, permission models.MemberPermission) error
	RemoveMember(ctx context.Context, exec repositories.Executor, listId string, userId models.UserId) error
}

type AssetListUsecase struct {
	enforceSecurity    security.EnforceSecurityAssetList
	credentials        models.Credentials
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         AssetListUsecaseRepository
	notifier           ListChangeNotifier
}

func (usecase *AssetListUsecase) callerId() models.UserId {
	return usecase.credentials.ActorIdentity.UserId
}

func (usecase *AssetListUsecase) CreateAssetList(
	ctx context.Context,
	input models.CreateAssetListInput,
) (models.AssetListWithCapabilities, error) {
	input.OwnerId = usecase.callerId()
	if err := validateInput(input); err != nil {
		return models.AssetListWithCapabilities{}, err
	}

	list, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory, func(
		tx repositories.Transaction,
	) (models.AssetList, error) {
		newListId := uuid.NewString()
		if err := usecase.repository.CreateAssetList(ctx, tx, input, newListId); err != nil {
			return models.AssetList{}, err
		}
		if err := usecase.notifier.ListMutated(ctx, tx, newListId,
			models.OperationCreateList, usecase.callerId()); err != nil {
			return models.AssetList{}, err
		}
		return usecase.repository.GetAssetListById(ctx, tx, newListId, false)
	})
	if err != nil {
		return models.AssetListWithCapabilities{}, err
	}
	trackMutation(models.OperationCreateList)

	return models.AssetListWithCapabilities{
		AssetList:    list,
		Capabilities: usecase.enforceSecurity.Capabilities(models.ListAccess{List: list}),
	}, nil
}

func (usecase *AssetListUsecase) GetAssetList(ctx context.Context, listId string) (models.AssetListWithCapabilities, error) {
	access, err := loadListAccess(ctx, usecase.repository, usecase.executorFactory.NewExecutor(), listId, false)
	if err != nil {
		return models.AssetListWithCapabilities{}, err
	}
	if err := usecase.enforceSecurity.ReadList(access); err != nil {
		return models.AssetListWithCapabilities{}, err
	}

	return models.AssetListWithCapabilities{
		AssetList:    access.List,
		Capabilities: usecase.enforceSecurity.Capabilities(access),
	}, nil
}

// ListAssetLists returns the lists the caller owns or is a member of.
func (usecase *AssetListUsecase) ListAssetLists(ctx context.Context) ([]models.AssetList, error) {
	return usecase.repository.ListAssetListsOfUser(ctx, usecase.executorFactory.NewExecutor(), usecase.callerId())
}

func (usecase *AssetListUsecase) UpdateAssetList(ctx context.Context, input models.UpdateAssetListInput) (models.AssetList, error) {
	input.UpdatedBy = usecase.callerId()
	if err := validateInput(input); err != nil {
		return models.AssetList{}, err
	}

	list, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory, func(
		tx repositories.Transaction,
	) (models.AssetList, error) {
		access, err := loadListAccess(ctx, usecase.repository, tx, input.Id, true)
		if err != nil {
			return models.AssetList{}, err
		}
		if err := usecase.enforceSecurity.EditListSettings(access); err != nil {
			return models.AssetList{}, err
		}

		if err := usecase.repository.UpdateAssetList(ctx, tx, input); err != nil {
			return models.AssetList{}, err
		}
		if err := usecase.notifier.ListMutated(ctx, tx, input.Id,
			models.OperationUpdateList, usecase.callerId()); err != nil {
			return models.AssetList{}, err
		}
		return usecase.repository.GetAssetListById(ctx, tx, input.Id, false)
	})
	if err != nil {
		return models.AssetList{}, err
	}
	trackMutation(models.OperationUpdateList)
	return list, nil
}

// ChangeListType switches the list between mutual and collaborative. It is only possible while the
// list has no member, since the type defines who owns which item.
func (usecase *AssetListUsecase) ChangeListType(
	ctx context.Context,
	listId string,
	listType models.ListType,
) (models.AssetList, error) {
	if listType != models.ListTypeMutual && listType != models.ListTypeCollaborative {
		return models.AssetList{}, errors.Wrapf(models.BadParameterError, "invalid list type %q", listType)
	}

	list, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory, func(
		tx repositories.Transaction,
	) (models.AssetList, error) {
		access, err := loadListAccess(ctx, usecase.repository, tx, listId, true)
		if err != nil {
			return models.AssetList{}, err
		}
		if err := usecase.enforceSecurity.ChangeListType(access); err != nil {
			return models.AssetList{}, err
		}
		if access.List.Type == listType {
			return access.List, nil
		}

		if err := usecase.repository.UpdateAssetListType(ctx, tx, listId, listType, usecase.callerId()); err != nil {
			return models.AssetList{}, err
		}
		if err := usecase.notifier.ListMutated(ctx, tx, listId,
			models.OperationChangeType, usecase.callerId()); err != nil {
			return models.AssetList{}, err
		}
		return usecase.repository.GetAssetListById(ctx, tx, listId, false)
	})
	if err != nil {
		return models.AssetList{}, err
	}
	trackMutation(models.OperationChangeType)
	return list, nil
}

// DeleteAssetList hard deletes the list with its items, groups, memberships and suggestions.
func (usecase *AssetListUsecase) DeleteAssetList(ctx context.Context, listId string) error {
	err := usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		access, err := loadListAccess(ctx, usecase.repository, tx, listId, true)
		if err != nil {
			return err
		}
		if err := usecase.enforceSecurity.DeleteList(access); err != nil {
			return err
		}

		if err := usecase.repository.DeleteAssetList(ctx, tx, listId); err != nil {
			return err
		}
		return usecase.notifier.ListMutated(ctx, tx, listId, models.OperationDeleteList, usecase.callerId())
	})
	if err != nil {
		return err
	}
	trackMutation(models.OperationDeleteList)
	return nil
}

func (usecase *AssetListUsecase) ListMembers(ctx context.Context, listId string) ([]models.ListMembership, error) {
	access, err := loadListAccess(ctx, usecase.repository, usecase.executorFactory.NewExecutor(), listId, false)
	if err != nil {
		return nil, err
	}
	if err := usecase.enforceSecurity.ReadList(access); err != nil {
		return nil, err
	}
	return access.Memberships, nil
}

func (usecase *AssetListUsecase) AddMember(ctx context.Context, input models.AddListMemberInput) (models.ListMembership, error) {
	if err := validateInput(input); err != nil {
		return models.ListMembership{}, err
	}

	membership, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory, func(
		tx repositories.Transaction,
	) (models.ListMembership, error) {
		access, err := loadListAccess(ctx, usecase.repository, tx, input.ListId, true)
		if err != nil {
			return models.ListMembership{}, err
		}
		if err := usecase.enforceSecurity.ManageMembers(access); err != nil {
			return models.ListMembership{}, err
		}
		if access.List.OwnerId == input.UserId {
			return models.ListMembership{}, errors.WithStack(models.ErrOwnerCannotBeMember)
		}
		if access.MembershipOf(input.UserId) != nil {
			return models.ListMembership{}, errors.WithStack(models.ErrMemberAlreadyExists)
		}

		if err := usecase.repository.AddMember(ctx, tx, input); err != nil {
			if repositories.IsUniqueViolationError(err) {
				return models.ListMembership{}, errors.WithStack(models.ErrMemberAlreadyExists)
			}
			return models.ListMembership{}, err
		}
		if err := usecase.notifier.ListMutated(ctx, tx, input.ListId,
			models.OperationAddMember, usecase.callerId()); err != nil {
			return models.ListMembership{}, err
		}

		memberships, err := usecase.repository.ListMemberships(ctx, tx, input.ListId)
		if err != nil {
			return models.ListMembership{}, err
		}
		added := models.ListAccess{List: access.List, Memberships: memberships}.MembershipOf(input.UserId)
		if added == nil {
			return models.ListMembership{}, errors.Newf("membership of %s not found after insertion", input.UserId)
		}
		return *added, nil
	})
	if err != nil {
		return models.ListMembership{}, err
	}
	trackMutation(models.OperationAddMember)
	return membership, nil
}

func (usecase *AssetListUsecase) UpdateMemberPermission(
	ctx context.Context,
	listId string,
	userId models.UserId,
	permission models.MemberPermission,
) error {
	if models.MemberPermissionFrom(string(permission)) == models.MemberPermissionUnknown {
		return errors.Wrapf(models.BadParameterError, "invalid permission %q", permission)
	}

	err := usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		access, err := loadListAccess(ctx, usecase.repository, tx, listId, true)
		if err != nil {
			return err
		}
		if err := usecase.enforceSecurity.ManageMembers(access); err != nil {
			return err
		}

		if err := usecase.repository.UpdateMemberPermission(ctx, tx, listId, userId, permission); err != nil {
			return err
		}
		return usecase.notifier.ListMutated(ctx, tx, listId, models.OperationUpdateMember, usecase.callerId())
	})
	if err != nil {
		return err
	}
	trackMutation(models.OperationUpdateMember)
	return nil
}

func (usecase *AssetListUsecase) RemoveMember(ctx context.Context, listId string, userId models.UserId) error {
	return usecase.removeMember(ctx, listId, userId, false)
}

// LeaveList removes the caller's own membership.
func (usecase *AssetListUsecase) LeaveList(ctx context.Context, listId string) error {
	return usecase.removeMember(ctx, listId, usecase.callerId(), true)
}

func (usecase *AssetListUsecase) removeMember(ctx context.Context, listId string, userId models.UserId, self bool) error {
	err := usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		access, err := loadListAccess(ctx, usecase.repository, tx, listId, true)
		if err != nil {
			return err
		}
		if self {
			if access.MembershipOf(userId) == nil {
				return errors.Wrap(models.NotFoundError, "the user is not a member of this list")
			}
		} else if err := usecase.enforceSecurity.ManageMembers(access); err != nil {
			return err
		}

		if err := usecase.repository.RemoveMember(ctx, tx, listId, userId); err != nil {
			return err
		}
		return usecase.notifier.ListMutated(ctx, tx, listId, models.OperationRemoveMember, usecase.callerId())
	})
	if err != nil {
		return err
	}
	trackMutation(models.OperationRemoveMember)
	return nil
}
