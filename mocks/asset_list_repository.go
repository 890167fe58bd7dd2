package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/repositories"
)

type AssetListRepository struct {
	mock.Mock
}

func (m *AssetListRepository) GetAssetListById(ctx context.Context, exec repositories.Executor,
	listId string, forUpdate bool,
) (models.AssetList, error) {
	args := m.Called(ctx, exec, listId, forUpdate)
	return args.Get(0).(models.AssetList), args.Error(1)
}

func (m *AssetListRepository) ListAssetListsOfUser(ctx context.Context, exec repositories.Executor,
	userId models.UserId,
) ([]models.AssetList, error) {
	args := m.Called(ctx, exec, userId)
	return args.Get(0).([]models.AssetList), args.Error(1)
}

func (m *AssetListRepository) CreateAssetList(ctx context.Context, exec repositories.Executor,
	input models.CreateAssetListInput, newListId string,
) error {
	args := m.Called(ctx, exec, input, newListId)
	return args.Error(0)
}

func (m *AssetListRepository) UpdateAssetList(ctx context.Context, exec repositories.Executor,
	input models.UpdateAssetListInput,
) error {
	args := m.Called(ctx, exec, input)
	return args.Error(0)
}

func (m *AssetListRepository) UpdateAssetListType(ctx context.Context, exec repositories.Executor,
	listId string, listType models.ListType, updatedBy models.UserId,
) error {
	args := m.Called(ctx, exec, listId, listType, updatedBy)
	return args.Error(0)
}

func (m *AssetListRepository) TouchAssetList(ctx context.Context, exec repositories.Executor,
	listId string, updatedBy models.UserId,
) error {
	args := m.Called(ctx, exec, listId, updatedBy)
	return args.Error(0)
}

func (m *AssetListRepository) DeleteAssetList(ctx context.Context, exec repositories.Executor, listId string) error {
	args := m.Called(ctx, exec, listId)
	return args.Error(0)
}

func (m *AssetListRepository) ListMemberships(ctx context.Context, exec repositories.Executor,
	listId string,
) ([]models.ListMembership, error) {
	args := m.Called(ctx, exec, listId)
	return args.Get(0).([]models.ListMembership), args.Error(1)
}

func (m *AssetListRepository) AddMember(ctx context.Context, exec repositories.Executor,
	input models.AddListMemberInput,
) error {
	args := m.Called(ctx, exec, input)
	return args.Error(0)
}

func (m *AssetListRepository) UpdateMemberPermission(ctx context.Context, exec repositories.Executor,
	listId string, userId models.UserId, permission models.MemberPermission,
) error {
	args := m.Called(ctx, exec, listId, userId, permission)
	return args.Error(0)
}

func (m *AssetListRepository) RemoveMember(ctx context.Context, exec repositories.Executor,
	listId string, userId models.UserId,
) error {
	args := m.Called(ctx, exec, listId, userId)
	return args.Error(0)
}

func (m *AssetListRepository) ListItems(ctx context.Context, exec repositories.Executor,
	listId string,
) ([]models.ListItem, error) {
	args := m.Called(ctx, exec, listId)
	return args.Get(0).([]models.ListItem), args.Error(1)
}

func (m *AssetListRepository) ListPartitionItems(ctx context.Context, exec repositories.Executor,
	listId string, groupId *string, forUpdate bool,
) ([]models.ListItem, error) {
	args := m.Called(ctx, exec, listId, groupId, forUpdate)
	return args.Get(0).([]models.ListItem), args.Error(1)
}

func (m *AssetListRepository) GetListItemById(ctx context.Context, exec repositories.Executor,
	itemId string, forUpdate bool,
) (models.ListItem, error) {
	args := m.Called(ctx, exec, itemId, forUpdate)
	return args.Get(0).(models.ListItem), args.Error(1)
}

func (m *AssetListRepository) GetSectionItem(ctx context.Context, exec repositories.Executor,
	listId string, assetId string, addedBy models.UserId,
) (*models.ListItem, error) {
	args := m.Called(ctx, exec, listId, assetId, addedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ListItem), args.Error(1)
}

func (m *AssetListRepository) CreateListItem(ctx context.Context, exec repositories.Executor,
	input models.CreateListItemInput, newItemId string,
) error {
	args := m.Called(ctx, exec, input, newItemId)
	return args.Error(0)
}

func (m *AssetListRepository) UpdateListItem(ctx context.Context, exec repositories.Executor,
	input models.UpdateListItemInput,
) error {
	args := m.Called(ctx, exec, input)
	return args.Error(0)
}

func (m *AssetListRepository) DeleteListItem(ctx context.Context, exec repositories.Executor, itemId string) error {
	args := m.Called(ctx, exec, itemId)
	return args.Error(0)
}

func (m *AssetListRepository) ListGroups(ctx context.Context, exec repositories.Executor,
	listId string, forUpdate bool,
) ([]models.ListGroup, error) {
	args := m.Called(ctx, exec, listId, forUpdate)
	return args.Get(0).([]models.ListGroup), args.Error(1)
}

func (m *AssetListRepository) GetListGroupById(ctx context.Context, exec repositories.Executor,
	groupId string,
) (models.ListGroup, error) {
	args := m.Called(ctx, exec, groupId)
	return args.Get(0).(models.ListGroup), args.Error(1)
}

func (m *AssetListRepository) CreateListGroup(ctx context.Context, exec repositories.Executor,
	input models.CreateListGroupInput, newGroupId string,
) error {
	args := m.Called(ctx, exec, input, newGroupId)
	return args.Error(0)
}

func (m *AssetListRepository) UpdateListGroup(ctx context.Context, exec repositories.Executor,
	input models.UpdateListGroupInput,
) error {
	args := m.Called(ctx, exec, input)
	return args.Error(0)
}

func (m *AssetListRepository) DeleteListGroup(ctx context.Context, exec repositories.Executor, groupId string) error {
	args := m.Called(ctx, exec, groupId)
	return args.Error(0)
}

func (m *AssetListRepository) GetSuggestionById(ctx context.Context, exec repositories.Executor,
	suggestionId string, forUpdate bool,
) (models.ListSuggestion, error) {
	args := m.Called(ctx, exec, suggestionId, forUpdate)
	return args.Get(0).(models.ListSuggestion), args.Error(1)
}

func (m *AssetListRepository) ListSuggestions(ctx context.Context, exec repositories.Executor,
	filter models.SuggestionFilter,
) ([]models.ListSuggestion, error) {
	args := m.Called(ctx, exec, filter)
	return args.Get(0).([]models.ListSuggestion), args.Error(1)
}

func (m *AssetListRepository) FindPendingSuggestion(ctx context.Context, exec repositories.Executor,
	key models.PendingSuggestionKey,
) (*models.ListSuggestion, error) {
	args := m.Called(ctx, exec, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ListSuggestion), args.Error(1)
}

func (m *AssetListRepository) CreateSuggestion(ctx context.Context, exec repositories.Executor,
	input models.ProposeSuggestionInput, proposedBy models.UserId, newSuggestionId string,
) error {
	args := m.Called(ctx, exec, input, proposedBy, newSuggestionId)
	return args.Error(0)
}

func (m *AssetListRepository) UpdateSuggestionStatus(ctx context.Context, exec repositories.Executor,
	input models.UpdateSuggestionStatusInput,
) error {
	args := m.Called(ctx, exec, input)
	return args.Error(0)
}

func (m *AssetListRepository) DeletePendingSuggestion(ctx context.Context, exec repositories.Executor,
	suggestionId string,
) error {
	args := m.Called(ctx, exec, suggestionId)
	return args.Error(0)
}
