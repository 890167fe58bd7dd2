package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/checkmarble/asset-lists/mocks"
	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/usecases/security"
)

type ListSuggestionUsecaseTestSuite struct {
	suite.Suite
	repository         *mocks.AssetListRepository
	taskQueue          *mocks.TaskQueueRepository
	transaction        *mocks.Transaction
	transactionFactory *mocks.TransactionFactory
	executorFactory    *mocks.ExecutorFactory

	ctx          context.Context
	listId       string
	suggestionId string
	ownerId      models.UserId
	proposerId   models.UserId
	targetId     models.UserId
	readerId     models.UserId
	list         models.AssetList
	memberships  []models.ListMembership
	pendingAdd   models.ListSuggestion
}

func (suite *ListSuggestionUsecaseTestSuite) SetupTest() {
	suite.repository = new(mocks.AssetListRepository)
	suite.taskQueue = new(mocks.TaskQueueRepository)
	suite.transaction = new(mocks.Transaction)
	suite.transactionFactory = &mocks.TransactionFactory{TxMock: suite.transaction}
	suite.executorFactory = new(mocks.ExecutorFactory)

	suite.ctx = context.Background()
	suite.listId = "7b0d5b42-4ac1-4a8e-8f0b-7d63a4a9e5b1"
	suite.suggestionId = "c8f4d8b5-0b5e-4f4e-9d57-6b0f1c6f3a11"
	suite.ownerId = "owner"
	suite.proposerId = "user-a"
	suite.targetId = "user-b"
	suite.readerId = "user-r"
	suite.list = models.AssetList{
		Id:      suite.listId,
		Name:    "watchlist",
		Type:    models.ListTypeCollaborative,
		OwnerId: suite.ownerId,
	}
	suite.memberships = []models.ListMembership{
		{ListId: suite.listId, UserId: suite.proposerId, Permission: models.MemberPermissionWrite},
		{ListId: suite.listId, UserId: suite.targetId, Permission: models.MemberPermissionWrite},
		{ListId: suite.listId, UserId: suite.readerId, Permission: models.MemberPermissionRead},
	}
	suite.pendingAdd = models.ListSuggestion{
		Id:           suite.suggestionId,
		ListId:       suite.listId,
		AssetId:      "asset-x",
		Kind:         models.SuggestionKindAdd,
		ProposedBy:   suite.proposerId,
		TargetUserId: suite.targetId,
		Status:       models.SuggestionStatusPending,
		CreatedAt:    time.Now(),
	}
}

func (suite *ListSuggestionUsecaseTestSuite) makeUsecase(caller models.UserId) *ListSuggestionUsecase {
	credentials := models.Credentials{ActorIdentity: models.Identity{UserId: caller}}
	return &ListSuggestionUsecase{
		enforceSecurity:    &security.EnforceSecurityAssetListImpl{Credentials: credentials},
		credentials:        credentials,
		executorFactory:    suite.executorFactory,
		transactionFactory: suite.transactionFactory,
		repository:         suite.repository,
		positions:          listPositions{repository: suite.repository},
		notifier:           NewListChangeNotifier(suite.taskQueue),
	}
}

func (suite *ListSuggestionUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.repository.AssertExpectations(t)
	suite.taskQueue.AssertExpectations(t)
	suite.transactionFactory.AssertExpectations(t)
	suite.executorFactory.AssertExpectations(t)
}

func (suite *ListSuggestionUsecaseTestSuite) expectLockedList(list models.AssetList) {
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetAssetListById", suite.ctx, suite.transaction, suite.listId, true).Return(list, nil)
	suite.repository.On("ListMemberships", suite.ctx, suite.transaction, suite.listId).Return(suite.memberships, nil)
}

// the suggestion is read once to find its list, then again under the list lock
func (suite *ListSuggestionUsecaseTestSuite) expectLockedSuggestion(suggestion models.ListSuggestion) {
	suite.expectLockedList(suite.list)
	suite.repository.On("GetSuggestionById", suite.ctx, suite.transaction, suggestion.Id, mock.Anything).
		Return(suggestion, nil).Twice()
}

func (suite *ListSuggestionUsecaseTestSuite) expectEvent(kind models.ListChangeKind, operation string) {
	suite.taskQueue.On("EnqueueListChangeTask", suite.ctx, suite.transaction,
		mock.MatchedBy(func(e models.ListChangeEvent) bool {
			return e.Kind == kind && e.Operation == operation && e.ListId == suite.listId
		})).Return(nil).Once()
}

func (suite *ListSuggestionUsecaseTestSuite) proposeInput() models.ProposeSuggestionInput {
	return models.ProposeSuggestionInput{
		ListId:       suite.listId,
		AssetId:      "asset-x",
		Kind:         models.SuggestionKindAdd,
		TargetUserId: suite.targetId,
	}
}

func (suite *ListSuggestionUsecaseTestSuite) pendingKey() models.PendingSuggestionKey {
	return models.PendingSuggestionKey{
		ListId:       suite.listId,
		AssetId:      "asset-x",
		Kind:         models.SuggestionKindAdd,
		TargetUserId: suite.targetId,
	}
}

func (suite *ListSuggestionUsecaseTestSuite) Test_ProposeSuggestion_nominal() {
	input := suite.proposeInput()
	suite.expectLockedList(suite.list)
	suite.repository.On("FindPendingSuggestion", suite.ctx, suite.transaction, suite.pendingKey()).Return(nil, nil)
	suite.repository.On("CreateSuggestion", suite.ctx, suite.transaction, input, suite.proposerId, mock.Anything).Return(nil)
	suite.repository.On("GetSuggestionById", suite.ctx, suite.transaction, mock.Anything, false).Return(suite.pendingAdd, nil)
	suite.expectEvent(models.ListChangeSuggestionChanged, models.OperationPropose)

	result, err := suite.makeUsecase(suite.proposerId).ProposeSuggestion(suite.ctx, input)

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, models.SuggestionStatusPending, result.Status)
	assert.Equal(t, suite.targetId, result.TargetUserId)
	suite.AssertExpectations()
}

func (suite *ListSuggestionUsecaseTestSuite) Test_ProposeSuggestion_duplicate_pending() {
	suite.expectLockedList(suite.list)
	existing := suite.pendingAdd
	suite.repository.On("FindPendingSuggestion", suite.ctx, suite.transaction, suite.pendingKey()).Return(&existing, nil)

	_, err := suite.makeUsecase(suite.proposerId).ProposeSuggestion(suite.ctx, suite.proposeInput())

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrDuplicateSuggestion)
	assert.ErrorIs(t, err, models.ConflictError)
	suite.repository.AssertNotCalled(t, "CreateSuggestion", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *ListSuggestionUsecaseTestSuite) Test_ProposeSuggestion_to_self() {
	input := suite.proposeInput()
	input.TargetUserId = suite.proposerId

	_, err := suite.makeUsecase(suite.proposerId).ProposeSuggestion(suite.ctx, input)

	assert.ErrorIs(suite.T(), err, models.ErrSuggestionToSelf)
	suite.AssertExpectations()
}

func (suite *ListSuggestionUsecaseTestSuite) Test_ProposeSuggestion_invalid_kind() {
	input := suite.proposeInput()
	input.Kind = models.SuggestionKindUnknown

	_, err := suite.makeUsecase(suite.proposerId).ProposeSuggestion(suite.ctx, input)

	assert.ErrorIs(suite.T(), err, models.BadParameterError)
	suite.AssertExpectations()
}

func (suite *ListSuggestionUsecaseTestSuite) Test_ProposeSuggestion_target_without_section() {
	input := suite.proposeInput()
	input.TargetUserId = suite.readerId
	suite.expectLockedList(suite.list)

	_, err := suite.makeUsecase(suite.proposerId).ProposeSuggestion(suite.ctx, input)

	assert.ErrorIs(suite.T(), err, models.ErrSuggestionTargetHasNoSection)
	suite.AssertExpectations()
}

func (suite *ListSuggestionUsecaseTestSuite) Test_ProposeSuggestion_by_reader() {
	suite.expectLockedList(suite.list)

	_, err := suite.makeUsecase(suite.readerId).ProposeSuggestion(suite.ctx, suite.proposeInput())

	assert.ErrorIs(suite.T(), err, models.ForbiddenError)
	suite.AssertExpectations()
}

func (suite *ListSuggestionUsecaseTestSuite) Test_ProposeSuggestion_on_mutual_list() {
	mutual := suite.list
	mutual.Type = models.ListTypeMutual
	suite.expectLockedList(mutual)

	_, err := suite.makeUsecase(suite.proposerId).ProposeSuggestion(suite.ctx, suite.proposeInput())

	assert.ErrorIs(suite.T(), err, models.ForbiddenError)
	suite.AssertExpectations()
}

// A proposes to add X to B's section, B accepts: the item is created in B's section, at the end of
// the ungrouped partition.
func (suite *ListSuggestionUsecaseTestSuite) Test_RespondToSuggestion_accept_add() {
	suite.expectLockedSuggestion(suite.pendingAdd)
	accepted := suite.pendingAdd
	accepted.Status = models.SuggestionStatusAccepted
	suite.repository.On("GetSuggestionById", suite.ctx, suite.transaction, suite.suggestionId, false).
		Return(accepted, nil).Once()

	position := int64(10)
	suite.repository.On("GetSectionItem", suite.ctx, suite.transaction, suite.listId, "asset-x", suite.targetId).
		Return(nil, nil)
	suite.repository.On("ListPartitionItems", suite.ctx, suite.transaction, suite.listId, (*string)(nil), true).
		Return([]models.ListItem{{
			Id: "item-1", ListId: suite.listId, AssetId: "asset-y",
			AddedBy: suite.proposerId, Position: &position,
		}}, nil)
	suite.repository.On("CreateListItem", suite.ctx, suite.transaction,
		mock.MatchedBy(func(input models.CreateListItemInput) bool {
			return input.AssetId == "asset-x" && input.AddedBy == suite.targetId &&
				input.GroupId == nil && input.Position == 20 && input.Note == ""
		}), mock.Anything).Return(nil).Once()
	suite.repository.On("TouchAssetList", suite.ctx, suite.transaction, suite.listId, suite.targetId).Return(nil)
	suite.repository.On("UpdateSuggestionStatus", suite.ctx, suite.transaction,
		mock.MatchedBy(func(input models.UpdateSuggestionStatusInput) bool {
			return input.Id == suite.suggestionId && input.Status == models.SuggestionStatusAccepted &&
				input.ResponseNote == "thanks"
		})).Return(nil)
	suite.expectEvent(models.ListChangeListMutated, models.OperationRespond)
	suite.expectEvent(models.ListChangeSuggestionChanged, models.OperationRespond)

	result, err := suite.makeUsecase(suite.targetId).RespondToSuggestion(suite.ctx, models.RespondToSuggestionInput{
		SuggestionId: suite.suggestionId,
		Decision:     models.SuggestionDecisionAccept,
		ResponseNote: "thanks",
	})

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, models.SuggestionStatusAccepted, result.Status)
	suite.AssertExpectations()
}

func (suite *ListSuggestionUsecaseTestSuite) Test_RespondToSuggestion_accept_add_already_present() {
	suite.expectLockedSuggestion(suite.pendingAdd)
	accepted := suite.pendingAdd
	accepted.Status = models.SuggestionStatusAccepted
	suite.repository.On("GetSuggestionById", suite.ctx, suite.transaction, suite.suggestionId, false).
		Return(accepted, nil).Once()
	suite.repository.On("GetSectionItem", suite.ctx, suite.transaction, suite.listId, "asset-x", suite.targetId).
		Return(&models.ListItem{Id: "item-2", ListId: suite.listId, AssetId: "asset-x", AddedBy: suite.targetId}, nil)
	suite.repository.On("UpdateSuggestionStatus", suite.ctx, suite.transaction, mock.Anything).Return(nil)
	suite.expectEvent(models.ListChangeSuggestionChanged, models.OperationRespond)

	result, err := suite.makeUsecase(suite.targetId).RespondToSuggestion(suite.ctx, models.RespondToSuggestionInput{
		SuggestionId: suite.suggestionId,
		Decision:     models.SuggestionDecisionAccept,
	})

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, models.SuggestionStatusAccepted, result.Status)
	suite.repository.AssertNotCalled(t, "CreateListItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *ListSuggestionUsecaseTestSuite) Test_RespondToSuggestion_accept_remove_of_missing_item() {
	pendingRemove := suite.pendingAdd
	pendingRemove.Kind = models.SuggestionKindRemove
	suite.expectLockedSuggestion(pendingRemove)
	accepted := pendingRemove
	accepted.Status = models.SuggestionStatusAccepted
	suite.repository.On("GetSuggestionById", suite.ctx, suite.transaction, suite.suggestionId, false).
		Return(accepted, nil).Once()
	suite.repository.On("GetSectionItem", suite.ctx, suite.transaction, suite.listId, "asset-x", suite.targetId).
		Return(nil, nil)
	suite.repository.On("UpdateSuggestionStatus", suite.ctx, suite.transaction, mock.Anything).Return(nil)
	suite.expectEvent(models.ListChangeSuggestionChanged, models.OperationRespond)

	result, err := suite.makeUsecase(suite.targetId).RespondToSuggestion(suite.ctx, models.RespondToSuggestionInput{
		SuggestionId: suite.suggestionId,
		Decision:     models.SuggestionDecisionAccept,
	})

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, models.SuggestionStatusAccepted, result.Status)
	suite.repository.AssertNotCalled(t, "DeleteListItem", mock.Anything, mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *ListSuggestionUsecaseTestSuite) Test_RespondToSuggestion_accept_remove() {
	pendingRemove := suite.pendingAdd
	pendingRemove.Kind = models.SuggestionKindRemove
	suite.expectLockedSuggestion(pendingRemove)
	accepted := pendingRemove
	accepted.Status = models.SuggestionStatusAccepted
	suite.repository.On("GetSuggestionById", suite.ctx, suite.transaction, suite.suggestionId, false).
		Return(accepted, nil).Once()
	suite.repository.On("GetSectionItem", suite.ctx, suite.transaction, suite.listId, "asset-x", suite.targetId).
		Return(&models.ListItem{Id: "item-3", ListId: suite.listId, AssetId: "asset-x", AddedBy: suite.targetId}, nil)
	suite.repository.On("DeleteListItem", suite.ctx, suite.transaction, "item-3").Return(nil)
	suite.repository.On("TouchAssetList", suite.ctx, suite.transaction, suite.listId, suite.targetId).Return(nil)
	suite.repository.On("UpdateSuggestionStatus", suite.ctx, suite.transaction, mock.Anything).Return(nil)
	suite.expectEvent(models.ListChangeListMutated, models.OperationRespond)
	suite.expectEvent(models.ListChangeSuggestionChanged, models.OperationRespond)

	_, err := suite.makeUsecase(suite.targetId).RespondToSuggestion(suite.ctx, models.RespondToSuggestionInput{
		SuggestionId: suite.suggestionId,
		Decision:     models.SuggestionDecisionAccept,
	})

	assert.NoError(suite.T(), err)
	suite.AssertExpectations()
}

func (suite *ListSuggestionUsecaseTestSuite) Test_RespondToSuggestion_reject() {
	suite.expectLockedSuggestion(suite.pendingAdd)
	rejected := suite.pendingAdd
	rejected.Status = models.SuggestionStatusRejected
	suite.repository.On("GetSuggestionById", suite.ctx, suite.transaction, suite.suggestionId, false).
		Return(rejected, nil).Once()
	suite.repository.On("UpdateSuggestionStatus", suite.ctx, suite.transaction,
		mock.MatchedBy(func(input models.UpdateSuggestionStatusInput) bool {
			return input.Status == models.SuggestionStatusRejected
		})).Return(nil)
	suite.expectEvent(models.ListChangeSuggestionChanged, models.OperationRespond)

	result, err := suite.makeUsecase(suite.targetId).RespondToSuggestion(suite.ctx, models.RespondToSuggestionInput{
		SuggestionId: suite.suggestionId,
		Decision:     models.SuggestionDecisionReject,
	})

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, models.SuggestionStatusRejected, result.Status)
	suite.repository.AssertNotCalled(t, "GetSectionItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *ListSuggestionUsecaseTestSuite) Test_RespondToSuggestion_not_target() {
	suite.expectLockedSuggestion(suite.pendingAdd)

	_, err := suite.makeUsecase(suite.proposerId).RespondToSuggestion(suite.ctx, models.RespondToSuggestionInput{
		SuggestionId: suite.suggestionId,
		Decision:     models.SuggestionDecisionAccept,
	})

	assert.ErrorIs(suite.T(), err, models.ForbiddenError)
	suite.AssertExpectations()
}

func (suite *ListSuggestionUsecaseTestSuite) Test_RespondToSuggestion_already_resolved() {
	rejected := suite.pendingAdd
	rejected.Status = models.SuggestionStatusRejected
	suite.expectLockedSuggestion(rejected)

	_, err := suite.makeUsecase(suite.targetId).RespondToSuggestion(suite.ctx, models.RespondToSuggestionInput{
		SuggestionId: suite.suggestionId,
		Decision:     models.SuggestionDecisionAccept,
	})

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrSuggestionNotPending)
	assert.ErrorIs(t, err, models.ConflictError)
	suite.AssertExpectations()
}

func (suite *ListSuggestionUsecaseTestSuite) Test_RespondToSuggestion_failed_apply_keeps_pending() {
	suite.expectLockedSuggestion(suite.pendingAdd)
	repositoryError := errors.New("some repository error")
	suite.repository.On("GetSectionItem", suite.ctx, suite.transaction, suite.listId, "asset-x", suite.targetId).
		Return(nil, repositoryError)

	_, err := suite.makeUsecase(suite.targetId).RespondToSuggestion(suite.ctx, models.RespondToSuggestionInput{
		SuggestionId: suite.suggestionId,
		Decision:     models.SuggestionDecisionAccept,
	})

	t := suite.T()
	assert.ErrorIs(t, err, repositoryError)
	suite.repository.AssertNotCalled(t, "UpdateSuggestionStatus", mock.Anything, mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *ListSuggestionUsecaseTestSuite) Test_CancelSuggestion_nominal() {
	suite.expectLockedSuggestion(suite.pendingAdd)
	suite.repository.On("DeletePendingSuggestion", suite.ctx, suite.transaction, suite.suggestionId).Return(nil)
	suite.expectEvent(models.ListChangeSuggestionChanged, models.OperationCancel)

	err := suite.makeUsecase(suite.proposerId).CancelSuggestion(suite.ctx, suite.suggestionId)

	assert.NoError(suite.T(), err)
	suite.AssertExpectations()
}

func (suite *ListSuggestionUsecaseTestSuite) Test_CancelSuggestion_by_target() {
	suite.expectLockedSuggestion(suite.pendingAdd)

	err := suite.makeUsecase(suite.targetId).CancelSuggestion(suite.ctx, suite.suggestionId)

	t := suite.T()
	assert.ErrorIs(t, err, models.ForbiddenError)
	suite.repository.AssertNotCalled(t, "DeletePendingSuggestion", mock.Anything, mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *ListSuggestionUsecaseTestSuite) Test_CancelSuggestion_already_accepted() {
	accepted := suite.pendingAdd
	accepted.Status = models.SuggestionStatusAccepted
	suite.expectLockedSuggestion(accepted)

	err := suite.makeUsecase(suite.proposerId).CancelSuggestion(suite.ctx, suite.suggestionId)

	assert.ErrorIs(suite.T(), err, models.ErrSuggestionNotPending)
	suite.AssertExpectations()
}

func (suite *ListSuggestionUsecaseTestSuite) Test_GetSuggestion_not_involved() {
	suite.executorFactory.On("NewExecutor").Return(suite.transaction)
	suite.repository.On("GetSuggestionById", suite.ctx, suite.transaction, suite.suggestionId, false).
		Return(suite.pendingAdd, nil)

	_, err := suite.makeUsecase(suite.readerId).GetSuggestion(suite.ctx, suite.suggestionId)

	assert.ErrorIs(suite.T(), err, models.ForbiddenError)
	suite.AssertExpectations()
}

func (suite *ListSuggestionUsecaseTestSuite) Test_ListSuggestions_partitions_by_caller() {
	incoming := models.ListSuggestion{Id: "s1", ListId: suite.listId, ProposedBy: suite.proposerId, TargetUserId: suite.targetId}
	outgoing := models.ListSuggestion{Id: "s2", ListId: suite.listId, ProposedBy: suite.targetId, TargetUserId: suite.ownerId}
	suite.executorFactory.On("NewExecutor").Return(suite.transaction)
	suite.repository.On("ListSuggestions", suite.ctx, suite.transaction,
		mock.MatchedBy(func(filter models.SuggestionFilter) bool {
			return filter.ListId == nil && *filter.ProposedBy == suite.targetId && *filter.TargetUserId == suite.targetId
		})).Return([]models.ListSuggestion{incoming, outgoing}, nil)

	result, err := suite.makeUsecase(suite.targetId).ListSuggestions(suite.ctx, nil, nil)

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, []models.ListSuggestion{incoming}, result.Incoming)
	assert.Equal(t, []models.ListSuggestion{outgoing}, result.Outgoing)
	suite.AssertExpectations()
}

func TestListSuggestionUsecase(t *testing.T) {
	suite.Run(t, new(ListSuggestionUsecaseTestSuite))
}
