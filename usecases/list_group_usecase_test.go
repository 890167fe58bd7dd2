package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/checkmarble/asset-lists/mocks"
	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/usecases/security"
)

type ListGroupUsecaseTestSuite struct {
	suite.Suite
	repository         *mocks.AssetListRepository
	taskQueue          *mocks.TaskQueueRepository
	transaction        *mocks.Transaction
	transactionFactory *mocks.TransactionFactory

	ctx      context.Context
	listId   string
	groupId  string
	ownerId  models.UserId
	readerId models.UserId
	group    models.ListGroup
}

func (suite *ListGroupUsecaseTestSuite) SetupTest() {
	suite.repository = new(mocks.AssetListRepository)
	suite.taskQueue = new(mocks.TaskQueueRepository)
	suite.transaction = new(mocks.Transaction)
	suite.transactionFactory = &mocks.TransactionFactory{TxMock: suite.transaction}

	suite.ctx = context.Background()
	suite.listId = "5a2e8c1d-3f4b-4c6d-8e9f-0a1b2c3d4e5f"
	suite.groupId = "6b3f9d2e-4a5c-4d7e-9f0a-1b2c3d4e5f60"
	suite.ownerId = "owner"
	suite.readerId = "reader"
	suite.group = models.ListGroup{
		Id:       suite.groupId,
		ListId:   suite.listId,
		Name:     "tech",
		Position: positionOf(10),
	}
}

func (suite *ListGroupUsecaseTestSuite) makeUsecase(caller models.UserId) *ListGroupUsecase {
	credentials := models.Credentials{ActorIdentity: models.Identity{UserId: caller}}
	return &ListGroupUsecase{
		enforceSecurity:    &security.EnforceSecurityAssetListImpl{Credentials: credentials},
		credentials:        credentials,
		transactionFactory: suite.transactionFactory,
		repository:         suite.repository,
		positions:          listPositions{repository: suite.repository},
		notifier:           NewListChangeNotifier(suite.taskQueue),
	}
}

func (suite *ListGroupUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.repository.AssertExpectations(t)
	suite.taskQueue.AssertExpectations(t)
	suite.transactionFactory.AssertExpectations(t)
}

func (suite *ListGroupUsecaseTestSuite) expectLockedList() {
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetAssetListById", suite.ctx, suite.transaction, suite.listId, true).Return(models.AssetList{
		Id:      suite.listId,
		Type:    models.ListTypeCollaborative,
		OwnerId: suite.ownerId,
	}, nil)
	suite.repository.On("ListMemberships", suite.ctx, suite.transaction, suite.listId).Return([]models.ListMembership{
		{ListId: suite.listId, UserId: suite.readerId, Permission: models.MemberPermissionRead},
	}, nil)
}

func (suite *ListGroupUsecaseTestSuite) expectCommit(operation string) {
	suite.repository.On("TouchAssetList", suite.ctx, suite.transaction, suite.listId, suite.ownerId).Return(nil)
	suite.taskQueue.On("EnqueueListChangeTask", suite.ctx, suite.transaction,
		mock.MatchedBy(func(e models.ListChangeEvent) bool {
			return e.Kind == models.ListChangeListMutated && e.Operation == operation
		})).Return(nil).Once()
}

func (suite *ListGroupUsecaseTestSuite) Test_CreateGroup_appends() {
	suite.expectLockedList()
	suite.repository.On("ListGroups", suite.ctx, suite.transaction, suite.listId, true).
		Return([]models.ListGroup{suite.group}, nil)
	suite.repository.On("CreateListGroup", suite.ctx, suite.transaction, models.CreateListGroupInput{
		ListId:   suite.listId,
		Name:     "energy",
		Color:    "#00ff00",
		Position: 20,
	}, mock.Anything).Return(nil)
	suite.expectCommit(models.OperationCreateGroup)
	created := models.ListGroup{Id: "new", ListId: suite.listId, Name: "energy", Color: "#00ff00", Position: positionOf(20)}
	suite.repository.On("GetListGroupById", suite.ctx, suite.transaction, mock.Anything).Return(created, nil)

	group, err := suite.makeUsecase(suite.ownerId).CreateGroup(suite.ctx, models.CreateListGroupInput{
		ListId: suite.listId,
		Name:   "energy",
		Color:  "#00ff00",
	})

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, created, group)
	suite.AssertExpectations()
}

func (suite *ListGroupUsecaseTestSuite) Test_CreateGroup_by_reader() {
	suite.expectLockedList()

	_, err := suite.makeUsecase(suite.readerId).CreateGroup(suite.ctx, models.CreateListGroupInput{
		ListId: suite.listId,
		Name:   "energy",
	})

	assert.ErrorIs(suite.T(), err, models.ForbiddenError)
	suite.AssertExpectations()
}

func (suite *ListGroupUsecaseTestSuite) Test_DeleteGroup_ungroups_items_after_existing_ones() {
	now := time.Now()
	suite.repository.On("GetListGroupById", suite.ctx, suite.transaction, suite.groupId).Return(suite.group, nil).Twice()
	suite.expectLockedList()
	suite.repository.On("ListPartitionItems", suite.ctx, suite.transaction, suite.listId, &suite.groupId, true).
		Return([]models.ListItem{
			{Id: "g2", ListId: suite.listId, GroupId: &suite.groupId, Position: positionOf(20), AddedAt: now},
			{Id: "g1", ListId: suite.listId, GroupId: &suite.groupId, Position: positionOf(10), AddedAt: now},
		}, nil)
	suite.repository.On("ListPartitionItems", suite.ctx, suite.transaction, suite.listId, (*string)(nil), true).
		Return([]models.ListItem{
			{Id: "u1", ListId: suite.listId, Position: positionOf(70), AddedAt: now},
		}, nil)
	suite.repository.On("UpdateListItem", suite.ctx, suite.transaction, models.UpdateListItemInput{
		Id:       "g1",
		SetGroup: true,
		Position: positionOf(80),
	}).Return(nil).Once()
	suite.repository.On("UpdateListItem", suite.ctx, suite.transaction, models.UpdateListItemInput{
		Id:       "g2",
		SetGroup: true,
		Position: positionOf(90),
	}).Return(nil).Once()
	suite.repository.On("DeleteListGroup", suite.ctx, suite.transaction, suite.groupId).Return(nil)
	suite.expectCommit(models.OperationDeleteGroup)

	err := suite.makeUsecase(suite.ownerId).DeleteGroup(suite.ctx, suite.groupId)

	assert.NoError(suite.T(), err)
	suite.AssertExpectations()
}

func (suite *ListGroupUsecaseTestSuite) Test_ReorderGroup() {
	other := models.ListGroup{Id: "other", ListId: suite.listId, Name: "energy", Position: positionOf(20)}
	suite.expectLockedList()
	suite.repository.On("ListGroups", suite.ctx, suite.transaction, suite.listId, true).
		Return([]models.ListGroup{suite.group, other}, nil)
	suite.repository.On("UpdateListGroup", suite.ctx, suite.transaction, models.UpdateListGroupInput{
		Id:       "other",
		Position: positionOf(0),
	}).Return(nil)
	suite.expectCommit(models.OperationReorderGroup)
	moved := other
	moved.Position = positionOf(0)
	suite.repository.On("ListGroups", suite.ctx, suite.transaction, suite.listId, false).
		Return([]models.ListGroup{moved, suite.group}, nil)

	groups, err := suite.makeUsecase(suite.ownerId).ReorderGroup(suite.ctx, models.ReorderGroupInput{
		ListId:    suite.listId,
		FromIndex: 1,
		ToIndex:   0,
	})

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, "other", groups[0].Id)
	suite.AssertExpectations()
}

func (suite *ListGroupUsecaseTestSuite) Test_ReorderGroup_same_index_after_backfill_notifies() {
	other := models.ListGroup{Id: "other", ListId: suite.listId, Name: "energy", CreatedAt: time.Now()}
	suite.expectLockedList()
	suite.repository.On("ListGroups", suite.ctx, suite.transaction, suite.listId, true).
		Return([]models.ListGroup{suite.group, other}, nil)
	suite.repository.On("UpdateListGroup", suite.ctx, suite.transaction, models.UpdateListGroupInput{
		Id:       "other",
		Position: positionOf(20),
	}).Return(nil).Once()
	suite.expectCommit(models.OperationReorderGroup)
	suite.repository.On("ListGroups", suite.ctx, suite.transaction, suite.listId, false).
		Return([]models.ListGroup{suite.group, other}, nil)

	_, err := suite.makeUsecase(suite.ownerId).ReorderGroup(suite.ctx, models.ReorderGroupInput{
		ListId:    suite.listId,
		FromIndex: 1,
		ToIndex:   1,
	})

	t := suite.T()
	assert.NoError(t, err)
	suite.repository.AssertNumberOfCalls(t, "UpdateListGroup", 1)
	suite.AssertExpectations()
}

func (suite *ListGroupUsecaseTestSuite) Test_ReorderGroup_same_index_is_noop() {
	other := models.ListGroup{Id: "other", ListId: suite.listId, Name: "energy", Position: positionOf(20)}
	suite.expectLockedList()
	suite.repository.On("ListGroups", suite.ctx, suite.transaction, suite.listId, mock.Anything).
		Return([]models.ListGroup{suite.group, other}, nil)

	_, err := suite.makeUsecase(suite.ownerId).ReorderGroup(suite.ctx, models.ReorderGroupInput{
		ListId:    suite.listId,
		FromIndex: 0,
		ToIndex:   0,
	})

	t := suite.T()
	assert.NoError(t, err)
	suite.repository.AssertNotCalled(t, "UpdateListGroup", mock.Anything, mock.Anything, mock.Anything)
	suite.taskQueue.AssertNotCalled(t, "EnqueueListChangeTask", mock.Anything, mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func TestListGroupUsecase(t *testing.T) {
	suite.Run(t, new(ListGroupUsecaseTestSuite))
}
