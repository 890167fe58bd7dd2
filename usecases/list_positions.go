package usecases

import (
	"context"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/repositories"
	"github.com/checkmarble/asset-lists/usecases/ordering"
	"github.com/checkmarble/asset-lists/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

const (
	rebalanceScopeItems  = "items"
	rebalanceScopeGroups = "groups"
)

type listPositionsRepository interface {
	GetListGroupById(ctx context.Context, exec repositories.Executor, groupId string) (models.ListGroup, error)
	ListGroups(ctx context.Context, exec repositories.Executor, listId string, forUpdate bool) ([]models.ListGroup, error)
	UpdateListGroup(ctx context.Context, exec repositories.Executor, input models.UpdateListGroupInput) error
	ListPartitionItems(ctx context.Context, exec repositories.Executor, listId string,
		groupId *string, forUpdate bool) ([]models.ListItem, error)
	CreateListItem(ctx context.Context, exec repositories.Executor, input models.CreateListItemInput, newItemId string) error
	UpdateListItem(ctx context.Context, exec repositories.Executor, input models.UpdateListItemInput) error
}

// listPositions persists the decisions of the ordering engine. All its methods must run in a
// transaction holding the list lock.
type listPositions struct {
	repository listPositionsRepository
}

func itemSiblings(items []models.ListItem) []ordering.Sibling {
	siblings := make([]ordering.Sibling, len(items))
	for i, item := range items {
		siblings[i] = ordering.Sibling{Id: item.Id, Position: item.Position, CreatedAt: item.AddedAt}
	}
	return ordering.SortSiblings(siblings)
}

func groupSiblings(groups []models.ListGroup) []ordering.Sibling {
	siblings := make([]ordering.Sibling, len(groups))
	for i, group := range groups {
		siblings[i] = ordering.Sibling{Id: group.Id, Position: group.Position, CreatedAt: group.CreatedAt}
	}
	return ordering.SortSiblings(siblings)
}

// checkGroupOfList verifies that the group exists and belongs to the list.
func (p listPositions) checkGroupOfList(ctx context.Context, tx repositories.Transaction, listId string, groupId *string) error {
	if groupId == nil {
		return nil
	}
	group, err := p.repository.GetListGroupById(ctx, tx, *groupId)
	if err != nil {
		return err
	}
	if group.ListId != listId {
		return errors.Wrapf(models.ErrGroupListMismatch, "group %s, list %s", group.Id, listId)
	}
	return nil
}

type itemPartition struct {
	items    []models.ListItem
	siblings []ordering.Sibling
	// backfilled is true when keys were written for items that had none.
	backfilled bool
}

type groupPartition struct {
	groups     []models.ListGroup
	siblings   []ordering.Sibling
	backfilled bool
}

// loadItemPartition loads the items of a partition, gives a key to the ones that have none, and
// returns them together with their sorted siblings.
func (p listPositions) loadItemPartition(
	ctx context.Context,
	tx repositories.Transaction,
	listId string,
	groupId *string,
) (itemPartition, error) {
	items, err := p.repository.ListPartitionItems(ctx, tx, listId, groupId, true)
	if err != nil {
		return itemPartition{}, err
	}
	siblings := itemSiblings(items)

	backfill := ordering.Backfill(siblings)
	if len(backfill) == 0 {
		return itemPartition{items: items, siblings: siblings}, nil
	}
	if err := p.applyItemAssignments(ctx, tx, backfill); err != nil {
		return itemPartition{}, err
	}
	return itemPartition{
		items:      items,
		siblings:   ordering.Apply(siblings, backfill),
		backfilled: true,
	}, nil
}

func (p listPositions) loadGroupPartition(
	ctx context.Context,
	tx repositories.Transaction,
	listId string,
) (groupPartition, error) {
	groups, err := p.repository.ListGroups(ctx, tx, listId, true)
	if err != nil {
		return groupPartition{}, err
	}
	siblings := groupSiblings(groups)

	backfill := ordering.Backfill(siblings)
	if len(backfill) == 0 {
		return groupPartition{groups: groups, siblings: siblings}, nil
	}
	if err := p.applyGroupAssignments(ctx, tx, backfill); err != nil {
		return groupPartition{}, err
	}
	return groupPartition{
		groups:     groups,
		siblings:   ordering.Apply(siblings, backfill),
		backfilled: true,
	}, nil
}

func (p listPositions) applyItemAssignments(ctx context.Context, tx repositories.Transaction, assignments []ordering.Assignment) error {
	for _, a := range assignments {
		position := a.Position
		if err := p.repository.UpdateListItem(ctx, tx, models.UpdateListItemInput{
			Id:       a.Id,
			Position: &position,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (p listPositions) applyGroupAssignments(ctx context.Context, tx repositories.Transaction, assignments []ordering.Assignment) error {
	for _, a := range assignments {
		position := a.Position
		if err := p.repository.UpdateListGroup(ctx, tx, models.UpdateListGroupInput{
			Id:       a.Id,
			Position: &position,
		}); err != nil {
			return err
		}
	}
	return nil
}

// createItemInSection appends a new item owned by adder at the end of its partition.
func (p listPositions) createItemInSection(
	ctx context.Context,
	tx repositories.Transaction,
	input models.AddListItemInput,
	adder models.UserId,
) (string, error) {
	if err := p.checkGroupOfList(ctx, tx, input.ListId, input.GroupId); err != nil {
		return "", err
	}
	partition, err := p.loadItemPartition(ctx, tx, input.ListId, input.GroupId)
	if err != nil {
		return "", err
	}

	newItemId := uuid.NewString()
	err = p.repository.CreateListItem(ctx, tx, models.CreateListItemInput{
		ListId:   input.ListId,
		AssetId:  input.AssetId,
		AddedBy:  adder,
		GroupId:  input.GroupId,
		Note:     input.Note,
		Position: ordering.NextKey(partition.siblings),
	}, newItemId)
	if repositories.IsUniqueViolationError(err) {
		return "", errors.WithStack(models.ErrAssetAlreadyInSection)
	}
	if err != nil {
		return "", err
	}
	return newItemId, nil
}

func trackRebalance(rebalanced bool, scope string) {
	if rebalanced {
		utils.MetricPositionRebalances.WithLabelValues(scope).Inc()
	}
}
