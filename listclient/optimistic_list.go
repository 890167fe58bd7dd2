package listclient

import (
	"context"
	"slices"

	"github.com/checkmarble/asset-lists/dto"
	"github.com/checkmarble/asset-lists/usecases/ordering"

	"github.com/guregu/null/v5"
)

// OptimisticList is a local copy of the items of one list, on which reorders are applied before
// the server answers. A refused reorder restores the items exactly as they were.
type OptimisticList struct {
	client *Client
	cache  *ListCache
	listId string
	items  *Tentative[[]dto.APIListItem]
}

func NewOptimisticList(ctx context.Context, client *Client, cache *ListCache, listId string) (*OptimisticList, error) {
	snapshot, err := cache.Get(ctx, listId)
	if err != nil {
		return nil, err
	}
	return &OptimisticList{
		client: client,
		cache:  cache,
		listId: listId,
		items:  NewTentative(slices.Clone(snapshot.Items)),
	}, nil
}

func (l *OptimisticList) Items() []dto.APIListItem {
	return slices.Clone(l.items.Value())
}

// Partition returns the items of the group, or the ungrouped items for a nil group, in display
// order.
func (l *OptimisticList) Partition(groupId *string) []dto.APIListItem {
	items := l.items.Value()
	byId := make(map[string]dto.APIListItem, len(items))
	for _, item := range items {
		byId[item.Id] = item
	}

	siblings := ordering.SortSiblings(siblingsOf(items, groupId))
	partition := make([]dto.APIListItem, 0, len(siblings))
	for _, s := range siblings {
		partition = append(partition, byId[s.Id])
	}
	return partition
}

// ReorderItem moves the item at fromIndex of the partition to toIndex, locally first, then on the
// server. The local keys are computed the same way the server does, so that the optimistic order
// matches the one other clients will refetch.
func (l *OptimisticList) ReorderItem(ctx context.Context, groupId *string, fromIndex, toIndex int) error {
	current := l.items.Value()

	siblings := ordering.SortSiblings(siblingsOf(current, groupId))
	backfill := ordering.Backfill(siblings)
	if len(backfill) > 0 {
		siblings = ordering.Apply(siblings, backfill)
	}
	moved, err := ordering.Move(siblings, fromIndex, toIndex)
	if err != nil {
		return err
	}
	next := withPositions(current, append(backfill, moved.Assignments...))

	return l.items.Run(next, func() ([]dto.APIListItem, error) {
		written, err := l.client.ReorderItem(ctx, l.listId, dto.ReorderItemBody{
			GroupId:   null.StringFromPtr(groupId),
			FromIndex: &fromIndex,
			ToIndex:   &toIndex,
		})
		if err != nil {
			return nil, err
		}
		l.cache.Invalidate(l.listId)
		return mergeItems(next, written), nil
	})
}

func sameGroup(item dto.APIListItem, groupId *string) bool {
	if groupId == nil {
		return !item.GroupId.Valid
	}
	return item.GroupId.Valid && item.GroupId.String == *groupId
}

func siblingsOf(items []dto.APIListItem, groupId *string) []ordering.Sibling {
	siblings := make([]ordering.Sibling, 0, len(items))
	for _, item := range items {
		if !sameGroup(item, groupId) {
			continue
		}
		siblings = append(siblings, ordering.Sibling{
			Id:        item.Id,
			Position:  item.Position.Ptr(),
			CreatedAt: item.AddedAt,
		})
	}
	return siblings
}

// withPositions returns a copy of the items with the assignments applied. Later assignments win.
func withPositions(items []dto.APIListItem, assignments []ordering.Assignment) []dto.APIListItem {
	positions := make(map[string]int64, len(assignments))
	for _, a := range assignments {
		positions[a.Id] = a.Position
	}

	result := slices.Clone(items)
	for i := range result {
		if p, ok := positions[result[i].Id]; ok {
			result[i].Position = null.IntFrom(p)
		}
	}
	return result
}

// mergeItems replaces the local copy of every item the server returned.
func mergeItems(items []dto.APIListItem, written []dto.APIListItem) []dto.APIListItem {
	byId := make(map[string]dto.APIListItem, len(written))
	for _, item := range written {
		byId[item.Id] = item
	}

	result := slices.Clone(items)
	for i := range result {
		if item, ok := byId[result[i].Id]; ok {
			result[i] = item
		}
	}
	return result
}
