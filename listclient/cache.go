package listclient

import (
	"context"
	"time"

	"github.com/checkmarble/asset-lists/dto"
	"github.com/checkmarble/asset-lists/models"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ListSnapshot is the client side copy of a list, as last fetched from the server.
type ListSnapshot struct {
	List   dto.APIAssetListWithCapabilities
	Items  []dto.APIListItem
	Groups []dto.APIListGroup
}

type listFetcher interface {
	GetAssetList(ctx context.Context, listId string) (dto.APIAssetListWithCapabilities, error)
	ListItems(ctx context.Context, listId string) ([]dto.APIListItem, error)
	ListGroups(ctx context.Context, listId string) ([]dto.APIListGroup, error)
}

// ListCache is a read-through cache of list snapshots keyed by list id. Entries are dropped when a
// change event is received for their list, or when they expire.
type ListCache struct {
	fetcher listFetcher
	lists   *expirable.LRU[string, ListSnapshot]
}

func NewListCache(fetcher listFetcher, size int, ttl time.Duration) *ListCache {
	return &ListCache{
		fetcher: fetcher,
		lists:   expirable.NewLRU[string, ListSnapshot](size, nil, ttl),
	}
}

func (c *ListCache) Get(ctx context.Context, listId string) (ListSnapshot, error) {
	if snapshot, ok := c.lists.Get(listId); ok {
		return snapshot, nil
	}

	list, err := c.fetcher.GetAssetList(ctx, listId)
	if err != nil {
		return ListSnapshot{}, err
	}
	items, err := c.fetcher.ListItems(ctx, listId)
	if err != nil {
		return ListSnapshot{}, err
	}
	groups, err := c.fetcher.ListGroups(ctx, listId)
	if err != nil {
		return ListSnapshot{}, err
	}

	snapshot := ListSnapshot{List: list, Items: items, Groups: groups}
	c.lists.Add(listId, snapshot)
	return snapshot, nil
}

func (c *ListCache) Invalidate(listId string) {
	c.lists.Remove(listId)
}

// HandleChangeEvent drops the cached copy of the list the event is about. Both list mutations and
// suggestion changes invalidate, since an accepted suggestion changes the items.
func (c *ListCache) HandleChangeEvent(event models.ListChangeEvent) {
	c.Invalidate(event.ListId)
}
