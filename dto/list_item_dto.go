package dto

import (
	"time"

	"github.com/checkmarble/asset-lists/models"
	"github.com/guregu/null/v5"
)

type APIListItem struct {
	Id       string      `json:"id"`
	ListId   string      `json:"list_id"`
	AssetId  string      `json:"asset_id"`
	AddedBy  string      `json:"added_by"`
	GroupId  null.String `json:"group_id"`
	Note     string      `json:"note"`
	Position null.Int    `json:"position"`
	AddedAt  time.Time   `json:"added_at"`
}

func AdaptListItemDto(item models.ListItem) APIListItem {
	return APIListItem{
		Id:       item.Id,
		ListId:   item.ListId,
		AssetId:  item.AssetId,
		AddedBy:  string(item.AddedBy),
		GroupId:  null.StringFromPtr(item.GroupId),
		Note:     item.Note,
		Position: null.IntFromPtr(item.Position),
		AddedAt:  item.AddedAt,
	}
}

type AddListItemBody struct {
	AssetId string      `json:"asset_id" binding:"required"`
	GroupId null.String `json:"group_id"`
	Note    string      `json:"note"`
}

func AdaptAddListItemInput(listId string, body AddListItemBody) models.AddListItemInput {
	return models.AddListItemInput{
		ListId:  listId,
		AssetId: body.AssetId,
		GroupId: body.GroupId.Ptr(),
		Note:    body.Note,
	}
}

type SetItemNoteBody struct {
	Note string `json:"note"`
}

// MoveItemBody: a null or absent group_id moves the item back to the ungrouped partition.
type MoveItemBody struct {
	GroupId null.String `json:"group_id"`
}

type ReorderItemBody struct {
	GroupId   null.String `json:"group_id"`
	FromIndex *int        `json:"from_index" binding:"required,min=0"`
	ToIndex   *int        `json:"to_index" binding:"required,min=0"`
}

func AdaptReorderItemInput(listId string, body ReorderItemBody) models.ReorderItemInput {
	return models.ReorderItemInput{
		ListId:    listId,
		GroupId:   body.GroupId.Ptr(),
		FromIndex: *body.FromIndex,
		ToIndex:   *body.ToIndex,
	}
}

type BackfillPositionsResponse struct {
	UpdatedCount int `json:"updated_count"`
}
