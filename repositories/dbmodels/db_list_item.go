package dbmodels

import (
	"time"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/utils"
)

type DBListItem struct {
	Id       string    `db:"id"`
	ListId   string    `db:"list_id"`
	AssetId  string    `db:"asset_id"`
	AddedBy  string    `db:"added_by"`
	GroupId  *string   `db:"group_id"`
	Note     string    `db:"note"`
	Position *int64    `db:"position"`
	AddedAt  time.Time `db:"added_at"`
}

const TABLE_LIST_ITEMS = "asset_list_items"

var SelectListItemColumns = utils.ColumnList[DBListItem]()

func AdaptListItem(db DBListItem) (models.ListItem, error) {
	return models.ListItem{
		Id:       db.Id,
		ListId:   db.ListId,
		AssetId:  db.AssetId,
		AddedBy:  models.UserId(db.AddedBy),
		GroupId:  db.GroupId,
		Note:     db.Note,
		Position: db.Position,
		AddedAt:  db.AddedAt,
	}, nil
}
