package dbmodels

import (
	"time"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/utils"
)

type DBListGroup struct {
	Id        string    `db:"id"`
	ListId    string    `db:"list_id"`
	Name      string    `db:"name"`
	Color     string    `db:"color"`
	Position  *int64    `db:"position"`
	Collapsed bool      `db:"collapsed"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const TABLE_LIST_GROUPS = "asset_list_groups"

var SelectListGroupColumns = utils.ColumnList[DBListGroup]()

func AdaptListGroup(db DBListGroup) (models.ListGroup, error) {
	return models.ListGroup{
		Id:        db.Id,
		ListId:    db.ListId,
		Name:      db.Name,
		Color:     db.Color,
		Position:  db.Position,
		Collapsed: db.Collapsed,
		CreatedAt: db.CreatedAt,
		UpdatedAt: db.UpdatedAt,
	}, nil
}
