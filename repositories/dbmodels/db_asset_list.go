package dbmodels

import (
	"time"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/utils"
	"github.com/cockroachdb/errors"
)

type DBAssetList struct {
	Id          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Color       string    `db:"color"`
	Type        string    `db:"type"`
	OwnerId     string    `db:"owner_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	UpdatedBy   string    `db:"updated_by"`
}

const TABLE_ASSET_LISTS = "asset_lists"

var SelectAssetListColumns = utils.ColumnList[DBAssetList]()

func AdaptAssetList(db DBAssetList) (models.AssetList, error) {
	listType := models.ListTypeFrom(db.Type)
	if listType == models.ListTypeUnknown {
		return models.AssetList{}, errors.Newf("unknown list type %q for list %s", db.Type, db.Id)
	}

	return models.AssetList{
		Id:          db.Id,
		Name:        db.Name,
		Description: db.Description,
		Color:       db.Color,
		Type:        listType,
		OwnerId:     models.UserId(db.OwnerId),
		CreatedAt:   db.CreatedAt,
		UpdatedAt:   db.UpdatedAt,
		UpdatedBy:   models.UserId(db.UpdatedBy),
	}, nil
}
