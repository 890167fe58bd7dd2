package dbmodels

import (
	"time"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/utils"
	"github.com/cockroachdb/errors"
)

type DBListMember struct {
	ListId     string    `db:"list_id"`
	UserId     string    `db:"user_id"`
	Permission string    `db:"permission"`
	CreatedAt  time.Time `db:"created_at"`
}

const TABLE_LIST_MEMBERS = "asset_list_members"

var SelectListMemberColumns = utils.ColumnList[DBListMember]()

func AdaptListMember(db DBListMember) (models.ListMembership, error) {
	permission := models.MemberPermissionFrom(db.Permission)
	if permission == models.MemberPermissionUnknown {
		return models.ListMembership{}, errors.Newf("unknown member permission %q on list %s", db.Permission, db.ListId)
	}

	return models.ListMembership{
		ListId:     db.ListId,
		UserId:     models.UserId(db.UserId),
		Permission: permission,
		CreatedAt:  db.CreatedAt,
	}, nil
}
