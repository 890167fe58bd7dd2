package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/repositories"
	"github.com/checkmarble/asset-lists/repositories/dbmodels"
	"github.com/checkmarble/asset-lists/usecases/executor_factory"
	"github.com/checkmarble/asset-lists/usecases/security"
)

func TestListGroups_againstSql(t *testing.T) {
	exec := executor_factory.NewExecutorFactoryStub()
	defer exec.Mock.Close()

	now := time.Now()
	listId := "5a2e8c1d-3f4b-4c6d-8e9f-0a1b2c3d4e5f"
	first, second := int64(10), int64(20)

	exec.Mock.ExpectQuery(`SELECT .* FROM asset_lists WHERE id = \$1`).
		WithArgs(listId).
		WillReturnRows(pgxmock.NewRows(dbmodels.SelectAssetListColumns).
			AddRow(listId, "watchlist", "", "blue", "collaborative", "owner", now, now, "owner"))
	exec.Mock.ExpectQuery(`SELECT .* FROM asset_list_members WHERE list_id = \$1 ORDER BY created_at, user_id`).
		WithArgs(listId).
		WillReturnRows(pgxmock.NewRows(dbmodels.SelectListMemberColumns))
	exec.Mock.ExpectQuery(`SELECT .* FROM asset_list_groups WHERE list_id = \$1 ORDER BY position ASC NULLS LAST, created_at, id`).
		WithArgs(listId).
		WillReturnRows(pgxmock.NewRows(dbmodels.SelectListGroupColumns).
			AddRow("group-1", listId, "tech", "red", &first, false, now, now).
			AddRow("group-2", listId, "energy", "green", &second, true, now, now))

	credentials := models.Credentials{ActorIdentity: models.Identity{UserId: "owner"}}
	repository := &repositories.AssetListDbRepository{}
	usecase := &ListGroupUsecase{
		enforceSecurity:    &security.EnforceSecurityAssetListImpl{Credentials: credentials},
		credentials:        credentials,
		executorFactory:    exec,
		transactionFactory: exec,
		repository:         repository,
		positions:          listPositions{repository: repository},
	}

	groups, err := usecase.ListGroups(context.Background(), listId)

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "group-1", groups[0].Id)
	assert.Equal(t, int64(20), *groups[1].Position)
	assert.True(t, groups[1].Collapsed)
	assert.NoError(t, exec.Mock.ExpectationsWereMet())
}
