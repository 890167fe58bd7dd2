package repositories

import (
	"context"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/repositories/dbmodels"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
)

func (repo *AssetListDbRepository) ListMemberships(
	ctx context.Context,
	exec Executor,
	listId string,
) ([]models.ListMembership, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectListMemberColumns...).
		From(dbmodels.TABLE_LIST_MEMBERS).
		Where(squirrel.Eq{"list_id": listId}).
		OrderBy("created_at", "user_id")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptListMember)
}

func (repo *AssetListDbRepository) AddMember(ctx context.Context, exec Executor, input models.AddListMemberInput) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Insert(dbmodels.TABLE_LIST_MEMBERS).
			Columns("list_id", "user_id", "permission").
			Values(input.ListId, string(input.UserId), string(input.Permission)),
	)
}

func (repo *AssetListDbRepository) UpdateMemberPermission(
	ctx context.Context,
	exec Executor,
	listId string,
	userId models.UserId,
	permission models.MemberPermission,
) error {
	affected, err := ExecBuilderRowsAffected(
		ctx,
		exec,
		NewQueryBuilder().Update(dbmodels.TABLE_LIST_MEMBERS).
			Set("permission", string(permission)).
			Where(squirrel.Eq{"list_id": listId, "user_id": string(userId)}),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Wrap(models.NotFoundError, "membership not found")
	}
	return nil
}

func (repo *AssetListDbRepository) RemoveMember(
	ctx context.Context,
	exec Executor,
	listId string,
	userId models.UserId,
) error {
	affected, err := ExecBuilderRowsAffected(
		ctx,
		exec,
		NewQueryBuilder().Delete(dbmodels.TABLE_LIST_MEMBERS).
			Where(squirrel.Eq{"list_id": listId, "user_id": string(userId)}),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Wrap(models.NotFoundError, "membership not found")
	}
	return nil
}
