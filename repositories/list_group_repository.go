package repositories

import (
	"context"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/repositories/dbmodels"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
)

func (repo *AssetListDbRepository) ListGroups(
	ctx context.Context,
	exec Executor,
	listId string,
	forUpdate bool,
) ([]models.ListGroup, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectListGroupColumns...).
		From(dbmodels.TABLE_LIST_GROUPS).
		Where(squirrel.Eq{"list_id": listId}).
		OrderBy("position ASC NULLS LAST", "created_at", "id")

	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptListGroup)
}

func (repo *AssetListDbRepository) GetListGroupById(ctx context.Context, exec Executor, groupId string) (models.ListGroup, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectListGroupColumns...).
			From(dbmodels.TABLE_LIST_GROUPS).
			Where(squirrel.Eq{"id": groupId}),
		dbmodels.AdaptListGroup,
	)
}

func (repo *AssetListDbRepository) CreateListGroup(
	ctx context.Context,
	exec Executor,
	input models.CreateListGroupInput,
	newGroupId string,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Insert(dbmodels.TABLE_LIST_GROUPS).
			Columns("id", "list_id", "name", "color", "position").
			Values(newGroupId, input.ListId, input.Name, input.Color, input.Position),
	)
}

func (repo *AssetListDbRepository) UpdateListGroup(ctx context.Context, exec Executor, input models.UpdateListGroupInput) error {
	updateRequest := NewQueryBuilder().Update(dbmodels.TABLE_LIST_GROUPS)

	if input.Name != nil {
		updateRequest = updateRequest.Set("name", *input.Name)
	}
	if input.Color != nil {
		updateRequest = updateRequest.Set("color", *input.Color)
	}
	if input.Collapsed != nil {
		updateRequest = updateRequest.Set("collapsed", *input.Collapsed)
	}
	if input.Position != nil {
		updateRequest = updateRequest.Set("position", *input.Position)
	}
	updateRequest = updateRequest.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": input.Id})

	affected, err := ExecBuilderRowsAffected(ctx, exec, updateRequest)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Wrap(models.NotFoundError, "list group not found")
	}
	return nil
}

func (repo *AssetListDbRepository) DeleteListGroup(ctx context.Context, exec Executor, groupId string) error {
	affected, err := ExecBuilderRowsAffected(
		ctx,
		exec,
		NewQueryBuilder().Delete(dbmodels.TABLE_LIST_GROUPS).Where(squirrel.Eq{"id": groupId}),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Wrap(models.NotFoundError, "list group not found")
	}
	return nil
}
