package repositories

import (
	"context"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/repositories/dbmodels"

	"github.com/Masterminds/squirrel"
)

func (repo *AssetListDbRepository) GetAssetListById(
	ctx context.Context,
	exec Executor,
	listId string,
	forUpdate bool,
) (models.AssetList, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectAssetListColumns...).
		From(dbmodels.TABLE_ASSET_LISTS).
		Where(squirrel.Eq{"id": listId})

	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	return SqlToModel(ctx, exec, query, dbmodels.AdaptAssetList)
}

// ListAssetListsOfUser returns the lists the user owns or is a member of, most recently updated first.
func (repo *AssetListDbRepository) ListAssetListsOfUser(
	ctx context.Context,
	exec Executor,
	userId models.UserId,
) ([]models.AssetList, error) {
	query := NewQueryBuilder().
		Select(columnsNames("l", dbmodels.SelectAssetListColumns)...).
		From(dbmodels.TABLE_ASSET_LISTS+" AS l").
		Where(squirrel.Or{
			squirrel.Eq{"l.owner_id": string(userId)},
			squirrel.Expr(
				"EXISTS (SELECT 1 FROM "+dbmodels.TABLE_LIST_MEMBERS+
					" m WHERE m.list_id = l.id AND m.user_id = ?)", string(userId)),
		}).
		OrderBy("l.updated_at DESC", "l.id")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptAssetList)
}

func (repo *AssetListDbRepository) CreateAssetList(
	ctx context.Context,
	exec Executor,
	input models.CreateAssetListInput,
	newListId string,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Insert(dbmodels.TABLE_ASSET_LISTS).
			Columns(
				"id",
				"name",
				"description",
				"color",
				"type",
				"owner_id",
				"updated_by",
			).
			Values(
				newListId,
				input.Name,
				input.Description,
				input.Color,
				string(input.Type),
				string(input.OwnerId),
				string(input.OwnerId),
			),
	)
}

func (repo *AssetListDbRepository) UpdateAssetList(
	ctx context.Context,
	exec Executor,
	input models.UpdateAssetListInput,
) error {
	updateRequest := NewQueryBuilder().Update(dbmodels.TABLE_ASSET_LISTS)

	if input.Name != nil {
		updateRequest = updateRequest.Set("name", *input.Name)
	}
	if input.Description != nil {
		updateRequest = updateRequest.Set("description", *input.Description)
	}
	if input.Color != nil {
		updateRequest = updateRequest.Set("color", *input.Color)
	}
	updateRequest = updateRequest.
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("updated_by", string(input.UpdatedBy)).
		Where(squirrel.Eq{"id": input.Id})

	return ExecBuilder(ctx, exec, updateRequest)
}

func (repo *AssetListDbRepository) UpdateAssetListType(
	ctx context.Context,
	exec Executor,
	listId string,
	listType models.ListType,
	updatedBy models.UserId,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Update(dbmodels.TABLE_ASSET_LISTS).
			Set("type", string(listType)).
			Set("updated_at", squirrel.Expr("NOW()")).
			Set("updated_by", string(updatedBy)).
			Where(squirrel.Eq{"id": listId}),
	)
}

// TouchAssetList records that the list content was modified by the user.
func (repo *AssetListDbRepository) TouchAssetList(
	ctx context.Context,
	exec Executor,
	listId string,
	updatedBy models.UserId,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Update(dbmodels.TABLE_ASSET_LISTS).
			Set("updated_at", squirrel.Expr("NOW()")).
			Set("updated_by", string(updatedBy)).
			Where(squirrel.Eq{"id": listId}),
	)
}

// DeleteAssetList hard deletes the list. Items, groups, memberships and suggestions are removed
// by the ON DELETE CASCADE foreign keys.
func (repo *AssetListDbRepository) DeleteAssetList(ctx context.Context, exec Executor, listId string) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Delete(dbmodels.TABLE_ASSET_LISTS).Where(squirrel.Eq{"id": listId}),
	)
}
