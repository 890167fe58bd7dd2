package repositories

import (
	"context"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/repositories/dbmodels"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
)

const itemsOrder = "position ASC NULLS LAST, added_at, id"

func (repo *AssetListDbRepository) ListItems(ctx context.Context, exec Executor, listId string) ([]models.ListItem, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectListItemColumns...).
		From(dbmodels.TABLE_LIST_ITEMS).
		Where(squirrel.Eq{"list_id": listId}).
		OrderBy("group_id NULLS FIRST", itemsOrder)

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptListItem)
}

// ListPartitionItems returns the items of one ordering partition: the items of the group, or the
// ungrouped items of the list when groupId is nil.
func (repo *AssetListDbRepository) ListPartitionItems(
	ctx context.Context,
	exec Executor,
	listId string,
	groupId *string,
	forUpdate bool,
) ([]models.ListItem, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectListItemColumns...).
		From(dbmodels.TABLE_LIST_ITEMS).
		Where(squirrel.Eq{"list_id": listId}).
		OrderBy(itemsOrder)

	if groupId == nil {
		query = query.Where("group_id IS NULL")
	} else {
		query = query.Where(squirrel.Eq{"group_id": *groupId})
	}
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptListItem)
}

func (repo *AssetListDbRepository) GetListItemById(
	ctx context.Context,
	exec Executor,
	itemId string,
	forUpdate bool,
) (models.ListItem, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectListItemColumns...).
		From(dbmodels.TABLE_LIST_ITEMS).
		Where(squirrel.Eq{"id": itemId})

	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	return SqlToModel(ctx, exec, query, dbmodels.AdaptListItem)
}

func (repo *AssetListDbRepository) CreateListItem(
	ctx context.Context,
	exec Executor,
	input models.CreateListItemInput,
	newItemId string,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Insert(dbmodels.TABLE_LIST_ITEMS).
			Columns(
				"id",
				"list_id",
				"asset_id",
				"added_by",
				"group_id",
				"note",
				"position",
			).
			Values(
				newItemId,
				input.ListId,
				input.AssetId,
				string(input.AddedBy),
				input.GroupId,
				input.Note,
				input.Position,
			),
	)
}

func (repo *AssetListDbRepository) UpdateListItem(ctx context.Context, exec Executor, input models.UpdateListItemInput) error {
	updateRequest := NewQueryBuilder().Update(dbmodels.TABLE_LIST_ITEMS)

	hasChange := false
	if input.SetGroup {
		updateRequest = updateRequest.Set("group_id", input.GroupId)
		hasChange = true
	}
	if input.Position != nil {
		updateRequest = updateRequest.Set("position", *input.Position)
		hasChange = true
	}
	if input.Note != nil {
		updateRequest = updateRequest.Set("note", *input.Note)
		hasChange = true
	}
	if !hasChange {
		return errors.Wrap(models.BadParameterError, "no change requested on the list item")
	}

	affected, err := ExecBuilderRowsAffected(ctx, exec, updateRequest.Where(squirrel.Eq{"id": input.Id}))
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Wrap(models.NotFoundError, "list item not found")
	}
	return nil
}

func (repo *AssetListDbRepository) DeleteListItem(ctx context.Context, exec Executor, itemId string) error {
	affected, err := ExecBuilderRowsAffected(
		ctx,
		exec,
		NewQueryBuilder().Delete(dbmodels.TABLE_LIST_ITEMS).Where(squirrel.Eq{"id": itemId}),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Wrap(models.NotFoundError, "list item not found")
	}
	return nil
}

// GetSectionItem returns the item of the asset in one user's section of the list, or nil.
func (repo *AssetListDbRepository) GetSectionItem(
	ctx context.Context,
	exec Executor,
	listId string,
	assetId string,
	addedBy models.UserId,
) (*models.ListItem, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectListItemColumns...).
			From(dbmodels.TABLE_LIST_ITEMS).
			Where(squirrel.Eq{
				"list_id":  listId,
				"asset_id": assetId,
				"added_by": string(addedBy),
			}),
		dbmodels.AdaptListItem,
	)
}
