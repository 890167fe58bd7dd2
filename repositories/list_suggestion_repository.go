package repositories

import (
	"context"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/repositories/dbmodels"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
)

func (repo *AssetListDbRepository) GetSuggestionById(
	ctx context.Context,
	exec Executor,
	suggestionId string,
	forUpdate bool,
) (models.ListSuggestion, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectListSuggestionColumns...).
		From(dbmodels.TABLE_LIST_SUGGESTIONS).
		Where(squirrel.Eq{"id": suggestionId})

	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	return SqlToModel(ctx, exec, query, dbmodels.AdaptListSuggestion)
}

func (repo *AssetListDbRepository) ListSuggestions(
	ctx context.Context,
	exec Executor,
	filter models.SuggestionFilter,
) ([]models.ListSuggestion, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectListSuggestionColumns...).
		From(dbmodels.TABLE_LIST_SUGGESTIONS).
		OrderBy("created_at DESC", "id")

	if filter.ListId != nil {
		query = query.Where(squirrel.Eq{"list_id": *filter.ListId})
	}
	if filter.Status != nil {
		query = query.Where(squirrel.Eq{"status": string(*filter.Status)})
	}

	// a user sees the suggestions they sent and the ones addressed to them
	switch {
	case filter.ProposedBy != nil && filter.TargetUserId != nil:
		query = query.Where(squirrel.Or{
			squirrel.Eq{"proposed_by": string(*filter.ProposedBy)},
			squirrel.Eq{"target_user_id": string(*filter.TargetUserId)},
		})
	case filter.ProposedBy != nil:
		query = query.Where(squirrel.Eq{"proposed_by": string(*filter.ProposedBy)})
	case filter.TargetUserId != nil:
		query = query.Where(squirrel.Eq{"target_user_id": string(*filter.TargetUserId)})
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptListSuggestion)
}

func (repo *AssetListDbRepository) FindPendingSuggestion(
	ctx context.Context,
	exec Executor,
	key models.PendingSuggestionKey,
) (*models.ListSuggestion, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectListSuggestionColumns...).
			From(dbmodels.TABLE_LIST_SUGGESTIONS).
			Where(squirrel.Eq{
				"list_id":        key.ListId,
				"asset_id":       key.AssetId,
				"kind":           string(key.Kind),
				"target_user_id": string(key.TargetUserId),
				"status":         string(models.SuggestionStatusPending),
			}),
		dbmodels.AdaptListSuggestion,
	)
}

func (repo *AssetListDbRepository) CreateSuggestion(
	ctx context.Context,
	exec Executor,
	input models.ProposeSuggestionInput,
	proposedBy models.UserId,
	newSuggestionId string,
) error {
	err := ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Insert(dbmodels.TABLE_LIST_SUGGESTIONS).
			Columns(
				"id",
				"list_id",
				"asset_id",
				"kind",
				"proposed_by",
				"target_user_id",
				"status",
				"note",
			).
			Values(
				newSuggestionId,
				input.ListId,
				input.AssetId,
				string(input.Kind),
				string(proposedBy),
				string(input.TargetUserId),
				string(models.SuggestionStatusPending),
				input.Note,
			),
	)
	if IsUniqueViolationError(err) {
		return errors.WithStack(models.ErrDuplicateSuggestion)
	}
	return err
}

// UpdateSuggestionStatus moves a pending suggestion to its terminal status. The update only
// matches pending rows, so two concurrent responses cannot both succeed.
func (repo *AssetListDbRepository) UpdateSuggestionStatus(
	ctx context.Context,
	exec Executor,
	input models.UpdateSuggestionStatusInput,
) error {
	affected, err := ExecBuilderRowsAffected(
		ctx,
		exec,
		NewQueryBuilder().Update(dbmodels.TABLE_LIST_SUGGESTIONS).
			Set("status", string(input.Status)).
			Set("response_note", input.ResponseNote).
			Set("responded_at", input.RespondedAt).
			Where(squirrel.Eq{
				"id":     input.Id,
				"status": string(models.SuggestionStatusPending),
			}),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.WithStack(models.ErrSuggestionNotPending)
	}
	return nil
}

func (repo *AssetListDbRepository) DeletePendingSuggestion(ctx context.Context, exec Executor, suggestionId string) error {
	affected, err := ExecBuilderRowsAffected(
		ctx,
		exec,
		NewQueryBuilder().Delete(dbmodels.TABLE_LIST_SUGGESTIONS).
			Where(squirrel.Eq{
				"id":     suggestionId,
				"status": string(models.SuggestionStatusPending),
			}),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.WithStack(models.ErrSuggestionNotPending)
	}
	return nil
}
