package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/repositories/dbmodels"
)

func suggestionRow(id string, status string) []any {
	return []any{
		id, "list", "asset", "add", "user-a", "user-b", status, "have a look", "", time.Unix(1700000000, 0).UTC(), nil,
	}
}

func TestGetSuggestionById(t *testing.T) {
	t.Run("nominal, locked", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectQuery(`SELECT .* FROM asset_list_suggestions WHERE id = \$1 FOR UPDATE`).
			WithArgs("s1").
			WillReturnRows(pgxmock.NewRows(dbmodels.SelectListSuggestionColumns).
				AddRow(suggestionRow("s1", "pending")...))

		repo := &AssetListDbRepository{}
		suggestion, err := repo.GetSuggestionById(context.Background(), mock, "s1", true)

		assert.NoError(t, err)
		assert.Equal(t, models.ListSuggestion{
			Id:           "s1",
			ListId:       "list",
			AssetId:      "asset",
			Kind:         models.SuggestionKindAdd,
			ProposedBy:   "user-a",
			TargetUserId: "user-b",
			Status:       models.SuggestionStatusPending,
			Note:         "have a look",
			CreatedAt:    time.Unix(1700000000, 0).UTC(),
		}, suggestion)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectQuery(`SELECT .* FROM asset_list_suggestions WHERE id = \$1`).
			WithArgs("s1").
			WillReturnRows(pgxmock.NewRows(dbmodels.SelectListSuggestionColumns))

		repo := &AssetListDbRepository{}
		_, err = repo.GetSuggestionById(context.Background(), mock, "s1", false)

		assert.ErrorIs(t, err, models.NotFoundError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown status in database", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectQuery(`SELECT .* FROM asset_list_suggestions WHERE id = \$1`).
			WithArgs("s1").
			WillReturnRows(pgxmock.NewRows(dbmodels.SelectListSuggestionColumns).
				AddRow(suggestionRow("s1", "archived")...))

		repo := &AssetListDbRepository{}
		_, err = repo.GetSuggestionById(context.Background(), mock, "s1", false)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListSuggestions_of_user(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	status := models.SuggestionStatusPending
	userId := models.UserId("user-b")
	mock.ExpectQuery(`SELECT .* FROM asset_list_suggestions WHERE status = \$1 AND \(proposed_by = \$2 OR target_user_id = \$3\) ORDER BY created_at DESC, id`).
		WithArgs("pending", "user-b", "user-b").
		WillReturnRows(pgxmock.NewRows(dbmodels.SelectListSuggestionColumns).
			AddRow(suggestionRow("s1", "pending")...).
			AddRow(suggestionRow("s2", "pending")...))

	repo := &AssetListDbRepository{}
	suggestions, err := repo.ListSuggestions(context.Background(), mock, models.SuggestionFilter{
		ProposedBy:   &userId,
		TargetUserId: &userId,
		Status:       &status,
	})

	assert.NoError(t, err)
	assert.Len(t, suggestions, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSuggestion_duplicate_pending(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO asset_list_suggestions`).
		WithArgs("s1", "list", "asset", "add", "user-a", "user-b", "pending", "").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	repo := &AssetListDbRepository{}
	err = repo.CreateSuggestion(context.Background(), mock, models.ProposeSuggestionInput{
		ListId:       "list",
		AssetId:      "asset",
		Kind:         models.SuggestionKindAdd,
		TargetUserId: "user-b",
	}, "user-a", "s1")

	assert.ErrorIs(t, err, models.ErrDuplicateSuggestion)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSuggestionStatus(t *testing.T) {
	respondedAt := time.Unix(1700000500, 0).UTC()
	input := models.UpdateSuggestionStatusInput{
		Id:          "s1",
		Status:      models.SuggestionStatusAccepted,
		RespondedAt: respondedAt,
	}

	t.Run("pending row", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectExec(`UPDATE asset_list_suggestions SET status = \$1, response_note = \$2, responded_at = \$3 WHERE`).
			WithArgs("accepted", "", respondedAt, "s1", "pending").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := &AssetListDbRepository{}
		err = repo.UpdateSuggestionStatus(context.Background(), mock, input)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already resolved", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectExec(`UPDATE asset_list_suggestions`).
			WithArgs("accepted", "", respondedAt, "s1", "pending").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := &AssetListDbRepository{}
		err = repo.UpdateSuggestionStatus(context.Background(), mock, input)

		assert.ErrorIs(t, err, models.ErrSuggestionNotPending)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeletePendingSuggestion_already_resolved(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM asset_list_suggestions WHERE`).
		WithArgs("s1", "pending").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := &AssetListDbRepository{}
	err = repo.DeletePendingSuggestion(context.Background(), mock, "s1")

	assert.ErrorIs(t, err, models.ErrSuggestionNotPending)
	assert.NoError(t, mock.ExpectationsWereMet())
}
