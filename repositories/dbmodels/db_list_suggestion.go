package dbmodels

import (
	"time"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/utils"
	"github.com/cockroachdb/errors"
)

type DBListSuggestion struct {
	Id           string     `db:"id"`
	ListId       string     `db:"list_id"`
	AssetId      string     `db:"asset_id"`
	Kind         string     `db:"kind"`
	ProposedBy   string     `db:"proposed_by"`
	TargetUserId string     `db:"target_user_id"`
	Status       string     `db:"status"`
	Note         string     `db:"note"`
	ResponseNote string     `db:"response_note"`
	CreatedAt    time.Time  `db:"created_at"`
	RespondedAt  *time.Time `db:"responded_at"`
}

const TABLE_LIST_SUGGESTIONS = "asset_list_suggestions"

var SelectListSuggestionColumns = utils.ColumnList[DBListSuggestion]()

func AdaptListSuggestion(db DBListSuggestion) (models.ListSuggestion, error) {
	kind := models.SuggestionKindFrom(db.Kind)
	if kind == models.SuggestionKindUnknown {
		return models.ListSuggestion{}, errors.Newf("unknown suggestion kind %q for suggestion %s", db.Kind, db.Id)
	}
	status := models.SuggestionStatusFrom(db.Status)
	if status == models.SuggestionStatusUnknown {
		return models.ListSuggestion{}, errors.Newf("unknown suggestion status %q for suggestion %s", db.Status, db.Id)
	}

	return models.ListSuggestion{
		Id:           db.Id,
		ListId:       db.ListId,
		AssetId:      db.AssetId,
		Kind:         kind,
		ProposedBy:   models.UserId(db.ProposedBy),
		TargetUserId: models.UserId(db.TargetUserId),
		Status:       status,
		Note:         db.Note,
		ResponseNote: db.ResponseNote,
		CreatedAt:    db.CreatedAt,
		RespondedAt:  db.RespondedAt,
	}, nil
}
