package listclient

import (
	"net/http"
	"testing"

	"github.com/checkmarble/asset-lists/dto"
	"github.com/checkmarble/asset-lists/models"
	"github.com/cockroachdb/errors"
	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseUrl = "https://lists.example.com"

func TestClient_GetAssetList(t *testing.T) {
	defer gock.Off()

	gock.New(testBaseUrl).
		Get("/asset-lists/list-1").
		MatchHeader("Authorization", "^Bearer token$").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"asset_list": map[string]any{
				"id":       "list-1",
				"name":     "Watchlist",
				"type":     "collaborative",
				"owner_id": "owner",
				"capabilities": map[string]any{
					"can_view":            true,
					"can_suggest_changes": true,
				},
			},
		})

	list, err := New(testBaseUrl, "token").GetAssetList(t.Context(), "list-1")
	require.NoError(t, err)
	assert.Equal(t, "Watchlist", list.Name)
	assert.Equal(t, "collaborative", list.Type)
	assert.True(t, list.Capabilities.CanView)
	assert.True(t, list.Capabilities.CanSuggestChanges)
	assert.False(t, list.Capabilities.CanDeleteList)
	assert.True(t, gock.IsDone())
}

func TestClient_errorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		code     dto.ErrorCode
		expected error
	}{
		{"duplicate suggestion", http.StatusConflict, dto.DuplicateSuggestion, models.ErrDuplicateSuggestion},
		{"any conflict", http.StatusConflict, dto.DuplicateSuggestion, models.ConflictError},
		{"not pending", http.StatusConflict, dto.SuggestionNotPending, models.ErrSuggestionNotPending},
		{"forbidden", http.StatusForbidden, "", models.ForbiddenError},
		{"not found", http.StatusNotFound, "", models.NotFoundError},
		{"invariant violation", http.StatusUnprocessableEntity, dto.GroupListMismatch, models.InvariantViolationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer gock.Off()

			gock.New(testBaseUrl).
				Post("/asset-lists/list-1/suggestions").
				Reply(tt.status).
				JSON(dto.APIErrorResponse{Message: "refused", ErrorCode: tt.code})

			_, err := New(testBaseUrl, "token").ProposeSuggestion(t.Context(), "list-1", dto.ProposeSuggestionBody{
				AssetId:      "asset",
				Kind:         "add",
				TargetUserId: "user-b",
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "refused", apiErr.Message)
		})
	}
}

func TestClient_serverErrorHasNoBaseError(t *testing.T) {
	defer gock.Off()

	gock.New(testBaseUrl).
		Delete("/list-items/item-1").
		Reply(http.StatusInternalServerError).
		JSON(dto.APIErrorResponse{Message: "An unexpected error occurred."})

	err := New(testBaseUrl, "token").RemoveItem(t.Context(), "item-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ConflictError)
	assert.NotErrorIs(t, err, models.BadParameterError)
}

func TestClient_ListSuggestions(t *testing.T) {
	defer gock.Off()

	gock.New(testBaseUrl).
		Get("/suggestions").
		MatchParam("status", "pending").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"incoming": []map[string]any{{"id": "s1", "status": "pending", "target_user_id": "me"}},
			"outgoing": []map[string]any{},
		})

	suggestions, err := New(testBaseUrl, "token").ListSuggestions(t.Context(), dto.ListSuggestionsQuery{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, suggestions.Incoming, 1)
	assert.Equal(t, "s1", suggestions.Incoming[0].Id)
	assert.False(t, suggestions.Incoming[0].RespondedAt.Valid)
	assert.Empty(t, suggestions.Outgoing)
}
