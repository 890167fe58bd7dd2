package dto

import (
	"time"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/pure_utils"
	"github.com/guregu/null/v5"
)

type APIListSuggestion struct {
	Id           string    `json:"id"`
	ListId       string    `json:"list_id"`
	AssetId      string    `json:"asset_id"`
	Kind         string    `json:"kind"`
	ProposedBy   string    `json:"proposed_by"`
	TargetUserId string    `json:"target_user_id"`
	Status       string    `json:"status"`
	Note         string    `json:"note"`
	ResponseNote string    `json:"response_note"`
	CreatedAt    time.Time `json:"created_at"`
	RespondedAt  null.Time `json:"responded_at"`
}

func AdaptListSuggestionDto(s models.ListSuggestion) APIListSuggestion {
	return APIListSuggestion{
		Id:           s.Id,
		ListId:       s.ListId,
		AssetId:      s.AssetId,
		Kind:         string(s.Kind),
		ProposedBy:   string(s.ProposedBy),
		TargetUserId: string(s.TargetUserId),
		Status:       string(s.Status),
		Note:         s.Note,
		ResponseNote: s.ResponseNote,
		CreatedAt:    s.CreatedAt,
		RespondedAt:  null.TimeFromPtr(s.RespondedAt),
	}
}

type APIUserSuggestions struct {
	Incoming []APIListSuggestion `json:"incoming"`
	Outgoing []APIListSuggestion `json:"outgoing"`
}

func AdaptUserSuggestionsDto(s models.UserSuggestions) APIUserSuggestions {
	return APIUserSuggestions{
		Incoming: pure_utils.Map(s.Incoming, AdaptListSuggestionDto),
		Outgoing: pure_utils.Map(s.Outgoing, AdaptListSuggestionDto),
	}
}

type ProposeSuggestionBody struct {
	AssetId      string `json:"asset_id" binding:"required"`
	Kind         string `json:"kind" binding:"required,oneof=add remove"`
	TargetUserId string `json:"target_user_id" binding:"required"`
	Note         string `json:"note"`
}

func AdaptProposeSuggestionInput(listId string, body ProposeSuggestionBody) models.ProposeSuggestionInput {
	return models.ProposeSuggestionInput{
		ListId:       listId,
		AssetId:      body.AssetId,
		Kind:         models.SuggestionKindFrom(body.Kind),
		TargetUserId: models.UserId(body.TargetUserId),
		Note:         body.Note,
	}
}

type RespondToSuggestionBody struct {
	Decision     string `json:"decision" binding:"required,oneof=accept reject"`
	ResponseNote string `json:"response_note"`
}

func AdaptRespondToSuggestionInput(suggestionId string, body RespondToSuggestionBody) models.RespondToSuggestionInput {
	return models.RespondToSuggestionInput{
		SuggestionId: suggestionId,
		Decision:     models.SuggestionDecision(body.Decision),
		ResponseNote: body.ResponseNote,
	}
}

type ListSuggestionsQuery struct {
	ListId string `form:"list_id" binding:"omitempty,uuid"`
	Status string `form:"status" binding:"omitempty,oneof=pending accepted rejected cancelled"`
}
