package models

import "time"

type SuggestionKind string

const (
	SuggestionKindAdd     SuggestionKind = "add"
	SuggestionKindRemove  SuggestionKind = "remove"
	SuggestionKindUnknown SuggestionKind = "unknown"
)

func SuggestionKindFrom(s string) SuggestionKind {
	switch s {
	case "add":
		return SuggestionKindAdd
	case "remove":
		return SuggestionKindRemove
	}
	return SuggestionKindUnknown
}

type SuggestionStatus string

const (
	SuggestionStatusPending   SuggestionStatus = "pending"
	SuggestionStatusAccepted  SuggestionStatus = "accepted"
	SuggestionStatusRejected  SuggestionStatus = "rejected"
	SuggestionStatusCancelled SuggestionStatus = "cancelled"
	SuggestionStatusUnknown   SuggestionStatus = "unknown"
)

func SuggestionStatusFrom(s string) SuggestionStatus {
	switch s {
	case "pending":
		return SuggestionStatusPending
	case "accepted":
		return SuggestionStatusAccepted
	case "rejected":
		return SuggestionStatusRejected
	case "cancelled":
		return SuggestionStatusCancelled
	}
	return SuggestionStatusUnknown
}

func (s SuggestionStatus) IsTerminal() bool {
	return s == SuggestionStatusAccepted || s == SuggestionStatusRejected || s == SuggestionStatusCancelled
}

type SuggestionDecision string

const (
	SuggestionDecisionAccept SuggestionDecision = "accept"
	SuggestionDecisionReject SuggestionDecision = "reject"
)

func (d SuggestionDecision) ResultingStatus() SuggestionStatus {
	if d == SuggestionDecisionAccept {
		return SuggestionStatusAccepted
	}
	return SuggestionStatusRejected
}

type ListSuggestion struct {
	Id           string
	ListId       string
	AssetId      string
	Kind         SuggestionKind
	ProposedBy   UserId
	TargetUserId UserId
	Status       SuggestionStatus
	Note         string
	ResponseNote string
	CreatedAt    time.Time
	RespondedAt  *time.Time
}

type ProposeSuggestionInput struct {
	ListId       string         `validate:"required"`
	AssetId      string         `validate:"required"`
	Kind         SuggestionKind `validate:"required,oneof=add remove"`
	TargetUserId UserId         `validate:"required"`
	Note         string         `validate:"max=2000"`
}

type RespondToSuggestionInput struct {
	SuggestionId string
	Decision     SuggestionDecision `validate:"required,oneof=accept reject"`
	ResponseNote string             `validate:"max=2000"`
}

type UpdateSuggestionStatusInput struct {
	Id           string
	Status       SuggestionStatus
	ResponseNote string
	RespondedAt  time.Time
}

type SuggestionFilter struct {
	ListId       *string
	ProposedBy   *UserId
	TargetUserId *UserId
	Status       *SuggestionStatus
}

// PendingSuggestionKey is the tuple on which at most one pending suggestion may exist.
type PendingSuggestionKey struct {
	ListId       string
	AssetId      string
	Kind         SuggestionKind
	TargetUserId UserId
}

type UserSuggestions struct {
	Incoming []ListSuggestion
	Outgoing []ListSuggestion
}

// PartitionSuggestions splits suggestions into those addressed to the user and those they proposed.
func PartitionSuggestions(suggestions []ListSuggestion, userId UserId) UserSuggestions {
	result := UserSuggestions{
		Incoming: make([]ListSuggestion, 0),
		Outgoing: make([]ListSuggestion, 0),
	}
	for _, s := range suggestions {
		if s.TargetUserId == userId {
			result.Incoming = append(result.Incoming, s)
		}
		if s.ProposedBy == userId {
			result.Outgoing = append(result.Outgoing, s)
		}
	}
	return result
}
