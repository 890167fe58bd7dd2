package dto

type APIErrorResponse struct {
	Message   string    `json:"message"`
	ErrorCode ErrorCode `json:"error_code,omitempty"`
}

type ErrorCode string

const (
	// list related
	ListTypeLocked        ErrorCode = "list_type_locked"
	MemberAlreadyExists   ErrorCode = "member_already_exists"
	AssetAlreadyInSection ErrorCode = "asset_already_in_section"

	// ordering related
	GroupListMismatch  ErrorCode = "group_list_mismatch"
	PositionOutOfRange ErrorCode = "position_out_of_range"

	// suggestion related
	DuplicateSuggestion  ErrorCode = "duplicate_suggestion"
	SuggestionNotPending ErrorCode = "suggestion_not_pending"
)
