package models

import "time"

type ListChangeKind string

const (
	ListChangeListMutated       ListChangeKind = "list_mutated"
	ListChangeSuggestionChanged ListChangeKind = "suggestion_changed"
)

// ListChangeEvent is published on every committed mutation, keyed by list id, so that other
// clients know they must refetch.
type ListChangeEvent struct {
	Kind         ListChangeKind `json:"kind"`
	ListId       string         `json:"list_id"`
	Operation    string         `json:"operation"`
	SuggestionId string         `json:"suggestion_id,omitempty"`
	ActorId      UserId         `json:"actor_id"`
	OccurredAt   time.Time      `json:"occurred_at"`
}

// Operations carried by list_mutated events, also used as metric labels.
const (
	OperationCreateList   = "create_list"
	OperationUpdateList   = "update_list"
	OperationChangeType   = "change_type"
	OperationDeleteList   = "delete_list"
	OperationAddMember    = "add_member"
	OperationUpdateMember = "update_member"
	OperationRemoveMember = "remove_member"
	OperationAddItem      = "add_item"
	OperationRemoveItem   = "remove_item"
	OperationSetItemNote  = "set_item_note"
	OperationMoveItem     = "move_item_to_group"
	OperationReorderItem  = "reorder_item"
	OperationCreateGroup  = "create_group"
	OperationUpdateGroup  = "update_group"
	OperationDeleteGroup  = "delete_group"
	OperationReorderGroup = "reorder_group"
	OperationBackfill     = "backfill_positions"
	OperationPropose      = "propose_suggestion"
	OperationRespond      = "respond_suggestion"
	OperationCancel       = "cancel_suggestion"
)
