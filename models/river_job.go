package models

// fan out of committed list changes to the subscribers
type ListChangeJobArgs struct {
	Event ListChangeEvent `json:"event"`
}

func (ListChangeJobArgs) Kind() string { return "list_change" }

const LIST_CHANGE_QUEUE_NAME = "list_changes"
