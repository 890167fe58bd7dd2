package models

import "time"

type ListItem struct {
	Id       string
	ListId   string
	AssetId  string
	AddedBy  UserId
	GroupId  *string
	Note     string
	Position *int64
	AddedAt  time.Time
}

// AddListItemInput is what a caller sends to add an asset to their section of a list.
type AddListItemInput struct {
	ListId  string  `validate:"required"`
	AssetId string  `validate:"required,max=255"`
	GroupId *string `validate:"omitempty,uuid"`
	Note    string  `validate:"max=2000"`
}

type CreateListItemInput struct {
	ListId   string
	AssetId  string
	AddedBy  UserId
	GroupId  *string
	Note     string
	Position int64
}

// UpdateListItemInput carries exactly one kind of change, matching the store's
// setGroup / setPosition / setNote operations.
type UpdateListItemInput struct {
	Id       string
	SetGroup bool
	GroupId  *string
	Position *int64
	Note     *string
}

type ReorderItemInput struct {
	ListId    string
	GroupId   *string
	FromIndex int
	ToIndex   int
}
