package models

import "time"

type ListGroup struct {
	Id        string
	ListId    string
	Name      string
	Color     string
	Position  *int64
	Collapsed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateListGroupInput struct {
	ListId   string `validate:"required"`
	Name     string `validate:"required,max=255"`
	Color    string `validate:"omitempty,hexcolor"`
	Position int64
}

type UpdateListGroupInput struct {
	Id        string
	Name      *string `validate:"omitempty,min=1,max=255"`
	Color     *string `validate:"omitempty,hexcolor"`
	Collapsed *bool
	Position  *int64
}

type ReorderGroupInput struct {
	ListId    string
	FromIndex int
	ToIndex   int
}
