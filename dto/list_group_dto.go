package dto

import (
	"time"

	"github.com/checkmarble/asset-lists/models"
	"github.com/guregu/null/v5"
)

type APIListGroup struct {
	Id        string    `json:"id"`
	ListId    string    `json:"list_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Position  null.Int  `json:"position"`
	Collapsed bool      `json:"collapsed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func AdaptListGroupDto(g models.ListGroup) APIListGroup {
	return APIListGroup{
		Id:        g.Id,
		ListId:    g.ListId,
		Name:      g.Name,
		Color:     g.Color,
		Position:  null.IntFromPtr(g.Position),
		Collapsed: g.Collapsed,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

type CreateListGroupBody struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

type UpdateListGroupBody struct {
	Name      *string `json:"name"`
	Color     *string `json:"color"`
	Collapsed *bool   `json:"collapsed"`
}

func AdaptUpdateListGroupInput(groupId string, body UpdateListGroupBody) models.UpdateListGroupInput {
	return models.UpdateListGroupInput{
		Id:        groupId,
		Name:      body.Name,
		Color:     body.Color,
		Collapsed: body.Collapsed,
	}
}

type ReorderGroupBody struct {
	FromIndex *int `json:"from_index" binding:"required,min=0"`
	ToIndex   *int `json:"to_index" binding:"required,min=0"`
}
