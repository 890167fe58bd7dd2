package dto

import (
	"time"

	"github.com/checkmarble/asset-lists/models"
)

type APIListMember struct {
	ListId     string    `json:"list_id"`
	UserId     string    `json:"user_id"`
	Permission string    `json:"permission"`
	CreatedAt  time.Time `json:"created_at"`
}

func AdaptListMemberDto(m models.ListMembership) APIListMember {
	return APIListMember{
		ListId:     m.ListId,
		UserId:     string(m.UserId),
		Permission: string(m.Permission),
		CreatedAt:  m.CreatedAt,
	}
}

type AddListMemberBody struct {
	UserId     string `json:"user_id" binding:"required"`
	Permission string `json:"permission" binding:"required,oneof=read write admin"`
}

func AdaptAddListMemberInput(listId string, body AddListMemberBody) models.AddListMemberInput {
	return models.AddListMemberInput{
		ListId:     listId,
		UserId:     models.UserId(body.UserId),
		Permission: models.MemberPermissionFrom(body.Permission),
	}
}

type UpdateListMemberBody struct {
	Permission string `json:"permission" binding:"required,oneof=read write admin"`
}
