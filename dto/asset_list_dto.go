package dto

import (
	"time"

	"github.com/checkmarble/asset-lists/models"
)

type APIAssetList struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Type        string    `json:"type"`
	OwnerId     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UpdatedBy   string    `json:"updated_by"`
}

func AdaptAssetListDto(list models.AssetList) APIAssetList {
	return APIAssetList{
		Id:          list.Id,
		Name:        list.Name,
		Description: list.Description,
		Color:       list.Color,
		Type:        string(list.Type),
		OwnerId:     string(list.OwnerId),
		CreatedAt:   list.CreatedAt,
		UpdatedAt:   list.UpdatedAt,
		UpdatedBy:   string(list.UpdatedBy),
	}
}

type APIListCapabilities struct {
	CanView                 bool `json:"can_view"`
	CanWrite                bool `json:"can_write"`
	CanEditSettings         bool `json:"can_edit_settings"`
	CanManageMembers        bool `json:"can_manage_members"`
	CanDeleteList           bool `json:"can_delete_list"`
	CanChangeType           bool `json:"can_change_type"`
	CanAddAnyItem           bool `json:"can_add_any_item"`
	CanRemoveAnyItem        bool `json:"can_remove_any_item"`
	CanAddToOwnSection      bool `json:"can_add_to_own_section"`
	CanRemoveFromOwnSection bool `json:"can_remove_from_own_section"`
	CanSuggestChanges       bool `json:"can_suggest_changes"`
}

func AdaptListCapabilitiesDto(c models.ListCapabilities) APIListCapabilities {
	return APIListCapabilities{
		CanView:                 c.CanView,
		CanWrite:                c.CanWrite,
		CanEditSettings:         c.CanEditSettings,
		CanManageMembers:        c.CanManageMembers,
		CanDeleteList:           c.CanDeleteList,
		CanChangeType:           c.CanChangeType,
		CanAddAnyItem:           c.CanAddAnyItem,
		CanRemoveAnyItem:        c.CanRemoveAnyItem,
		CanAddToOwnSection:      c.CanAddToOwnSection,
		CanRemoveFromOwnSection: c.CanRemoveFromOwnSection,
		CanSuggestChanges:       c.CanSuggestChanges,
	}
}

type APIAssetListWithCapabilities struct {
	APIAssetList
	Capabilities APIListCapabilities `json:"capabilities"`
}

func AdaptAssetListWithCapabilitiesDto(list models.AssetListWithCapabilities) APIAssetListWithCapabilities {
	return APIAssetListWithCapabilities{
		APIAssetList: AdaptAssetListDto(list.AssetList),
		Capabilities: AdaptListCapabilitiesDto(list.Capabilities),
	}
}

type CreateAssetListBody struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Type        string `json:"type" binding:"required,oneof=mutual collaborative"`
}

func AdaptCreateAssetListInput(body CreateAssetListBody) models.CreateAssetListInput {
	return models.CreateAssetListInput{
		Name:        body.Name,
		Description: body.Description,
		Color:       body.Color,
		Type:        models.ListTypeFrom(body.Type),
	}
}

type UpdateAssetListBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

func AdaptUpdateAssetListInput(listId string, body UpdateAssetListBody) models.UpdateAssetListInput {
	return models.UpdateAssetListInput{
		Id:          listId,
		Name:        body.Name,
		Description: body.Description,
		Color:       body.Color,
	}
}

type ChangeListTypeBody struct {
	Type string `json:"type" binding:"required,oneof=mutual collaborative"`
}
