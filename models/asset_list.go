package models

import (
	"time"
)

type ListType string

const (
	ListTypeMutual        ListType = "mutual"
	ListTypeCollaborative ListType = "collaborative"
	ListTypeUnknown       ListType = "unknown"
)

func ListTypeFrom(s string) ListType {
	switch s {
	case "mutual":
		return ListTypeMutual
	case "collaborative":
		return ListTypeCollaborative
	}
	return ListTypeUnknown
}

type AssetList struct {
	Id          string
	Name        string
	Description string
	Color       string
	Type        ListType
	OwnerId     UserId
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UpdatedBy   UserId
}

type CreateAssetListInput struct {
	Name        string   `validate:"required,max=255"`
	Description string   `validate:"max=2000"`
	Color       string   `validate:"omitempty,hexcolor"`
	Type        ListType `validate:"required,oneof=mutual collaborative"`
	OwnerId     UserId   `validate:"required"`
}

type UpdateAssetListInput struct {
	Id          string
	Name        *string `validate:"omitempty,min=1,max=255"`
	Description *string `validate:"omitempty,max=2000"`
	Color       *string `validate:"omitempty,hexcolor"`
	UpdatedBy   UserId
}

type AssetListWithCapabilities struct {
	AssetList
	Capabilities ListCapabilities
}

// ListAccess holds everything the capability engine needs to know about a list.
type ListAccess struct {
	List        AssetList
	Memberships []ListMembership
}

func (a ListAccess) MembershipOf(userId UserId) *ListMembership {
	for i := range a.Memberships {
		if a.Memberships[i].UserId == userId {
			return &a.Memberships[i]
		}
	}
	return nil
}

// HasWriteStanding reports whether the user owns a section of the list, that is whether they are
// the owner or a member with write or admin permission.
func (a ListAccess) HasWriteStanding(userId UserId) bool {
	if a.List.OwnerId == userId {
		return true
	}
	m := a.MembershipOf(userId)
	return m != nil && m.Permission.CanWrite()
}
