package security_test

import (
	"fmt"
	"testing"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/usecases/security"

	"github.com/stretchr/testify/assert"
)

const (
	ownerId    models.UserId = "owner"
	writerId   models.UserId = "writer"
	readerId   models.UserId = "reader"
	adminId    models.UserId = "admin"
	strangerId models.UserId = "stranger"
)

const matrixListId = "list"

func accessFor(listType models.ListType) models.ListAccess {
	return models.ListAccess{
		List: models.AssetList{Id: matrixListId, Type: listType, OwnerId: ownerId},
		Memberships: []models.ListMembership{
			{ListId: matrixListId, UserId: writerId, Permission: models.MemberPermissionWrite},
			{ListId: matrixListId, UserId: readerId, Permission: models.MemberPermissionRead},
			{ListId: matrixListId, UserId: adminId, Permission: models.MemberPermissionAdmin},
		},
	}
}

func TestCanRemoveItem_matrix(t *testing.T) {
	type row struct {
		listType  models.ListType
		caller    models.UserId
		ownItem   bool
		canRemove bool
	}
	rows := []row{
		{models.ListTypeMutual, ownerId, true, true},
		{models.ListTypeMutual, ownerId, false, true},
		{models.ListTypeMutual, writerId, true, true},
		{models.ListTypeMutual, writerId, false, true},
		{models.ListTypeMutual, readerId, true, false},
		{models.ListTypeMutual, readerId, false, false},
		{models.ListTypeMutual, strangerId, true, false},
		{models.ListTypeMutual, strangerId, false, false},
		{models.ListTypeCollaborative, ownerId, true, true},
		{models.ListTypeCollaborative, ownerId, false, false},
		{models.ListTypeCollaborative, writerId, true, true},
		{models.ListTypeCollaborative, writerId, false, false},
		{models.ListTypeCollaborative, readerId, true, false},
		{models.ListTypeCollaborative, readerId, false, false},
		{models.ListTypeCollaborative, strangerId, true, false},
		{models.ListTypeCollaborative, strangerId, false, false},
	}

	for _, r := range rows {
		name := fmt.Sprintf("%s/%s/own=%v", r.listType, r.caller, r.ownItem)
		t.Run(name, func(t *testing.T) {
			caps := security.CapabilitiesOf(accessFor(r.listType), r.caller)

			item := models.ListItem{Id: "item", ListId: matrixListId, AddedBy: "someone-else"}
			if r.ownItem {
				item.AddedBy = r.caller
			}
			assert.Equal(t, r.canRemove, caps.CanRemoveItem(item))
			assert.Equal(t, r.canRemove, caps.CanEditItem(item))
		})
	}
}

func TestComputeListCapabilities_roles(t *testing.T) {
	t.Run("owner of a shared list", func(t *testing.T) {
		caps := security.CapabilitiesOf(accessFor(models.ListTypeCollaborative), ownerId)
		assert.True(t, caps.CanView)
		assert.True(t, caps.CanWrite)
		assert.True(t, caps.CanEditSettings)
		assert.True(t, caps.CanManageMembers)
		assert.True(t, caps.CanDeleteList)
		assert.False(t, caps.CanChangeType, "the type is locked once the list has members")
	})

	t.Run("owner of an unshared list", func(t *testing.T) {
		access := accessFor(models.ListTypeMutual)
		access.Memberships = nil
		caps := security.CapabilitiesOf(access, ownerId)
		assert.True(t, caps.CanChangeType)
	})

	t.Run("admin member", func(t *testing.T) {
		caps := security.CapabilitiesOf(accessFor(models.ListTypeMutual), adminId)
		assert.True(t, caps.CanWrite)
		assert.True(t, caps.CanEditSettings)
		assert.True(t, caps.CanManageMembers)
		assert.False(t, caps.CanDeleteList)
		assert.False(t, caps.CanChangeType)
	})

	t.Run("read member", func(t *testing.T) {
		caps := security.CapabilitiesOf(accessFor(models.ListTypeCollaborative), readerId)
		assert.True(t, caps.CanView)
		assert.False(t, caps.CanWrite)
		assert.False(t, caps.CanSuggestChanges)
		assert.False(t, caps.CanAddItem())
	})

	t.Run("stranger has nothing", func(t *testing.T) {
		caps := security.CapabilitiesOf(accessFor(models.ListTypeMutual), strangerId)
		assert.Equal(t, models.ListCapabilities{
			ListType: models.ListTypeMutual,
			CallerId: strangerId,
		}, caps)
	})

	t.Run("membership of another list is ignored", func(t *testing.T) {
		list := models.AssetList{Id: matrixListId, Type: models.ListTypeMutual, OwnerId: ownerId}
		membership := &models.ListMembership{ListId: "other", UserId: writerId, Permission: models.MemberPermissionAdmin}
		caps := security.ComputeListCapabilities(list, membership, true, writerId)
		assert.False(t, caps.CanView)
	})
}

func TestComputeListCapabilities_modes(t *testing.T) {
	mutual := security.CapabilitiesOf(accessFor(models.ListTypeMutual), writerId)
	assert.True(t, mutual.CanAddAnyItem)
	assert.True(t, mutual.CanRemoveAnyItem)
	assert.False(t, mutual.CanSuggestChanges)
	assert.True(t, mutual.CanAddItem())

	collaborative := security.CapabilitiesOf(accessFor(models.ListTypeCollaborative), writerId)
	assert.False(t, collaborative.CanAddAnyItem)
	assert.False(t, collaborative.CanRemoveAnyItem)
	assert.True(t, collaborative.CanAddToOwnSection)
	assert.True(t, collaborative.CanRemoveFromOwnSection)
	assert.True(t, collaborative.CanSuggestChanges)
	assert.True(t, collaborative.CanAddItem())
}
