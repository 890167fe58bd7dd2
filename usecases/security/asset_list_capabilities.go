package security

import "github.com/checkmarble/asset-lists/models"

// ComputeListCapabilities derives the capability set of the caller on the list from the list
// type, its owner, the caller's membership if any and whether the list has any membership at all.
// It is pure and is evaluated again on every mutation, never read from a client.
func ComputeListCapabilities(
	list models.AssetList,
	membership *models.ListMembership,
	hasMemberships bool,
	callerId models.UserId,
) models.ListCapabilities {
	caps := models.ListCapabilities{
		ListType: list.Type,
		CallerId: callerId,
	}

	isOwner := callerId != "" && list.OwnerId == callerId
	isMember := membership != nil && membership.UserId == callerId && membership.ListId == list.Id
	if !isOwner && !isMember {
		return caps
	}

	isAdmin := isMember && membership.Permission == models.MemberPermissionAdmin

	caps.CanView = true
	caps.CanWrite = isOwner || (isMember && membership.Permission.CanWrite())
	caps.CanEditSettings = isOwner || isAdmin
	caps.CanManageMembers = isOwner || isAdmin
	caps.CanDeleteList = isOwner
	caps.CanChangeType = isOwner && !hasMemberships

	switch list.Type {
	case models.ListTypeMutual:
		caps.CanAddAnyItem = caps.CanWrite
		caps.CanRemoveAnyItem = caps.CanWrite
		caps.CanAddToOwnSection = caps.CanWrite
		caps.CanRemoveFromOwnSection = caps.CanWrite
	case models.ListTypeCollaborative:
		caps.CanAddToOwnSection = caps.CanWrite
		caps.CanRemoveFromOwnSection = caps.CanWrite
		caps.CanSuggestChanges = caps.CanWrite
	}

	return caps
}

func CapabilitiesOf(access models.ListAccess, callerId models.UserId) models.ListCapabilities {
	return ComputeListCapabilities(
		access.List,
		access.MembershipOf(callerId),
		len(access.Memberships) > 0,
		callerId,
	)
}
