package security

import (
	"github.com/checkmarble/asset-lists/models"

	"github.com/cockroachdb/errors"
)

type EnforceSecurityAssetList interface {
	Capabilities(access models.ListAccess) models.ListCapabilities
	ReadList(access models.ListAccess) error
	EditListSettings(access models.ListAccess) error
	ChangeListType(access models.ListAccess) error
	DeleteList(access models.ListAccess) error
	ManageMembers(access models.ListAccess) error
	AddItem(access models.ListAccess) error
	EditItem(access models.ListAccess, item models.ListItem) error
	RemoveItem(access models.ListAccess, item models.ListItem) error
	WriteGroups(access models.ListAccess) error
	ProposeSuggestion(access models.ListAccess) error
	RespondToSuggestion(suggestion models.ListSuggestion) error
	CancelSuggestion(suggestion models.ListSuggestion) error
}

type EnforceSecurityAssetListImpl struct {
	Credentials models.Credentials
}

func (e *EnforceSecurityAssetListImpl) callerId() models.UserId {
	return e.Credentials.ActorIdentity.UserId
}

func (e *EnforceSecurityAssetListImpl) Capabilities(access models.ListAccess) models.ListCapabilities {
	return CapabilitiesOf(access, e.callerId())
}

func (e *EnforceSecurityAssetListImpl) forbidden(access models.ListAccess, action string) error {
	return errors.Wrapf(models.ForbiddenError,
		"user %s cannot %s on list %s", e.callerId(), action, access.List.Id)
}

func (e *EnforceSecurityAssetListImpl) ReadList(access models.ListAccess) error {
	if !e.Capabilities(access).CanView {
		return e.forbidden(access, "view the list")
	}
	return nil
}

func (e *EnforceSecurityAssetListImpl) EditListSettings(access models.ListAccess) error {
	if !e.Capabilities(access).CanEditSettings {
		return e.forbidden(access, "edit the list settings")
	}
	return nil
}

func (e *EnforceSecurityAssetListImpl) ChangeListType(access models.ListAccess) error {
	caps := e.Capabilities(access)
	if caps.CanDeleteList && !caps.CanChangeType {
		// the owner is only blocked by the existing collaborators
		return errors.WithStack(models.ErrListTypeLocked)
	}
	if !caps.CanChangeType {
		return e.forbidden(access, "change the list type")
	}
	return nil
}

func (e *EnforceSecurityAssetListImpl) DeleteList(access models.ListAccess) error {
	if !e.Capabilities(access).CanDeleteList {
		return e.forbidden(access, "delete the list")
	}
	return nil
}

func (e *EnforceSecurityAssetListImpl) ManageMembers(access models.ListAccess) error {
	if !e.Capabilities(access).CanManageMembers {
		return e.forbidden(access, "manage the members")
	}
	return nil
}

func (e *EnforceSecurityAssetListImpl) AddItem(access models.ListAccess) error {
	if !e.Capabilities(access).CanAddItem() {
		return e.forbidden(access, "add items")
	}
	return nil
}

func (e *EnforceSecurityAssetListImpl) EditItem(access models.ListAccess, item models.ListItem) error {
	if item.ListId != access.List.Id {
		return errors.Wrapf(models.InvariantViolationError, "item %s is not in list %s", item.Id, access.List.Id)
	}
	if !e.Capabilities(access).CanEditItem(item) {
		return e.forbidden(access, "edit item "+item.Id)
	}
	return nil
}

func (e *EnforceSecurityAssetListImpl) RemoveItem(access models.ListAccess, item models.ListItem) error {
	if item.ListId != access.List.Id {
		return errors.Wrapf(models.InvariantViolationError, "item %s is not in list %s", item.Id, access.List.Id)
	}
	if !e.Capabilities(access).CanRemoveItem(item) {
		return e.forbidden(access, "remove item "+item.Id)
	}
	return nil
}

func (e *EnforceSecurityAssetListImpl) WriteGroups(access models.ListAccess) error {
	if !e.Capabilities(access).CanWrite {
		return e.forbidden(access, "edit the groups")
	}
	return nil
}

func (e *EnforceSecurityAssetListImpl) ProposeSuggestion(access models.ListAccess) error {
	if !e.Capabilities(access).CanSuggestChanges {
		return e.forbidden(access, "suggest changes")
	}
	return nil
}

func (e *EnforceSecurityAssetListImpl) RespondToSuggestion(suggestion models.ListSuggestion) error {
	if suggestion.TargetUserId != e.callerId() {
		return errors.Wrapf(models.ForbiddenError,
			"only the target user can respond to suggestion %s", suggestion.Id)
	}
	return nil
}

func (e *EnforceSecurityAssetListImpl) CancelSuggestion(suggestion models.ListSuggestion) error {
	if suggestion.ProposedBy != e.callerId() {
		return errors.Wrapf(models.ForbiddenError,
			"only the proposer can cancel suggestion %s", suggestion.Id)
	}
	return nil
}
