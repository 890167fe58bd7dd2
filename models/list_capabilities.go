package models

// ListCapabilities is the capability set of one caller on one list. It is computed by the
// capability engine in usecases/security and is the only thing mutation paths look at.
type ListCapabilities struct {
	CanView          bool
	CanWrite         bool
	CanEditSettings  bool
	CanManageMembers bool
	CanDeleteList    bool
	CanChangeType    bool

	// mutual lists
	CanAddAnyItem    bool
	CanRemoveAnyItem bool

	// collaborative lists
	CanAddToOwnSection      bool
	CanRemoveFromOwnSection bool
	CanSuggestChanges       bool

	ListType ListType
	CallerId UserId
}

// CanRemoveItem: on a mutual list any writer can remove any item, on a collaborative list a
// writer can only remove the items they added themselves.
func (c ListCapabilities) CanRemoveItem(item ListItem) bool {
	if !c.CanWrite {
		return false
	}
	switch c.ListType {
	case ListTypeMutual:
		return c.CanRemoveAnyItem
	case ListTypeCollaborative:
		return c.CanRemoveFromOwnSection && item.AddedBy == c.CallerId
	}
	return false
}

// CanEditItem covers note edition, group moves and reordering of an existing item. It follows
// the same ownership rule as removal.
func (c ListCapabilities) CanEditItem(item ListItem) bool {
	return c.CanRemoveItem(item)
}

// CanAddItem reports whether the caller can add an item to their own section of the list.
func (c ListCapabilities) CanAddItem() bool {
	switch c.ListType {
	case ListTypeMutual:
		return c.CanAddAnyItem
	case ListTypeCollaborative:
		return c.CanAddToOwnSection
	}
	return false
}
