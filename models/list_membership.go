package models

import "time"

type MemberPermission string

const (
	MemberPermissionRead    MemberPermission = "read"
	MemberPermissionWrite   MemberPermission = "write"
	MemberPermissionAdmin   MemberPermission = "admin"
	MemberPermissionUnknown MemberPermission = "unknown"
)

func MemberPermissionFrom(s string) MemberPermission {
	switch s {
	case "read":
		return MemberPermissionRead
	case "write":
		return MemberPermissionWrite
	case "admin":
		return MemberPermissionAdmin
	}
	return MemberPermissionUnknown
}

func (p MemberPermission) CanWrite() bool {
	return p == MemberPermissionWrite || p == MemberPermissionAdmin
}

type ListMembership struct {
	ListId     string
	UserId     UserId
	Permission MemberPermission
	CreatedAt  time.Time
}

type AddListMemberInput struct {
	ListId     string
	UserId     UserId           `validate:"required"`
	Permission MemberPermission `validate:"required,oneof=read write admin"`
}
