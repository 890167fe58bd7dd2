package models

type IntoCredentials interface {
	IntoCredentials() Credentials
}

type Identity struct {
	UserId UserId
	Email  string
	Name   string
}

// Credentials of the caller, as established by the authentication boundary. Capabilities on a
// given list are never stored here: they are derived per list by the capability engine.
type Credentials struct {
	ActorIdentity Identity
}

func (u User) IntoCredentials() Credentials {
	return Credentials{
		ActorIdentity: Identity{
			UserId: u.UserId,
			Email:  u.Email,
			Name:   u.Name,
		},
	}
}
