package models

type UserId string

// User as known from the identity token. Users are managed by the identity provider, the
// service only stores their ids.
type User struct {
	UserId UserId
	Email  string
	Name   string
}
