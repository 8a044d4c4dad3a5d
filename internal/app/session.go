package app

import (
	"net/http"

	"github.com/google/uuid"
)

type sessionKey string

const (
	SessionKeyUserId = sessionKey("userID")
	SessionKeyRole   = sessionKey("role")
)

func (s sessionKey) String() string {
	return string(s)
}

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

func (app *Application) contextGetUserId(r *http.Request) uuid.UUID {
	userId, ok := r.Context().Value(SessionKeyUserId).(uuid.UUID)
	if !ok {
		panic("missing user id from context")
	}

	return userId
}
