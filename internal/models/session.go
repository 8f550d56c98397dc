package models

import "time"

// Session is an opaque bearer credential persisted server-side.
// A session is resolvable only while ExpiresAt is strictly in the future;
// expired rows are ignored by lookups until swept or revoked.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
