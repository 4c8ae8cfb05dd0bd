// Package audit keeps the activity trail of account actions.
package audit

import "time"

// Action describes what an account did.
type Action string

const (
	ActionRegistered        Action = "registered"
	ActionLoggedIn          Action = "logged_in"
	ActionLoginFailed       Action = "login_failed"
	ActionFavoriteAdded     Action = "favorite_added"
	ActionFavoriteRemoved   Action = "favorite_removed"
	ActionFavoritesReplaced Action = "favorites_replaced"
)

// Entry is a single activity record. Key is the catalog number the action
// touched, or zero.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	AccountID int64     `json:"account_id"`
	Username  string    `json:"username"`
	Action    Action    `json:"action"`
	Key       int       `json:"key,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}
