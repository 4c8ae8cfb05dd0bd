// Package accounts is the account store behind login, registration and
// favorites.
package accounts

import (
	"errors"
	"time"

	"github.com/ziadkadry99/dexview/internal/catalog"
)

var (
	ErrUserExists     = errors.New("user already exists")
	ErrUserNotFound   = errors.New("user not found")
	ErrBadCredentials = errors.New("user data or password is incorrect")
	ErrNotFound       = errors.New("account not found")
	ErrInvalid        = errors.New("invalid account data")
)

// Account is a registered user.
type Account struct {
	ID             int64         `json:"id"`
	Username       string        `json:"username"`
	Email          string        `json:"email"`
	ProfilePicture string        `json:"profile_picture"`
	Favorites      []catalog.Key `json:"favorites"`
	PasswordHash   string        `json:"-"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Registration is the input for creating an account.
type Registration struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profile_picture"`
}

// Avatar is a selectable profile picture.
type Avatar struct {
	Name   string      `json:"name"`
	Key    catalog.Key `json:"key,omitempty"`
	Sprite string      `json:"sprite,omitempty"`
}
