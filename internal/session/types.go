package session

import (
	"github.com/ziadkadry99/dexview/internal/accounts"
	"github.com/ziadkadry99/dexview/internal/catalog"
	"github.com/ziadkadry99/dexview/internal/overlay"
	"github.com/ziadkadry99/dexview/internal/view"
)

// Inbound message types.
const (
	MsgOpen         = "open"
	MsgOpenFavorite = "open_favorite"
	MsgClose        = "close"
	MsgNext         = "next"
	MsgPrev         = "prev"
	MsgSubview      = "subview"
	MsgResize       = "resize"
	MsgMore         = "more"
	MsgSearch       = "search"
	MsgLike         = "like"
	MsgLogin        = "login"
	MsgLogout       = "logout"
)

// Inbound is a message from the browser.
type Inbound struct {
	Type     string      `json:"type"`
	Key      catalog.Key `json:"key,omitempty"`
	Subview  string      `json:"subview,omitempty"`
	Height   int         `json:"height,omitempty"`
	Term     string      `json:"term,omitempty"`
	Username string      `json:"username,omitempty"`
	Password string      `json:"password,omitempty"`
}

// Frame is a message to the browser: either a full state snapshot or an
// error.
type Frame struct {
	Type    string `json:"type"` // "state" or "error"
	Session string `json:"session"`
	Message string `json:"message,omitempty"`
	*Snapshot
}

// Snapshot is everything the client needs to render the page.
type Snapshot struct {
	Overlay       overlay.State     `json:"overlay"`
	Detail        *view.Detail      `json:"detail,omitempty"`
	Notices       []overlay.Notice  `json:"notices"`
	TooSmall      bool              `json:"too_small"`
	Revealed      bool              `json:"revealed"`
	HasMore       bool              `json:"has_more"`
	VisibleCount  int               `json:"visible_count"`
	Filtered      bool              `json:"filtered"`
	Visible       []catalog.Key     `json:"visible,omitempty"`
	ScrollTop     bool              `json:"scroll_top,omitempty"`
	Dimmed        bool              `json:"dimmed"`
	Account       *accounts.Account `json:"account,omitempty"`
	Greeting      string            `json:"greeting,omitempty"`
	Favorites     []catalog.Key     `json:"favorites"`
	FavoriteCards []view.Card       `json:"favorite_cards"`
}
