// Package overlay implements the single detail overlay shown over the card
// grid: which record is open, which subview is showing, and how the overlay
// reacts to the viewport becoming too small.
package overlay

import (
	"errors"
	"fmt"

	"github.com/ziadkadry99/dexview/internal/catalog"
)

var (
	ErrNotLoaded        = errors.New("record not loaded yet")
	ErrViewportTooSmall = errors.New("viewport too small")
	ErrInputLocked      = errors.New("overlay transition in progress")
	ErrNotOpen          = errors.New("overlay not open for record")
	ErrUnknownSubview   = errors.New("unknown subview")
)

// Subview selects one of the content panes of an open overlay.
type Subview string

const (
	SubviewAbout     Subview = "about"
	SubviewNews      Subview = "news"
	SubviewStats     Subview = "stats"
	SubviewEvolution Subview = "evolution"
)

// Subviews lists the panes in display order.
var Subviews = []Subview{SubviewAbout, SubviewNews, SubviewStats, SubviewEvolution}

// ParseSubview validates a subview name.
func ParseSubview(s string) (Subview, error) {
	for _, sv := range Subviews {
		if string(sv) == s {
			return sv, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSubview, s)
}

// State is a snapshot of the overlay.
type State struct {
	Open        bool        `json:"open"`
	Key         catalog.Key `json:"key,omitempty"`
	Subview     Subview     `json:"subview,omitempty"`
	InputLocked bool        `json:"input_locked"`
}

// NoticeKind names a user-facing notice.
type NoticeKind string

const (
	NoticeNotLoaded NoticeKind = "not_loaded"
	NoticeTooSmall  NoticeKind = "too_small"
	NoticeLogIn     NoticeKind = "log_in"
)

// Notice is raised (Active) or cleared by the controller.
type Notice struct {
	Kind   NoticeKind  `json:"kind"`
	Key    catalog.Key `json:"key,omitempty"`
	Active bool        `json:"active"`
}

// Records answers whether a record can be shown.
type Records interface {
	IsComplete(key catalog.Key) bool
}

// Viewport reports the current viewport height and delivers resize events.
// A height of zero or less means unknown. Watch returns a function that
// unregisters the watcher.
type Viewport interface {
	Height() int
	Watch(fn func(height int)) (stop func())
}

// Surface is the card grid underneath the overlay.
type Surface interface {
	ScrollToTop()
	SetBackgroundDimmed(dimmed bool)
}

// Notifier receives notices.
type Notifier interface {
	Notify(n Notice)
}
