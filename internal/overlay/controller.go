package overlay

import (
	"log"

	"github.com/ziadkadry99/dexview/internal/catalog"
)

// Config wires a Controller to its collaborators.
type Config struct {
	Records   Records
	Viewport  Viewport
	Surface   Surface
	Notifier  Notifier
	Gate      *Gate
	MinHeight int // viewport heights below this force the overlay closed
}

// Controller owns the overlay state. It is not safe for concurrent use; a
// page session drives it from a single goroutine.
type Controller struct {
	cfg   Config
	state State

	stopWatch func()
	tooSmall  bool
}

// NewController creates a closed controller.
func NewController(cfg Config) *Controller {
	return &Controller{cfg: cfg}
}

// State returns a snapshot of the overlay.
func (c *Controller) State() State { return c.state }

// TooSmall reports whether the too-small notice is currently raised.
func (c *Controller) TooSmall() bool { return c.tooSmall }

// Open shows the overlay for key, replacing any open overlay. It is dropped
// with ErrInputLocked while another transition is in flight, rejected with
// ErrNotLoaded for an incomplete record, and force-closes with
// ErrViewportTooSmall when the viewport is below the minimum height.
func (c *Controller) Open(key catalog.Key) error {
	if c.state.InputLocked {
		return ErrInputLocked
	}
	if !c.cfg.Records.IsComplete(key) {
		c.notify(Notice{Kind: NoticeNotLoaded, Key: key, Active: true})
		return ErrNotLoaded
	}

	c.state.InputLocked = true
	defer func() { c.state.InputLocked = false }()

	if c.belowMinimum(c.cfg.Viewport.Height()) {
		if c.state.Open {
			c.forceClose()
		}
		c.raiseTooSmall()
		if c.stopWatch == nil {
			c.watch()
		}
		return ErrViewportTooSmall
	}

	c.watch()
	if c.tooSmall {
		c.clearTooSmall()
	}
	c.cfg.Surface.ScrollToTop()
	c.cfg.Surface.SetBackgroundDimmed(true)
	c.state.Open = true
	c.state.Key = key
	c.state.Subview = SubviewAbout
	return nil
}

// Close hides the overlay.
func (c *Controller) Close() error {
	if !c.state.Open {
		return ErrNotOpen
	}
	c.unwatch()
	c.cfg.Surface.SetBackgroundDimmed(false)
	c.state = State{}
	return nil
}

// Next moves the overlay from current to the following record, wrapping from
// N to 1.
func (c *Controller) Next(current catalog.Key) error {
	n := catalog.Key(c.cfg.Gate.Size())
	return c.navigate(current, current%n+1)
}

// Prev moves the overlay from current to the preceding record, wrapping from
// 1 to N.
func (c *Controller) Prev(current catalog.Key) error {
	target := current - 1
	if current == 1 {
		target = catalog.Key(c.cfg.Gate.Size())
	}
	return c.navigate(current, target)
}

func (c *Controller) navigate(current, target catalog.Key) error {
	if !c.state.Open || c.state.Key != current {
		return ErrNotOpen
	}
	c.cfg.Gate.RevealAll()
	if !c.cfg.Records.IsComplete(target) {
		return ErrNotLoaded
	}
	return c.Open(target)
}

// SwitchSubview selects the pane shown for the open record key.
func (c *Controller) SwitchSubview(key catalog.Key, sv Subview) error {
	if !c.state.Open || c.state.Key != key {
		return ErrNotOpen
	}
	if _, err := ParseSubview(string(sv)); err != nil {
		return err
	}
	c.state.Subview = sv
	return nil
}

func (c *Controller) onResize(height int) {
	if c.state.InputLocked {
		return
	}
	if c.belowMinimum(height) {
		if c.state.Open {
			log.Printf("overlay: viewport height %d below %d, closing record %d", height, c.cfg.MinHeight, c.state.Key)
			c.forceClose()
		}
		c.raiseTooSmall()
		return
	}
	if c.tooSmall {
		c.clearTooSmall()
	}
	if !c.state.Open {
		c.unwatch()
	}
}

func (c *Controller) belowMinimum(height int) bool {
	return height > 0 && height < c.cfg.MinHeight
}

// forceClose closes the overlay but keeps the resize watcher so recovery
// can clear the notice.
func (c *Controller) forceClose() {
	c.cfg.Surface.SetBackgroundDimmed(false)
	locked := c.state.InputLocked
	c.state = State{InputLocked: locked}
}

func (c *Controller) raiseTooSmall() {
	if c.tooSmall {
		return
	}
	c.tooSmall = true
	c.notify(Notice{Kind: NoticeTooSmall, Active: true})
}

func (c *Controller) clearTooSmall() {
	c.tooSmall = false
	c.notify(Notice{Kind: NoticeTooSmall, Active: false})
}

// watch registers a fresh resize watcher, dropping any previous one.
func (c *Controller) watch() {
	c.unwatch()
	c.stopWatch = c.cfg.Viewport.Watch(c.onResize)
}

func (c *Controller) unwatch() {
	if c.stopWatch != nil {
		c.stopWatch()
		c.stopWatch = nil
	}
}

func (c *Controller) notify(n Notice) {
	if c.cfg.Notifier != nil {
		c.cfg.Notifier.Notify(n)
	}
}
