// Package session drives one browser page over a websocket: it owns the
// page's overlay controller, card gate, viewport and login state, and turns
// each inbound event into a fresh state snapshot.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/ziadkadry99/dexview/internal/accounts"
	"github.com/ziadkadry99/dexview/internal/catalog"
	"github.com/ziadkadry99/dexview/internal/favorites"
	"github.com/ziadkadry99/dexview/internal/overlay"
	"github.com/ziadkadry99/dexview/internal/view"
)

// Resolver resolves evolution chains.
type Resolver interface {
	Resolve(ctx context.Context, chainURL string) ([]catalog.Stage, error)
}

// Recorder receives session events for metrics.
type Recorder interface {
	OverlayOpened()
	NoticeRaised(kind string)
	SessionStarted()
	SessionEnded()
}

// Options are the per-page tunables.
type Options struct {
	PageSize          int
	MinViewportHeight int
	SearchMinChars    int
	NewsEntryIndex    int
}

// Deps are the process-wide collaborators shared by every session.
type Deps struct {
	Cache     *catalog.Cache
	Evolution Resolver
	Accounts  *accounts.Service
	Recorder  Recorder
	Options   Options
}

// Session is the state of one page. It is not safe for concurrent use.
type Session struct {
	id   string
	deps Deps

	ctrl     *overlay.Controller
	gate     *overlay.Gate
	viewport *viewport
	surface  *surface
	pending  []overlay.Notice

	filtered bool
	visible  []catalog.Key

	account *accounts.Account
	favs    favorites.Set
}

// New creates a session for a page whose viewport is height pixels tall
// (zero when unknown).
func New(deps Deps, height int) *Session {
	if deps.Recorder == nil {
		deps.Recorder = nopRecorder{}
	}
	s := &Session{
		id:       uuid.New().String(),
		deps:     deps,
		gate:     overlay.NewGate(deps.Cache.Size(), deps.Options.PageSize),
		viewport: newViewport(height),
		surface:  &surface{},
		favs:     favorites.Set{},
	}
	s.ctrl = overlay.NewController(overlay.Config{
		Records:   deps.Cache,
		Viewport:  s.viewport,
		Surface:   s.surface,
		Notifier:  s,
		Gate:      s.gate,
		MinHeight: deps.Options.MinViewportHeight,
	})
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Notify implements overlay.Notifier by queueing the notice for the next
// frame.
func (s *Session) Notify(n overlay.Notice) {
	if n.Active {
		s.deps.Recorder.NoticeRaised(string(n.Kind))
	}
	s.pending = append(s.pending, n)
}

// Handle applies one inbound event and returns the frame to send back.
func (s *Session) Handle(ctx context.Context, msg Inbound) Frame {
	if err := s.dispatch(ctx, msg); err != nil {
		return Frame{Type: "error", Session: s.id, Message: err.Error(), Snapshot: s.snapshot(ctx)}
	}
	return s.State(ctx)
}

// State returns a snapshot frame without applying any event.
func (s *Session) State(ctx context.Context) Frame {
	return Frame{Type: "state", Session: s.id, Snapshot: s.snapshot(ctx)}
}

func (s *Session) dispatch(ctx context.Context, msg Inbound) error {
	switch msg.Type {
	case MsgOpen:
		return s.open(msg.Key)
	case MsgOpenFavorite:
		s.gate.RevealAll()
		return s.open(msg.Key)
	case MsgClose:
		return s.ctrl.Close()
	case MsgNext:
		return quiet(s.ctrl.Next(msg.Key))
	case MsgPrev:
		return quiet(s.ctrl.Prev(msg.Key))
	case MsgSubview:
		sv, err := overlay.ParseSubview(msg.Subview)
		if err != nil {
			return err
		}
		return s.ctrl.SwitchSubview(msg.Key, sv)
	case MsgResize:
		s.viewport.Resize(msg.Height)
		return nil
	case MsgMore:
		s.gate.RevealAll()
		return nil
	case MsgSearch:
		s.search(msg.Term)
		return nil
	case MsgLike:
		return s.like(ctx, msg.Key)
	case MsgLogin:
		return s.login(ctx, msg.Username, msg.Password)
	case MsgLogout:
		s.account = nil
		s.favs = favorites.Set{}
		return nil
	default:
		return fmt.Errorf("unknown message type: %q", msg.Type)
	}
}

// open reports the structural rejections through notices rather than as
// errors.
func (s *Session) open(key catalog.Key) error {
	err := s.ctrl.Open(key)
	if err == nil {
		s.deps.Recorder.OverlayOpened()
	}
	return quiet(err)
}

func (s *Session) search(term string) {
	s.gate.RevealAll()
	s.visible, s.filtered = s.deps.Cache.Search(term, s.deps.Options.SearchMinChars)
}

func (s *Session) like(ctx context.Context, key catalog.Key) error {
	if s.account == nil {
		s.Notify(overlay.Notice{Kind: overlay.NoticeLogIn, Key: key, Active: true})
		return nil
	}
	if s.deps.Accounts == nil {
		return errors.New("accounts are not available")
	}
	a, err := s.deps.Accounts.ToggleFavorite(ctx, s.account.ID, key)
	if err != nil {
		return fmt.Errorf("toggle favorite: %w", err)
	}
	s.setAccount(a)
	return nil
}

func (s *Session) login(ctx context.Context, username, password string) error {
	if s.deps.Accounts == nil {
		return errors.New("accounts are not available")
	}
	a, err := s.deps.Accounts.Login(ctx, username, password)
	if err != nil {
		return err
	}
	s.setAccount(a)
	return nil
}

func (s *Session) setAccount(a *accounts.Account) {
	s.account = a
	s.favs = favorites.FromKeys(a.Favorites)
}

func (s *Session) snapshot(ctx context.Context) *Snapshot {
	state := s.ctrl.State()
	snap := &Snapshot{
		Overlay:      state,
		Notices:      s.pending,
		TooSmall:     s.ctrl.TooSmall(),
		Revealed:     s.gate.Revealed(),
		HasMore:      s.gate.HasMore(),
		VisibleCount: s.gate.VisibleCount(),
		Filtered:     s.filtered,
		Visible:      s.visible,
		ScrollTop:    s.surface.scrollTop,
		Dimmed:       s.surface.dimmed,
		Account:      s.account,
		Favorites:    s.favs.Keys(),
	}
	s.pending = nil
	s.surface.scrollTop = false
	if snap.Notices == nil {
		snap.Notices = []overlay.Notice{}
	}
	if s.account != nil && s.deps.Accounts != nil {
		snap.Greeting = s.deps.Accounts.Greet()
	}

	snap.FavoriteCards = []view.Card{}
	for _, k := range snap.Favorites {
		rec, ok := s.deps.Cache.Get(k)
		if !ok || !rec.Complete() {
			continue
		}
		card := view.NewCard(k, rec, ok)
		card.Favorite = true
		snap.FavoriteCards = append(snap.FavoriteCards, card)
	}

	if state.Open {
		if rec, ok := s.deps.Cache.Get(state.Key); ok {
			d := view.NewDetail(rec, state.Subview, s.deps.Options.NewsEntryIndex, s.stages(ctx, rec, state.Subview))
			d.Favorite = s.favs.Has(state.Key)
			snap.Detail = &d
		}
	}
	return snap
}

func (s *Session) stages(ctx context.Context, rec catalog.Record, sv overlay.Subview) []catalog.Stage {
	if sv != overlay.SubviewEvolution || s.deps.Evolution == nil || rec.Secondary == nil {
		return nil
	}
	stages, err := s.deps.Evolution.Resolve(ctx, rec.Secondary.EvolutionChainURL)
	if err != nil {
		log.Printf("session: evolution for %d: %v", rec.Key, err)
		return nil
	}
	return stages
}

// quiet drops the errors that are already surfaced as notices or are silent
// no-ops.
func quiet(err error) error {
	switch {
	case errors.Is(err, overlay.ErrNotLoaded),
		errors.Is(err, overlay.ErrViewportTooSmall),
		errors.Is(err, overlay.ErrInputLocked):
		return nil
	}
	return err
}

type nopRecorder struct{}

func (nopRecorder) OverlayOpened()      {}
func (nopRecorder) NoticeRaised(string) {}
func (nopRecorder) SessionStarted()     {}
func (nopRecorder) SessionEnded()       {}
