package overlay

import (
	"errors"
	"testing"

	"github.com/ziadkadry99/dexview/internal/catalog"
)

type fakeRecords map[catalog.Key]bool

func (f fakeRecords) IsComplete(key catalog.Key) bool { return f[key] }

func allComplete(n int) fakeRecords {
	f := fakeRecords{}
	for i := 1; i <= n; i++ {
		f[catalog.Key(i)] = true
	}
	return f
}

type fakeViewport struct {
	height       int
	nextID       int
	watchers     map[int]func(int)
	registered   int
	unregistered int
}

func newFakeViewport(height int) *fakeViewport {
	return &fakeViewport{height: height, watchers: map[int]func(int){}}
}

func (v *fakeViewport) Height() int { return v.height }

func (v *fakeViewport) Watch(fn func(int)) func() {
	v.nextID++
	id := v.nextID
	v.watchers[id] = fn
	v.registered++
	return func() {
		if _, ok := v.watchers[id]; ok {
			delete(v.watchers, id)
			v.unregistered++
		}
	}
}

func (v *fakeViewport) Resize(height int) {
	v.height = height
	for _, fn := range v.watchers {
		fn(height)
	}
}

func (v *fakeViewport) active() int { return v.registered - v.unregistered }

type fakeSurface struct {
	scrolls  int
	dimmed   bool
	onScroll func()
}

func (s *fakeSurface) ScrollToTop() {
	s.scrolls++
	if s.onScroll != nil {
		s.onScroll()
	}
}

func (s *fakeSurface) SetBackgroundDimmed(d bool) { s.dimmed = d }

type fakeNotifier struct {
	notices []Notice
}

func (n *fakeNotifier) Notify(notice Notice) { n.notices = append(n.notices, notice) }

func (n *fakeNotifier) count(kind NoticeKind, active bool) int {
	c := 0
	for _, notice := range n.notices {
		if notice.Kind == kind && notice.Active == active {
			c++
		}
	}
	return c
}

type fixture struct {
	ctrl     *Controller
	records  fakeRecords
	viewport *fakeViewport
	surface  *fakeSurface
	notifier *fakeNotifier
	gate     *Gate
}

func newFixture(n, height int) *fixture {
	f := &fixture{
		records:  allComplete(n),
		viewport: newFakeViewport(height),
		surface:  &fakeSurface{},
		notifier: &fakeNotifier{},
		gate:     NewGate(n, 20),
	}
	f.ctrl = NewController(Config{
		Records:   f.records,
		Viewport:  f.viewport,
		Surface:   f.surface,
		Notifier:  f.notifier,
		Gate:      f.gate,
		MinHeight: 540,
	})
	return f
}

func (f *fixture) checkWatchers(t *testing.T) {
	t.Helper()
	want := 0
	if f.ctrl.State().Open || f.ctrl.TooSmall() {
		want = 1
	}
	if got := f.viewport.active(); got != want {
		t.Errorf("active watchers = %d, want %d (state %+v, tooSmall %v)", got, want, f.ctrl.State(), f.ctrl.TooSmall())
	}
}

func TestOpenSetsStateAndSideEffects(t *testing.T) {
	f := newFixture(250, 900)
	if err := f.ctrl.Open(5); err != nil {
		t.Fatalf("Open: %v", err)
	}
	want := State{Open: true, Key: 5, Subview: SubviewAbout}
	if got := f.ctrl.State(); got != want {
		t.Errorf("state = %+v, want %+v", got, want)
	}
	if f.surface.scrolls != 1 || !f.surface.dimmed {
		t.Errorf("surface = %+v", f.surface)
	}
	f.checkWatchers(t)
}

func TestOpenIncompleteLeavesStateUnchanged(t *testing.T) {
	f := newFixture(10, 900)
	f.records[7] = false

	if err := f.ctrl.Open(7); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Open(7) = %v, want ErrNotLoaded", err)
	}
	if got := f.ctrl.State(); got != (State{}) {
		t.Errorf("closed state changed to %+v", got)
	}
	if f.notifier.count(NoticeNotLoaded, true) != 1 {
		t.Errorf("notices = %+v", f.notifier.notices)
	}

	if err := f.ctrl.Open(3); err != nil {
		t.Fatalf("Open(3): %v", err)
	}
	if err := f.ctrl.SwitchSubview(3, SubviewStats); err != nil {
		t.Fatalf("SwitchSubview: %v", err)
	}
	before := f.ctrl.State()
	if err := f.ctrl.Open(7); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Open(7) = %v, want ErrNotLoaded", err)
	}
	if got := f.ctrl.State(); got != before {
		t.Errorf("state = %+v, want %+v", got, before)
	}
	f.checkWatchers(t)
}

func TestOpenReplacesInPlace(t *testing.T) {
	f := newFixture(10, 900)
	_ = f.ctrl.Open(2)
	_ = f.ctrl.SwitchSubview(2, SubviewEvolution)
	if err := f.ctrl.Open(4); err != nil {
		t.Fatalf("Open(4): %v", err)
	}
	want := State{Open: true, Key: 4, Subview: SubviewAbout}
	if got := f.ctrl.State(); got != want {
		t.Errorf("state = %+v, want %+v", got, want)
	}
}

func TestWraparoundNavigation(t *testing.T) {
	tests := []struct {
		name  string
		start catalog.Key
		next  bool
		want  catalog.Key
	}{
		{"next from last", 250, true, 1},
		{"prev from first", 1, false, 250},
		{"next from middle", 77, true, 78},
		{"prev from middle", 77, false, 76},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(250, 900)
			if err := f.ctrl.Open(tt.start); err != nil {
				t.Fatalf("Open: %v", err)
			}
			var err error
			if tt.next {
				err = f.ctrl.Next(tt.start)
			} else {
				err = f.ctrl.Prev(tt.start)
			}
			if err != nil {
				t.Fatalf("navigate: %v", err)
			}
			if got := f.ctrl.State().Key; got != tt.want {
				t.Errorf("key = %d, want %d", got, tt.want)
			}
			if !f.gate.Revealed() {
				t.Error("navigation should reveal every card")
			}
			f.checkWatchers(t)
		})
	}
}

func TestNavigateToIncompleteIsSilentNoop(t *testing.T) {
	f := newFixture(10, 900)
	f.records[6] = false
	_ = f.ctrl.Open(5)
	_ = f.ctrl.SwitchSubview(5, SubviewNews)
	before := f.ctrl.State()
	notices := len(f.notifier.notices)

	if err := f.ctrl.Next(5); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Next = %v, want ErrNotLoaded", err)
	}
	if got := f.ctrl.State(); got != before {
		t.Errorf("state = %+v, want %+v", got, before)
	}
	if len(f.notifier.notices) != notices {
		t.Errorf("navigation raised a notice: %+v", f.notifier.notices)
	}
}

func TestNavigateRequiresOpenCurrentKey(t *testing.T) {
	f := newFixture(10, 900)
	if err := f.ctrl.Next(1); !errors.Is(err, ErrNotOpen) {
		t.Errorf("Next on closed = %v, want ErrNotOpen", err)
	}
	_ = f.ctrl.Open(3)
	if err := f.ctrl.Prev(4); !errors.Is(err, ErrNotOpen) {
		t.Errorf("Prev with stale key = %v, want ErrNotOpen", err)
	}
	if f.ctrl.State().Key != 3 {
		t.Errorf("key changed to %d", f.ctrl.State().Key)
	}
}

func TestSingleWatcherInvariant(t *testing.T) {
	f := newFixture(250, 900)
	for _, k := range []catalog.Key{1, 5, 5, 200, 17, 250, 3} {
		if err := f.ctrl.Open(k); err != nil {
			t.Fatalf("Open(%d): %v", k, err)
		}
		f.checkWatchers(t)
	}
	_ = f.ctrl.Next(3)
	_ = f.ctrl.Prev(4)
	f.checkWatchers(t)

	if err := f.ctrl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	f.checkWatchers(t)
	if f.viewport.active() != 0 {
		t.Errorf("watcher leaked after close")
	}
}

func TestViewportForceClose(t *testing.T) {
	f := newFixture(250, 900)
	if err := f.ctrl.Open(5); err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = f.ctrl.SwitchSubview(5, SubviewStats)

	f.viewport.Resize(400)
	if f.ctrl.State().Open {
		t.Fatal("expected overlay closed after shrinking viewport")
	}
	if f.surface.dimmed {
		t.Error("background still dimmed")
	}
	if got := f.notifier.count(NoticeTooSmall, true); got != 1 {
		t.Errorf("too small notices = %d, want 1", got)
	}
	f.checkWatchers(t)

	f.viewport.Resize(420)
	if got := f.notifier.count(NoticeTooSmall, true); got != 1 {
		t.Errorf("notice raised again: %d", got)
	}

	f.viewport.Resize(800)
	if f.ctrl.State().Open {
		t.Error("overlay reopened on recovery")
	}
	if f.ctrl.TooSmall() {
		t.Error("notice not cleared")
	}
	if got := f.notifier.count(NoticeTooSmall, false); got != 1 {
		t.Errorf("cleared notices = %d, want 1", got)
	}
	f.checkWatchers(t)
}

func TestOpenBelowThreshold(t *testing.T) {
	f := newFixture(10, 400)
	if err := f.ctrl.Open(2); !errors.Is(err, ErrViewportTooSmall) {
		t.Fatalf("Open = %v, want ErrViewportTooSmall", err)
	}
	if f.ctrl.State().Open {
		t.Error("overlay opened below threshold")
	}
	if f.surface.scrolls != 0 {
		t.Error("grid scrolled for a rejected open")
	}
	f.checkWatchers(t)

	if err := f.ctrl.Open(3); !errors.Is(err, ErrViewportTooSmall) {
		t.Fatalf("second Open = %v", err)
	}
	if got := f.notifier.count(NoticeTooSmall, true); got != 1 {
		t.Errorf("too small notices = %d, want 1", got)
	}
	f.checkWatchers(t)

	f.viewport.Resize(700)
	f.checkWatchers(t)
	if err := f.ctrl.Open(3); err != nil {
		t.Fatalf("Open after recovery: %v", err)
	}
	f.checkWatchers(t)
}

func TestUnknownHeightIsNotConstrained(t *testing.T) {
	f := newFixture(10, 0)
	if err := f.ctrl.Open(1); err != nil {
		t.Fatalf("Open: %v", err)
	}
}

func TestReentrantOpenIsDropped(t *testing.T) {
	f := newFixture(10, 900)
	var inner error
	f.surface.onScroll = func() {
		f.surface.onScroll = nil
		inner = f.ctrl.Open(9)
	}
	if err := f.ctrl.Open(5); err != nil {
		t.Fatalf("Open(5): %v", err)
	}
	if !errors.Is(inner, ErrInputLocked) {
		t.Errorf("inner Open = %v, want ErrInputLocked", inner)
	}
	want := State{Open: true, Key: 5, Subview: SubviewAbout}
	if got := f.ctrl.State(); got != want {
		t.Errorf("state = %+v, want %+v", got, want)
	}
	f.checkWatchers(t)
}

func TestResizeDuringTransitionIsDropped(t *testing.T) {
	f := newFixture(10, 900)
	f.surface.onScroll = func() {
		f.surface.onScroll = nil
		for _, fn := range f.viewport.watchers {
			fn(300)
		}
	}
	if err := f.ctrl.Open(5); err != nil {
		t.Fatalf("Open(5): %v", err)
	}
	if !f.ctrl.State().Open {
		t.Error("resize during open closed the overlay")
	}
	if f.ctrl.TooSmall() {
		t.Error("resize during open raised a notice")
	}
}

func TestSwitchSubview(t *testing.T) {
	f := newFixture(10, 900)
	if err := f.ctrl.SwitchSubview(1, SubviewNews); !errors.Is(err, ErrNotOpen) {
		t.Errorf("closed SwitchSubview = %v", err)
	}
	_ = f.ctrl.Open(1)
	for _, sv := range Subviews {
		if err := f.ctrl.SwitchSubview(1, sv); err != nil {
			t.Errorf("SwitchSubview(%s): %v", sv, err)
		}
		if f.ctrl.State().Subview != sv {
			t.Errorf("subview = %s, want %s", f.ctrl.State().Subview, sv)
		}
	}
	if err := f.ctrl.SwitchSubview(2, SubviewNews); !errors.Is(err, ErrNotOpen) {
		t.Errorf("wrong key SwitchSubview = %v", err)
	}
	if err := f.ctrl.SwitchSubview(1, "moves"); !errors.Is(err, ErrUnknownSubview) {
		t.Errorf("unknown subview = %v", err)
	}
}

func TestClose(t *testing.T) {
	f := newFixture(10, 900)
	if err := f.ctrl.Close(); !errors.Is(err, ErrNotOpen) {
		t.Errorf("Close on closed = %v", err)
	}
	_ = f.ctrl.Open(1)
	if err := f.ctrl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if f.surface.dimmed {
		t.Error("background still dimmed")
	}
	if got := f.ctrl.State(); got != (State{}) {
		t.Errorf("state = %+v", got)
	}
}

func TestParseSubview(t *testing.T) {
	if sv, err := ParseSubview("evolution"); err != nil || sv != SubviewEvolution {
		t.Errorf("ParseSubview = %q, %v", sv, err)
	}
	if _, err := ParseSubview("About"); !errors.Is(err, ErrUnknownSubview) {
		t.Errorf("expected ErrUnknownSubview, got %v", err)
	}
}
