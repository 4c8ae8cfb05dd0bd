package session

// viewport tracks the browser's reported height and the resize watchers
// registered against it.
type viewport struct {
	height   int
	nextID   int
	watchers map[int]func(int)
}

func newViewport(height int) *viewport {
	return &viewport{height: height, watchers: make(map[int]func(int))}
}

func (v *viewport) Height() int { return v.height }

func (v *viewport) Watch(fn func(int)) func() {
	v.nextID++
	id := v.nextID
	v.watchers[id] = fn
	return func() { delete(v.watchers, id) }
}

// Resize records a new height and runs every watcher registered at the time
// of the call.
func (v *viewport) Resize(height int) {
	v.height = height
	fns := make([]func(int), 0, len(v.watchers))
	for _, fn := range v.watchers {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn(height)
	}
}

func (v *viewport) watcherCount() int { return len(v.watchers) }

// surface records what the client must do to the card grid.
type surface struct {
	scrollTop bool
	dimmed    bool
}

func (s *surface) ScrollToTop() { s.scrollTop = true }

func (s *surface) SetBackgroundDimmed(dimmed bool) { s.dimmed = dimmed }
