package catalog

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ziadkadry99/dexview/internal/pokeapi"
)

// Source is the upstream API the loader reads both record streams from.
// *pokeapi.Client satisfies it.
type Source interface {
	ListPokemon(ctx context.Context, limit int) ([]pokeapi.NamedResource, error)
	ListSpecies(ctx context.Context, limit int) ([]pokeapi.NamedResource, error)
	Pokemon(ctx context.Context, detailURL string) (*pokeapi.Pokemon, error)
	Species(ctx context.Context, detailURL string) (*pokeapi.Species, error)
}

// Observer is told about every stored fragment and every failed fetch.
type Observer interface {
	FragmentStored(slot Slot)
	FetchFailed(slot Slot)
}

// ProgressFunc is called after each detail fetch finishes.
type ProgressFunc func(current, total int, message string)

// Summary describes a finished load.
type Summary struct {
	Primary   int
	Secondary int
	Complete  int
	Errors    []error
	Duration  time.Duration
}

// Loader fetches the creature and species streams concurrently and merges
// each arriving item into a Cache. Fetch failures are logged and counted but
// leave the affected record partial.
type Loader struct {
	source      Source
	cache       *Cache
	concurrency int
	observer    Observer
	onProgress  ProgressFunc

	loading atomic.Bool
	failed  atomic.Int64
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithConcurrency caps in-flight detail fetches per stream. Zero or less
// means one goroutine per item.
func WithConcurrency(n int) LoaderOption {
	return func(l *Loader) { l.concurrency = n }
}

// WithObserver attaches an Observer.
func WithObserver(o Observer) LoaderOption {
	return func(l *Loader) { l.observer = o }
}

// WithProgress attaches a progress callback.
func WithProgress(fn ProgressFunc) LoaderOption {
	return func(l *Loader) { l.onProgress = fn }
}

// NewLoader creates a loader writing into cache.
func NewLoader(source Source, cache *Cache, opts ...LoaderOption) *Loader {
	l := &Loader{source: source, cache: cache}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Status reports the current state of the catalog.
func (l *Loader) Status() Status {
	return Status{
		Loading:  l.loading.Load(),
		Complete: l.cache.CompleteCount(),
		Total:    l.cache.Size(),
		Failed:   int(l.failed.Load()),
	}
}

// Load runs both streams to completion. It never fails as a whole; per-item
// errors are collected in the summary.
func (l *Loader) Load(ctx context.Context) *Summary {
	l.loading.Store(true)
	defer l.loading.Store(false)

	start := time.Now()
	size := l.cache.Size()
	total := 2 * size
	var processed atomic.Int64
	progress := func(message string) {
		n := processed.Add(1)
		if l.onProgress != nil {
			l.onProgress(int(n), total, message)
		}
	}

	var mu sync.Mutex
	summary := &Summary{}
	fail := func(slot Slot, err error) {
		log.Printf("catalog: %s fetch failed: %v", slot, err)
		l.failed.Add(1)
		if l.observer != nil {
			l.observer.FetchFailed(slot)
		}
		mu.Lock()
		summary.Errors = append(summary.Errors, err)
		mu.Unlock()
	}
	stored := func(slot Slot) {
		if l.observer != nil {
			l.observer.FragmentStored(slot)
		}
		mu.Lock()
		if slot == SlotPrimary {
			summary.Primary++
		} else {
			summary.Secondary++
		}
		mu.Unlock()
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		items, err := l.source.ListPokemon(ctx, size)
		if err != nil {
			fail(SlotPrimary, fmt.Errorf("list creatures: %w", err))
			return
		}
		l.fanOut(ctx, items, func(idx int, item pokeapi.NamedResource) {
			defer progress(item.Name)
			p, err := l.source.Pokemon(ctx, item.URL)
			if err != nil {
				fail(SlotPrimary, fmt.Errorf("creature %s: %w", item.Name, err))
				return
			}
			l.cache.SetPrimary(keyFor(p.ID, item.URL, idx), PrimaryFromAPI(p))
			stored(SlotPrimary)
		})
	}()
	go func() {
		defer wg.Done()
		items, err := l.source.ListSpecies(ctx, size)
		if err != nil {
			fail(SlotSecondary, fmt.Errorf("list species: %w", err))
			return
		}
		l.fanOut(ctx, items, func(idx int, item pokeapi.NamedResource) {
			defer progress(item.Name)
			s, err := l.source.Species(ctx, item.URL)
			if err != nil {
				fail(SlotSecondary, fmt.Errorf("species %s: %w", item.Name, err))
				return
			}
			l.cache.SetSecondary(keyFor(s.ID, item.URL, idx), SecondaryFromAPI(s))
			stored(SlotSecondary)
		})
	}()
	wg.Wait()

	summary.Complete = l.cache.CompleteCount()
	summary.Duration = time.Since(start)
	log.Printf("catalog: loaded %d creatures, %d species, %d complete in %s (%d errors)",
		summary.Primary, summary.Secondary, summary.Complete, summary.Duration.Round(time.Millisecond), len(summary.Errors))
	return summary
}

// fanOut runs fn for every item, bounded by the loader's concurrency.
func (l *Loader) fanOut(ctx context.Context, items []pokeapi.NamedResource, fn func(int, pokeapi.NamedResource)) {
	var sem chan struct{}
	if l.concurrency > 0 {
		sem = make(chan struct{}, l.concurrency)
	}

	var wg sync.WaitGroup
	defer wg.Wait()
	for i, item := range items {
		if sem != nil {
			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
		}
		wg.Add(1)
		go func(idx int, it pokeapi.NamedResource) {
			defer wg.Done()
			if sem != nil {
				defer func() { <-sem }()
			}
			fn(idx, it)
		}(i, item)
	}
}

// keyFor prefers the id in the payload, then the one in the detail URL, then
// the listing position.
func keyFor(id int, detailURL string, idx int) Key {
	if id > 0 {
		return Key(id)
	}
	if fromURL := pokeapi.IDFromURL(detailURL); fromURL > 0 {
		return Key(fromURL)
	}
	return Key(idx + 1)
}
