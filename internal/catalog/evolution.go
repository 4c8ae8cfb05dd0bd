package catalog

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/dexview/internal/pokeapi"
)

// ChainSource fetches evolution chains and the creatures appearing in them.
type ChainSource interface {
	EvolutionChain(ctx context.Context, chainURL string) (*pokeapi.EvolutionChain, error)
	Pokemon(ctx context.Context, detailURL string) (*pokeapi.Pokemon, error)
}

// Stage is one step of an evolution line.
type Stage struct {
	Key    Key    `json:"key"`
	Name   string `json:"name"`
	Sprite string `json:"sprite"`
}

// EvolutionResolver turns a species' chain reference into an ordered list of
// stages. Only the first branch of each link is followed.
type EvolutionResolver struct {
	source ChainSource
	cache  *Cache

	mu     sync.Mutex
	chains map[string][]Stage
}

// NewEvolutionResolver creates a resolver that prefers fragments already in
// cache over network fetches.
func NewEvolutionResolver(source ChainSource, cache *Cache) *EvolutionResolver {
	return &EvolutionResolver{
		source: source,
		cache:  cache,
		chains: make(map[string][]Stage),
	}
}

// Resolve returns the stages of the chain at chainURL. Successful results are
// remembered per chain URL.
func (r *EvolutionResolver) Resolve(ctx context.Context, chainURL string) ([]Stage, error) {
	r.mu.Lock()
	if stages, ok := r.chains[chainURL]; ok {
		r.mu.Unlock()
		return stages, nil
	}
	r.mu.Unlock()

	chain, err := r.source.EvolutionChain(ctx, chainURL)
	if err != nil {
		return nil, fmt.Errorf("fetch evolution chain: %w", err)
	}

	refs := FirstBranch(chain.Chain)
	stages := make([]Stage, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		key := Key(pokeapi.IDFromURL(ref.URL))
		if rec, ok := r.cache.Get(key); ok && rec.Primary != nil {
			stages[i] = Stage{Key: key, Name: rec.Primary.Name, Sprite: rec.Primary.Sprite}
			continue
		}
		g.Go(func() error {
			p, err := r.source.Pokemon(gctx, pokeapi.SpeciesToPokemonURL(ref.URL))
			if err != nil {
				return fmt.Errorf("fetch stage %s: %w", ref.Name, err)
			}
			stages[i] = Stage{Key: Key(p.ID), Name: p.Name, Sprite: p.Sprites.Artwork()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.chains[chainURL] = stages
	r.mu.Unlock()
	return stages, nil
}

// FirstBranch flattens a chain by following evolves_to[0] at every link.
func FirstBranch(link pokeapi.ChainLink) []pokeapi.NamedResource {
	out := []pokeapi.NamedResource{link.Species}
	for len(link.EvolvesTo) > 0 {
		link = link.EvolvesTo[0]
		out = append(out, link.Species)
	}
	return out
}
