// Package pokeapitest serves a deterministic fake of the creature API for tests.
package pokeapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ziadkadry99/dexview/internal/pokeapi"
)

var knownNames = []string{
	"bulbasaur", "ivysaur", "venusaur",
	"charmander", "charmeleon", "charizard",
	"squirtle", "wartortle", "blastoise",
	"caterpie", "metapod", "butterfree",
}

// Name returns the fake name for id.
func Name(id int) string {
	if id >= 1 && id <= len(knownNames) {
		return knownNames[id-1]
	}
	return fmt.Sprintf("creature-%d", id)
}

// Server is a fake API rooted at URL + "/api/v2".
type Server struct {
	*httptest.Server
	size int

	mu          sync.Mutex
	failPokemon map[int]bool
	failSpecies map[int]bool
	requests    atomic.Int64
}

// NewServer starts a fake API with records 1..size and closes it on cleanup.
func NewServer(t testing.TB, size int) *Server {
	t.Helper()
	s := &Server{
		size:        size,
		failPokemon: map[int]bool{},
		failSpecies: map[int]bool{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the API root to hand to pokeapi.New.
func (s *Server) BaseURL() string { return s.URL + "/api/v2" }

// FailPokemon makes the creature detail for id return 500.
func (s *Server) FailPokemon(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPokemon[id] = true
}

// FailSpecies makes the species detail for id return 500.
func (s *Server) FailSpecies(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSpecies[id] = true
}

// Requests returns the number of requests served so far.
func (s *Server) Requests() int64 { return s.requests.Load() }

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)
	path := strings.TrimPrefix(r.URL.Path, "/api/v2/")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 {
		http.NotFound(w, r)
		return
	}

	resource := parts[0]
	if len(parts) == 1 {
		s.handleList(w, r, resource)
		return
	}

	id, err := strconv.Atoi(parts[1])
	if err != nil {
		id = idForName(parts[1])
	}
	if id < 1 || id > s.size {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	failP, failS := s.failPokemon[id], s.failSpecies[id]
	s.mu.Unlock()

	switch resource {
	case "pokemon":
		if failP {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		writeJSON(w, Pokemon(id))
	case "pokemon-species":
		if failS {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		writeJSON(w, s.Species(id))
	case "evolution-chain":
		writeJSON(w, s.Chain(id))
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request, resource string) {
	if resource != "pokemon" && resource != "pokemon-species" {
		http.NotFound(w, r)
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > s.size {
		limit = s.size
	}
	resp := pokeapi.ListResponse{Count: s.size}
	for id := 1; id <= limit; id++ {
		resp.Results = append(resp.Results, pokeapi.NamedResource{
			Name: Name(id),
			URL:  fmt.Sprintf("%s/%s/%d/", s.BaseURL(), resource, id),
		})
	}
	writeJSON(w, resp)
}

// Pokemon returns the fake creature payload for id.
func Pokemon(id int) pokeapi.Pokemon {
	p := pokeapi.Pokemon{
		ID:     id,
		Name:   Name(id),
		Height: 7 + id%10,
		Weight: 69 + id,
		Types: []pokeapi.PokemonType{
			{Slot: 1, Type: pokeapi.NamedResource{Name: "grass"}},
		},
		Abilities: []pokeapi.PokemonAbility{
			{Slot: 1, Ability: pokeapi.NamedResource{Name: "overgrow"}},
			{Slot: 3, IsHidden: true, Ability: pokeapi.NamedResource{Name: "chlorophyll"}},
		},
		Stats: []pokeapi.PokemonStat{
			{BaseStat: 45, Stat: pokeapi.NamedResource{Name: "hp"}},
			{BaseStat: 49 + id%50, Stat: pokeapi.NamedResource{Name: "attack"}},
			{BaseStat: 130, Stat: pokeapi.NamedResource{Name: "special-attack"}},
		},
	}
	p.Sprites.Other.Home.FrontDefault = fmt.Sprintf("https://img.example/%d.png", id)
	return p
}

// Species returns the fake species payload for id. Records form families of
// three consecutive ids sharing one evolution chain.
func (s *Server) Species(id int) pokeapi.Species {
	return pokeapi.Species{
		ID:    id,
		Name:  Name(id),
		Color: pokeapi.NamedResource{Name: "green"},
		FlavorTextEntries: []pokeapi.FlavorTextEntry{
			{FlavorText: "First entry.", Language: pokeapi.NamedResource{Name: "en"}},
			{FlavorText: "Second entry.", Language: pokeapi.NamedResource{Name: "en"}},
			{FlavorText: fmt.Sprintf("A strange seed\nwas planted on\fits back %d.", id), Language: pokeapi.NamedResource{Name: "en"}},
		},
		EvolutionChain: pokeapi.APIResource{URL: fmt.Sprintf("%s/evolution-chain/%d/", s.BaseURL(), (id-1)/3+1)},
	}
}

// Chain returns the fake evolution chain with the given chain id.
func (s *Server) Chain(chainID int) pokeapi.EvolutionChain {
	first := (chainID-1)*3 + 1
	link := func(id int) pokeapi.NamedResource {
		return pokeapi.NamedResource{Name: Name(id), URL: fmt.Sprintf("%s/pokemon-species/%d/", s.BaseURL(), id)}
	}
	chain := pokeapi.ChainLink{Species: link(first)}
	if first+1 <= s.size {
		second := pokeapi.ChainLink{Species: link(first + 1)}
		if first+2 <= s.size {
			second.EvolvesTo = []pokeapi.ChainLink{{Species: link(first + 2)}}
		}
		chain.EvolvesTo = []pokeapi.ChainLink{second}
	}
	return pokeapi.EvolutionChain{ID: chainID, Chain: chain}
}

func idForName(name string) int {
	for i, n := range knownNames {
		if n == name {
			return i + 1
		}
	}
	if rest, ok := strings.CutPrefix(name, "creature-"); ok {
		if id, err := strconv.Atoi(rest); err == nil {
			return id
		}
	}
	return 0
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
