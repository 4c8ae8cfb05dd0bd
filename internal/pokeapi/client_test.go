package pokeapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ziadkadry99/dexview/internal/pokeapi"
	"github.com/ziadkadry99/dexview/internal/pokeapi/pokeapitest"
)

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := pokeapi.New("  "); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	client, err := pokeapi.New("https://example.com/api/v2/", pokeapi.WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if client.BaseURL() != "https://example.com/api/v2" {
		t.Fatalf("unexpected base url %q", client.BaseURL())
	}
}

func TestListPokemonAndSpecies(t *testing.T) {
	srv := pokeapitest.NewServer(t, 12)
	client, err := pokeapi.New(srv.BaseURL())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := context.Background()

	pokemon, err := client.ListPokemon(ctx, 5)
	if err != nil {
		t.Fatalf("ListPokemon returned error: %v", err)
	}
	if len(pokemon) != 5 || pokemon[0].Name != "bulbasaur" {
		t.Fatalf("unexpected listing: %#v", pokemon)
	}

	species, err := client.ListSpecies(ctx, 12)
	if err != nil {
		t.Fatalf("ListSpecies returned error: %v", err)
	}
	if len(species) != 12 {
		t.Fatalf("expected 12 species, got %d", len(species))
	}
}

func TestListRejectsNonPositiveLimit(t *testing.T) {
	client, _ := pokeapi.New("https://example.com")
	if _, err := client.ListPokemon(context.Background(), 0); err == nil {
		t.Fatal("expected error for zero limit")
	}
}

func TestDetailFetches(t *testing.T) {
	srv := pokeapitest.NewServer(t, 12)
	client, _ := pokeapi.New(srv.BaseURL())
	ctx := context.Background()

	p, err := client.Pokemon(ctx, srv.BaseURL()+"/pokemon/4/")
	if err != nil {
		t.Fatalf("Pokemon returned error: %v", err)
	}
	if p.ID != 4 || p.Name != "charmander" {
		t.Fatalf("unexpected pokemon: %#v", p)
	}
	if p.Sprites.Artwork() != "https://img.example/4.png" {
		t.Fatalf("unexpected artwork %q", p.Sprites.Artwork())
	}

	byName, err := client.PokemonByName(ctx, "Squirtle")
	if err != nil {
		t.Fatalf("PokemonByName returned error: %v", err)
	}
	if byName.ID != 7 {
		t.Fatalf("expected squirtle id 7, got %d", byName.ID)
	}

	sp, err := client.Species(ctx, srv.BaseURL()+"/pokemon-species/4/")
	if err != nil {
		t.Fatalf("Species returned error: %v", err)
	}
	if sp.Color.Name != "green" || len(sp.FlavorTextEntries) != 3 {
		t.Fatalf("unexpected species: %#v", sp)
	}

	chain, err := client.EvolutionChain(ctx, sp.EvolutionChain.URL)
	if err != nil {
		t.Fatalf("EvolutionChain returned error: %v", err)
	}
	if chain.Chain.Species.Name != "charmander" || len(chain.Chain.EvolvesTo) != 1 {
		t.Fatalf("unexpected chain: %#v", chain)
	}
}

func TestStatusError(t *testing.T) {
	srv := pokeapitest.NewServer(t, 3)
	srv.FailPokemon(2)
	client, _ := pokeapi.New(srv.BaseURL())

	_, err := client.Pokemon(context.Background(), srv.BaseURL()+"/pokemon/2/")
	var statusErr *pokeapi.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", statusErr.StatusCode)
	}
}

func TestDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":`))
	}))
	t.Cleanup(server.Close)

	client, _ := pokeapi.New(server.URL)
	if _, err := client.Species(context.Background(), server.URL+"/pokemon-species/1/"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestURLHelpers(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"https://pokeapi.co/api/v2/pokemon-species/25/", 25},
		{"https://pokeapi.co/api/v2/pokemon/133", 133},
		{"https://pokeapi.co/api/v2/pokemon/eevee/", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := pokeapi.IDFromURL(tt.in); got != tt.want {
			t.Errorf("IDFromURL(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}

	got := pokeapi.SpeciesToPokemonURL("https://pokeapi.co/api/v2/pokemon-species/2/")
	if got != "https://pokeapi.co/api/v2/pokemon/2/" {
		t.Errorf("SpeciesToPokemonURL = %q", got)
	}
}
