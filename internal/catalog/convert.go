package catalog

import (
	"sort"

	"github.com/ziadkadry99/dexview/internal/pokeapi"
)

// PrimaryFromAPI converts a creature payload into a primary fragment.
func PrimaryFromAPI(p *pokeapi.Pokemon) Primary {
	out := Primary{
		ID:     p.ID,
		Name:   p.Name,
		Sprite: p.Sprites.Artwork(),
		Height: p.Height,
		Weight: p.Weight,
	}

	types := append([]pokeapi.PokemonType(nil), p.Types...)
	sort.SliceStable(types, func(i, j int) bool { return types[i].Slot < types[j].Slot })
	for _, t := range types {
		out.Types = append(out.Types, t.Type.Name)
	}

	abilities := append([]pokeapi.PokemonAbility(nil), p.Abilities...)
	sort.SliceStable(abilities, func(i, j int) bool { return abilities[i].Slot < abilities[j].Slot })
	for _, a := range abilities {
		out.Abilities = append(out.Abilities, a.Ability.Name)
	}

	for _, s := range p.Stats {
		out.Stats = append(out.Stats, Stat{Name: s.Stat.Name, Base: s.BaseStat})
	}
	return out
}

// SecondaryFromAPI converts a species payload into a secondary fragment.
func SecondaryFromAPI(s *pokeapi.Species) Secondary {
	out := Secondary{
		ID:                s.ID,
		Color:             s.Color.Name,
		EvolutionChainURL: s.EvolutionChain.URL,
	}
	for _, e := range s.FlavorTextEntries {
		out.FlavorTexts = append(out.FlavorTexts, FlavorText{
			Text:     e.FlavorText,
			Language: e.Language.Name,
			Version:  e.Version.Name,
		})
	}
	return out
}
