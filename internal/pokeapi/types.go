package pokeapi

// NamedResource is the {name, url} pair the API uses for every reference.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListResponse models a paginated listing endpoint.
type ListResponse struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

// Pokemon is the creature detail payload, trimmed to the fields dexview reads.
type Pokemon struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	Height    int              `json:"height"` // decimetres
	Weight    int              `json:"weight"` // hectograms
	Sprites   Sprites          `json:"sprites"`
	Types     []PokemonType    `json:"types"`
	Abilities []PokemonAbility `json:"abilities"`
	Stats     []PokemonStat    `json:"stats"`
}

// Sprites holds artwork URLs; dexview uses other.home.front_default.
type Sprites struct {
	FrontDefault string       `json:"front_default"`
	Other        OtherSprites `json:"other"`
}

// OtherSprites groups the alternative artwork sets.
type OtherSprites struct {
	Home HomeSprites `json:"home"`
}

// HomeSprites is the "home" artwork set.
type HomeSprites struct {
	FrontDefault string `json:"front_default"`
}

// Artwork returns the preferred sprite URL, falling back to the default sprite.
func (s Sprites) Artwork() string {
	if s.Other.Home.FrontDefault != "" {
		return s.Other.Home.FrontDefault
	}
	return s.FrontDefault
}

type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type PokemonAbility struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// Species is the species detail payload.
type Species struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	Color             NamedResource     `json:"color"`
	FlavorTextEntries []FlavorTextEntry `json:"flavor_text_entries"`
	EvolutionChain    APIResource       `json:"evolution_chain"`
}

// APIResource is an unnamed reference.
type APIResource struct {
	URL string `json:"url"`
}

type FlavorTextEntry struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

// EvolutionChain is the recursive evolution structure for one family.
type EvolutionChain struct {
	ID    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}

// ChainLink is one stage of an evolution chain.
type ChainLink struct {
	Species   NamedResource `json:"species"`
	EvolvesTo []ChainLink   `json:"evolves_to"`
}
