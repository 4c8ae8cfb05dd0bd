package catalog

// Key identifies a record. Keys are assigned by the upstream source and run
// 1..N for a collection of size N.
type Key int

// Stat is one base stat of a creature.
type Stat struct {
	Name string `json:"name"`
	Base int    `json:"base"`
}

// Primary is the creature fragment of a record.
type Primary struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Sprite    string   `json:"sprite"`
	Types     []string `json:"types"`
	Abilities []string `json:"abilities"`
	Height    int      `json:"height"` // decimetres
	Weight    int      `json:"weight"` // hectograms
	Stats     []Stat   `json:"stats"`
}

// FlavorText is one descriptive text entry of a species.
type FlavorText struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Version  string `json:"version,omitempty"`
}

// Secondary is the species fragment of a record.
type Secondary struct {
	ID                int          `json:"id"`
	Color             string       `json:"color"`
	FlavorTexts       []FlavorText `json:"flavor_texts"`
	EvolutionChainURL string       `json:"evolution_chain_url"`
}

// Record pairs the two fragments stored under one key. Either slot may be nil
// while the record is still loading.
type Record struct {
	Key       Key        `json:"key"`
	Primary   *Primary   `json:"primary,omitempty"`
	Secondary *Secondary `json:"secondary,omitempty"`
}

// Complete reports whether both fragments are present.
func (r Record) Complete() bool {
	return r.Primary != nil && r.Secondary != nil
}

// Slot names a fragment slot.
type Slot string

const (
	SlotPrimary   Slot = "primary"
	SlotSecondary Slot = "secondary"
)

// Status summarizes how much of the catalog has loaded.
type Status struct {
	Loading  bool `json:"loading"`
	Complete int  `json:"complete"`
	Total    int  `json:"total"`
	Failed   int  `json:"failed"`
}
