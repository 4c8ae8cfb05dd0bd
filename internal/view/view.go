// Package view builds the view models the browser client renders.
package view

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/dexview/internal/catalog"
	"github.com/ziadkadry99/dexview/internal/overlay"
)

// Card is one cell of the card grid.
type Card struct {
	Key      catalog.Key `json:"key"`
	Number   string      `json:"number"`
	Name     string      `json:"name,omitempty"`
	Sprite   string      `json:"sprite,omitempty"`
	Types    []string    `json:"types,omitempty"`
	Color    string      `json:"color,omitempty"`
	Loaded   bool        `json:"loaded"`
	Target   string      `json:"target"`
	Heart    string      `json:"heart"`
	Favorite bool        `json:"favorite,omitempty"`
}

// About is the default overlay pane.
type About struct {
	Number    string   `json:"number"`
	Types     []string `json:"types"`
	Height    string   `json:"height"`
	Weight    string   `json:"weight"`
	Abilities []string `json:"abilities"`
}

// StatRow is one bar of the stats pane.
type StatRow struct {
	Name    string `json:"name"`
	Base    int    `json:"base"`
	Percent int    `json:"percent"`
}

// Detail is the content of an open overlay.
type Detail struct {
	Key       catalog.Key     `json:"key"`
	Name      string          `json:"name"`
	Sprite    string          `json:"sprite"`
	Color     string          `json:"color"`
	Subview   overlay.Subview `json:"subview"`
	About     About           `json:"about"`
	News      string          `json:"news"`
	Stats     []StatRow       `json:"stats"`
	Evolution []catalog.Stage `json:"evolution"`
	Favorite  bool            `json:"favorite"`
}

// NewCard builds the card for key from whatever fragments have arrived.
func NewCard(key catalog.Key, rec catalog.Record, ok bool) Card {
	c := Card{
		Key:    key,
		Number: catalog.FormatNumber(key),
		Target: CardTarget(key),
		Heart:  HeartTarget(key),
	}
	if !ok {
		return c
	}
	if rec.Primary != nil {
		c.Name = catalog.DisplayName(rec.Primary.Name)
		c.Sprite = rec.Primary.Sprite
		c.Types = rec.Primary.Types
	}
	if rec.Secondary != nil {
		c.Color = rec.Secondary.Color
	}
	c.Loaded = rec.Complete()
	return c
}

// NewDetail builds the overlay content for a complete record. newsIndex
// selects the flavor text shown in the news pane.
func NewDetail(rec catalog.Record, sv overlay.Subview, newsIndex int, stages []catalog.Stage) Detail {
	p, s := rec.Primary, rec.Secondary
	d := Detail{
		Key:       rec.Key,
		Subview:   sv,
		Evolution: stages,
	}
	if p != nil {
		d.Name = catalog.DisplayName(p.Name)
		d.Sprite = p.Sprite
		d.About = About{
			Number:    catalog.FormatNumber(rec.Key),
			Types:     p.Types,
			Height:    FormatHeight(p.Height),
			Weight:    FormatWeight(p.Weight),
			Abilities: displayNames(p.Abilities),
		}
		d.Stats = StatRows(p.Stats)
	}
	if s != nil {
		d.Color = s.Color
		d.News = NewsText(s.FlavorTexts, newsIndex)
	}
	if d.Evolution == nil {
		d.Evolution = []catalog.Stage{}
	}
	return d
}

// FormatHeight renders decimetres as metres.
func FormatHeight(dm int) string {
	return fmt.Sprintf("%.1f m", float64(dm)/10)
}

// FormatWeight renders hectograms as kilograms.
func FormatWeight(hg int) string {
	return fmt.Sprintf("%.1f kg", float64(hg)/10)
}

// StatRows turns base stats into bars capped at 100 percent.
func StatRows(stats []catalog.Stat) []StatRow {
	rows := make([]StatRow, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, StatRow{
			Name:    catalog.DisplayName(s.Name),
			Base:    s.Base,
			Percent: min(max(s.Base, 0), 100),
		})
	}
	return rows
}

// NewsText picks the flavor text at idx, or the last one when there are not
// that many, with line breaks and form feeds collapsed to single spaces.
func NewsText(texts []catalog.FlavorText, idx int) string {
	if len(texts) == 0 {
		return ""
	}
	entry := texts[len(texts)-1]
	if idx >= 0 && idx < len(texts) {
		entry = texts[idx]
	}
	return strings.Join(strings.Fields(entry.Text), " ")
}

func displayNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, catalog.DisplayName(n))
	}
	return out
}
