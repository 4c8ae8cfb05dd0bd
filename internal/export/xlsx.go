// Package export writes the joined catalog to spreadsheet files.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ziadkadry99/dexview/internal/catalog"
	"github.com/ziadkadry99/dexview/internal/view"
)

const sheet = "Sheet1"

// Header is the first row of an exported sheet.
var Header = []interface{}{
	"number", "name", "types", "abilities", "height", "weight", "color", "complete", "sprite", "news",
}

// WriteXLSX writes one row per key 1..N of cache to path. Records that never
// loaded are written with only their number.
func WriteXLSX(path string, cache *catalog.Cache, newsIndex int) error {
	f := excelize.NewFile()
	defer f.Close()

	// StreamWriter for efficiency on large tables
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("creating stream writer: %w", err)
	}
	if err := sw.SetRow("A1", Header); err != nil {
		return err
	}

	for i := 1; i <= cache.Size(); i++ {
		key := catalog.Key(i)
		row := []interface{}{catalog.FormatNumber(key)}
		if rec, ok := cache.Get(key); ok {
			row = append(row, recordRow(rec, newsIndex)...)
		}
		cellAddr, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := sw.SetRow(cellAddr, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func recordRow(rec catalog.Record, newsIndex int) []interface{} {
	var name, types, abilities, height, weight, sprite, color, news string
	if p := rec.Primary; p != nil {
		name = catalog.DisplayName(p.Name)
		types = strings.Join(p.Types, ", ")
		abilities = strings.Join(p.Abilities, ", ")
		height = view.FormatHeight(p.Height)
		weight = view.FormatWeight(p.Weight)
		sprite = p.Sprite
	}
	if s := rec.Secondary; s != nil {
		color = s.Color
		news = view.NewsText(s.FlavorTexts, newsIndex)
	}
	complete := "no"
	if rec.Complete() {
		complete = "yes"
	}
	return []interface{}{name, types, abilities, height, weight, color, complete, sprite, news}
}
