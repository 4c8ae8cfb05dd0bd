package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ziadkadry99/dexview/internal/catalog"
)

func TestWriteXLSX(t *testing.T) {
	cache := catalog.NewCache(3)
	cache.SetPrimary(1, catalog.Primary{ID: 1, Name: "bulbasaur", Types: []string{"grass", "poison"}, Height: 7, Weight: 69})
	cache.SetSecondary(1, catalog.Secondary{ID: 1, Color: "green", FlavorTexts: []catalog.FlavorText{{Text: "A strange\nseed."}}})
	cache.SetPrimary(2, catalog.Primary{ID: 2, Name: "ivysaur"})

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	if err := WriteXLSX(path, cache, 2); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3", len(rows))
	}
	if rows[0][0] != "number" || rows[0][len(rows[0])-1] != "news" {
		t.Errorf("header = %v", rows[0])
	}

	first := rows[1]
	if first[0] != "#001" || first[1] != "Bulbasaur" || first[2] != "grass, poison" || first[4] != "0.7 m" || first[6] != "green" {
		t.Errorf("row 1 = %v", first)
	}
	if first[7] != "yes" {
		t.Errorf("complete cell = %q", first[7])
	}
	if first[9] != "A strange seed." {
		t.Errorf("news cell = %q", first[9])
	}
	if rows[2][1] != "Ivysaur" || rows[2][7] != "no" {
		t.Errorf("row 2 = %v", rows[2])
	}
	if len(rows[3]) != 1 || rows[3][0] != "#003" {
		t.Errorf("row 3 = %v", rows[3])
	}
}
