package cmd

import (
	"strings"
	"testing"

	"github.com/ziadkadry99/dexview/internal/catalog"
)

func TestRenderCatalog(t *testing.T) {
	cache := catalog.NewCache(2)
	cache.SetPrimary(1, catalog.Primary{ID: 1, Name: "mr-mime", Types: []string{"psychic", "fairy"}, Height: 13, Weight: 545})
	cache.SetSecondary(1, catalog.Secondary{ID: 1, Color: "pink"})

	out := renderCatalog(cache)
	for _, want := range []string{"#001", "Mr Mime", "psychic, fairy", "1.3 m", "54.5 kg", "pink", "yes", "#002", "no"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in table:\n%s", want, out)
		}
	}
}
