package catalog

import (
	"reflect"
	"testing"
)

func TestSearch(t *testing.T) {
	c := NewCache(10)
	for i, name := range []string{"bulbasaur", "ivysaur", "venusaur", "charmander", "charmeleon"} {
		c.SetPrimary(Key(i+1), samplePrimary(i+1, name))
	}
	c.SetSecondary(9, sampleSecondary(9))

	tests := []struct {
		name     string
		term     string
		want     []Key
		filtered bool
	}{
		{"too short", "ch", nil, false},
		{"empty", "", nil, false},
		{"substring", "saur", []Key{1, 2, 3}, true},
		{"case insensitive", "CHAR", []Key{4, 5}, true},
		{"glob prefix", "char*", []Key{4, 5}, true},
		{"glob single char", "?vysaur", []Key{2}, true},
		{"no match", "pikachu", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, filtered := c.Search(tt.term, 3)
			if filtered != tt.filtered {
				t.Errorf("filtered = %v, want %v", filtered, tt.filtered)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}
