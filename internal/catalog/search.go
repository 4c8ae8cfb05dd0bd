package catalog

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Search returns the keys whose creature name matches term, in ascending
// order. Terms shorter than minChars do not filter: the bool result is false
// and every card stays visible. Terms with glob metacharacters are matched
// against the whole name; other terms match as a case-insensitive substring.
func (c *Cache) Search(term string, minChars int) ([]Key, bool) {
	term = strings.ToLower(strings.TrimSpace(term))
	if len([]rune(term)) < minChars {
		return nil, false
	}

	glob := strings.ContainsAny(term, "*?[")
	if glob && !doublestar.ValidatePattern(term) {
		glob = false
	}

	var out []Key
	for _, k := range c.Keys() {
		rec, ok := c.Get(k)
		if !ok || rec.Primary == nil {
			continue
		}
		name := strings.ToLower(rec.Primary.Name)
		if glob {
			if matched, _ := doublestar.Match(term, name); matched {
				out = append(out, k)
			}
			continue
		}
		if strings.Contains(name, term) {
			out = append(out, k)
		}
	}
	return out, true
}
