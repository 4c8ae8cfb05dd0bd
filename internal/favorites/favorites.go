// Package favorites holds the set of records an account has hearted.
package favorites

import (
	"sort"

	"github.com/ziadkadry99/dexview/internal/catalog"
)

// Set is an unordered set of record keys.
type Set map[catalog.Key]struct{}

// FromKeys builds a set, dropping duplicates.
func FromKeys(keys []catalog.Key) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether key is a favorite.
func (s Set) Has(key catalog.Key) bool {
	_, ok := s[key]
	return ok
}

// Toggle adds key when absent and removes it when present. It returns true
// when the key was added.
func (s Set) Toggle(key catalog.Key) bool {
	if s.Has(key) {
		delete(s, key)
		return false
	}
	s[key] = struct{}{}
	return true
}

// Keys returns the members in ascending order.
func (s Set) Keys() []catalog.Key {
	keys := make([]catalog.Key, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Toggled returns the key list that results from toggling key in keys,
// leaving keys untouched.
func Toggled(keys []catalog.Key, key catalog.Key) []catalog.Key {
	s := FromKeys(keys)
	s.Toggle(key)
	return s.Keys()
}
