package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ziadkadry99/dexview/internal/catalog"
)

// TargetKind distinguishes the render targets a key owns.
type TargetKind string

const (
	TargetCard  TargetKind = "card"
	TargetHeart TargetKind = "heart"
)

// CardTarget is the handle of the card element for key.
func CardTarget(key catalog.Key) string { return fmt.Sprintf("%s-%d", TargetCard, key) }

// HeartTarget is the handle of the favorite toggle for key.
func HeartTarget(key catalog.Key) string { return fmt.Sprintf("%s-%d", TargetHeart, key) }

// ParseTarget maps a handle back to its kind and key.
func ParseTarget(handle string) (TargetKind, catalog.Key, error) {
	kind, id, ok := strings.Cut(handle, "-")
	if !ok {
		return "", 0, fmt.Errorf("malformed target %q", handle)
	}
	switch TargetKind(kind) {
	case TargetCard, TargetHeart:
	default:
		return "", 0, fmt.Errorf("unknown target kind %q", kind)
	}
	n, err := strconv.Atoi(id)
	if err != nil || n < 1 {
		return "", 0, fmt.Errorf("malformed target key %q", handle)
	}
	return TargetKind(kind), catalog.Key(n), nil
}
