package accounts

import "github.com/ziadkadry99/dexview/internal/catalog"

// AvatarNames are the creatures offered as profile pictures.
var AvatarNames = []string{"pikachu", "charmander", "jigglypuff", "psyduck", "bulbasaur", "caterpie", "squirtle"}

// Avatars resolves AvatarNames against the loaded catalog. Names not yet
// loaded are returned without a sprite.
func Avatars(cache *catalog.Cache) []Avatar {
	out := make([]Avatar, 0, len(AvatarNames))
	for _, name := range AvatarNames {
		av := Avatar{Name: name}
		if key, ok := cache.FindByName(name); ok {
			if rec, ok := cache.Get(key); ok && rec.Primary != nil {
				av.Key = key
				av.Sprite = rec.Primary.Sprite
			}
		}
		out = append(out, av)
	}
	return out
}
