package rocket

import (
	"golang.org/x/exp/slices"
)

// Engine is the read capability shared by the live Client and the
// offline Player: resolve a track name to an index once, then evaluate
// values by index every frame.
type Engine interface {
	// TrackIndex returns the index of the named track, or false when no
	// track has that name.
	TrackIndex(name string) (int, bool)
	// Track returns the track at an index previously returned by
	// TrackIndex. The index stays valid for the life of the engine.
	Track(index int) *Track
}

// first match wins; names are expected to be unique
func trackIndex(tracks []*Track, name string) (int, bool) {
	i := slices.IndexFunc(tracks, func(t *Track) bool {
		return t.Name() == name
	})
	return i, 0 <= i
}
