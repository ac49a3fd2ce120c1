package rocket

// Player evaluates a frozen track set produced by a live editing
// session. It is read-only: names missing from the set are not created,
// lookups for them simply fail.
type Player struct {
	tracks []*Track
}

// NewPlayer wraps an already deserialized track set.
func NewPlayer(tracks []*Track) *Player {
	return &Player{
		tracks: tracks,
	}
}

// PlayerFromData deserializes a persistence blob, typically the
// contents of the file written after a SaveTracksEvent.
func PlayerFromData(data []byte) (*Player, error) {
	tracks, err := DeserializeTracks(data)
	if err != nil {
		return nil, err
	}
	return NewPlayer(tracks), nil
}

func (self *Player) TrackIndex(name string) (int, bool) {
	return trackIndex(self.tracks, name)
}

func (self *Player) Track(index int) *Track {
	return self.tracks[index]
}

// Tracks returns the full set in declaration order.
func (self *Player) Tracks() []*Track {
	return self.tracks
}
