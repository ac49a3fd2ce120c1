package rocket

// Event is one user-relevant message decoded from the tracker. Track
// mutations are absorbed into the client's track store and never show
// up as events.
type Event interface {
	isEvent()
}

// SetRowEvent reports that the tracker moved to a new row.
type SetRowEvent struct {
	Row uint32
}

// PauseEvent reports that the tracker paused or resumed playback.
type PauseEvent struct {
	Paused bool
}

// SaveTracksEvent asks the client to persist its tracks, typically by
// writing Serialize's output to a file.
type SaveTracksEvent struct{}

func (SetRowEvent) isEvent()     {}
func (PauseEvent) isEvent()      {}
func (SaveTracksEvent) isEvent() {}
