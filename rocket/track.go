package rocket

import (
	"golang.org/x/exp/slices"
)

// Key is one control point on a track. The interpolation kind stored on
// a key shapes the segment from this key to the next one.
type Key struct {
	Row           uint32
	Value         float32
	Interpolation Interpolation
}

// Track is a named, row-sorted sequence of keys for one animatable
// parameter. Keys are kept strictly sorted by ascending row, with at
// most one key per row. The name is fixed at creation.
type Track struct {
	name string
	keys []Key
}

func NewTrack(name string) *Track {
	return &Track{
		name: name,
	}
}

func (self *Track) Name() string {
	return self.name
}

// Keys returns the keys in ascending row order. The slice is shared
// with the track and must not be modified.
func (self *Track) Keys() []Key {
	return self.keys
}

func (self *Track) exactPosition(row uint32) (int, bool) {
	i := slices.IndexFunc(self.keys, func(k Key) bool {
		return k.Row == row
	})
	return i, 0 <= i
}

// SetKey inserts a key, replacing any existing key at the same row.
func (self *Track) SetKey(key Key) {
	if i, ok := self.exactPosition(key.Row); ok {
		self.keys[i] = key
		return
	}
	i := slices.IndexFunc(self.keys, func(k Key) bool {
		return key.Row <= k.Row
	})
	if i < 0 {
		self.keys = append(self.keys, key)
		return
	}
	self.keys = slices.Insert(self.keys, i, key)
}

// DeleteKey removes the key at row. Deleting a missing row does nothing.
func (self *Track) DeleteKey(row uint32) {
	if i, ok := self.exactPosition(row); ok {
		self.keys = slices.Delete(self.keys, i, i+1)
	}
}

// GetValue evaluates the track at a possibly fractional row. Rows
// outside the keyed range extrapolate flat to the nearest key's value,
// and an empty track evaluates to zero everywhere.
func (self *Track) GetValue(row float32) float32 {
	if len(self.keys) == 0 {
		return 0.0
	}

	first := self.keys[0]
	last := self.keys[len(self.keys)-1]

	// NaN and negative rows precede everything
	if !(0 <= row) {
		return first.Value
	}
	if float32(last.Row) <= row {
		return last.Value
	}

	// row index n covers the span [n, n+1)
	lowerRow := uint32(row)

	if lowerRow <= first.Row {
		return first.Value
	}

	pos := self.lowerBoundPosition(lowerRow)
	lower := self.keys[pos]
	higher := self.keys[pos+1]

	t := (row - float32(lower.Row)) / float32(higher.Row-lower.Row)
	it := lower.Interpolation.Interpolate(t)

	return lower.Value + (higher.Value-lower.Value)*it
}

// lowerBoundPosition finds the greatest key with key.Row <= row.
// The caller guarantees first.Row < row < last.Row.
func (self *Track) lowerBoundPosition(row uint32) int {
	i := slices.IndexFunc(self.keys, func(k Key) bool {
		return row < k.Row
	})
	if i < 0 {
		return len(self.keys) - 1
	}
	return i - 1
}
