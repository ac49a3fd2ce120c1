package rocket

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// Live protocol message tags. Multi-byte payload fields are big-endian.
const (
	msgSetKey     = 0
	msgDeleteKey  = 1
	msgGetTrack   = 2
	msgSetRow     = 3
	msgPause      = 4
	msgSaveTracks = 5
)

// payloadLength maps a tag byte to the number of payload bytes that
// follow it. Unknown tags carry no payload and decode to a no-op.
func payloadLength(tag uint8) int {
	switch tag {
	case msgSetKey:
		return 4 + 4 + 4 + 1
	case msgDeleteKey:
		return 4 + 4
	case msgSetRow:
		return 4
	case msgPause:
		return 1
	default:
		return 0
	}
}

// wireMessage is one complete decoded protocol message.
type wireMessage interface {
	isWireMessage()
}

type setKeyMessage struct {
	trackIndex uint32
	key        Key
}

type deleteKeyMessage struct {
	trackIndex uint32
	row        uint32
}

type setRowMessage struct {
	row uint32
}

type pauseMessage struct {
	paused bool
}

type saveTracksMessage struct{}

// ignoredMessage stands in for a tag outside the known set, kept as an
// explicit variant for forward compatibility with newer trackers.
type ignoredMessage struct {
	tag uint8
}

func (*setKeyMessage) isWireMessage()     {}
func (*deleteKeyMessage) isWireMessage()  {}
func (*setRowMessage) isWireMessage()     {}
func (*pauseMessage) isWireMessage()      {}
func (*saveTracksMessage) isWireMessage() {}
func (*ignoredMessage) isWireMessage()    {}

// decodeMessage decodes one complete command buffer: the tag byte plus
// exactly payloadLength(tag) payload bytes.
func decodeMessage(cmd []byte) wireMessage {
	switch cmd[0] {
	case msgSetKey:
		return &setKeyMessage{
			trackIndex: binary.BigEndian.Uint32(cmd[1:5]),
			key: Key{
				Row:           binary.BigEndian.Uint32(cmd[5:9]),
				Value:         math.Float32frombits(binary.BigEndian.Uint32(cmd[9:13])),
				Interpolation: InterpolationFromCode(cmd[13]),
			},
		}
	case msgDeleteKey:
		return &deleteKeyMessage{
			trackIndex: binary.BigEndian.Uint32(cmd[1:5]),
			row:        binary.BigEndian.Uint32(cmd[5:9]),
		}
	case msgSetRow:
		return &setRowMessage{
			row: binary.BigEndian.Uint32(cmd[1:5]),
		}
	case msgPause:
		return &pauseMessage{
			paused: cmd[1] == 1,
		}
	case msgSaveTracks:
		return &saveTracksMessage{}
	default:
		return &ignoredMessage{
			tag: cmd[0],
		}
	}
}

// encodeGetTrack builds the message that declares a track by name.
func encodeGetTrack(name string) []byte {
	buf := make([]byte, 0, 1+4+len(name))
	buf = append(buf, msgGetTrack)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(name)))
	return append(buf, name...)
}

// encodeSetRow builds the message that moves the tracker to a row.
func encodeSetRow(row uint32) []byte {
	buf := make([]byte, 0, 1+4)
	buf = append(buf, msgSetRow)
	return binary.BigEndian.AppendUint32(buf, row)
}

// SerializeTracks freezes a track set into the flat little-endian blob
// used to hand tracks from a live editing session to offline playback.
// DeserializeTracks restores it exactly.
func SerializeTracks(tracks []*Track) []byte {
	var buf []byte
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(tracks)))
	for _, track := range tracks {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(track.name)))
		buf = append(buf, track.name...)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(track.keys)))
		for _, key := range track.keys {
			buf = binary.LittleEndian.AppendUint32(buf, key.Row)
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(key.Value))
			buf = binary.LittleEndian.AppendUint32(buf, uint32(key.Interpolation))
		}
	}
	return buf
}

// DeserializeTracks parses a persistence blob. It fails if a declared
// length runs past the end of the blob or a track name is not valid
// UTF-8; a failed blob is unrecoverable.
func DeserializeTracks(data []byte) ([]*Track, error) {
	r := blobReader{data: data}

	trackCount, err := r.uint64()
	if err != nil {
		return nil, err
	}

	tracks := []*Track{}
	for i := uint64(0); i < trackCount; i += 1 {
		nameLength, err := r.uint64()
		if err != nil {
			return nil, err
		}
		nameBytes, err := r.bytes(nameLength)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(nameBytes) {
			return nil, fmt.Errorf("%w: track %d", ErrBlobBadName, i)
		}

		track := NewTrack(string(nameBytes))

		keyCount, err := r.uint64()
		if err != nil {
			return nil, err
		}
		for j := uint64(0); j < keyCount; j += 1 {
			row, err := r.uint32()
			if err != nil {
				return nil, err
			}
			bits, err := r.uint32()
			if err != nil {
				return nil, err
			}
			code, err := r.uint32()
			if err != nil {
				return nil, err
			}
			interpolation := InterpolationStep
			if code <= uint32(InterpolationRamp) {
				interpolation = InterpolationFromCode(uint8(code))
			}
			track.SetKey(Key{
				Row:           row,
				Value:         math.Float32frombits(bits),
				Interpolation: interpolation,
			})
		}

		tracks = append(tracks, track)
	}

	return tracks, nil
}

// blobReader walks a persistence blob, little-endian, with bounds
// checks on every field.
type blobReader struct {
	data []byte
	pos  int
}

func (self *blobReader) bytes(n uint64) ([]byte, error) {
	if uint64(len(self.data)-self.pos) < n {
		return nil, fmt.Errorf("%w: at offset %d", ErrBlobTruncated, self.pos)
	}
	b := self.data[self.pos : self.pos+int(n)]
	self.pos += int(n)
	return b, nil
}

func (self *blobReader) uint32() (uint32, error) {
	b, err := self.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (self *blobReader) uint64() (uint64, error) {
	b, err := self.bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}
