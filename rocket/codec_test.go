package rocket

import (
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/sebdah/goldie/v2"
)

func testTracks() []*Track {
	track1 := NewTrack("camera:fov")
	track1.SetKey(Key{Row: 0, Value: 60.0, Interpolation: InterpolationStep})
	track1.SetKey(Key{Row: 16, Value: 90.0, Interpolation: InterpolationSmooth})
	track1.SetKey(Key{Row: 64, Value: 45.5, Interpolation: InterpolationRamp})

	track2 := NewTrack("flash")
	track2.SetKey(Key{Row: 8, Value: -1.25, Interpolation: InterpolationLinear})

	track3 := NewTrack("unused")

	return []*Track{track1, track2, track3}
}

func TestSerializeRoundTrip(t *testing.T) {
	tracks := testTracks()

	data := SerializeTracks(tracks)
	restored, err := DeserializeTracks(data)
	assert.Equal(t, err, nil)

	assert.Equal(t, len(restored), len(tracks))
	for i, track := range tracks {
		assert.Equal(t, restored[i].Name(), track.Name())
		assert.Equal(t, restored[i].Keys(), track.Keys())
	}
}

// Pins the blob layout byte for byte. Editing sessions and release
// builds exchange files in this format, so it cannot drift.
func TestSerializeGolden(t *testing.T) {
	g := goldie.New(t)
	g.Assert(t, "tracks_blob", SerializeTracks(testTracks()))
}

func TestSerializeEmpty(t *testing.T) {
	data := SerializeTracks(nil)
	assert.Equal(t, len(data), 8)

	restored, err := DeserializeTracks(data)
	assert.Equal(t, err, nil)
	assert.Equal(t, len(restored), 0)
}

func TestDeserializeTruncated(t *testing.T) {
	data := SerializeTracks(testTracks())

	// every proper prefix must fail, never panic
	for n := 0; n < len(data); n += 1 {
		_, err := DeserializeTracks(data[:n])
		assert.Equal(t, errors.Is(err, ErrBlobTruncated), true)
	}
}

func TestDeserializeBadName(t *testing.T) {
	track := NewTrack("ok")
	data := SerializeTracks([]*Track{track})

	// name starts at offset 16, length 2
	data[16] = 0xff
	data[17] = 0xfe

	_, err := DeserializeTracks(data)
	assert.Equal(t, errors.Is(err, ErrBlobBadName), true)
}

func TestDeserializeOverlongLength(t *testing.T) {
	track := NewTrack("ok")
	data := SerializeTracks([]*Track{track})

	// declare a name length far past the end of the blob
	for i := 8; i < 16; i += 1 {
		data[i] = 0xff
	}

	_, err := DeserializeTracks(data)
	assert.Equal(t, errors.Is(err, ErrBlobTruncated), true)
}

func TestPayloadLength(t *testing.T) {
	assert.Equal(t, payloadLength(msgSetKey), 13)
	assert.Equal(t, payloadLength(msgDeleteKey), 8)
	assert.Equal(t, payloadLength(msgGetTrack), 0)
	assert.Equal(t, payloadLength(msgSetRow), 4)
	assert.Equal(t, payloadLength(msgPause), 1)
	assert.Equal(t, payloadLength(msgSaveTracks), 0)
	assert.Equal(t, payloadLength(99), 0)
}

func TestEncodeSetRow(t *testing.T) {
	assert.Equal(t, encodeSetRow(0x01020304), []byte{3, 1, 2, 3, 4})
}

func TestEncodeGetTrack(t *testing.T) {
	assert.Equal(t, encodeGetTrack("abc"), []byte{2, 0, 0, 0, 3, 'a', 'b', 'c'})
}

func TestDecodeMessage(t *testing.T) {
	// set key: track 1, row 2, value 0.5, linear
	message := decodeMessage([]byte{
		0,
		0, 0, 0, 1,
		0, 0, 0, 2,
		0x3f, 0x00, 0x00, 0x00,
		1,
	})
	assert.Equal(t, message, &setKeyMessage{
		trackIndex: 1,
		key:        Key{Row: 2, Value: 0.5, Interpolation: InterpolationLinear},
	})

	message = decodeMessage([]byte{1, 0, 0, 0, 1, 0, 0, 0, 7})
	assert.Equal(t, message, &deleteKeyMessage{trackIndex: 1, row: 7})

	message = decodeMessage([]byte{3, 0, 0, 1, 0})
	assert.Equal(t, message, &setRowMessage{row: 256})

	message = decodeMessage([]byte{4, 1})
	assert.Equal(t, message, &pauseMessage{paused: true})

	message = decodeMessage([]byte{4, 0})
	assert.Equal(t, message, &pauseMessage{paused: false})

	message = decodeMessage([]byte{5})
	assert.Equal(t, message, &saveTracksMessage{})

	message = decodeMessage([]byte{99})
	assert.Equal(t, message, &ignoredMessage{tag: 99})
}

func TestDecodeSetKeyDefaultsInterpolation(t *testing.T) {
	message := decodeMessage([]byte{
		0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		200,
	})
	setKey := message.(*setKeyMessage)
	assert.Equal(t, setKey.key.Interpolation, InterpolationStep)
}
