package rocket

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestTracksYamlRoundTrip(t *testing.T) {
	tracks := testTracks()

	data, err := TracksToYaml(tracks)
	assert.Equal(t, err, nil)

	restored, err := TracksFromYaml(data)
	assert.Equal(t, err, nil)
	assert.Equal(t, len(restored), len(tracks))
	for i, track := range tracks {
		assert.Equal(t, restored[i].Name(), track.Name())
		assert.Equal(t, restored[i].Keys(), track.Keys())
	}
}

func TestTracksFromYamlDocument(t *testing.T) {
	doc := `- name: test
  keys:
    - row: 5
      value: 1.5
      interpolation: smooth
    - row: 0
      value: 0
      interpolation: step
`
	tracks, err := TracksFromYaml([]byte(doc))
	assert.Equal(t, err, nil)
	assert.Equal(t, len(tracks), 1)

	// out-of-order rows in the text end up sorted
	assert.Equal(t, tracks[0].Keys(), []Key{
		{Row: 0, Value: 0.0, Interpolation: InterpolationStep},
		{Row: 5, Value: 1.5, Interpolation: InterpolationSmooth},
	})
}

func TestTracksFromYamlBadInterpolation(t *testing.T) {
	doc := `- name: test
  keys:
    - row: 0
      value: 0
      interpolation: wobble
`
	_, err := TracksFromYaml([]byte(doc))
	assert.NotEqual(t, err, nil)
}

func TestTracksFromYamlBadDocument(t *testing.T) {
	_, err := TracksFromYaml([]byte("{not yaml: ["))
	assert.NotEqual(t, err, nil)
}
