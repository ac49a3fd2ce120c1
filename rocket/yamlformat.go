package rocket

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// A readable text form of a track set, for inspecting saved blobs and
// for hand-editing fixtures. The binary persistence blob stays the
// interchange format; this one is for humans.

type yamlKey struct {
	Row           uint32  `yaml:"row"`
	Value         float32 `yaml:"value"`
	Interpolation string  `yaml:"interpolation"`
}

type yamlTrack struct {
	Name string    `yaml:"name"`
	Keys []yamlKey `yaml:"keys"`
}

func TracksToYaml(tracks []*Track) ([]byte, error) {
	out := []yamlTrack{}
	for _, track := range tracks {
		yt := yamlTrack{
			Name: track.Name(),
		}
		for _, key := range track.Keys() {
			yt.Keys = append(yt.Keys, yamlKey{
				Row:           key.Row,
				Value:         key.Value,
				Interpolation: key.Interpolation.String(),
			})
		}
		out = append(out, yt)
	}
	return yaml.Marshal(out)
}

// TracksFromYaml parses the TracksToYaml form. Keys go through SetKey,
// so out-of-order rows in the text are tolerated and duplicates
// collapse to the last one.
func TracksFromYaml(data []byte) ([]*Track, error) {
	var in []yamlTrack
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, err
	}

	tracks := []*Track{}
	for _, yt := range in {
		track := NewTrack(yt.Name)
		for _, yk := range yt.Keys {
			interpolation, err := ParseInterpolation(yk.Interpolation)
			if err != nil {
				return nil, fmt.Errorf("track %q row %d: %w", yt.Name, yk.Row, err)
			}
			track.SetKey(Key{
				Row:           yk.Row,
				Value:         yk.Value,
				Interpolation: interpolation,
			})
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}
