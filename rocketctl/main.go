package main

import (
	"log"
	"os"
	"time"

	"github.com/docopt/docopt-go"

	"github.com/syncwave/rocket/rocket"
)

const RocketCtlVersion = "0.0.1"

var Out *log.Logger
var Err *log.Logger

func init() {
	Out = log.New(os.Stdout, "", 0)
	Err = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lshortfile)
}

func main() {
	usage := `Rocket control.

Connects a demo timeline to a GNU Rocket compatible sync tracker, plays
back saved track files offline, and dumps saved track files as YAML.

Usage:
    rocketctl edit [--config=<path>] [--tracker=<url>] [--ws]
    rocketctl play [--config=<path>] [--track=<name>] [<file>]
    rocketctl dump [--config=<path>] [<file>]

Options:
    -h --help          Show this screen.
    --version          Show version.
    --config=<path>    Config file path [default: rocketctl.toml].
    --tracker=<url>    Tracker address, host:port or a ws:// url.
    --ws               Use the WebSocket transport.
    --track=<name>     Track to print during playback [default: test].`

	opts, err := docopt.ParseArgs(usage, os.Args[1:], RocketCtlVersion)
	if err != nil {
		panic(err)
	}

	configPath, _ := opts.String("--config")
	cfg, err := loadConfig(configPath, configPath != DefaultConfigPath)
	if err != nil {
		Err.Fatalf("%s", err)
	}
	if tracker, err := opts.String("--tracker"); err == nil && tracker != "" {
		cfg.TrackerUrl = tracker
	}
	if ws, _ := opts.Bool("--ws"); ws {
		cfg.WebSocket = true
	}

	if edit_, _ := opts.Bool("edit"); edit_ {
		edit(cfg)
	} else if play_, _ := opts.Bool("play"); play_ {
		play(opts, cfg)
	} else if dump_, _ := opts.Bool("dump"); dump_ {
		dump(opts, cfg)
	}
}

func connect(cfg *Config) (*rocket.Client, error) {
	if cfg.WebSocket {
		return rocket.ConnectWebSocket(cfg.TrackerUrl)
	}
	return rocket.Connect(cfg.TrackerUrl)
}

func edit(cfg *Config) {
	client, err := connect(cfg)
	if err != nil {
		Err.Fatalf("%s", err)
	}
	defer client.Close()

	for _, name := range cfg.Tracks {
		if _, err := client.FindOrCreateTrack(name); err != nil {
			Err.Fatalf("%s", err)
		}
	}

	tick := time.Duration(float64(time.Second) / cfg.RowsPerSecond)
	currentRow := uint32(0)
	paused := true

	for {
		for {
			event, err := client.PollEvents()
			if err != nil {
				Err.Fatalf("%s", err)
			}
			if event == nil {
				break
			}
			switch e := event.(type) {
			case rocket.SetRowEvent:
				Out.Printf("row %d", e.Row)
				currentRow = e.Row
			case rocket.PauseEvent:
				paused = e.Paused
				if index, ok := client.TrackIndex(cfg.Tracks[0]); ok {
					value := client.Track(index).GetValue(float32(currentRow))
					Out.Printf("pause %v (row %d, %s = %f)", paused, currentRow, cfg.Tracks[0], value)
				}
			case rocket.SaveTracksEvent:
				if err := os.WriteFile(cfg.TracksFile, client.Serialize(), 0644); err != nil {
					Err.Fatalf("save tracks: %s", err)
				}
				Out.Printf("tracks saved to %s", cfg.TracksFile)
			}
		}

		if !paused {
			currentRow += 1
			if err := client.SetRow(currentRow); err != nil {
				Err.Fatalf("%s", err)
			}
		}

		time.Sleep(tick)
	}
}

func play(opts docopt.Opts, cfg *Config) {
	path := tracksPath(opts, cfg)
	trackName, _ := opts.String("--track")

	data, err := os.ReadFile(path)
	if err != nil {
		Err.Fatalf("%s", err)
	}
	player, err := rocket.PlayerFromData(data)
	if err != nil {
		Err.Fatalf("%s", err)
	}
	Out.Printf("tracks loaded from %s", path)

	index, ok := player.TrackIndex(trackName)
	if !ok {
		Err.Fatalf("no track named %q in %s", trackName, path)
	}
	track := player.Track(index)

	tick := time.Duration(float64(time.Second) / cfg.RowsPerSecond)
	for currentRow := uint32(0); ; currentRow += 1 {
		Out.Printf("value: %f (row %d)", track.GetValue(float32(currentRow)), currentRow)
		time.Sleep(tick)
	}
}

func dump(opts docopt.Opts, cfg *Config) {
	path := tracksPath(opts, cfg)

	data, err := os.ReadFile(path)
	if err != nil {
		Err.Fatalf("%s", err)
	}
	tracks, err := rocket.DeserializeTracks(data)
	if err != nil {
		Err.Fatalf("%s", err)
	}
	text, err := rocket.TracksToYaml(tracks)
	if err != nil {
		Err.Fatalf("%s", err)
	}
	os.Stdout.Write(text)
}

func tracksPath(opts docopt.Opts, cfg *Config) string {
	if path, err := opts.String("<file>"); err == nil && path != "" {
		return path
	}
	return cfg.TracksFile
}
