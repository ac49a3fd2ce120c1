package rocket

import (
	"errors"
	"io"
	"net"
	"os"
	"time"

	"github.com/golang/glog"
	"github.com/oklog/ulid/v2"
)

const (
	clientGreeting       = "hello, synctracker!"
	serverGreeting       = "hello, demo!"
	serverGreetingLength = 12
)

// DefaultTrackerEndpoint is where a locally running tracker listens.
const DefaultTrackerEndpoint = "localhost:1338"

type ClientSettings struct {
	DialTimeout      time.Duration
	HandshakeTimeout time.Duration
}

func DefaultClientSettings() *ClientSettings {
	return &ClientSettings{
		DialTimeout:      10 * time.Second,
		HandshakeTimeout: 10 * time.Second,
	}
}

// streamConn is the byte stream a client polls. *net.TCPConn satisfies
// it directly; the WebSocket transport adapts to it.
type streamConn interface {
	io.ReadWriteCloser
	SetReadDeadline(t time.Time) error
}

// clientState tracks progress through one wire message.
//   - stateNew: waiting for the next tag byte
//   - stateIncomplete: waiting for `remaining` more payload bytes
//   - stateComplete: the command buffer holds one full message
type clientState int

const (
	stateNew clientState = iota
	stateIncomplete
	stateComplete
)

type receiveResult int

const (
	receiveNone receiveResult = iota
	receiveIncomplete
	receiveEvent
)

// Client is a live connection to a sync tracker. It mirrors the tracks
// edited on the tracker side and surfaces row, pause and save events.
//
// A client is single-threaded: the owning loop calls PollEvents, reads
// values and sends row changes, with no internal goroutines or locks.
type Client struct {
	conn      streamConn
	clientTag string
	state     clientState
	remaining int
	cmd       []byte
	tracks    []*Track
}

// Connect dials a tracker over TCP, performs the greeting exchange and
// returns a client ready to poll. Use DefaultTrackerEndpoint for a
// tracker running on the same machine.
func Connect(address string) (*Client, error) {
	return ConnectWithSettings(address, DefaultClientSettings())
}

func ConnectWithSettings(address string, settings *ClientSettings) (*Client, error) {
	conn, err := net.DialTimeout("tcp", address, settings.DialTimeout)
	if err != nil {
		return nil, &ConnectError{Err: err}
	}
	return newClient(conn, settings)
}

func newClient(conn streamConn, settings *ClientSettings) (*Client, error) {
	client := &Client{
		conn:      conn,
		clientTag: ulid.Make().String(),
	}
	if err := client.handshake(settings.HandshakeTimeout); err != nil {
		conn.Close()
		return nil, err
	}
	glog.V(1).Infof("[rc]%s connected\n", client.clientTag)
	return client, nil
}

func (self *Client) handshake(timeout time.Duration) error {
	deadline := time.Time{}
	if 0 < timeout {
		deadline = time.Now().Add(timeout)
	}
	if err := self.conn.SetReadDeadline(deadline); err != nil {
		return &HandshakeError{Err: err}
	}

	if _, err := self.conn.Write([]byte(clientGreeting)); err != nil {
		return &HandshakeError{Err: err}
	}

	var greeting [serverGreetingLength]byte
	if _, err := io.ReadFull(self.conn, greeting[:]); err != nil {
		return &HandshakeError{Err: err}
	}
	if string(greeting[:]) != serverGreeting {
		return &HandshakeGreetingMismatchError{Greeting: greeting}
	}
	return nil
}

// Close tears down the connection. The track store stays readable.
func (self *Client) Close() error {
	return self.conn.Close()
}

// TrackIndex looks up a track by name without creating it.
func (self *Client) TrackIndex(name string) (int, bool) {
	return trackIndex(self.tracks, name)
}

// Track returns the track at an index previously returned by
// TrackIndex or FindOrCreateTrack.
func (self *Client) Track(index int) *Track {
	return self.tracks[index]
}

// FindOrCreateTrack resolves a track name to its index. A name seen for
// the first time is declared to the tracker and created empty locally;
// the tracker answers with set-key messages for any keys it has.
func (self *Client) FindOrCreateTrack(name string) (int, error) {
	if i, ok := trackIndex(self.tracks, name); ok {
		return i, nil
	}
	if _, err := self.conn.Write(encodeGetTrack(name)); err != nil {
		return 0, &IOError{Err: err}
	}
	self.tracks = append(self.tracks, NewTrack(name))
	glog.V(2).Infof("[rc]%s declare track %s\n", self.clientTag, name)
	return len(self.tracks) - 1, nil
}

// SetRow tells the tracker the demo moved to a row.
func (self *Client) SetRow(row uint32) error {
	if _, err := self.conn.Write(encodeSetRow(row)); err != nil {
		return &IOError{Err: err}
	}
	return nil
}

// Serialize freezes the current track set into the persistence blob.
// Typically called on SaveTracksEvent and written to a file for
// PlayerFromData to load in a release build.
func (self *Client) Serialize() []byte {
	return SerializeTracks(self.tracks)
}

// PollEvents advances the connection without blocking and returns the
// next event, or nil when the socket has no more buffered data. Call it
// every tick until it returns nil so buffered messages don't carry over
// to the next tick. Any error other than nil ends the connection's
// usable lifetime.
func (self *Client) PollEvents() (Event, error) {
	for {
		event, result, err := self.pollEvent()
		if err != nil {
			return nil, err
		}
		switch result {
		case receiveNone:
			return nil, nil
		case receiveEvent:
			return event, nil
		}
		// receiveIncomplete: state advanced, keep draining
	}
}

// pollEvent drains one state transition's worth of work.
func (self *Client) pollEvent() (Event, receiveResult, error) {
	switch self.state {
	case stateNew:
		if err := self.armNonblock(); err != nil {
			return nil, receiveNone, err
		}
		var buf [1]byte
		n, err := self.conn.Read(buf[:])
		if 0 < n {
			self.cmd = append(self.cmd, buf[0])
			self.remaining = payloadLength(buf[0])
			if self.remaining == 0 {
				self.state = stateComplete
			} else {
				self.state = stateIncomplete
			}
			return nil, receiveIncomplete, nil
		}
		if err != nil {
			if isWouldBlock(err) {
				return nil, receiveNone, nil
			}
			return nil, receiveNone, &IOError{Err: err}
		}
		return nil, receiveNone, nil

	case stateIncomplete:
		if err := self.armNonblock(); err != nil {
			return nil, receiveNone, err
		}
		buf := make([]byte, self.remaining)
		n, err := self.conn.Read(buf)
		if 0 < n {
			// a short read is a partial TCP segment, not an error
			self.cmd = append(self.cmd, buf[:n]...)
			self.remaining -= n
			if self.remaining == 0 {
				self.state = stateComplete
			}
			return nil, receiveIncomplete, nil
		}
		if err != nil {
			if isWouldBlock(err) {
				return nil, receiveNone, nil
			}
			return nil, receiveNone, &IOError{Err: err}
		}
		return nil, receiveNone, nil

	default:
		// stateComplete
		event := self.applyMessage(decodeMessage(self.cmd))
		self.cmd = self.cmd[:0]
		self.state = stateNew
		if event != nil {
			return event, receiveEvent, nil
		}
		return nil, receiveIncomplete, nil
	}
}

// applyMessage applies a decoded message. Track mutations are absorbed
// into the track store; user-relevant messages come back as one Event.
func (self *Client) applyMessage(message wireMessage) Event {
	switch m := message.(type) {
	case *setKeyMessage:
		if track := self.trackAt(m.trackIndex); track != nil {
			track.SetKey(m.key)
			glog.V(2).Infof("[rc]%s set key %s[%d] = %f\n", self.clientTag, track.Name(), m.key.Row, m.key.Value)
		}
		return nil
	case *deleteKeyMessage:
		if track := self.trackAt(m.trackIndex); track != nil {
			track.DeleteKey(m.row)
			glog.V(2).Infof("[rc]%s delete key %s[%d]\n", self.clientTag, track.Name(), m.row)
		}
		return nil
	case *setRowMessage:
		return SetRowEvent{Row: m.row}
	case *pauseMessage:
		return PauseEvent{Paused: m.paused}
	case *saveTracksMessage:
		return SaveTracksEvent{}
	case *ignoredMessage:
		// protocol version skew. consume and carry on
		glog.Infof("[rc]%s unknown message tag %d\n", self.clientTag, m.tag)
		return nil
	default:
		return nil
	}
}

// trackAt guards the tracker-supplied index against the local store. An
// index out of range means the peer is talking about a track this
// client never declared; the mutation is dropped.
func (self *Client) trackAt(index uint32) *Track {
	if uint32(len(self.tracks)) <= index {
		glog.Infof("[rc]%s track index %d out of range\n", self.clientTag, index)
		return nil
	}
	return self.tracks[index]
}

// armNonblock makes the next read return immediately when no bytes are
// buffered, standing in for a non-blocking socket.
func (self *Client) armNonblock() error {
	if err := self.conn.SetReadDeadline(time.Now()); err != nil {
		return &NonblockingError{Err: err}
	}
	return nil
}

// isWouldBlock reports whether a read failed only because no data was
// buffered, which is the normal idle condition.
func isWouldBlock(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
