package rocket

import (
	"io"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

// Some trackers (notably browser-hosted editors) speak the sync
// protocol over WebSocket binary messages instead of a raw TCP stream.
// wsStream adapts such a connection to the byte stream the client
// polls; message boundaries are ignored and the protocol framing
// recovers them.

const wsStreamBufferSize = 32

// ConnectWebSocket dials a WebSocket tracker url (ws:// or wss://).
func ConnectWebSocket(url string) (*Client, error) {
	return ConnectWebSocketWithSettings(url, DefaultClientSettings())
}

func ConnectWebSocketWithSettings(url string, settings *ClientSettings) (*Client, error) {
	dialer := &websocket.Dialer{
		HandshakeTimeout: settings.DialTimeout,
	}
	ws, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, &ConnectError{Err: err}
	}
	return newClient(newWsStream(ws), settings)
}

type wsStream struct {
	ws       *websocket.Conn
	receive  chan []byte
	done     chan struct{}
	buf      []byte
	deadline time.Time
	readErr  error
}

func newWsStream(ws *websocket.Conn) *wsStream {
	stream := &wsStream{
		ws:      ws,
		receive: make(chan []byte, wsStreamBufferSize),
		done:    make(chan struct{}),
	}
	go stream.pump()
	return stream
}

// pump moves whole messages off the websocket so that the caller-facing
// Read can stay deadline-driven. readErr is published before the
// channel close and read only after it.
func (self *wsStream) pump() {
	defer close(self.receive)
	for {
		_, message, err := self.ws.ReadMessage()
		if err != nil {
			self.readErr = err
			return
		}
		select {
		case self.receive <- message:
		case <-self.done:
			return
		}
	}
}

func (self *wsStream) Read(b []byte) (int, error) {
	for len(self.buf) == 0 {
		if self.deadline.IsZero() {
			message, ok := <-self.receive
			if !ok {
				return 0, self.pumpError()
			}
			self.buf = message
			continue
		}

		wait := time.Until(self.deadline)
		if wait <= 0 {
			select {
			case message, ok := <-self.receive:
				if !ok {
					return 0, self.pumpError()
				}
				self.buf = message
			default:
				return 0, os.ErrDeadlineExceeded
			}
			continue
		}

		timer := time.NewTimer(wait)
		select {
		case message, ok := <-self.receive:
			timer.Stop()
			if !ok {
				return 0, self.pumpError()
			}
			self.buf = message
		case <-timer.C:
			return 0, os.ErrDeadlineExceeded
		}
	}

	n := copy(b, self.buf)
	self.buf = self.buf[n:]
	return n, nil
}

func (self *wsStream) pumpError() error {
	if self.readErr != nil {
		return self.readErr
	}
	return io.EOF
}

func (self *wsStream) Write(b []byte) (int, error) {
	if err := self.ws.WriteMessage(websocket.BinaryMessage, b); err != nil {
		return 0, err
	}
	return len(b), nil
}

// SetReadDeadline bounds Read without touching the websocket's own read
// deadline, which would poison the connection on expiry.
func (self *wsStream) SetReadDeadline(t time.Time) error {
	self.deadline = t
	return nil
}

func (self *wsStream) Close() error {
	select {
	case <-self.done:
	default:
		close(self.done)
	}
	return self.ws.Close()
}
