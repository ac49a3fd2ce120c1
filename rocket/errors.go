package rocket

import (
	"errors"
	"fmt"
)

// errors.go defines one inspectable error type per failure class.
// All of them unwrap to the underlying cause for errors.Is/As.

// used by the persistence blob decoder
var (
	ErrBlobTruncated = errors.New("track blob truncated")
	ErrBlobBadName   = errors.New("track name is not valid utf-8")
)

// ConnectError reports a failure to establish the connection with the
// tracker.
type ConnectError struct {
	Err error
}

func (self *ConnectError) Error() string {
	return fmt.Sprintf("rocket: connect: %s", self.Err)
}

func (self *ConnectError) Unwrap() error {
	return self.Err
}

// HandshakeError reports an IO failure while exchanging greetings.
type HandshakeError struct {
	Err error
}

func (self *HandshakeError) Error() string {
	return fmt.Sprintf("rocket: handshake: %s", self.Err)
}

func (self *HandshakeError) Unwrap() error {
	return self.Err
}

// HandshakeGreetingMismatchError reports that the handshake completed
// but the tracker answered with the wrong greeting.
type HandshakeGreetingMismatchError struct {
	Greeting [serverGreetingLength]byte
}

func (self *HandshakeGreetingMismatchError) Error() string {
	return fmt.Sprintf("rocket: unexpected tracker greeting %q", self.Greeting[:])
}

// NonblockingError reports a failure to arm the read deadline that
// keeps polls from blocking.
type NonblockingError struct {
	Err error
}

func (self *NonblockingError) Error() string {
	return fmt.Sprintf("rocket: cannot arm nonblocking read: %s", self.Err)
}

func (self *NonblockingError) Unwrap() error {
	return self.Err
}

// IOError reports any other socket failure during steady state
// operation, including tracker disconnect. The connection is not
// usable afterwards; reconnecting means dialing a new client.
type IOError struct {
	Err error
}

func (self *IOError) Error() string {
	return fmt.Sprintf("rocket: tracker connection: %s", self.Err)
}

func (self *IOError) Unwrap() error {
	return self.Err
}
