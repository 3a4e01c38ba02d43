package common

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Error taxonomy
// --------------------------------------------------------------------------

// The client distinguishes failures that happen before anything is written
// to the connection (ArgumentError, UnsupportedRouteError, EncodingError)
// from failures delivered through the outcome of an in-flight request
// (RemoteError, ErrConnectionClosed). Pre-write failures are returned
// synchronously and never reserve a request identifier.

// ErrConnectionClosed is the failure delivered to every request that was
// still pending when its session terminated.
var ErrConnectionClosed = errors.New("connection closed")

// ArgumentError indicates a malformed command name or argument list,
// rejected before transmission.
type ArgumentError struct {
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid command: %s", e.Reason)
}

// UnsupportedRouteError indicates a route was supplied to a client that
// does not accept explicit routing.
type UnsupportedRouteError struct {
	Route string
}

func (e *UnsupportedRouteError) Error() string {
	return fmt.Sprintf("route %q not supported by this client (cluster mode required)", e.Route)
}

// EncodingError indicates a command descriptor could not be serialized.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding failed: %s", e.Reason)
}

// RemoteError is a failure outcome produced by the execution core. Kind and
// message are supplied by the core verbatim.
type RemoteError struct {
	Kind    string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
