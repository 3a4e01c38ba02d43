// Package transport defines the connector abstraction used by the session
// layer to reach the execution core, with pluggable implementations for TCP
// and Unix domain sockets. Connectors only dial and tune sockets; framing,
// handshaking and request correlation live in the session package.
package transport
