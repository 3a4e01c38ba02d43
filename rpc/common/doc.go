// Package common provides the core data structures and utilities shared
// across the RPC client, including the client configuration, the error
// taxonomy and the logging setup.
//
// Key components:
//
//   - ClientConfig: All parameters needed to establish and tune a client
//     session, including the handshake options forwarded to the execution
//     core (credentials, TLS flag, database selection).
//
//   - Error types: ArgumentError, UnsupportedRouteError and EncodingError
//     are raised before anything is written to the connection; RemoteError
//     and ErrConnectionClosed are delivered through the outcome of an
//     in-flight request.
//
//   - Logging: A named, leveled logger factory used by all client packages.
package common
