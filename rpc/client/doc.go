// Package client provides the public entry points of the RPC client: the
// standard Client for a single configured core node and the cluster-aware
// ClusterClient that accepts an optional route on every command.
//
// Both facades share one dispatch engine (composition, not subclassing):
// build the command descriptor, apply the route policy, reserve a request
// identifier, encode and write the frame, return a Future that completes
// when the matching response arrives. There is exactly one dispatch path
// for all commands, typed or raw.
//
// Errors raised before anything is written (ArgumentError,
// UnsupportedRouteError, EncodingError) are returned synchronously and
// never reserve a request identifier. RemoteError and ErrConnectionClosed
// are only ever delivered through the Future. This layer never retries;
// retry policy belongs to the caller.
package client
