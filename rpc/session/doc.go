// Package session implements the connection session and the pending
// request table, the concurrency nucleus of the client.
//
// A Session owns exactly one persistent duplex connection to the execution
// core. Writes are serialized by a mutex so a frame is never interleaved
// with another caller's frame; reads happen on a single pump goroutine so
// decode state is never accessed concurrently. Each outgoing request
// reserves a unique identifier and an outcome channel in the pending table;
// the pump correlates incoming frames to their entries exclusively by that
// identifier, so responses may arrive in any order.
//
// Lifecycle: Connecting -> Open on a successful bootstrap handshake, Open
// -> Closing on explicit shutdown or a stream-level fault, Closing ->
// Closed once teardown completes. Entering Closing resolves every pending
// entry with ErrConnectionClosed; no request is ever left unresolved.
//
// Thread safety: all public methods are safe for concurrent use. The
// pending table (an xsync map plus an atomic identifier counter) is the
// only mutable shared state.
package session
