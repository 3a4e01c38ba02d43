// Package codec implements the binary wire protocol of the client: a
// length-delimited frame format carrying command requests, responses and
// the connection bootstrap message.
//
// Frame layout:
//
//   - 4 bytes: payload length (uint32, big endian)
//   - N bytes: payload, first byte is the FrameType
//
// A command payload carries the request identifier, an optional route
// directive and the command descriptor (name plus ordered arguments, each
// length-prefixed). A response payload carries the request identifier and
// either an opaque success payload or a structured error (kind + message).
//
// Truncated input yields ErrIncomplete rather than a hard error: frames are
// length-delimited, so partial reads across stream boundaries are expected
// and must be buffered by the caller. ReadFrame does this buffering
// internally via io.ReadFull; SplitFrame exposes it for callers that manage
// their own buffers.
package codec
