package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ckv-io/ckv/rpc/command"
	"github.com/ckv-io/ckv/rpc/common"
	"github.com/ckv-io/ckv/rpc/route"
)

// ErrIncomplete signals that a buffer does not yet contain enough bytes to
// decode a complete frame or payload. Callers must feed more bytes; this is
// an expected condition on a byte stream, not corruption.
var ErrIncomplete = errors.New("incomplete frame: need more bytes")

// --------------------------------------------------------------------------
// Payload types
// --------------------------------------------------------------------------

// FrameType discriminates the payload carried by a frame
type FrameType uint8

const (
	FrameBootstrap FrameType = 1
	FrameCommand   FrameType = 2
	FrameResponse  FrameType = 3
)

// Bit flags of a command payload
const (
	hasRoute byte = 1 << 0
)

// Response status bytes
const (
	statusOK  byte = 0
	statusErr byte = 1
)

// Request is the decoded form of a command payload. Used by tests and by
// server-side implementations of the protocol.
type Request struct {
	ID    uint64
	Cmd   command.Command
	Route *route.Directive
}

// Response is the decoded form of a response payload: the request
// identifier plus either an opaque success payload or a remote error.
type Response struct {
	ID      uint64
	Payload []byte
	Err     *common.RemoteError
}

// --------------------------------------------------------------------------
// Request encoding
// --------------------------------------------------------------------------

// EncodeRequest serializes a (command descriptor, optional route directive,
// request identifier) triple into a frame payload. The outer length prefix
// is added by WriteFrame. It fails with *common.EncodingError if the
// descriptor or directive is malformed.
func EncodeRequest(id uint64, cmd command.Command, dir *route.Directive) ([]byte, error) {
	name := cmd.Name()
	if name == "" {
		return nil, &common.EncodingError{Reason: "command descriptor has no name"}
	}

	args := cmd.Args()

	// 1 type + 8 id + 1 flags + name + argc
	size := 1 + 8 + 1 + 4 + len(name) + 4
	for _, arg := range args {
		size += 4 + len(arg)
	}
	if dir != nil {
		size += directiveSize(dir)
	}
	if size > MaxFrameSize {
		return nil, &common.EncodingError{Reason: fmt.Sprintf("command of %d bytes exceeds maximum frame size", size)}
	}

	buf := make([]byte, 0, size)
	buf = append(buf, byte(FrameCommand))
	buf = binary.BigEndian.AppendUint64(buf, id)

	var flags byte
	if dir != nil {
		flags |= hasRoute
	}
	buf = append(buf, flags)

	if dir != nil {
		var err error
		buf, err = appendDirective(buf, dir)
		if err != nil {
			return nil, err
		}
	}

	buf = appendString(buf, name)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(args)))
	for _, arg := range args {
		buf = appendString(buf, arg)
	}

	return buf, nil
}

// appendDirective serializes a wire route directive. The four
// {primary,replica} x {key,id} shapes stay distinct on the wire: the kind
// byte separates key from id locators, the slot type byte separates primary
// from replica targets.
func appendDirective(buf []byte, dir *route.Directive) ([]byte, error) {
	switch dir.Kind {
	case route.KindAllPrimaries, route.KindAllNodes, route.KindRandomNode:
		return append(buf, byte(dir.Kind)), nil
	case route.KindSlotKey:
		buf = append(buf, byte(dir.Kind), byte(dir.SlotType))
		return appendString(buf, dir.SlotKey), nil
	case route.KindSlotID:
		buf = append(buf, byte(dir.Kind), byte(dir.SlotType))
		return binary.BigEndian.AppendUint32(buf, dir.SlotID), nil
	default:
		return nil, &common.EncodingError{Reason: fmt.Sprintf("unknown route directive kind %d", dir.Kind)}
	}
}

// directiveSize returns the serialized size of a directive
func directiveSize(dir *route.Directive) int {
	switch dir.Kind {
	case route.KindSlotKey:
		return 1 + 1 + 4 + len(dir.SlotKey)
	case route.KindSlotID:
		return 1 + 1 + 4
	default:
		return 1
	}
}

// DecodeRequest deserializes a command payload. Returns ErrIncomplete if
// the payload is truncated.
func DecodeRequest(data []byte) (Request, error) {
	var req Request

	r := reader{data: data}
	t, err := r.byte()
	if err != nil {
		return req, err
	}
	if FrameType(t) != FrameCommand {
		return req, fmt.Errorf("unexpected frame type %d, expected command", t)
	}

	if req.ID, err = r.uint64(); err != nil {
		return req, err
	}

	flags, err := r.byte()
	if err != nil {
		return req, err
	}

	if flags&hasRoute != 0 {
		if req.Route, err = r.directive(); err != nil {
			return req, err
		}
	}

	name, err := r.string()
	if err != nil {
		return req, err
	}

	argc, err := r.uint32()
	if err != nil {
		return req, err
	}
	args := make([]string, 0, argc)
	for i := uint32(0); i < argc; i++ {
		arg, err := r.string()
		if err != nil {
			return req, err
		}
		args = append(args, arg)
	}

	if req.Cmd, err = command.New(name, args...); err != nil {
		return req, err
	}
	return req, nil
}

// --------------------------------------------------------------------------
// Response encoding
// --------------------------------------------------------------------------

// EncodeResponse serializes a success outcome for the given request
// identifier. Used by tests and server-side implementations.
func EncodeResponse(id uint64, payload []byte) []byte {
	buf := make([]byte, 0, 1+8+1+4+len(payload))
	buf = append(buf, byte(FrameResponse))
	buf = binary.BigEndian.AppendUint64(buf, id)
	buf = append(buf, statusOK)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(payload)))
	buf = append(buf, payload...)
	return buf
}

// EncodeErrorResponse serializes a structured remote error outcome for the
// given request identifier.
func EncodeErrorResponse(id uint64, kind, message string) []byte {
	buf := make([]byte, 0, 1+8+1+4+len(kind)+4+len(message))
	buf = append(buf, byte(FrameResponse))
	buf = binary.BigEndian.AppendUint64(buf, id)
	buf = append(buf, statusErr)
	buf = appendString(buf, kind)
	buf = appendString(buf, message)
	return buf
}

// DecodeResponse deserializes a response payload into the request
// identifier and its outcome. Returns ErrIncomplete if the payload is
// truncated; the caller is expected to buffer and retry with more bytes.
func DecodeResponse(data []byte) (Response, error) {
	var resp Response

	r := reader{data: data}
	t, err := r.byte()
	if err != nil {
		return resp, err
	}
	if FrameType(t) != FrameResponse {
		return resp, fmt.Errorf("unexpected frame type %d, expected response", t)
	}

	if resp.ID, err = r.uint64(); err != nil {
		return resp, err
	}

	status, err := r.byte()
	if err != nil {
		return resp, err
	}

	switch status {
	case statusOK:
		payload, err := r.bytes()
		if err != nil {
			return resp, err
		}
		resp.Payload = payload
	case statusErr:
		kind, err := r.string()
		if err != nil {
			return resp, err
		}
		message, err := r.string()
		if err != nil {
			return resp, err
		}
		resp.Err = &common.RemoteError{Kind: kind, Message: message}
	default:
		return resp, fmt.Errorf("unknown response status %d", status)
	}

	return resp, nil
}

// --------------------------------------------------------------------------
// Read helpers
// --------------------------------------------------------------------------

// reader is a cursor over a payload buffer. Running past the end yields
// ErrIncomplete so stream consumers can distinguish truncation from
// corruption.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) byte() (byte, error) {
	if r.pos+1 > len(r.data) {
		return 0, ErrIncomplete
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) uint32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, ErrIncomplete
	}
	v := binary.BigEndian.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4
	return v, nil
}

func (r *reader) uint64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, ErrIncomplete
	}
	v := binary.BigEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return v, nil
}

// bytes reads a length-prefixed byte string. The result is copied out of
// the underlying buffer so it stays valid after the buffer is reused.
func (r *reader) bytes() ([]byte, error) {
	n, err := r.uint32()
	if err != nil {
		return nil, err
	}
	if r.pos+int(n) > len(r.data) {
		return nil, ErrIncomplete
	}
	out := make([]byte, n)
	copy(out, r.data[r.pos:r.pos+int(n)])
	r.pos += int(n)
	return out, nil
}

func (r *reader) string() (string, error) {
	n, err := r.uint32()
	if err != nil {
		return "", err
	}
	if r.pos+int(n) > len(r.data) {
		return "", ErrIncomplete
	}
	s := string(r.data[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, nil
}

func (r *reader) directive() (*route.Directive, error) {
	kind, err := r.byte()
	if err != nil {
		return nil, err
	}

	dir := &route.Directive{Kind: route.DirectiveKind(kind)}
	switch dir.Kind {
	case route.KindAllPrimaries, route.KindAllNodes, route.KindRandomNode:
		return dir, nil
	case route.KindSlotKey:
		st, err := r.byte()
		if err != nil {
			return nil, err
		}
		dir.SlotType = route.SlotType(st)
		if dir.SlotKey, err = r.string(); err != nil {
			return nil, err
		}
		return dir, nil
	case route.KindSlotID:
		st, err := r.byte()
		if err != nil {
			return nil, err
		}
		dir.SlotType = route.SlotType(st)
		if dir.SlotID, err = r.uint32(); err != nil {
			return nil, err
		}
		return dir, nil
	default:
		return nil, fmt.Errorf("unknown route directive kind %d", kind)
	}
}

// appendString appends a length-prefixed string to the buffer
func appendString(buf []byte, s string) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}
