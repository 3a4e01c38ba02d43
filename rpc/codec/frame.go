package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
)

// MaxFrameSize bounds the payload length accepted when reading a frame.
// Anything larger is treated as stream corruption.
const MaxFrameSize = 512 << 20

// WriteFrame writes one length-delimited frame to the connection:
// - 4 bytes: payload length (uint32, big endian)
// - N bytes: payload
// Header and payload are combined into a single gathered write so a frame
// is never interleaved with another writer's bytes at the syscall level.
func WriteFrame(conn io.Writer, payload []byte) error {
	if len(payload) > MaxFrameSize {
		return fmt.Errorf("frame payload of %d bytes exceeds maximum %d", len(payload), MaxFrameSize)
	}

	header := make([]byte, 4)
	binary.BigEndian.PutUint32(header, uint32(len(payload)))

	b := net.Buffers{header, payload}
	_, err := b.WriteTo(conn)
	return err
}

// ReadFrame reads one length-delimited frame from the connection using the
// provided buffer. If the buffer is too small (or nil), a new buffer is
// allocated. io.ReadFull blocks until the full header and payload have
// arrived, so partial reads across stream boundaries are buffered, never
// discarded.
func ReadFrame(r io.Reader, buf []byte) ([]byte, error) {
	if buf == nil || len(buf) < 4 {
		buf = make([]byte, 4)
	}

	// Read header
	if _, err := io.ReadFull(r, buf[:4]); err != nil {
		return nil, err
	}

	contentLength := binary.BigEndian.Uint32(buf[:4])
	if contentLength > MaxFrameSize {
		return nil, fmt.Errorf("frame payload of %d bytes exceeds maximum %d", contentLength, MaxFrameSize)
	}
	if contentLength == 0 {
		return []byte{}, nil
	}

	// Read payload
	if len(buf) < int(contentLength) {
		buf = make([]byte, contentLength)
	}
	if _, err := io.ReadFull(r, buf[:contentLength]); err != nil {
		return nil, err
	}

	return buf[:contentLength], nil
}

// SplitFrame extracts the first complete frame from a byte buffer. It
// returns the frame payload and the remaining bytes. If the buffer does not
// yet hold a complete frame, ErrIncomplete is returned and the caller must
// feed more bytes; the partial frame is not an error.
func SplitFrame(data []byte) (payload []byte, rest []byte, err error) {
	if len(data) < 4 {
		return nil, data, ErrIncomplete
	}

	contentLength := binary.BigEndian.Uint32(data[:4])
	if contentLength > MaxFrameSize {
		return nil, data, fmt.Errorf("frame payload of %d bytes exceeds maximum %d", contentLength, MaxFrameSize)
	}
	if len(data) < 4+int(contentLength) {
		return nil, data, ErrIncomplete
	}

	return data[4 : 4+contentLength], data[4+contentLength:], nil
}
