package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/ckv-io/ckv/rpc/common"
)

// Bit flags of a bootstrap payload
const (
	bootstrapHasAuth     byte = 1 << 0
	bootstrapUseTLS      byte = 1 << 1
	bootstrapClusterMode byte = 1 << 2
)

// BootstrapID is the request identifier reserved for the connection
// handshake. Regular request identifiers start above it.
const BootstrapID uint64 = 0

// Bootstrap is the decoded form of the connection bootstrap message sent
// once at session start. The connection options are opaque to the dispatch
// layer; ClusterMode is the one field it sets itself.
type Bootstrap struct {
	Username    string
	Password    string
	UseTLS      bool
	DatabaseID  uint32
	ClusterMode bool
}

// EncodeBootstrap serializes the connection bootstrap message from the
// client configuration. The cluster facade sets clusterMode true, the
// standard facade leaves it false.
func EncodeBootstrap(config common.ClientConfig, clusterMode bool) []byte {
	size := 1 + 8 + 1 + 4
	if config.Username != "" {
		size += 4 + len(config.Username) + 4 + len(config.Password)
	}

	buf := make([]byte, 0, size)
	buf = append(buf, byte(FrameBootstrap))
	buf = binary.BigEndian.AppendUint64(buf, BootstrapID)

	var flags byte
	if config.Username != "" {
		flags |= bootstrapHasAuth
	}
	if config.UseTLS {
		flags |= bootstrapUseTLS
	}
	if clusterMode {
		flags |= bootstrapClusterMode
	}
	buf = append(buf, flags)

	buf = binary.BigEndian.AppendUint32(buf, config.DatabaseID)

	if config.Username != "" {
		buf = appendString(buf, config.Username)
		buf = appendString(buf, config.Password)
	}

	return buf
}

// DecodeBootstrap deserializes a bootstrap payload. Used by tests and
// server-side implementations.
func DecodeBootstrap(data []byte) (Bootstrap, error) {
	var b Bootstrap

	r := reader{data: data}
	t, err := r.byte()
	if err != nil {
		return b, err
	}
	if FrameType(t) != FrameBootstrap {
		return b, fmt.Errorf("unexpected frame type %d, expected bootstrap", t)
	}

	id, err := r.uint64()
	if err != nil {
		return b, err
	}
	if id != BootstrapID {
		return b, fmt.Errorf("bootstrap carries request id %d, expected %d", id, BootstrapID)
	}

	flags, err := r.byte()
	if err != nil {
		return b, err
	}
	b.UseTLS = flags&bootstrapUseTLS != 0
	b.ClusterMode = flags&bootstrapClusterMode != 0

	if b.DatabaseID, err = r.uint32(); err != nil {
		return b, err
	}

	if flags&bootstrapHasAuth != 0 {
		if b.Username, err = r.string(); err != nil {
			return b, err
		}
		if b.Password, err = r.string(); err != nil {
			return b, err
		}
	}

	return b, nil
}
