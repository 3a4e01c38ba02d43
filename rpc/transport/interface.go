package transport

import (
	"net"

	"github.com/ckv-io/ckv/rpc/common"
)

// IClientConnector defines the interface for transport-specific connection
// operations. The session layer stays independent of the network protocol
// used to reach the execution core.
type IClientConnector interface {
	// Connect establishes a single connection to the given endpoint
	Connect(endpoint string) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an established connection
	UpgradeConnection(conn net.Conn, config common.ClientConfig) error
}
