package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Socket level configuration structs
// --------------------------------------------------------------------------

// SocketConf holds buffer settings applied to any stream socket
type SocketConf struct {
	WriteBufferSize int
	ReadBufferSize  int
}

// TCPConf holds settings that only apply to TCP connections
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	TCPLingerSec    int
}

// ClientTransportConfig bundles all socket level settings of a client
type ClientTransportConfig struct {
	SocketConf
	TCPConf
}

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds all configuration parameters for a client session.
// The credentials and TLS flag are passed to the execution core during the
// connection handshake and are otherwise opaque to the client.
type ClientConfig struct {
	// Endpoint is the address of the execution core process
	Endpoint string

	// Authentication (optional, sent with the handshake)
	Username string
	Password string

	// UseTLS asks the core for a TLS-secured session
	UseTLS bool

	// DatabaseID selects the logical database on the core
	DatabaseID uint32

	// TimeoutSecond bounds handshake reads and frame writes (0 = no limit)
	TimeoutSecond int

	// Transport holds socket tuning parameters
	Transport ClientTransportConfig

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General client settings
	addSection("Client Configuration")
	addField("Endpoint", c.Endpoint)
	addField("Database", strconv.FormatUint(uint64(c.DatabaseID), 10))
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("TLS", strconv.FormatBool(c.UseTLS))
	if c.Username != "" {
		addField("Username", c.Username)
		addField("Password", strings.Repeat("*", len(c.Password)))
	}

	// Socket settings
	addSection("Transport")
	addField("Write Buffer", fmt.Sprintf("%d bytes", c.Transport.WriteBufferSize))
	addField("Read Buffer", fmt.Sprintf("%d bytes", c.Transport.ReadBufferSize))
	addField("TCP NoDelay", strconv.FormatBool(c.Transport.TCPNoDelay))
	addField("TCP KeepAlive", fmt.Sprintf("%d sec", c.Transport.TCPKeepAliveSec))
	addField("TCP Linger", fmt.Sprintf("%d sec", c.Transport.TCPLingerSec))

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
