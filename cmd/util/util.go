package util

import (
	"fmt"
	"strings"

	"github.com/ckv-io/ckv/rpc/common"
	"github.com/ckv-io/ckv/rpc/route"
	"github.com/ckv-io/ckv/rpc/transport"
	"github.com/ckv-io/ckv/rpc/transport/tcp"
	"github.com/ckv-io/ckv/rpc/transport/unix"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupClientFlags adds common connection flags to a command
func SetupClientFlags(cmd *cobra.Command) {
	key := "endpoint"
	cmd.PersistentFlags().String(key, "localhost:6380", WrapString("The address of the execution core process"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("The timeout in seconds for handshake reads and frame writes"))

	key = "username"
	cmd.PersistentFlags().String(key, "", WrapString("Username sent with the connection handshake"))

	key = "password"
	cmd.PersistentFlags().String(key, "", WrapString("Password sent with the connection handshake"))

	key = "tls"
	cmd.PersistentFlags().Bool(key, false, WrapString("Ask the core for a TLS-secured session"))

	key = "database"
	cmd.PersistentFlags().Int(key, 0, WrapString("Logical database to select on the core"))

	key = "cluster"
	cmd.PersistentFlags().Bool(key, false, WrapString("Enable cluster mode; required for explicit routing"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "info", WrapString("Log level (debug, info, warn, error)"))

	key = "transport-write-buffer"
	cmd.PersistentFlags().Int(key, 512, WrapString("The size of the write buffer for the transport (in KB)"))

	key = "transport-read-buffer"
	cmd.PersistentFlags().Int(key, 512, WrapString("The size of the read buffer for the transport (in KB)"))

	key = "transport-tcp-nodelay"
	cmd.PersistentFlags().Bool(key, true, WrapString("Whether to enable TCP_NODELAY for the transport"))

	key = "transport-tcp-keepalive"
	cmd.PersistentFlags().Int(key, 0, WrapString("The keepalive interval for the transport (in seconds)"))

	key = "transport-tcp-linger"
	cmd.PersistentFlags().Int(key, 0, WrapString("The linger time for the transport (in seconds)"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("ckv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() *common.ClientConfig {
	conf := &common.ClientConfig{
		Endpoint:      viper.GetString("endpoint"),
		Username:      viper.GetString("username"),
		Password:      viper.GetString("password"),
		UseTLS:        viper.GetBool("tls"),
		DatabaseID:    uint32(viper.GetInt("database")),
		TimeoutSecond: viper.GetInt("timeout"),
		LogLevel:      viper.GetString("log-level"),
		Transport: common.ClientTransportConfig{
			SocketConf: common.SocketConf{
				WriteBufferSize: viper.GetInt("transport-write-buffer") * 1024,
				ReadBufferSize:  viper.GetInt("transport-read-buffer") * 1024,
			},
			TCPConf: common.TCPConf{
				TCPKeepAliveSec: viper.GetInt("transport-tcp-keepalive"),
				TCPLingerSec:    viper.GetInt("transport-tcp-linger"),
				TCPNoDelay:      viper.GetBool("transport-tcp-nodelay"),
			},
		},
	}

	return conf
}

// GetConnector creates a connector based on configuration
func GetConnector() (transport.IClientConnector, error) {
	switch viper.GetString("transport") {
	case "tcp":
		return tcp.NewTCPConnector(), nil
	case "unix":
		return unix.NewUnixConnector(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", viper.GetString("transport"))
	}
}

// GetClusterMode reports whether cluster mode was requested
func GetClusterMode() bool {
	return viper.GetBool("cluster")
}

// GetRoute builds a route intent from the route flags. Returns nil if no
// route was requested.
func GetRoute() (route.Route, error) {
	name := viper.GetString("route")
	if name == "" {
		return nil, nil
	}

	key := viper.GetString("route-key")
	slot := viper.GetInt("route-slot")

	switch name {
	case "allPrimaries":
		return route.AllPrimaries{}, nil
	case "allNodes":
		return route.AllNodes{}, nil
	case "randomNode":
		return route.RandomNode{}, nil
	case "primarySlotKey":
		return route.SlotKeyRoute{SlotType: route.Primary, Key: key}, nil
	case "replicaSlotKey":
		return route.SlotKeyRoute{SlotType: route.Replica, Key: key}, nil
	case "primarySlotId":
		return route.SlotIDRoute{SlotType: route.Primary, ID: uint32(slot)}, nil
	case "replicaSlotId":
		return route.SlotIDRoute{SlotType: route.Replica, ID: uint32(slot)}, nil
	default:
		return nil, fmt.Errorf("invalid route %q", name)
	}
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
