package kv

import (
	"fmt"

	"github.com/ckv-io/ckv/cmd/util"
	"github.com/ckv-io/ckv/rpc/client"
	"github.com/ckv-io/ckv/rpc/common"
	"github.com/spf13/cobra"
)

var (
	stdClient     *client.Client
	clusterClient *client.ClusterClient

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:               "kv",
		Short:             "Issue key-value commands against the execution core",
		PersistentPreRunE: setupClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common connection flags to the KV command
	util.SetupClientFlags(KeyValueCommands)

	// Routing flags (cluster mode only)
	KeyValueCommands.PersistentFlags().String("route", "", util.WrapString("Route intent: allPrimaries, allNodes, randomNode, primarySlotKey, replicaSlotKey, primarySlotId, replicaSlotId"))
	KeyValueCommands.PersistentFlags().String("route-key", "", util.WrapString("Key whose slot the command is routed by (for slot key routes)"))
	KeyValueCommands.PersistentFlags().Int("route-slot", 0, util.WrapString("Hash-slot id the command is routed by (for slot id routes)"))

	// Add subcommands
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(delCmd)
	KeyValueCommands.AddCommand(existsCmd)
	KeyValueCommands.AddCommand(pingCmd)
	KeyValueCommands.AddCommand(customCmd)
}

// setupClient connects the configured client variant
func setupClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get client configuration components
	config := util.GetClientConfig()
	common.InitLoggers(*config)

	connector, err := util.GetConnector()
	if err != nil {
		return err
	}

	if util.GetClusterMode() {
		clusterClient, err = client.NewClusterClient(*config, connector)
		return err
	}

	stdClient, err = client.NewClient(*config, connector)
	return err
}

// closeClient shuts the active client down
func closeClient() {
	if clusterClient != nil {
		_ = clusterClient.Close()
	}
	if stdClient != nil {
		_ = stdClient.Close()
	}
}

// dispatch routes a raw command through the active client variant
func dispatch(cmd *cobra.Command, name string, args []string) ([]byte, error) {
	r, err := util.GetRoute()
	if err != nil {
		return nil, err
	}

	if clusterClient != nil {
		return clusterClient.DoRoute(cmd.Context(), name, args, r)
	}

	if r != nil {
		return nil, fmt.Errorf("explicit routing requires --cluster")
	}
	return stdClient.Do(cmd.Context(), name, args...)
}
