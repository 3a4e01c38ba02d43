package cmd

import (
	"fmt"
	"os"

	"github.com/ckv-io/ckv/cmd/kv"
	"github.com/ckv-io/ckv/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "ckv",
		Short: "client for the key-value execution core",
		Long: fmt.Sprintf(`ckv (v%s)

A cluster-aware client for the key-value execution core. Commands are
framed onto a single persistent connection and correlated to their
responses by request identifier; routing hints are forwarded to the
core, which owns the cluster topology.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of ckv",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ckv v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
