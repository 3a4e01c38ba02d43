package kv

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Get the value stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer closeClient()
			value, err := dispatch(cmd, "GET", args)
			if err != nil {
				return err
			}
			fmt.Println(string(value))
			return nil
		},
	}

	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Store a value under a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer closeClient()
			if _, err := dispatch(cmd, "SET", args); err != nil {
				return err
			}
			fmt.Println("OK")
			return nil
		},
	}

	delCmd = &cobra.Command{
		Use:   "del [key]...",
		Short: "Delete one or more keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer closeClient()
			if _, err := dispatch(cmd, "DEL", args); err != nil {
				return err
			}
			fmt.Println("OK")
			return nil
		},
	}

	existsCmd = &cobra.Command{
		Use:   "exists [key]...",
		Short: "Check whether one or more keys exist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer closeClient()
			value, err := dispatch(cmd, "EXISTS", args)
			if err != nil {
				return err
			}
			fmt.Println(string(value))
			return nil
		},
	}

	pingCmd = &cobra.Command{
		Use:   "ping",
		Short: "Check the connection to the execution core",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer closeClient()
			value, err := dispatch(cmd, "PING", nil)
			if err != nil {
				return err
			}
			fmt.Println(string(value))
			return nil
		},
	}

	customCmd = &cobra.Command{
		Use:   "custom [command] [arg]...",
		Short: "Issue a raw command",
		Long: "Issue a raw command by name. The command bypasses the typed helpers\n" +
			"but follows the exact same dispatch, routing and correlation path.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer closeClient()
			value, err := dispatch(cmd, strings.ToUpper(args[0]), args[1:])
			if err != nil {
				return err
			}
			fmt.Println(string(value))
			return nil
		},
	}
)
