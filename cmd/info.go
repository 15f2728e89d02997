// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"fanline/cli/internal/httperrors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// infoCmd shows information about the running server nodes.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about server nodes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := newAPIClient()
		if err != nil {
			return err
		}

		result, err := cl.Info(cmd.Context())
		if err != nil {
			return httperrors.FormatNetworkError(err, "fetching server info")
		}

		if len(result.Nodes) == 0 {
			fmt.Println("Server reported no nodes")
			return nil
		}

		table := pterm.TableData{{"NODE", "VERSION", "CLIENTS", "USERS", "CHANNELS", "UPTIME"}}
		for _, node := range result.Nodes {
			table = append(table, []string{
				node.Name,
				node.Version,
				fmt.Sprintf("%d", node.NumClients),
				fmt.Sprintf("%d", node.NumUsers),
				fmt.Sprintf("%d", node.NumChannels),
				fmt.Sprintf("%ds", node.Uptime),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
