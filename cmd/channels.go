// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"sort"

	"fanline/cli/internal/api"
	"fanline/cli/internal/httperrors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	channelsPattern string
)

// channelsCmd lists channels with at least one active subscriber.
var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List active channels",
	Long: `The channels command lists channels that currently have one or more active
subscribers. Use --pattern to narrow the result to matching channel names.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := newAPIClient()
		if err != nil {
			return err
		}

		var opts []api.ChannelsOption
		if channelsPattern != "" {
			opts = append(opts, api.WithPattern(channelsPattern))
		}

		result, err := cl.Channels(cmd.Context(), opts...)
		if err != nil {
			return httperrors.FormatNetworkError(err, "listing channels")
		}

		if len(result.Channels) == 0 {
			fmt.Println("No active channels")
			return nil
		}

		names := make([]string, 0, len(result.Channels))
		for name := range result.Channels {
			names = append(names, name)
		}
		sort.Strings(names)

		table := pterm.TableData{{"CHANNEL", "CLIENTS"}}
		for _, name := range names {
			table = append(table, []string{name, fmt.Sprintf("%d", result.Channels[name].NumClients)})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(table).Render(); err != nil {
			return err
		}
		fmt.Printf("%d active channel(s)\n", len(names))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(channelsCmd)
	channelsCmd.Flags().StringVar(&channelsPattern, "pattern", "", "Only list channels matching this pattern")
}
