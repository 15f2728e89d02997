// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"fanline/cli/internal/httperrors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// presenceCmd lists the clients currently subscribed to a channel.
var presenceCmd = &cobra.Command{
	Use:   "presence <channel>",
	Short: "Show clients currently in a channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		channel := args[0]

		cl, err := newAPIClient()
		if err != nil {
			return err
		}

		result, err := cl.Presence(cmd.Context(), channel)
		if err != nil {
			return httperrors.FormatNetworkError(err, fmt.Sprintf("fetching presence of %q", channel))
		}

		if len(result.Presence) == 0 {
			fmt.Printf("Channel %q has no subscribers\n", channel)
			return nil
		}

		table := pterm.TableData{{"CLIENT", "USER"}}
		for clientID, info := range result.Presence {
			table = append(table, []string{clientID, info.User})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(table).Render(); err != nil {
			return err
		}
		fmt.Printf("%d client(s) in %q\n", len(result.Presence), channel)
		return nil
	},
}

// presenceStatsCmd shows subscriber counts for a channel.
var presenceStatsCmd = &cobra.Command{
	Use:   "presence-stats <channel>",
	Short: "Show subscriber counts for a channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		channel := args[0]

		cl, err := newAPIClient()
		if err != nil {
			return err
		}

		stats, err := cl.PresenceStats(cmd.Context(), channel)
		if err != nil {
			return httperrors.FormatNetworkError(err, fmt.Sprintf("fetching presence stats of %q", channel))
		}

		fmt.Printf("Channel %q: %d client(s), %d unique user(s)\n", channel, stats.NumClients, stats.NumUsers)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presenceCmd)
	rootCmd.AddCommand(presenceStatsCmd)
}
