// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"fanline/cli/internal/api"
	"fanline/cli/internal/httperrors"

	"github.com/spf13/cobra"
)

var (
	historyLimit   int32
	historyReverse bool
	historyOffset  uint64
	historyEpoch   string
)

// historyCmd prints stored publications of a channel.
var historyCmd = &cobra.Command{
	Use:   "history <channel>",
	Short: "Show stored publications of a channel",
	Long: `The history command fetches publications stored for a channel. By default
the full history is returned; use --limit to page through large streams and
--offset/--epoch to continue from a known stream position.

Example:
  fanline history news --limit 10 --reverse`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		channel := args[0]

		cl, err := newAPIClient()
		if err != nil {
			return err
		}

		opts := []api.HistoryOption{api.WithLimit(api.NoLimit)}
		if historyLimit > 0 {
			opts = append(opts, api.WithLimit(historyLimit))
		}
		if historyReverse {
			opts = append(opts, api.WithReverse(true))
		}
		if historyOffset > 0 || historyEpoch != "" {
			opts = append(opts, api.WithSince(&api.StreamPosition{
				Offset: historyOffset,
				Epoch:  historyEpoch,
			}))
		}

		result, err := cl.History(cmd.Context(), channel, opts...)
		if err != nil {
			return httperrors.FormatNetworkError(err, fmt.Sprintf("fetching history of %q", channel))
		}

		for _, pub := range result.Publications {
			fmt.Printf("%8d  %s\n", pub.Offset, string(pub.Data))
		}
		fmt.Printf("%d publication(s), stream position %d/%s\n", len(result.Publications), result.Offset, result.Epoch)
		return nil
	},
}

// historyRemoveCmd clears stored history of a channel.
var historyRemoveCmd = &cobra.Command{
	Use:   "history-remove <channel>",
	Short: "Remove stored history of a channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		channel := args[0]

		cl, err := newAPIClient()
		if err != nil {
			return err
		}

		if err := cl.HistoryRemove(cmd.Context(), channel); err != nil {
			return httperrors.FormatNetworkError(err, fmt.Sprintf("removing history of %q", channel))
		}

		fmt.Printf("✅ History of %q removed\n", channel)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(historyRemoveCmd)
	historyCmd.Flags().Int32Var(&historyLimit, "limit", 0, "Maximum number of publications to return")
	historyCmd.Flags().BoolVar(&historyReverse, "reverse", false, "Iterate from the newest publication backwards")
	historyCmd.Flags().Uint64Var(&historyOffset, "offset", 0, "Stream offset to continue from")
	historyCmd.Flags().StringVar(&historyEpoch, "epoch", "", "Stream epoch the offset belongs to")
}
