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
	broadcastSkipHistory bool
)

// broadcastCmd sends the same message into several channels at once.
var broadcastCmd = &cobra.Command{
	Use:   "broadcast <json-data> <channel>...",
	Short: "Publish the same message into multiple channels",
	Long: `The broadcast command sends one JSON payload into several channels with a
single request. The server reports success or failure per channel.

Example:
  fanline broadcast '{"text": "hello"}' news sports weather`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, channels := args[0], args[1:]

		cl, err := newAPIClient()
		if err != nil {
			return err
		}

		var opts []api.PublishOption
		if broadcastSkipHistory {
			opts = append(opts, api.WithSkipHistory(true))
		}

		result, err := cl.Broadcast(cmd.Context(), channels, []byte(data), opts...)
		if err != nil {
			return httperrors.FormatNetworkError(err, "broadcasting")
		}

		failed := 0
		for i, resp := range result.Responses {
			if resp.Error != nil {
				failed++
				fmt.Printf("❌ %s: %s\n", channels[i], resp.Error.Message)
			}
		}
		if failed > 0 {
			return fmt.Errorf("broadcast failed for %d of %d channels", failed, len(channels))
		}

		fmt.Printf("✅ Broadcast to %d channels\n", len(channels))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(broadcastCmd)
	broadcastCmd.Flags().BoolVar(&broadcastSkipHistory, "skip-history", false, "Do not store the message in channel history")
}
