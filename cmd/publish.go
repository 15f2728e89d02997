// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"fmt"

	"fanline/cli/internal/api"
	"fanline/cli/internal/httperrors"

	"github.com/spf13/cobra"
)

var (
	publishSkipHistory bool
)

// publishCmd sends a message into a single channel.
var publishCmd = &cobra.Command{
	Use:   "publish <channel> <json-data>",
	Short: "Publish a message into a channel",
	Long: `The publish command sends a JSON payload into a channel. All clients
currently subscribed to the channel receive the message.

Example:
  fanline publish news '{"text": "hello"}'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		channel, data := args[0], args[1]

		cl, err := newAPIClient()
		if err != nil {
			return err
		}

		var opts []api.PublishOption
		if publishSkipHistory {
			opts = append(opts, api.WithSkipHistory(true))
		}

		result, err := cl.Publish(cmd.Context(), channel, json.RawMessage(data), opts...)
		if err != nil {
			return httperrors.FormatNetworkError(err, fmt.Sprintf("publishing to %q", channel))
		}

		if result.Offset > 0 || result.Epoch != "" {
			fmt.Printf("✅ Published to %q (offset %d, epoch %s)\n", channel, result.Offset, result.Epoch)
		} else {
			fmt.Printf("✅ Published to %q\n", channel)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().BoolVar(&publishSkipHistory, "skip-history", false, "Do not store the message in channel history")
}
