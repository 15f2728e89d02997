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
	unsubscribeClientID string
)

// unsubscribeCmd removes a user's server-side subscription to a channel.
var unsubscribeCmd = &cobra.Command{
	Use:   "unsubscribe <channel> <user>",
	Short: "Unsubscribe a user from a channel",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		channel, user := args[0], args[1]

		cl, err := newAPIClient()
		if err != nil {
			return err
		}

		var opts []api.UnsubscribeOption
		if unsubscribeClientID != "" {
			opts = append(opts, api.WithUnsubscribeClient(unsubscribeClientID))
		}

		if err := cl.Unsubscribe(cmd.Context(), channel, user, opts...); err != nil {
			return httperrors.FormatNetworkError(err, fmt.Sprintf("unsubscribing %q from %q", user, channel))
		}

		fmt.Printf("✅ Unsubscribed %q from %q\n", user, channel)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unsubscribeCmd)
	unsubscribeCmd.Flags().StringVar(&unsubscribeClientID, "client", "", "Only unsubscribe the connection with this client ID")
}
