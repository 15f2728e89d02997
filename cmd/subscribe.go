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
	subscribePresence  bool
	subscribeJoinLeave bool
	subscribeRecover   bool
	subscribeClientID  string
)

// subscribeCmd subscribes a connected user to a channel server-side.
var subscribeCmd = &cobra.Command{
	Use:   "subscribe <channel> <user>",
	Short: "Subscribe a user to a channel",
	Long: `The subscribe command subscribes all active connections of a user to a
channel from the server side, without the client asking for it.

Example:
  fanline subscribe news user-42 --presence --join-leave`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		channel, user := args[0], args[1]

		cl, err := newAPIClient()
		if err != nil {
			return err
		}

		var opts []api.SubscribeOption
		if subscribePresence {
			opts = append(opts, api.WithPresence(true))
		}
		if subscribeJoinLeave {
			opts = append(opts, api.WithJoinLeave(true))
		}
		if subscribeRecover {
			opts = append(opts, api.WithRecover(true))
		}
		if subscribeClientID != "" {
			opts = append(opts, api.WithSubscribeClient(subscribeClientID))
		}

		if err := cl.Subscribe(cmd.Context(), channel, user, opts...); err != nil {
			return httperrors.FormatNetworkError(err, fmt.Sprintf("subscribing %q to %q", user, channel))
		}

		fmt.Printf("✅ Subscribed %q to %q\n", user, channel)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(subscribeCmd)
	subscribeCmd.Flags().BoolVar(&subscribePresence, "presence", false, "Enable presence for the subscription")
	subscribeCmd.Flags().BoolVar(&subscribeJoinLeave, "join-leave", false, "Enable join/leave events for the subscription")
	subscribeCmd.Flags().BoolVar(&subscribeRecover, "recover", false, "Enable automatic recovery for the subscription")
	subscribeCmd.Flags().StringVar(&subscribeClientID, "client", "", "Only subscribe the connection with this client ID")
}
