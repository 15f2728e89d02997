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
	disconnectCode      uint32
	disconnectReason    string
	disconnectReconnect bool
	disconnectClientID  string
	disconnectWhitelist []string
)

// disconnectCmd closes all active connections of a user.
var disconnectCmd = &cobra.Command{
	Use:   "disconnect <user>",
	Short: "Disconnect a user from the server",
	Long: `The disconnect command closes all active connections of a user. A custom
disconnect code and reason can be sent to the client, and individual
connections can be spared with --whitelist.

Example:
  fanline disconnect user-42 --code 4000 --reason "banned"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user := args[0]

		cl, err := newAPIClient()
		if err != nil {
			return err
		}

		var opts []api.DisconnectOption
		if disconnectCode != 0 || disconnectReason != "" {
			opts = append(opts, api.WithDisconnect(&api.Disconnect{
				Code:      disconnectCode,
				Reason:    disconnectReason,
				Reconnect: disconnectReconnect,
			}))
		}
		if disconnectClientID != "" {
			opts = append(opts, api.WithDisconnectClient(disconnectClientID))
		}
		if len(disconnectWhitelist) > 0 {
			opts = append(opts, api.WithDisconnectClientWhitelist(disconnectWhitelist))
		}

		if err := cl.Disconnect(cmd.Context(), user, opts...); err != nil {
			return httperrors.FormatNetworkError(err, fmt.Sprintf("disconnecting %q", user))
		}

		fmt.Printf("✅ Disconnected %q\n", user)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(disconnectCmd)
	disconnectCmd.Flags().Uint32Var(&disconnectCode, "code", 0, "Disconnect code sent to the client")
	disconnectCmd.Flags().StringVar(&disconnectReason, "reason", "", "Disconnect reason sent to the client")
	disconnectCmd.Flags().BoolVar(&disconnectReconnect, "reconnect", false, "Advise the client to reconnect")
	disconnectCmd.Flags().StringVar(&disconnectClientID, "client", "", "Only disconnect the connection with this client ID")
	disconnectCmd.Flags().StringSliceVar(&disconnectWhitelist, "whitelist", nil, "Client IDs to keep connected")
}
