// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"fanline/cli/internal/auth"
	"fanline/cli/internal/keychain"

	"github.com/spf13/cobra"
)

// logoutCmd represents the logout command for clearing stored credentials.
// It removes the API key and authentication state from the OS keychain.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved API key and authentication state",
	Long: `The logout command clears all credentials stored by this CLI:

- The API key from the OS keychain
- The local authentication state

The server endpoint configuration is kept; run 'fanline login' to store
a new key.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if km, err := keychain.GetManager(); err == nil {
			_ = km.ClearAll()
		}
		_ = auth.Clear()

		fmt.Println("✅ All credentials have been removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
