// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"fanline/cli/internal/auth"
	"fanline/cli/internal/config"
	"fanline/cli/internal/httperrors"
	"fanline/cli/internal/keychain"
	"fanline/cli/internal/terminal"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// loginCmd represents the login command for storing the server API key.
// It prompts for the key without echoing it, verifies it against the server
// and stores it securely in the OS keychain.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Store the server API key in the OS keychain",
	Long: `The login command prompts for the Fanline server API key, verifies it by
sending an authorized request to the configured endpoint and stores it
securely in the OS keychain.

The key is read without echoing. Run 'fanline connect' first to configure
the server endpoint.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if st, err := auth.Load(); err == nil && st.LoggedIn {
			fmt.Printf("Already logged in to %s\n", st.Endpoint)
			fmt.Println("Run 'fanline logout' first to change the API key.")
			return nil
		}

		km, err := keychain.GetManager()
		if err != nil {
			fmt.Println("❌ Secure storage is not available on this system.")
			fmt.Println("   Keychain is only supported on macOS and Windows.")
			fmt.Println("   Use the FANLINE_API_KEY environment variable instead.")
			return err
		}

		key, err := readAPIKey()
		if err != nil {
			return err
		}
		if key == "" {
			return errors.New("API key is required")
		}

		if err := km.SaveAPIKey(key); err != nil {
			fmt.Println("❌ Failed to save the API key securely.")
			return err
		}

		// Verify the key against the configured endpoint
		cl, err := newAPIClient()
		if err != nil {
			if errors.Is(err, errNotConfigured) {
				fmt.Println("✅ API key saved.")
				fmt.Println("   Run 'fanline connect' to configure the server endpoint.")
				return nil
			}
			return err
		}

		stopSpinner := startInlineSpinner(os.Stdout, "verifying API key", []string{"|", "/", "-", "\\"}, 120*time.Millisecond)
		info, err := cl.Info(ctx)
		stopSpinner()
		if err != nil {
			_ = km.ClearAPIKey()
			return httperrors.FormatNetworkError(err, "verifying the API key")
		}

		endpointName := os.Getenv("FANLINE_API_URL")
		if endpointName == "" {
			if cfg, cfgErr := config.Load(); cfgErr == nil {
				endpointName = cfg.Endpoint
			}
		}
		_ = auth.Save(auth.State{LoggedIn: true, Endpoint: endpointName})

		if len(info.Nodes) > 0 {
			fmt.Printf("✅ Logged in! Server %s is running %d node(s).\n", info.Nodes[0].Version, len(info.Nodes))
		} else {
			fmt.Println("✅ Logged in!")
		}
		return nil
	},
}

// readAPIKey reads the key from the terminal without echo, falling back to a
// visible prompt when stdin is not a terminal (pipes, CI).
func readAPIKey() (string, error) {
	promptText := "Enter API key: "
	fmt.Print(promptText)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}
		terminal.ClearPreviousLines(len(promptText))
		return strings.TrimSpace(string(raw)), nil
	}

	var key string
	if _, err := fmt.Fscanln(os.Stdin, &key); err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	return strings.TrimSpace(key), nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
