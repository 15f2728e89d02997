// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"fanline/cli/internal/api"
	"fanline/cli/internal/config"
	"fanline/cli/internal/endpoint"
	"fanline/cli/internal/httperrors"
	"fanline/cli/internal/terminal"

	"github.com/spf13/cobra"
)

var (
	connectDiscoveryURL string
)

// connectCmd represents the connect command for configuring the server endpoint.
// It prompts the user for the API URL and verifies connectivity before saving
// the endpoint in the config file.
var connectCmd = &cobra.Command{
	Use:   "connect [url]",
	Short: "Configure and verify the Fanline server endpoint",
	Long: `The connect command takes the URL of a Fanline server API endpoint, verifies
that the server is reachable and saves the endpoint in the config file for
future use.

Example endpoint format: https://fanline.example.com/api

With --discovery, the URL is treated as a manifest discovery URL instead and
the API endpoint is resolved from it before every request.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if connectDiscoveryURL != "" {
			return connectViaDiscovery(ctx, connectDiscoveryURL)
		}

		rawURL := ""
		if len(args) > 0 {
			rawURL = strings.TrimSpace(args[0])
		} else {
			reader := bufio.NewReader(os.Stdin)
			promptText := "Enter server API URL (e.g., https://fanline.example.com/api): "
			fmt.Print(promptText)
			rawURL, _ = reader.ReadString('\n')
			rawURL = strings.TrimSpace(rawURL)

			// Clear the prompt and user input from terminal
			terminal.ClearPreviousLines(len(promptText) + len(rawURL))
		}

		if rawURL == "" {
			return errors.New("server URL is required")
		}

		normalized, err := endpoint.Normalize(rawURL)
		if err != nil {
			var parseErr *endpoint.ParseError
			if errors.As(err, &parseErr) {
				fmt.Println("❌ " + parseErr.Error())
				return parseErr
			}
			fmt.Println("❌ Invalid server URL. Please check the address and try again.")
			fmt.Println("   Example: https://fanline.example.com/api")
			return err
		}

		if err := verifyEndpoint(ctx, normalized); err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			cfg = config.Config{}
		}
		cfg.Endpoint = normalized
		cfg.DiscoveryURL = ""
		if err := config.Save(cfg); err != nil {
			fmt.Println("❌ Endpoint verified but saving the config file failed.")
			return err
		}

		fmt.Println("✅ Server endpoint verified and saved!")
		fmt.Println("   You're ready to run 'fanline publish'")
		return nil
	},
}

// connectViaDiscovery resolves the endpoint through the manifest once to make
// sure the discovery URL works, then saves it.
func connectViaDiscovery(ctx context.Context, discoveryURL string) error {
	addr, err := resolveAndVerify(ctx, discoveryURL)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.Config{}
	}
	cfg.DiscoveryURL = discoveryURL
	cfg.Endpoint = ""
	if err := config.Save(cfg); err != nil {
		fmt.Println("❌ Discovery URL verified but saving the config file failed.")
		return err
	}

	fmt.Printf("✅ Discovery URL verified and saved (current endpoint: %s)\n", addr)
	return nil
}

// verifyEndpoint sends an info command to the endpoint to prove it speaks the
// Fanline API before the address is saved.
func verifyEndpoint(ctx context.Context, addr string) error {
	startTime := time.Now()
	stopSpinner := startInlineSpinner(os.Stdout, "verifying connection", []string{"-", "\\", "|", "/"}, 100*time.Millisecond)

	ctxVerify, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cl := api.New(api.Config{Addr: addr, Key: resolveAPIKey()})
	_, err := cl.Info(ctxVerify)

	// Keep the spinner visible long enough to register
	if elapsed := time.Since(startTime); err == nil && elapsed < time.Second {
		time.Sleep(time.Second - elapsed)
	}
	stopSpinner()

	if err != nil {
		return httperrors.FormatNetworkError(err, fmt.Sprintf("connecting to %s", httperrors.ExtractHostFromURL(addr)))
	}
	return nil
}

func resolveAndVerify(ctx context.Context, discoveryURL string) (string, error) {
	stopSpinner := startInlineSpinner(os.Stdout, "resolving endpoint", []string{"-", "\\", "|", "/"}, 100*time.Millisecond)
	addr, err := resolveDiscovery(ctx, discoveryURL)
	stopSpinner()
	if err != nil {
		return "", httperrors.FormatNetworkError(err, "resolving the discovery URL")
	}
	if err := verifyEndpoint(ctx, addr); err != nil {
		return "", err
	}
	return addr, nil
}

func init() {
	rootCmd.AddCommand(connectCmd)
	connectCmd.Flags().StringVar(&connectDiscoveryURL, "discovery", "", "Configure a manifest discovery URL instead of a static endpoint")
}
