// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Fanline CLI application.
// It implements subcommands for publishing, channel management, and configuration
// using the Cobra CLI framework. The package handles command parsing, execution,
// and provides a rich terminal UI with spinners and progress indicators.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
// It serves as the entry point for the Fanline CLI application.
var rootCmd = &cobra.Command{
	Use:           "fanline",
	Short:         "Fanline CLI for managing channels on a Fanline server",
	Long:          `Fanline is a command-line tool for operating a Fanline real-time messaging server through its HTTP API: publishing messages, inspecting channels, and managing client connections.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("fanline %s\n", Version)

			// Server version is best effort, skipped when not configured
			cl, err := newAPIClient()
			if err == nil {
				if info, err := cl.Info(cmd.Context()); err == nil && len(info.Nodes) > 0 {
					fmt.Printf("server %s\n", info.Nodes[0].Version)
				}
			}
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI and server version information")
}
