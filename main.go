// Package main is the entry point for the Fanline CLI application.
// It provides management of a Fanline real-time messaging server through
// its HTTP API.
package main

import (
	"fanline/cli/cmd"
)

// main is the entry point for the Fanline CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
