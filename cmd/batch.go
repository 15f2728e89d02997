// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"fanline/cli/internal/api"
	"fanline/cli/internal/httperrors"

	"atomicgo.dev/cursor"
	"github.com/spf13/cobra"
)

var (
	batchFile string
)

// batchCmd sends many commands to the server in a single request.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Send a batch of commands from stdin or a file",
	Long: `The batch command reads commands as JSON lines, one command per line, and
sends them to the server in a single request. Replies are reported in the
same order as the input lines.

Each line has the form:
  {"method": "publish", "params": {"channel": "news", "data": {"text": "hi"}}}

Example:
  cat commands.jsonl | fanline batch
  fanline batch --file commands.jsonl`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := io.Reader(os.Stdin)
		if batchFile != "" {
			f, err := os.Open(batchFile)
			if err != nil {
				return fmt.Errorf("failed to open batch file: %w", err)
			}
			defer f.Close()
			input = f
		}

		pipe, lines, err := readBatch(input)
		if err != nil {
			return err
		}
		if lines == 0 {
			return fmt.Errorf("no commands to send")
		}

		cl, err := newAPIClient()
		if err != nil {
			return err
		}

		cursor.Hide()
		defer cursor.Show()
		stopSpinner := startInlineSpinner(os.Stdout, fmt.Sprintf("sending %d command(s)", lines), []string{"|", "/", "-", "\\"}, 120*time.Millisecond)
		replies, err := cl.SendPipe(cmd.Context(), pipe)
		stopSpinner()
		if err != nil {
			return httperrors.FormatNetworkError(err, "sending the batch")
		}

		failed := 0
		for i, reply := range replies {
			if reply.Error != nil {
				failed++
				fmt.Printf("❌ command %d: %s (code %d)\n", i+1, reply.Error.Message, reply.Error.Code)
				continue
			}
			if len(reply.Result) > 0 && string(reply.Result) != "{}" {
				fmt.Printf("✅ command %d: %s\n", i+1, string(reply.Result))
			} else {
				fmt.Printf("✅ command %d: ok\n", i+1)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d commands failed", failed, len(replies))
		}
		fmt.Printf("✅ All %d command(s) succeeded\n", len(replies))
		return nil
	},
}

// readBatch parses JSON lines into a pipe, keeping input order. Blank lines
// and lines starting with # are skipped.
func readBatch(r io.Reader) (*api.Pipe, int, error) {
	pipe := &api.Pipe{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	count := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var cmd struct {
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
		}
		if err := json.Unmarshal([]byte(line), &cmd); err != nil {
			return nil, 0, fmt.Errorf("line %d: invalid command: %w", lineNo, err)
		}
		if cmd.Method == "" {
			return nil, 0, fmt.Errorf("line %d: command has no method", lineNo)
		}

		params := cmd.Params
		if len(params) == 0 {
			params = json.RawMessage("{}")
		}
		if err := pipe.Add(api.Command{Method: cmd.Method, Params: params}); err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", lineNo, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read batch input: %w", err)
	}
	return pipe, count, nil
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&batchFile, "file", "", "Read commands from a file instead of stdin")
}
