// Package terminal provides utilities for terminal operations such as clearing text.
package terminal

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/term"
)

// ClearPreviousLines clears text from the terminal that was previously printed.
// It calculates how many lines the text occupied based on the current terminal
// width, then moves up and clears each one. Useful for removing a prompt after
// the user has entered sensitive input like an API key.
//
// textLength is the total number of characters printed (prompt plus input).
// One extra line is cleared to account for the newline produced by Enter.
func ClearPreviousLines(textLength int) {
	termWidth := 80 // fallback when not a terminal
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		termWidth = width
	}

	totalLines := int(math.Ceil(float64(textLength) / float64(termWidth)))
	if totalLines < 1 {
		totalLines = 1
	}

	linesToClear := totalLines + 1

	for i := 0; i < linesToClear; i++ {
		fmt.Print("\r\x1b[2K")
		if i < linesToClear-1 {
			fmt.Print("\x1b[1A")
		}
	}
}
