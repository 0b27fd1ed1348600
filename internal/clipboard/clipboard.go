// Package clipboard is a thin wrapper around the system clipboard used
// by selection copy, path yanking and bundle export.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"
)

// ErrUnavailable indicates no clipboard utility was found.
var ErrUnavailable = errors.New("clipboard unavailable - install xclip, xsel, or wl-clipboard")

// IsAvailable returns true if clipboard operations are supported.
func IsAvailable() bool {
	return !clipboard.Unsupported
}

// Write copies text to the system clipboard. Any ANSI styling is
// stripped first so styled preview rows paste as plain text.
func Write(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(ansi.Strip(text))
}
