// Package clip wraps the system clipboard behind a one-method interface
// so the TUI can be tested with a fake.
package clip

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Writer puts plain text on a clipboard.
type Writer interface {
	WriteText(text string) error
}

// System writes to the OS clipboard.
type System struct{}

func (System) WriteText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
