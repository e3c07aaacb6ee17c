package output

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

// ============================================================================
// Clipboard Interface
// ============================================================================

// Clipboard defines the interface for clipboard operations
type Clipboard interface {
	Copy(text string) error
}

// systemClipboard implements Clipboard using the platform clipboard
type systemClipboard struct {
	fallback io.Writer
}

// Copy copies text to the system clipboard
func (c *systemClipboard) Copy(text string) error {
	if clipboard.Unsupported {
		// No clipboard tool found, just print
		_, err := io.WriteString(c.fallback, text)
		return err
	}
	return clipboard.WriteAll(text)
}

// ============================================================================
// Destination
// ============================================================================

// Mode represents where the rendered document goes
type Mode string

const (
	ModePrint Mode = "print"
	ModeFile  Mode = "file"
	ModeCopy  Mode = "copy"
)

// ParseMode validates a mode name
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModePrint, ModeFile, ModeCopy:
		return m, nil
	}
	return "", fmt.Errorf("unsupported output mode: %s (supported: print, file, copy)", s)
}

// Destination writes a finished document to stdout, a file or the clipboard
type Destination struct {
	mode      Mode
	path      string
	stdout    io.Writer
	clipboard Clipboard
}

// NewDestination creates a destination. path is only used by ModeFile.
func NewDestination(mode Mode, path string) *Destination {
	return &Destination{
		mode:      mode,
		path:      path,
		stdout:    os.Stdout,
		clipboard: &systemClipboard{fallback: os.Stdout},
	}
}

// WithClipboard sets a custom clipboard implementation (useful for testing)
func (d *Destination) WithClipboard(c Clipboard) *Destination {
	d.clipboard = c
	return d
}

// WithStdout sets the writer used by ModePrint
func (d *Destination) WithStdout(w io.Writer) *Destination {
	d.stdout = w
	return d
}

func (d *Destination) Mode() Mode {
	return d.mode
}

// Path returns the output file for ModeFile
func (d *Destination) Path() string {
	return d.path
}

// Check fails early when the destination cannot be written, so no work is
// done for a file that cannot be created.
func (d *Destination) Check() error {
	if d.mode != ModeFile {
		return nil
	}
	f, err := os.OpenFile(d.path, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("couldn't create file %s: %w", d.path, err)
	}
	return f.Close()
}

// Write delivers content according to the mode
func (d *Destination) Write(content string) error {
	switch d.mode {
	case ModeFile:
		if err := os.WriteFile(d.path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("couldn't create file %s: %w", d.path, err)
		}
		return nil
	case ModeCopy:
		return d.clipboard.Copy(content)
	default: // print
		_, err := io.WriteString(d.stdout, content)
		return err
	}
}
