// Package clipboard writes text to the user's clipboard, falling back to an
// OSC 52 terminal escape when no system clipboard is reachable.
package clipboard

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
)

var ErrUnavailable = errors.New("clipboard unavailable")

// Mechanism copies text by one specific means.
type Mechanism func(text string) error

type Writer struct {
	primary  Mechanism
	fallback Mechanism
}

// New returns a Writer using the system clipboard, then OSC 52 on term.
func New(term *os.File) *Writer {
	return NewWithMechanisms(System, OSC52(term))
}

func NewWithMechanisms(primary, fallback Mechanism) *Writer {
	return &Writer{primary: primary, fallback: fallback}
}

// Copy tries the primary mechanism and then the fallback. The returned error
// wraps ErrUnavailable and both causes when neither succeeded.
func (w *Writer) Copy(text string) error {
	primaryErr := w.primary(text)
	if primaryErr == nil {
		return nil
	}
	if w.fallback == nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, primaryErr)
	}
	fallbackErr := w.fallback(text)
	if fallbackErr == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(primaryErr, fallbackErr))
}

func System(text string) error {
	if clipboard.Unsupported {
		return errors.New("system clipboard not supported on this platform")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("system clipboard: %w", err)
	}
	return nil
}

// OSC52 asks the terminal emulator to set the clipboard. It refuses to write
// escape sequences to anything that is not a terminal.
func OSC52(term *os.File) Mechanism {
	return func(text string) error {
		if term == nil || !(isatty.IsTerminal(term.Fd()) || isatty.IsCygwinTerminal(term.Fd())) {
			return errors.New("osc52: output is not a terminal")
		}
		return WriteOSC52(term, text)
	}
}

func WriteOSC52(w io.Writer, text string) error {
	_, err := fmt.Fprintf(w, "\x1b]52;c;%s\a", base64.StdEncoding.EncodeToString([]byte(text)))
	if err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}
