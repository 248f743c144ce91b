package cli

import (
	"fmt"
	"io"
)

const (
	msgCopied              = "Markdown copied!"
	msgCopiedFromSelection = "Markdown copied from selection!"
)

// notifier prints short status messages on stderr, standing in for the
// transient toast of a graphical client.
type notifier struct {
	out   io.Writer
	quiet bool
}

func (n notifier) Notify(msg string) {
	if n.quiet || n.out == nil {
		return
	}
	fmt.Fprintln(n.out, msg)
}
