package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/odysseus0/mdcopy/internal/markup"
	"github.com/odysseus0/mdcopy/internal/model"
	"github.com/odysseus0/mdcopy/internal/pick"
	"github.com/odysseus0/mdcopy/internal/source"
	"github.com/spf13/cobra"
)

const pickHelp = "j/n next, k/p previous, <number> jump, l list, enter/c choose, q/esc cancel"

func newPickCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var item int
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "pick <source>",
		Short: "Interactively choose an element and convert it to Markdown",
		Long: "Interactively choose an element and convert it to Markdown.\n\n" +
			"Commands are read line by line from stdin: " + pickHelp + ".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			if strings.TrimSpace(args[0]) == "-" {
				return fmt.Errorf("%w: pick reads commands from stdin; pass a file or URL", errInvalidFlag)
			}
			if item < 0 {
				return fmt.Errorf("%w: --item must be >= 1", errInvalidFlag)
			}

			ctx := cmd.Context()
			doc, err := app.loader.Load(ctx, args[0], source.Options{
				FeedItem:     item,
				StripScripts: app.cfg.StripScripts,
			})
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}

			n := notifier{out: cmd.ErrOrStderr(), quiet: app.cfg.Quiet}
			session := pick.NewSession(pick.Candidates(doc.Body), n.Notify)
			if session.Len() == 0 {
				return fmt.Errorf("%s: no element with text to pick", args[0])
			}
			if err := session.Start(); err != nil {
				return err
			}

			if err := runPickSession(session, cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
				return err
			}
			srcName := fallback(doc.URL, doc.Ref)
			if session.State() != pick.Done {
				if getOutput() == OutputJSON {
					return writeJSON(cmd.OutOrStdout(), PickCancelledResponse{Cancelled: true, Source: srcName})
				}
				return nil
			}

			el, err := session.Commit()
			if err != nil {
				return err
			}
			return deliver(ctx, cmd, app, getOutput(), delivery{
				source:    srcName,
				mode:      model.ModePointer,
				target:    elementLabel(el),
				element:   el,
				message:   msgCopied,
				printOnly: printOnly,
			})
		},
	}

	cmd.Flags().IntVar(&item, "item", 0, "Treat the source as a feed and pick within entry N (1-based)")
	cmd.Flags().BoolVar(&printOnly, "print", false, "Write Markdown to stdout instead of the clipboard")
	return cmd
}

// runPickSession feeds line commands into session until it is clicked,
// escaped, or input ends. End of input escapes.
func runPickSession(session *pick.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	showHighlight(session, out)
	for session.State() == pick.Selecting {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read pick input: %w", err)
			}
			return session.Escape()
		}
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		var err error
		switch line {
		case "", "c":
			err = session.Click()
		case "q", "esc", "\x1b":
			err = session.Escape()
		case "j", "n":
			err = session.Move(1)
		case "k", "p":
			err = session.Move(-1)
		case "l":
			listCandidates(session, out)
			continue
		case "?", "h", "help":
			fmt.Fprintln(out, pickHelp)
			continue
		default:
			i, convErr := strconv.Atoi(line)
			if convErr != nil {
				fmt.Fprintf(out, "unknown command %q (%s)\n", line, pickHelp)
				continue
			}
			err = session.Hover(i - 1)
		}
		if err != nil {
			fmt.Fprintf(out, "warning: %v\n", err)
			continue
		}
		if session.State() == pick.Selecting {
			showHighlight(session, out)
		}
	}
	return nil
}

func showHighlight(session *pick.Session, out io.Writer) {
	el, i := session.Highlighted()
	if el == nil {
		return
	}
	fmt.Fprintf(out, "[%d/%d] %s  %s\n", i+1, session.Len(), elementLabel(el), compactText(markup.TextContent(el), 60))
}

func listCandidates(session *pick.Session, out io.Writer) {
	_, current := session.Highlighted()
	for i := 0; i < session.Len(); i++ {
		el := session.Candidate(i)
		marker := " "
		if i == current {
			marker = ">"
		}
		fmt.Fprintf(out, "%s %3d  %s  %s\n", marker, i+1, elementLabel(el), compactText(markup.TextContent(el), 60))
	}
}
