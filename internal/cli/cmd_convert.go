package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/odysseus0/mdcopy/internal/model"
	"github.com/odysseus0/mdcopy/internal/selection"
	"github.com/odysseus0/mdcopy/internal/source"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

func newConvertCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var selector string
	var text string
	var item int
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "convert <source>",
		Short: "Convert a page, an element, or the element around some text to Markdown",
		Long: "Convert a page, an element, or the element around some text to Markdown.\n\n" +
			"<source> is a file path, an http(s) URL, or - for stdin. Without --selector\n" +
			"or --text the whole document body is converted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			if strings.TrimSpace(selector) != "" && text != "" {
				return fmt.Errorf("%w: --selector and --text are mutually exclusive", errInvalidFlag)
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

			var el *html.Node
			var mode model.Mode
			var target string
			msg := msgCopied
			switch {
			case strings.TrimSpace(selector) != "":
				el, err = selection.Pick(doc.Root, selector)
				if err != nil {
					return err
				}
				mode, target = model.ModePointer, selector
			case text != "":
				sel, err := selection.FindText(doc.Body, text)
				if err != nil {
					return err
				}
				el, err = selection.Resolve(sel)
				sel.RemoveAllRanges()
				if err != nil {
					return err
				}
				mode, target, msg = model.ModeSelection, text, msgCopiedFromSelection
			default:
				el, mode = doc.Body, model.ModeDocument
			}

			return deliver(ctx, cmd, app, getOutput(), delivery{
				source:    fallback(doc.URL, doc.Ref),
				mode:      mode,
				target:    target,
				element:   el,
				message:   msg,
				printOnly: printOnly,
			})
		},
	}

	cmd.Flags().StringVar(&selector, "selector", "", "CSS selector of the element to convert (pointer mode)")
	cmd.Flags().StringVar(&text, "text", "", "Convert the smallest element containing this text (selection mode)")
	cmd.Flags().IntVar(&item, "item", 0, "Treat the source as a feed and convert entry N (1-based)")
	cmd.Flags().BoolVar(&printOnly, "print", false, "Write Markdown to stdout instead of the clipboard")
	return cmd
}

var errInvalidFlag = errors.New("invalid flag")

type delivery struct {
	source    string
	mode      model.Mode
	target    string
	element   *html.Node
	message   string
	printOnly bool
}

// deliver converts the chosen element and hands the Markdown to the
// clipboard (or stdout), then records it in history when enabled.
func deliver(ctx context.Context, cmd *cobra.Command, app *App, outFmt OutputFormat, d delivery) error {
	md, err := app.renderer.RenderNode(d.element)
	if err != nil {
		return err
	}
	n := notifier{out: cmd.ErrOrStderr(), quiet: app.cfg.Quiet}
	stdout := cmd.OutOrStdout()

	result := ConvertResult{
		Source:   d.source,
		Mode:     d.mode,
		Target:   d.target,
		Element:  elementLabel(d.element),
		Engine:   string(app.renderer.Engine()),
		Markdown: md,
	}

	if d.printOnly {
		if outFmt != OutputJSON {
			if _, err := io.WriteString(stdout, md); err != nil {
				return err
			}
		}
	} else {
		if app.clipboard == nil {
			return fmt.Errorf("copy to clipboard: no clipboard configured")
		}
		if err := app.clipboard.Copy(md); err != nil {
			n.Notify("Copy failed: " + err.Error())
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		result.Copied = true
		n.Notify(d.message)
	}

	if app.store != nil {
		clip, err := app.store.SaveClip(ctx, model.SaveClipInput{
			Source:   d.source,
			Mode:     d.mode,
			Target:   d.target,
			Engine:   result.Engine,
			Markdown: md,
		})
		if err != nil {
			result.Warning = fmt.Sprintf("save history: %v", err)
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", result.Warning)
		} else {
			result.ClipID = clip.ID
		}
		if _, err := app.store.PruneOlderThan(ctx, app.cfg.RetentionDays); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: prune history: %v\n", err)
		}
	}

	switch outFmt {
	case OutputJSON:
		return writeJSON(stdout, result)
	case OutputWide:
		if !d.printOnly {
			fmt.Fprintf(stdout, "Copied %s from %s (%s, %s", result.Element, result.Source, result.Mode, result.Engine)
			if result.ClipID > 0 {
				fmt.Fprintf(stdout, ", clip %d", result.ClipID)
			}
			fmt.Fprintln(stdout, ")")
		}
	}
	return nil
}
