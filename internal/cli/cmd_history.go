package cli

import (
	"fmt"
	"strings"

	"github.com/odysseus0/mdcopy/internal/convert"
	"github.com/spf13/cobra"
)

func newHistoryCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse previously converted Markdown",
	}
	cmd.AddCommand(newHistoryListCmd(getApp, getOutput))
	cmd.AddCommand(newHistoryShowCmd(getApp, getOutput))
	cmd.AddCommand(newHistorySearchCmd(getApp, getOutput))
	cmd.AddCommand(newHistoryRemoveCmd(getApp, getOutput))
	return cmd
}

func newHistoryListCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var mode string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved clips, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			s, err := requireStore(app)
			if err != nil {
				return err
			}
			clips, err := s.ListClips(cmd.Context(), ClipListOptions{Mode: mode, Limit: limit})
			if err != nil {
				return fmt.Errorf("list clips: %w", err)
			}
			return printClips(cmd, getOutput(), clips)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "all", "Filter by mode: document, pointer, selection, all")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum clips to list")
	return cmd
}

func newHistoryShowCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved clip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			s, err := requireStore(app)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			clip, err := s.GetClip(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			body := clip.Markdown
			if asHTML {
				body, err = convert.Preview(clip.Markdown)
				if err != nil {
					return err
				}
			}
			switch getOutput() {
			case OutputJSON:
				return writeJSON(out, clip)
			case OutputWide:
				fmt.Fprintf(out, "ID: %d\n", clip.ID)
				fmt.Fprintf(out, "Source: %s\n", clip.Source)
				fmt.Fprintf(out, "Mode: %s\n", clip.Mode)
				fmt.Fprintf(out, "Target: %s\n", fallback(clip.Target, "-"))
				fmt.Fprintf(out, "Engine: %s\n", clip.Engine)
				fmt.Fprintf(out, "Created: %s\n", formatDate(clip.CreatedAt))
				fmt.Fprintln(out)
			}
			fmt.Fprint(out, body)
			if !strings.HasSuffix(body, "\n") {
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render the saved Markdown as HTML")
	return cmd
}

func newHistorySearchCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search saved clips",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			s, err := requireStore(app)
			if err != nil {
				return err
			}
			clips, err := s.SearchClips(cmd.Context(), SearchOptions{
				Query: strings.Join(args, " "),
				Limit: limit,
			})
			if err != nil {
				return fmt.Errorf("search clips: %w", err)
			}
			return printClips(cmd, getOutput(), clips)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum results")
	return cmd
}

func newHistoryRemoveCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a saved clip by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			s, err := requireStore(app)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := s.DeleteClip(cmd.Context(), id); err != nil {
				return err
			}
			if getOutput() == OutputJSON {
				return writeJSON(cmd.OutOrStdout(), RemoveClipResponse{RemovedClipID: id})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed clip %d\n", id)
			return nil
		},
	}
}

func printClips(cmd *cobra.Command, outFmt OutputFormat, clips []Clip) error {
	out := cmd.OutOrStdout()
	if outFmt == OutputJSON {
		return writeJSON(out, clips)
	}
	if len(clips) == 0 {
		fmt.Fprintln(out, "No clips.")
		return nil
	}
	writeClipsTable(out, clips, outFmt == OutputWide)
	return nil
}
