package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/odysseus0/mdcopy/internal/clipboard"
	"github.com/odysseus0/mdcopy/internal/config"
	"github.com/odysseus0/mdcopy/internal/convert"
	"github.com/spf13/cobra"
)

// Execute loads configuration and runs the command tree against os.Args.
func Execute() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	return NewRootCmd(cfg).Execute()
}

func NewRootCmd(cfg config.Config) *cobra.Command {
	return newRootCmd(cfg, clipboard.New(os.Stderr))
}

func newRootCmd(cfg config.Config, clip copier) *cobra.Command {
	var dbPath string
	var output string
	var engine string
	var quiet bool
	var outFmt OutputFormat
	var app *App

	dbPath = cfg.DBPath
	output = string(OutputTable)
	engine = cfg.Engine
	quiet = cfg.Quiet

	getApp := func() *App { return app }
	getOutput := func() OutputFormat { return outFmt }

	cmd := &cobra.Command{
		Use:           "mdcopy",
		Short:         "Convert web pages and selected elements to Markdown",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			parsedFmt, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			outFmt = parsedFmt
			parsedEngine, err := convert.ParseEngine(engine)
			if err != nil {
				return err
			}
			if !requiresApp(cmd) {
				return nil
			}
			if app != nil {
				return nil
			}
			runCfg := cfg
			runCfg.Quiet = quiet
			a, err := NewApp(runCfg, dbPath, parsedEngine, cmd.InOrStdin(), clip)
			if err != nil {
				return err
			}
			app = a
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				_ = app.Close()
				app = nil
			}
		},
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", dbPath, "SQLite history database path")
	cmd.PersistentFlags().StringVarP(&output, "output", "o", output, "Output format: table, json, wide")
	cmd.PersistentFlags().StringVar(&engine, "engine", engine, "Conversion engine: minimal, commonmark")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", quiet, "Suppress notifications")

	cmd.AddCommand(newConvertCmd(getApp, getOutput))
	cmd.AddCommand(newPickCmd(getApp, getOutput))
	cmd.AddCommand(newHistoryCmd(getApp, getOutput))

	return cmd
}

func parseOutputFormat(raw string) (OutputFormat, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch OutputFormat(s) {
	case OutputTable, OutputJSON, OutputWide:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("invalid output format %q (expected table|json|wide)", raw)
	}
}

func requiresApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		name := c.Name()
		if name == "help" || name == "completion" {
			return false
		}
	}
	return true
}
