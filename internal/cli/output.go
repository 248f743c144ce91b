package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeClipsTable(out io.Writer, clips []Clip, wide bool) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if wide {
		fmt.Fprintln(tw, "ID\tCREATED\tMODE\tENGINE\tSOURCE\tTARGET\tMARKDOWN")
		for _, c := range clips {
			fmt.Fprintf(
				tw,
				"%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				c.ID,
				formatDate(c.CreatedAt),
				c.Mode,
				c.Engine,
				compactText(c.Source, 48),
				compactText(fallback(c.Target, "-"), 32),
				compactText(oneLine(c.Markdown), 90),
			)
		}
	} else {
		fmt.Fprintln(tw, "ID\tCREATED\tMODE\tSOURCE\tMARKDOWN")
		for _, c := range clips {
			fmt.Fprintf(
				tw,
				"%d\t%s\t%s\t%s\t%s\n",
				c.ID,
				humanAgo(c.CreatedAt),
				c.Mode,
				compactText(c.Source, 40),
				compactText(oneLine(c.Markdown), 60),
			)
		}
	}
	_ = tw.Flush()
}

func oneLine(v string) string {
	v = strings.ReplaceAll(v, "\n", " ")
	v = strings.ReplaceAll(v, "\r", " ")
	return strings.TrimSpace(v)
}
