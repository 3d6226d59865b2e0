package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/HendryAvila/xmind-mcp/internal/xmind"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.xmind>",
	Short: "Print the topic outline of a generated .xmind file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := xmind.ReadFile(args[0])
		if err != nil {
			return err
		}
		return printOutline(cmd.OutOrStdout(), wb)
	},
}

// printOutline writes every sheet as an indented tree followed by its
// relationships.
func printOutline(w io.Writer, wb *xmind.Workbook) error {
	var b strings.Builder
	for _, sh := range wb.Sheets {
		titles := map[string]string{}
		xmind.Walk(sh.Root, func(t *xmind.Topic, depth int) bool {
			titles[t.ID] = t.Title
			b.WriteString(strings.Repeat("  ", depth))
			b.WriteString("- ")
			b.WriteString(t.Title)
			if len(t.Markers) > 0 {
				ids := make([]string, len(t.Markers))
				for i, m := range t.Markers {
					ids[i] = string(m)
				}
				fmt.Fprintf(&b, " [%s]", strings.Join(ids, ", "))
			}
			if len(t.Labels) > 0 {
				fmt.Fprintf(&b, " {%s}", strings.Join(t.Labels, ", "))
			}
			b.WriteString("\n")
			if t.Note != "" {
				fmt.Fprintf(&b, "%s  note: %s\n", strings.Repeat("  ", depth), t.Note)
			}
			return true
		})
		for _, r := range sh.Root.Relationships {
			fmt.Fprintf(&b, "%s --%s--> %s\n", titles[r.From], r.Title, titles[r.To])
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
