package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/HendryAvila/xmind-mcp/internal/xmind"
	"github.com/spf13/cobra"
)

var markersCmd = &cobra.Command{
	Use:   "markers",
	Short: "List the marker codes accepted in topic markers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printMarkers(cmd.OutOrStdout(), xmind.Markers(), jsonOutput)
	},
}

func printMarkers(w io.Writer, markers []xmind.MarkerEntry, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(markers)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tMARKER ID")
	for _, m := range markers {
		fmt.Fprintf(tw, "%s\t%s\n", m.Code, m.ID)
	}
	return tw.Flush()
}
