package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/HendryAvila/xmind-mcp/internal/config"
	"github.com/HendryAvila/xmind-mcp/internal/history"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently generated mind maps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.History {
			return fmt.Errorf("history is disabled by %s", config.EnvHistory)
		}

		store, err := history.New(history.DefaultConfig(cfg.DataDir))
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		entries, err := store.Recent(historyLimit)
		if err != nil {
			return err
		}
		return printHistory(cmd.OutOrStdout(), entries, jsonOutput)
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
}

func printHistory(w io.Writer, entries []history.Entry, asJSON bool) error {
	if asJSON {
		if entries == nil {
			entries = []history.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No mind maps generated yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tTOPICS\tTITLE\tPATH")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", e.ID, e.CreatedAt, e.TopicCount, e.Title, e.Path)
	}
	return tw.Flush()
}
