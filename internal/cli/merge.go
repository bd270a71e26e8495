package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gyaneshwarpardhi/inspector/internal/engine"
	"github.com/gyaneshwarpardhi/inspector/internal/event"
	"github.com/gyaneshwarpardhi/inspector/internal/projection"
)

var (
	mergeFormat   string
	mergeCategory string
	mergeFailed   bool
	mergeQuery    string
)

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringVarP(&mergeFormat, "format", "f", "text", "Output format (text|json)")
	mergeCmd.Flags().StringVar(&mergeCategory, "category", "", "Only show entries of this category")
	mergeCmd.Flags().BoolVar(&mergeFailed, "failed", false, "Only show failed entries")
	mergeCmd.Flags().StringVarP(&mergeQuery, "query", "q", "", "Only show entries whose name or type contains this text")
}

var mergeCmd = &cobra.Command{
	Use:   "merge <file.jsonl|->",
	Short: "Merge a recorded event stream into entries",
	Long:  "Reads a recorded stream (JSONL or a JSON array, \"-\" for stdin), pairs\nrequests with responses and prints one row per logical entry.",
	Args:  cobra.ExactArgs(1),
	RunE:  runMerge,
}

func runMerge(cmd *cobra.Command, args []string) error {
	events, err := readEvents(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	_, eng, err := newEngine(configPath)
	if err != nil {
		return err
	}

	v := eng.Inspect(events, projection.Filter{
		Category:   mergeCategory,
		FailedOnly: mergeFailed,
		Text:       mergeQuery,
	})
	return renderView(cmd.OutOrStdout(), v, mergeFormat)
}

func readEvents(path string, stdin io.Reader) ([]event.RawEvent, error) {
	if path == "-" {
		return event.ReadStream(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events: %w", err)
	}
	defer f.Close()
	events, err := event.ReadStream(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

func renderView(w io.Writer, v *engine.View, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "text", "":
		return renderTable(w, v)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}
}

func renderTable(w io.Writer, v *engine.View) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tTYPE\tCATEGORY\tNAME\tSTATUS\tDURATION\tSIZE")
	for _, r := range v.Rows {
		dur := projection.Placeholder
		if r.Duration != nil {
			dur = *r.Duration
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Time, r.Type, r.Category, r.Name, r.Status.Label, dur, r.Size)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	s := v.Summary
	_, err := fmt.Fprintf(w, "\n%d entries from %d events (%d failed, %d pending)\n", s.Total, v.Events, s.Failed, s.Pending)
	return err
}
