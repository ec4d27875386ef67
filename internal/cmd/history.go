package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/dirtally/internal/display"
	"github.com/harrison/dirtally/internal/history"
	"github.com/harrison/dirtally/internal/report"
)

// NewHistoryCommand creates the 'dirtally history' command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous scans",
		Long: `List previous scans from the run history database, newest first.

Use 'dirtally history show <id>' for the counts and extension tally of
one scan.`,
		Args: cobra.NoArgs,
		RunE: runHistoryList,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 = all)")
	cmd.AddCommand(newHistoryShowCommand())

	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the details of one recorded scan",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}
}

// openHistory opens the configured history database. ok is false when no
// database has been written yet.
func openHistory(cmd *cobra.Command) (store *history.Store, ok bool, err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, false, err
	}
	if _, err := os.Stat(cfg.History.DBPath); os.IsNotExist(err) {
		return nil, false, nil
	}

	store, err = history.Open(cmd.Context(), cfg.History.DBPath)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open history database: %w", err)
	}
	return store, true, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	output := cmd.OutOrStdout()
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return fmt.Errorf("--limit must not be negative, got %d", limit)
	}

	store, ok, err := openHistory(cmd)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(output, "No scans recorded yet.")
		return nil
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(output, "No scans recorded yet.")
		return nil
	}

	printRuns(output, runs)
	return nil
}

func printRuns(w io.Writer, runs []*history.Run) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tDURATION\tTOTAL\tFILES\tISSUES\tROOT")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Duration().Round(time.Millisecond),
			run.Total,
			run.Files,
			run.IssueCount,
			run.Root,
		)
	}
	tw.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	output := cmd.OutOrStdout()
	id := args[0]

	store, ok, err := openHistory(cmd)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", history.ErrRunNotFound, id)
	}
	defer store.Close()

	run, err := store.GetRun(cmd.Context(), id)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Run:      %s\n", run.ID)
	fmt.Fprintf(output, "Root:     %s\n", run.Root)
	fmt.Fprintf(output, "Started:  %s\n", run.StartedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(output, "Duration: %s\n", run.Duration().Round(time.Millisecond))
	if run.ReportPath != "" {
		fmt.Fprintf(output, "Report:   %s (%s)\n", run.ReportPath, run.ReportFormat)
	}
	fmt.Fprintln(output)

	tally := make(map[string]int, len(run.Extensions))
	for _, ext := range run.Extensions {
		tally[ext.Extension] = ext.Count
	}
	data := report.Summarize(run.Counters, nil, tally)
	colored := colorEnabled(output)
	display.CountDetails(output, data, colored)

	if len(data.Extensions) > 0 {
		fmt.Fprintln(output)
		tw := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "EXTENSION\tCOUNT")
		for _, ext := range data.Extensions {
			fmt.Fprintf(tw, "%s\t%d\n", ext.Extension, ext.Count)
		}
		tw.Flush()
	}

	if run.IssueCount > 0 {
		fmt.Fprintln(output)
		fmt.Fprintf(output, "Issues: %d\n", run.IssueCount)
		kinds := make([]string, 0, len(run.Issues))
		for kind := range run.Issues {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			fmt.Fprintf(output, "  %s: %d\n", kind, run.Issues[kind])
		}
	}

	return nil
}
