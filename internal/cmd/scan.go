package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/dirtally/internal/config"
	"github.com/harrison/dirtally/internal/display"
	"github.com/harrison/dirtally/internal/history"
	"github.com/harrison/dirtally/internal/logger"
	"github.com/harrison/dirtally/internal/models"
	"github.com/harrison/dirtally/internal/report"
	"github.com/harrison/dirtally/internal/walker"
)

// maxWarningPaths caps the affected paths listed after a scan.
const maxWarningPaths = 10

// NewScanCommand creates the 'dirtally scan' command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [directory]",
		Short: "Walk a directory tree and report what it contains",
		Long: `Walk a directory tree and count its entries by type and extension.

Every directory is entered at most once, so symlink loops and directories
reachable through several links are not counted twice. Unreadable
directories and files are logged and skipped.

Without a directory argument, scan asks for one interactively.

Configuration is loaded from $DIRTALLY_HOME/config.yaml (default:
./.dirtally/config.yaml) if present. CLI flags override configuration
file settings.

Examples:
  dirtally scan ~/projects
  dirtally scan --format json --report-dir ./out /var/data
  dirtally scan --no-history --no-report .`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}

	cmd.Flags().String("format", "", fmt.Sprintf("Report format (%s)", strings.Join(report.Formats, ", ")))
	cmd.Flags().String("report-dir", "", "Directory for saved reports")
	cmd.Flags().String("log-dir", "", "Directory for run log files")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().Bool("no-history", false, "Do not record this scan in the run history")
	cmd.Flags().Bool("no-report", false, "Do not save a report file")

	return cmd
}

// runScan implements the scan command logic
func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mergeScanFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	colored := colorEnabled(out)

	var root string
	if len(args) == 1 {
		root = args[0]
	} else {
		root, err = PromptForDirectory(newPathReader(cmd.InOrStdin()), out)
		if err != nil {
			return err
		}
	}

	fileLog, err := logger.NewFileLoggerWithLevel(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open run log: %w", err)
	}
	defer fileLog.Close()
	log := logger.NewMultiLogger(logger.NewConsoleLogger(errOut, cfg.LogLevel), fileLog)

	display.ScanStarted(out, root)
	result, err := walker.New(log).Walk(cmd.Context(), root)
	if err != nil {
		log.LogError(err.Error())
		return err
	}
	log.LogInfo(fmt.Sprintf("Walk of %s finished: %d entries, %d issues",
		result.Root, result.Aggregator.Total(), len(result.Issues)))

	data := report.FromAggregator(result.Aggregator)
	display.ScanFinished(out, result.FinishedAt.Sub(result.StartedAt))

	var reportPath string
	noReport, _ := cmd.Flags().GetBool("no-report")
	if !noReport {
		reportPath, err = report.Save(cfg.Report.Dir, cfg.Report.Format, data, result.FinishedAt)
		if err != nil {
			log.LogError(fmt.Sprintf("Could not save report: %v", err))
			return fmt.Errorf("failed to save report: %w", err)
		}
		log.LogInfo(fmt.Sprintf("Report saved to %s", reportPath))
		display.ReportSaved(out, reportPath, colored)
	}

	if cfg.History.Enabled {
		id, err := recordScan(cmd, cfg, result, data, reportPath)
		if err != nil {
			log.LogError(fmt.Sprintf("Could not record run: %v", err))
			return err
		}
		display.RunRecorded(out, id)
	}

	fmt.Fprintln(out)
	display.CountDetails(out, data, colored)

	if w, ok := display.IssuesWarning(result.Issues, maxWarningPaths); ok {
		fmt.Fprintln(out)
		w.Render(out, colored)
	}

	return nil
}

// mergeScanFlags copies explicitly set flags over cfg.
func mergeScanFlags(cmd *cobra.Command, cfg *config.Config) {
	var logLevel, logDir, reportDir, format *string
	var historyEnabled *bool

	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevel = &v
	}
	if cmd.Flags().Changed("log-dir") {
		v, _ := cmd.Flags().GetString("log-dir")
		logDir = &v
	}
	if cmd.Flags().Changed("report-dir") {
		v, _ := cmd.Flags().GetString("report-dir")
		reportDir = &v
	}
	if cmd.Flags().Changed("format") {
		v, _ := cmd.Flags().GetString("format")
		format = &v
	}
	if cmd.Flags().Changed("no-history") {
		noHistory, _ := cmd.Flags().GetBool("no-history")
		enabled := !noHistory
		historyEnabled = &enabled
	}

	cfg.MergeWithFlags(logLevel, logDir, reportDir, format, historyEnabled)
}

// recordScan stores the finished scan in the history database.
func recordScan(cmd *cobra.Command, cfg *config.Config, result *walker.Result, data *models.ReportData, reportPath string) (string, error) {
	store, err := history.Open(cmd.Context(), cfg.History.DBPath)
	if err != nil {
		return "", fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	issues := make(map[string]int)
	for kind, n := range walker.CountIssues(result.Issues) {
		issues[kind.String()] = n
	}

	run := &history.Run{
		Root:       result.Root,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
		Counters:   result.Aggregator.Counters(),
		Total:      data.Total,
		Files:      len(data.Files),
		IssueCount: len(result.Issues),
		Extensions: data.Extensions,
		Issues:     issues,
	}
	if reportPath != "" {
		run.ReportPath = reportPath
		run.ReportFormat = cfg.Report.Format
		if run.ReportFormat == "" {
			run.ReportFormat = report.FormatCSV
		}
	}

	id, err := store.RecordRun(cmd.Context(), run)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return id, nil
}
