package cmd

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/flightschool/auditor/internal/config"
	"github.com/flightschool/auditor/internal/errors"
	"github.com/flightschool/auditor/internal/logging"
	"github.com/flightschool/auditor/internal/ui"
)

type logsOptions struct {
	lines   int
	level   string
	filter  string
	skipped bool
	noColor bool
	logFile string
}

func newLogsCmd() *cobra.Command {
	opts := logsOptions{}

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "View the audit log",
		Long: `Show the last entries of the auditor's JSON log file.

The log is written by runs with --debug, or when logging.file is set in
the config. Use --skipped to list the lessons an audit left out because
their day cycle, minimums or weather data was missing.`,
		Example: `  auditor logs
  auditor logs -n 200 --skipped
  auditor logs --level warn
  auditor logs --filter N123AB`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogs(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.lines, "lines", "n", 50, "Number of lines to show (0 for all)")
	cmd.Flags().StringVar(&opts.level, "level", "", "Minimum level (debug|info|warn|error)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Filter by pattern (regex)")
	cmd.Flags().BoolVar(&opts.skipped, "skipped", false, "Show only skipped lessons")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVar(&opts.logFile, "file", "", "Path to log file")

	return cmd
}

func runLogs(cmd *cobra.Command, opts logsOptions) error {
	explicit := opts.logFile
	if explicit == "" {
		if userCfg, err := config.LoadUserConfig(); err == nil && userCfg != nil {
			explicit = userCfg.Logging.File
		}
	}

	path, err := logging.FindLogFile(explicit)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidPath, err.Error(), nil).
			WithSuggestion("Run an audit with --debug to create the log")
	}

	var pattern *regexp.Regexp
	if opts.filter != "" {
		pattern, err = regexp.Compile(opts.filter)
		if err != nil {
			return errors.ValidationError("invalid filter pattern", err)
		}
	}

	out := cmd.OutOrStdout()
	viewer := logging.NewViewer(logging.ViewerConfig{
		Level:       opts.level,
		Pattern:     pattern,
		SkippedOnly: opts.skipped,
		NoColor:     opts.noColor || !ui.UseColor(out),
	}, out)

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Log file: %s\n---\n", path)

	entries, err := viewer.Tail(path, opts.lines)
	if err != nil {
		return errors.InternalError("failed to read log file", err)
	}
	viewer.Print(entries)
	return nil
}
