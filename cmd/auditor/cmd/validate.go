package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/flightschool/auditor/internal/config"
	"github.com/flightschool/auditor/internal/dataset"
	"github.com/flightschool/auditor/internal/errors"
	"github.com/flightschool/auditor/internal/ui"
)

func newValidateCmd(g *globalOptions) *cobra.Command {
	var (
		jsonOutput bool
		noColor    bool
	)

	cmd := &cobra.Command{
		Use:   "validate dataset",
		Short: "Check that a dataset directory loads",
		Long: `Parse every file in a dataset directory on its own and report PASS or
FAIL per file with its row count, then check the references between files
(lesson students, instructors and airplanes).

Every broken file is reported at once, unlike an audit run which stops at
the first one. Exits non-zero if anything fails.`,
		Example: `  auditor validate ./data/2017-01
  auditor validate ./data/2017-01 --json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, g, args[0], jsonOutput, noColor)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

func runValidate(cmd *cobra.Command, g *globalOptions, dir string, jsonOutput, noColor bool) error {
	cfg, err := config.Load(dir, "")
	if err != nil {
		return err
	}
	stopLogging, err := startLogging(cfg, g.debug)
	if err != nil {
		return err
	}
	defer stopLogging()

	files, crossErr := dataset.Inspect(dir)
	if files == nil && crossErr != nil {
		// The directory itself is unusable.
		if jsonOutput {
			if data, err := errors.FormatJSON(crossErr); err == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			}
		}
		return crossErr
	}

	res := ui.ValidationResult{Dir: dir, Files: files, CrossErr: crossErr}
	out := cmd.OutOrStdout()
	renderer := ui.NewValidationRenderer(out, noColor || !ui.UseColor(out))
	if jsonOutput {
		if err := renderer.RenderJSON(res); err != nil {
			return errors.InternalError("failed to encode validation result", err)
		}
	} else {
		renderer.Render(res)
	}

	failed := 0
	for _, f := range files {
		if !f.OK() {
			failed++
		}
	}
	slog.Info("dataset validated",
		slog.String("dataset", dir),
		slog.Int("failed_files", failed),
		slog.Bool("ok", res.OK()))

	if res.OK() {
		return nil
	}
	if crossErr != nil {
		return crossErr
	}
	for _, f := range files {
		if !f.OK() {
			return errors.New(errors.GetCode(f.Err), "dataset validation failed", f.Err).
				WithDetail("failed_files", strconv.Itoa(failed)).
				WithSuggestion("Fix the files marked FAIL above")
		}
	}
	return nil
}
