package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yaklabco/docmodel/internal/logging"
	"github.com/yaklabco/docmodel/pkg/analyzer"
	"github.com/yaklabco/docmodel/pkg/config"
	"github.com/yaklabco/docmodel/pkg/fsutil"
	"github.com/yaklabco/docmodel/pkg/reporter"
	"github.com/yaklabco/docmodel/pkg/runner"
	"github.com/yaklabco/docmodel/pkg/scan"
)

type scanFlags struct {
	format         string
	jobs           int
	ignore         []string
	enable         []string
	disable        []string
	kinds          []string
	output         string
	strict         bool
	noContext      bool
	noSummary      bool
	stats          bool
	compact        bool
	labelFormat    string
	followSymlinks bool
}

func newScanCommand(info BuildInfo) *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Scan files for features",
		Long:  scanLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, flags, info)
		},
	}

	addScanFlags(cmd, flags)

	return cmd
}

const scanLongDescription = `Scan JavaScript, CSS, and Markdown files for features.

By default, scans every file with a configured extension in the current
directory and its subdirectories. Script and style blocks embedded in
Markdown are scanned too, and their features are reported at their
position in the Markdown file.

Examples:
  docmodel scan                        # Scan current directory
  docmodel scan src/ README.md         # Scan a directory and a file
  docmodel scan --kind element         # Report only elements
  docmodel scan --format json          # Output as JSON
  docmodel scan --format scip -o index.scip
  docmodel scan --strict               # Fail on error-severity warnings`

func runScan(cmd *cobra.Command, args []string, flags *scanFlags, info BuildInfo) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}

	// Only flags the user set override the configuration files.
	flagCfg := &config.Config{
		Jobs:            flags.jobs,
		Ignore:          flags.ignore,
		EnableScanners:  flags.enable,
		DisableScanners: flags.disable,
		Kinds:           flags.kinds,
	}
	if cmd.Flags().Changed("format") {
		flagCfg.Format = config.OutputFormat(flags.format)
	}

	cfg, err := loadConfig(cmd, workDir, flagCfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	if format.IsBinary() && flags.output == "" && isTerminal(cmd.OutOrStdout()) {
		return fmt.Errorf("%w: refusing to write %s output to a terminal; use --output", ErrInvalidUsage, format)
	}

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           cfg.Jobs,
		Config:         cfg,
	}

	logger.Debug("starting scan",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(analyzer.New(cfg, scan.DefaultRegistry)).Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("scan failed"), err)
	}
	defer result.Close()

	var out io.Writer = cmd.OutOrStdout()
	var buf bytes.Buffer
	if flags.output != "" {
		out = &buf
	}

	rep, err := reporter.New(reporter.Options{
		Writer:          out,
		Format:          format,
		Color:           colorMode(cmd),
		ShowContext:     !flags.noContext,
		ShowSummary:     !flags.noSummary,
		DetailedSummary: flags.stats,
		Compact:         flags.compact,
		LabelFormat:     config.LabelFormat(flags.labelFormat),
		Registry:        scan.DefaultRegistry,
		WorkingDir:      workDir,
		ToolVersion:     info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	count, err := rep.Report(ctx, result)
	if err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if flags.output != "" {
		path := resolvePath(workDir, flags.output)
		if err := fsutil.WriteAtomic(ctx, path, buf.Bytes(), 0); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info("wrote report",
			logging.FieldOutput, flags.output,
			logging.FieldFormat, format,
			logging.FieldFeatures, count,
		)
	}

	for _, file := range result.Files {
		if file.Error != nil {
			logger.Debug("file failed", logging.FieldPath, file.Path, logging.FieldError, file.Error)
		}
	}

	switch ExitCodeFromResult(result, flags.strict) {
	case ExitFailures:
		return ErrFailures
	case ExitWarningsFound:
		return ErrWarningsFound
	default:
		return nil
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func addScanFlags(cmd *cobra.Command, flags *scanFlags) {
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format: text, json, msgpack, scip")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "scanner IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "scanner IDs or names to disable")
	cmd.Flags().StringSliceVar(&flags.kinds, "kind", nil,
		"report only features of these kinds: function, element, property, css-custom-property")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero when error-severity warnings are found")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary line")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "print a detailed summary with counts per kind and severity")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().StringVar(&flags.labelFormat, "label-format", "name",
		"scanner identifier format in output: name, id, or combined")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "traverse symlinked directories")
}
