package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docmodel/internal/logging"
	"github.com/yaklabco/docmodel/pkg/config"
	"github.com/yaklabco/docmodel/pkg/fsutil"
	"github.com/yaklabco/docmodel/pkg/scan"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new docmodel configuration file",
		Long: `Create a new .docmodel.yml configuration file in the current directory
with the default settings. Edit it to map extensions, enable or disable
scanners, and set the lowest reported severity.

Examples:
  docmodel init                      Create a minimal .docmodel.yml
  docmodel init --full               Document every scanner in the file
  docmodel init --format toml        Create .docmodel.toml instead
  docmodel init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all scanners documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .docmodel.yml or .docmodel.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "toml" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or toml", ErrInvalidUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".docmodel.yml"
		if flags.format == "toml" {
			outputPath = ".docmodel.toml"
		}
	}

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}
	absPath := resolvePath(workDir, outputPath)

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:     flags.full,
		Format:   flags.format,
		Scanners: templateScanners(scan.DefaultRegistry),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(commandContext(cmd), absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("full template documents every scanner")
	}
	logger.Info("run 'docmodel scanners' to see all available scanners")

	return nil
}

func templateScanners(registry *scan.Registry) []config.ScannerInfo {
	scanners := registry.Scanners()
	infos := make([]config.ScannerInfo, 0, len(scanners))
	for _, s := range scanners {
		infos = append(infos, config.ScannerInfo{
			ID:           s.ID(),
			Name:         s.Name(),
			Description:  s.Description(),
			DocumentType: s.DocumentType(),
			Enabled:      s.DefaultEnabled(),
		})
	}
	return infos
}
