package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/docmodel/internal/ui/pretty"
	"github.com/yaklabco/docmodel/pkg/config"
	"github.com/yaklabco/docmodel/pkg/scan"
)

// defaultTermWidth is used when the terminal width cannot be determined.
const defaultTermWidth = 100

const formatJSON = "json"

type scannersFlags struct {
	format string
}

// scannerInfo represents a scanner in JSON output.
type scannerInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DocumentType string `json:"document_type"`
	Enabled      bool   `json:"enabled"`
	Description  string `json:"description"`
}

func newScannersCommand() *cobra.Command {
	flags := &scannersFlags{}

	cmd := &cobra.Command{
		Use:   "scanners",
		Short: "List available scanners",
		Long: `List all registered scanners with their IDs, names, the document type they
read, and whether the current configuration enables them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScanners(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func runScanners(cmd *cobra.Command, flags *scannersFlags) error {
	if flags.format != "text" && flags.format != formatJSON {
		return fmt.Errorf("%w: invalid format %q: must be text or json", ErrInvalidUsage, flags.format)
	}

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, workDir, &config.Config{})
	if err != nil {
		return err
	}

	infos := listScanners(scan.DefaultRegistry, cfg)

	out := cmd.OutOrStdout()
	if flags.format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(infos); err != nil {
			return fmt.Errorf("encoding scanners: %w", err)
		}
		return nil
	}

	headers := []string{"ID", "NAME", "TYPE", "ENABLED", "DESCRIPTION"}
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		enabled := "no"
		if info.Enabled {
			enabled = "yes"
		}
		rows = append(rows, []string{info.ID, info.Name, info.DocumentType, enabled, info.Description})
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
	table := pretty.NewTableFormatter(styles, terminalWidth())
	if _, err := fmt.Fprint(out, table.Format(headers, rows)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// listScanners describes every registered scanner under cfg.
func listScanners(registry *scan.Registry, cfg *config.Config) []scannerInfo {
	enabled := make(map[string]bool)
	for _, rs := range scan.ResolveScanners(registry, cfg) {
		enabled[rs.Scanner.ID()] = true
	}

	scanners := registry.Scanners()
	infos := make([]scannerInfo, 0, len(scanners))
	for _, s := range scanners {
		infos = append(infos, scannerInfo{
			ID:           s.ID(),
			Name:         s.Name(),
			DocumentType: s.DocumentType(),
			Enabled:      enabled[s.ID()],
			Description:  s.Description(),
		})
	}
	return infos
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}
