package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docmodel/internal/logging"
	"github.com/yaklabco/docmodel/pkg/analyzer"
	"github.com/yaklabco/docmodel/pkg/config"
	"github.com/yaklabco/docmodel/pkg/document"
	"github.com/yaklabco/docmodel/pkg/fsutil"
	"github.com/yaklabco/docmodel/pkg/scan"
	"github.com/yaklabco/docmodel/pkg/textedit"
)

type stringifyFlags struct {
	indent int
	write  bool
	diff   bool
}

func newStringifyCommand() *cobra.Command {
	flags := &stringifyFlags{}

	cmd := &cobra.Command{
		Use:   "stringify <file>",
		Short: "Parse a file and print it back",
		Long: `Parse a file and its embedded documents, then serialize it back to text
with each embedded document substituted at the place it was parsed from.

With --write the file is replaced atomically, and only if it did not change
on disk while docmodel was working on it.

Examples:
  docmodel stringify README.md
  docmodel stringify --indent 2 card.js
  docmodel stringify --write docs/guide.md
  docmodel stringify --diff --indent 2 card.js`,
		Args: exactFileArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStringify(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.indent, "indent", 0, "re-indent the output by this many spaces")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write the result back to the file")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a unified diff against the file instead of the result")

	return cmd
}

func runStringify(cmd *cobra.Command, path string, flags *stringifyFlags) error {
	if flags.indent < 0 {
		return fmt.Errorf("%w: --indent must be >= 0", ErrInvalidUsage)
	}
	if flags.write && flags.diff {
		return fmt.Errorf("%w: --write and --diff cannot be combined", ErrInvalidUsage)
	}

	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, workDir, &config.Config{})
	if err != nil {
		return err
	}

	path = resolvePath(workDir, path)
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return err //nolint:wrapcheck // fsutil errors carry the path
	}

	docs, err := analyzer.New(cfg, scan.DefaultRegistry).Parse(ctx, path, content)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	defer closeDocuments(docs)

	out, err := docs[0].Stringify(document.StringifyOptions{
		Indent:          flags.indent,
		InlineDocuments: docs[1:],
	})
	if err != nil {
		return fmt.Errorf("stringify %s: %w", path, err)
	}

	if flags.diff {
		diff, err := textedit.Unified(filepath.ToSlash(relPath(workDir, path)), string(content), out)
		if err != nil {
			return err //nolint:wrapcheck // already carries the path
		}
		if _, err := io.WriteString(cmd.OutOrStdout(), diff); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	if !flags.write {
		if _, err := io.WriteString(cmd.OutOrStdout(), out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	changed, err := fsutil.ReplaceIfUnmodified(ctx, info, []byte(out))
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if changed {
		logger.Info("rewrote file", logging.FieldPath, path)
	} else {
		logger.Debug("file unchanged", logging.FieldPath, path)
	}
	return nil
}

// closeDocuments releases the syntax trees of docs.
func closeDocuments(docs []document.Document) {
	for _, doc := range docs {
		if c, ok := doc.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
