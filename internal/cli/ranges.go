package cli

import (
	"bufio"
	"fmt"
	"io"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/spf13/cobra"

	"github.com/yaklabco/docmodel/pkg/analyzer"
	"github.com/yaklabco/docmodel/pkg/config"
	"github.com/yaklabco/docmodel/pkg/document"
	"github.com/yaklabco/docmodel/pkg/fsutil"
	"github.com/yaklabco/docmodel/pkg/markup"
	"github.com/yaklabco/docmodel/pkg/mdast"
	"github.com/yaklabco/docmodel/pkg/scan"
	"github.com/yaklabco/docmodel/pkg/script"
	"github.com/yaklabco/docmodel/pkg/srcrange"
	"github.com/yaklabco/docmodel/pkg/style"
)

func newRangesCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "ranges <file>",
		Short: "Print the source range of every syntax node",
		Long: `Print each document parsed from a file, followed by the type and absolute
source range of every node in it. Embedded documents are listed after the
file's own document, with ranges in the coordinates of the file.

Positions are printed as 1-based line:column.`,
		Args: exactFileArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRanges(cmd, args[0], all)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include anonymous syntax nodes such as punctuation")

	return cmd
}

func runRanges(cmd *cobra.Command, path string, all bool) error {
	ctx := commandContext(cmd)

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, workDir, &config.Config{})
	if err != nil {
		return err
	}

	path = resolvePath(workDir, path)
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return err //nolint:wrapcheck // fsutil errors carry the path
	}

	docs, err := analyzer.New(cfg, scan.DefaultRegistry).Parse(ctx, path, content)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	defer closeDocuments(docs)

	bw := bufio.NewWriter(cmd.OutOrStdout())
	for _, doc := range docs {
		writeDocumentRanges(bw, doc, all)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func writeDocumentRanges(w io.Writer, doc document.Document, all bool) {
	fmt.Fprintf(w, "%s %s\n", document.Describe(doc), span(doc.SourceRange()))

	switch d := doc.(type) {
	case *markup.Document:
		writeNodeRanges(w, d, func(n *mdast.Node) (string, bool) {
			return n.Kind.String(), true
		})
	case *script.Document:
		writeNodeRanges(w, d, sitterLabel(all))
	case *style.Document:
		writeNodeRanges(w, d, sitterLabel(all))
	}
}

// nodeRanger is the part of document.Parsed that ranges needs.
type nodeRanger[N any] interface {
	ForEachNode(fn func(node N))
	SourceRangeForNode(node N) (srcrange.SourceRange, bool)
}

func writeNodeRanges[N any](w io.Writer, doc nodeRanger[N], label func(N) (string, bool)) {
	doc.ForEachNode(func(node N) {
		name, ok := label(node)
		if !ok {
			return
		}
		r, ok := doc.SourceRangeForNode(node)
		if !ok {
			fmt.Fprintf(w, "  %-28s (no range)\n", name)
			return
		}
		fmt.Fprintf(w, "  %-28s %s\n", name, span(r))
	})
}

func sitterLabel(all bool) func(*sitter.Node) (string, bool) {
	return func(n *sitter.Node) (string, bool) {
		if !all && !n.IsNamed() {
			return "", false
		}
		return n.Type(), true
	}
}

// span formats r without its file.
func span(r srcrange.SourceRange) string {
	return r.Start.String() + "-" + r.End.String()
}
