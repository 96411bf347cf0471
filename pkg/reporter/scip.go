package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"

	"github.com/yaklabco/docmodel/pkg/feature"
	"github.com/yaklabco/docmodel/pkg/runner"
	"github.com/yaklabco/docmodel/pkg/srcrange"
)

// scipScheme is the scheme of every symbol this reporter emits.
const scipScheme = "docmodel"

// SCIPReporter writes a SCIP index with one definition occurrence per
// feature identifier. Features of inline documents land in the document of
// the file that embeds them.
type SCIPReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewSCIPReporter creates a new SCIP reporter.
func NewSCIPReporter(opts Options) *SCIPReporter {
	return &SCIPReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SCIPReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	index, count, err := r.buildIndex(result)
	if err != nil {
		return 0, err
	}
	data, err := proto.Marshal(index)
	if err != nil {
		return 0, fmt.Errorf("marshal SCIP index: %w", err)
	}
	if _, err := r.bw.Write(data); err != nil {
		return 0, fmt.Errorf("write SCIP index: %w", err)
	}
	return count, nil
}

func (r *SCIPReporter) buildIndex(result *runner.Result) (*scip.Index, int, error) {
	root := r.opts.WorkingDir
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	index := &scip.Index{
		Metadata: &scip.Metadata{
			ToolInfo: &scip.ToolInfo{
				Name:    scipScheme,
				Version: r.opts.ToolVersion,
			},
			ProjectRoot:          "file://" + filepath.ToSlash(root),
			TextDocumentEncoding: scip.TextEncoding_UTF8,
		},
	}
	if result == nil {
		return index, 0, nil
	}

	var count int
	for _, file := range result.Files {
		if file.Result == nil || len(file.Result.Documents) == 0 {
			continue
		}
		doc, err := r.buildDocument(file)
		if err != nil {
			return nil, 0, err
		}
		index.Documents = append(index.Documents, doc)
		count += len(file.Result.Features)
	}
	return index, count, nil
}

func (r *SCIPReporter) buildDocument(file runner.FileOutcome) (*scip.Document, error) {
	fr := file.Result
	rel := relPath(r.opts.WorkingDir, file.Path)
	doc := &scip.Document{
		RelativePath: rel,
		Language:     scipLanguage(fr.Documents[0].Type()),
	}

	seen := make(map[string]bool)
	for _, f := range fr.Features {
		rng, err := scipRange(f.SourceRange())
		if err != nil {
			return nil, fmt.Errorf("encode range of %s in %s: %w", f.Name(), rel, err)
		}
		for _, id := range f.Identifiers().Items() {
			symbol := scipSymbol(rel, f.Kind(), id)
			doc.Occurrences = append(doc.Occurrences, &scip.Occurrence{
				Range:       rng,
				Symbol:      symbol,
				SymbolRoles: int32(scip.SymbolRole_Definition),
			})
			if seen[symbol] {
				continue
			}
			seen[symbol] = true
			doc.Symbols = append(doc.Symbols, &scip.SymbolInformation{
				Symbol:        symbol,
				DisplayName:   id,
				Kind:          scipKind(f.Kind()),
				Documentation: documentation(f),
			})
		}
	}
	return doc, nil
}

// scipRange encodes r as [line, col, endCol] on one line or
// [line, col, endLine, endCol] otherwise.
func scipRange(r srcrange.SourceRange) ([]int32, error) {
	values := []int{r.Start.Line, r.Start.Column, r.End.Line, r.End.Column}
	if r.Start.Line == r.End.Line {
		values = []int{r.Start.Line, r.Start.Column, r.End.Column}
	}
	out := make([]int32, len(values))
	for i, v := range values {
		n, err := safecast.Conv[int32](v)
		if err != nil {
			return nil, fmt.Errorf("convert position: %w", err)
		}
		out[i] = n
	}
	return out, nil
}

// scipSymbol builds a global symbol whose package is the file path.
func scipSymbol(relPath string, kind feature.Kind, id string) string {
	var descriptor string
	switch kind {
	case feature.KindFunction:
		descriptor = escapeDescriptor(id) + "()."
	case feature.KindElement:
		descriptor = escapeDescriptor(id) + "#"
	default:
		descriptor = escapeDescriptor(id) + "."
	}
	return fmt.Sprintf("%s . %s . %s", scipScheme, strings.ReplaceAll(relPath, " ", "  "), descriptor)
}

// escapeDescriptor backtick-quotes names that are not simple identifiers.
func escapeDescriptor(name string) string {
	for _, r := range name {
		if !isSimpleIdentifierRune(r) {
			return "`" + strings.ReplaceAll(name, "`", "``") + "`"
		}
	}
	return name
}

func isSimpleIdentifierRune(r rune) bool {
	return r == '_' || r == '+' || r == '-' || r == '$' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func scipKind(kind feature.Kind) scip.SymbolInformation_Kind {
	switch kind {
	case feature.KindFunction:
		return scip.SymbolInformation_Function
	case feature.KindElement:
		return scip.SymbolInformation_Class
	case feature.KindProperty:
		return scip.SymbolInformation_Property
	case feature.KindCustomProperty:
		return scip.SymbolInformation_Variable
	default:
		return scip.SymbolInformation_UnspecifiedKind
	}
}

func scipLanguage(docType string) string {
	switch docType {
	case "javascript":
		return "JavaScript"
	case "css":
		return "CSS"
	case "markdown":
		return "Markdown"
	default:
		return docType
	}
}

// documentation returns the feature's signature and description.
func documentation(f feature.Feature) []string {
	docs := []string{f.String()}
	type described interface{ Description() string }
	if d, ok := f.(described); ok && d.Description() != "" {
		docs = append(docs, d.Description())
	}
	return docs
}
