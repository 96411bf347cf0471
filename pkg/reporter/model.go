package reporter

import (
	"github.com/yaklabco/docmodel/pkg/feature"
	"github.com/yaklabco/docmodel/pkg/runner"
	"github.com/yaklabco/docmodel/pkg/srcrange"
)

// outputVersion is the version of the serialized report layout.
const outputVersion = "1.0.0"

// Output is the serialized form of a run, shared by the JSON and msgpack
// reporters.
type Output struct {
	Version string       `json:"version" msgpack:"version"`
	Files   []FileOutput `json:"files" msgpack:"files"`
	Summary Summary      `json:"summary" msgpack:"summary"`
}

// FileOutput represents a single file's results.
type FileOutput struct {
	Path      string            `json:"path" msgpack:"path"`
	Digest    string            `json:"digest,omitempty" msgpack:"digest,omitempty"`
	Error     string            `json:"error,omitempty" msgpack:"error,omitempty"`
	Documents []DocumentOutput  `json:"documents" msgpack:"documents"`
	Features  []FeatureOutput   `json:"features" msgpack:"features"`
	Warnings  []feature.Warning `json:"warnings" msgpack:"warnings"`
}

// DocumentOutput describes a root or inline document.
type DocumentOutput struct {
	Type        string               `json:"type" msgpack:"type"`
	Inline      bool                 `json:"inline" msgpack:"inline"`
	SourceRange srcrange.SourceRange `json:"sourceRange" msgpack:"sourceRange"`
}

// FeatureOutput is one resolved feature. Kind-specific fields are omitted
// when empty.
type FeatureOutput struct {
	Kind        string               `json:"kind" msgpack:"kind"`
	Kinds       []string             `json:"kinds" msgpack:"kinds"`
	Name        string               `json:"name" msgpack:"name"`
	Identifiers []string             `json:"identifiers" msgpack:"identifiers"`
	Scanner     string               `json:"scanner,omitempty" msgpack:"scanner,omitempty"`
	SourceRange srcrange.SourceRange `json:"sourceRange" msgpack:"sourceRange"`
	Description string               `json:"description,omitempty" msgpack:"description,omitempty"`
	Summary     string               `json:"summary,omitempty" msgpack:"summary,omitempty"`
	Privacy     string               `json:"privacy,omitempty" msgpack:"privacy,omitempty"`

	// Functions.
	Params []feature.Param  `json:"params,omitempty" msgpack:"params,omitempty"`
	Return *feature.Return `json:"return,omitempty" msgpack:"return,omitempty"`

	// Elements.
	TagName    string   `json:"tagName,omitempty" msgpack:"tagName,omitempty"`
	ClassName  string   `json:"className,omitempty" msgpack:"className,omitempty"`
	Properties []string `json:"properties,omitempty" msgpack:"properties,omitempty"`

	// Properties and custom properties.
	Type    string `json:"type,omitempty" msgpack:"type,omitempty"`
	Default string `json:"default,omitempty" msgpack:"default,omitempty"`
	Value   string `json:"value,omitempty" msgpack:"value,omitempty"`

	Warnings []feature.Warning `json:"warnings,omitempty" msgpack:"warnings,omitempty"`
}

// Summary contains aggregate statistics.
type Summary struct {
	FilesScanned    int            `json:"filesScanned" msgpack:"filesScanned"`
	FilesErrored    int            `json:"filesErrored" msgpack:"filesErrored"`
	Documents       int            `json:"documents" msgpack:"documents"`
	InlineDocuments int            `json:"inlineDocuments" msgpack:"inlineDocuments"`
	Features        int            `json:"features" msgpack:"features"`
	FeaturesByKind  map[string]int `json:"featuresByKind" msgpack:"featuresByKind"`
	Warnings        int            `json:"warnings" msgpack:"warnings"`
	BySeverity      map[string]int `json:"bySeverity" msgpack:"bySeverity"`
}

// buildOutput converts a run result. Warnings below the result's minimum
// severity are dropped.
func buildOutput(opts Options, result *runner.Result) *Output {
	output := &Output{
		Version: outputVersion,
		Files:   make([]FileOutput, 0),
		Summary: Summary{
			FeaturesByKind: make(map[string]int),
			BySeverity:     make(map[string]int),
		},
	}
	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary.FilesScanned = stats.FilesScanned
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.Documents = stats.Documents
	output.Summary.InlineDocuments = stats.InlineDocuments
	output.Summary.Features = stats.Features
	output.Summary.Warnings = stats.Warnings
	for kind, n := range stats.FeaturesByKind {
		output.Summary.FeaturesByKind[kind] = n
	}
	for sev, n := range stats.WarningsBySeverity {
		output.Summary.BySeverity[string(sev)] = n
	}

	output.Files = make([]FileOutput, 0, len(result.Files))
	for _, file := range result.Files {
		output.Files = append(output.Files, buildFile(opts, result.MinSeverity, file))
	}
	return output
}

func buildFile(opts Options, minSeverity feature.Severity, file runner.FileOutcome) FileOutput {
	out := FileOutput{
		Path:      relPath(opts.WorkingDir, file.Path),
		Documents: make([]DocumentOutput, 0),
		Features:  make([]FeatureOutput, 0),
		Warnings:  make([]feature.Warning, 0),
	}
	if file.Error != nil {
		out.Error = file.Error.Error()
		return out
	}
	fr := file.Result
	if fr == nil {
		return out
	}

	out.Digest = fr.Digest
	for _, doc := range fr.Documents {
		out.Documents = append(out.Documents, DocumentOutput{
			Type:        doc.Type(),
			Inline:      doc.IsInline(),
			SourceRange: doc.SourceRange(),
		})
	}
	for _, f := range fr.Features {
		fo := buildFeature(f, filterWarnings(f.Warnings(), minSeverity))
		fo.Scanner = scannerLabel(opts, fr.ScannerID(f))
		out.Features = append(out.Features, fo)
	}
	out.Warnings = append(out.Warnings, filterWarnings(fr.Warnings, minSeverity)...)
	return out
}

func buildFeature(f feature.Feature, warnings []feature.Warning) FeatureOutput {
	out := FeatureOutput{
		Kind:        string(f.Kind()),
		Kinds:       f.Kinds().Items(),
		Name:        f.Name(),
		Identifiers: f.Identifiers().Items(),
		SourceRange: f.SourceRange(),
		Warnings:    warnings,
	}

	switch f := f.(type) {
	case *feature.Function:
		out.Description = f.Description()
		out.Summary = f.Summary()
		out.Privacy = string(f.Privacy())
		out.Params = f.Params()
		if ret, ok := f.Return(); ok {
			out.Return = &ret
		}
	case *feature.Element:
		out.Description = f.Description()
		out.Summary = f.Summary()
		out.Privacy = string(f.Privacy())
		out.TagName = f.TagName()
		out.ClassName = f.ClassName()
		for _, p := range f.Properties() {
			out.Properties = append(out.Properties, p.Name())
		}
	case *feature.Property:
		out.Description = f.Description()
		out.Privacy = string(f.Privacy())
		out.Type = f.Type()
		out.Default = f.Default()
	case *feature.CustomProperty:
		out.Value = f.Value()
	}
	return out
}

func filterWarnings(warnings []feature.Warning, minSeverity feature.Severity) []feature.Warning {
	out := make([]feature.Warning, 0, len(warnings))
	for _, w := range warnings {
		if w.Severity.Rank() >= minSeverity.Rank() {
			out = append(out, w)
		}
	}
	return out
}
