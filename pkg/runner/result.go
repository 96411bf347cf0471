package runner

import (
	"github.com/yaklabco/docmodel/pkg/analyzer"
	"github.com/yaklabco/docmodel/pkg/feature"
	"github.com/yaklabco/docmodel/pkg/fsutil"
)

// FileOutcome is the analysis of one discovered file.
type FileOutcome struct {
	// Path is the absolute file path.
	Path string

	// Info describes the file as it was read. Nil if it could not be read.
	Info *fsutil.FileInfo

	// Result is the file's analysis. Nil if Error is set.
	Result *analyzer.FileResult

	// Error is set if the file could not be read or parsed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesScanned is the number of files analyzed successfully.
	FilesScanned int

	// FilesErrored is the number of files that could not be analyzed.
	FilesErrored int

	// Documents counts root and inline documents.
	Documents int

	// InlineDocuments counts the inline documents alone.
	InlineDocuments int

	// Features is the total number of features.
	Features int

	// FeaturesByKind counts features by every kind they answer to.
	FeaturesByKind map[string]int

	// Warnings is the number of warnings at or above the minimum severity.
	Warnings int

	// WarningsBySeverity maps severities to counts.
	WarningsBySeverity map[feature.Severity]int

	// ScannerErrors counts failed scanner invocations.
	ScannerErrors int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// MinSeverity is the lowest severity counted in Stats.
	MinSeverity feature.Severity
}

// HasErrors reports whether any error-severity warning was found.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.WarningsBySeverity[feature.SeverityError] > 0
}

// HasWarnings reports whether any warning was counted.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.Warnings > 0
}

// HasFailures reports whether any file or scanner failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || r.Stats.ScannerErrors > 0
}

// Close releases the documents of every file result.
func (r *Result) Close() {
	if r == nil {
		return
	}
	for _, f := range r.Files {
		if f.Result != nil {
			f.Result.Close()
		}
	}
}

func newStats() Stats {
	return Stats{
		FeaturesByKind:     make(map[string]int),
		WarningsBySeverity: make(map[feature.Severity]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	fr := outcome.Result
	if fr == nil {
		return
	}

	r.Stats.FilesScanned++
	r.Stats.Documents += len(fr.Documents)
	for _, doc := range fr.Documents {
		if doc.IsInline() {
			r.Stats.InlineDocuments++
		}
	}
	r.Stats.Features += len(fr.Features)
	for _, f := range fr.Features {
		for _, kind := range f.Kinds().Items() {
			r.Stats.FeaturesByKind[kind]++
		}
	}
	for _, w := range fr.AllWarnings(r.MinSeverity) {
		r.Stats.Warnings++
		r.Stats.WarningsBySeverity[w.Severity]++
	}
	r.Stats.ScannerErrors += len(fr.ScannerErrors)
}
