// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration fields.
	FieldFlavor = "flavor"
	FieldFormat = "format"
	FieldJobs   = "jobs"

	// Document fields.
	FieldDocument = "document"
	FieldType     = "type"
	FieldInline   = "inline"
	FieldDigest   = "digest"

	// Scanning fields.
	FieldScanner    = "scanner"
	FieldCandidates = "candidates"
	FieldFeatures   = "features"
	FieldWarnings   = "warnings"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesScanned    = "files_scanned"
	FieldFilesFailed     = "files_failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
