package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/docmodel/pkg/config"
	"github.com/yaklabco/docmodel/pkg/feature"
	"github.com/yaklabco/docmodel/pkg/scan"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "scanners.SCN001.enabled").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown scanners).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// knownFlavors lists valid flavor values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

// knownDocumentTypes lists the document types an extension may map to.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownDocumentTypes = map[string]bool{
	config.TypeMarkdown:   true,
	config.TypeJavaScript: true,
	config.TypeCSS:        true,
}

// Validate checks a configuration for errors and warnings. Scanner keys the
// registry does not know produce warnings; a nil registry skips that check.
func Validate(cfg *config.Config, registry *scan.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !knownFlavors[cfg.Flavor] {
		result.addError("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}

	if cfg.MinSeverity != "" {
		if _, ok := feature.ParseSeverity(cfg.MinSeverity); !ok {
			result.addError("min_severity", cfg.MinSeverity,
				"invalid severity %q; must be one of: error, warning, info", cfg.MinSeverity)
		}
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format, "invalid format %q; must be one of: %s", cfg.Format, formatList())
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	validateExtensions(cfg, result)
	validateIgnorePatterns(cfg, result)
	validateScanners(cfg, registry, result)

	return result
}

func formatList() string {
	names := make([]string, 0, len(config.ValidFormats()))
	for _, f := range config.ValidFormats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// validateExtensions checks that every mapped extension has a dot and a known type.
func validateExtensions(cfg *config.Config, result *ValidationResult) {
	for _, ext := range sortedKeys(cfg.Extensions) {
		docType := cfg.Extensions[ext]
		field := "extensions." + ext
		if !strings.HasPrefix(ext, ".") {
			result.addError(field, ext, "extension %q must start with a dot", ext)
		}
		if !knownDocumentTypes[docType] {
			result.addError(field, docType,
				"unknown document type %q; must be one of: markdown, javascript, css", docType)
		}
	}
}

// validateIgnorePatterns checks that ignore patterns compile.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// validateScanners warns about scanners the registry does not know.
func validateScanners(cfg *config.Config, registry *scan.Registry, result *ValidationResult) {
	if registry == nil {
		return
	}

	warnUnknown := func(field, key string) {
		if _, ok := registry.Get(key); !ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   key,
				Message: fmt.Sprintf("unknown scanner %q; it will be ignored", key),
			})
		}
	}

	for _, key := range sortedKeys(cfg.Scanners) {
		warnUnknown("scanners."+key, key)
	}
	for _, key := range cfg.EnableScanners {
		warnUnknown("enable", key)
	}
	for _, key := range cfg.DisableScanners {
		warnUnknown("disable", key)
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, registry *scan.Registry, filePath string) *ValidationResult {
	result := Validate(cfg, registry)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return knownFlavors[f]
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
