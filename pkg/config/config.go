// Package config defines core configuration types for docmodel.
// These types are pure data structures with no dependency on the loader.
package config

import (
	"path/filepath"
	"strings"
)

// Document types known to the analyzer.
const (
	TypeMarkdown   = "markdown"
	TypeJavaScript = "javascript"
	TypeCSS        = "css"
)

// ScannerConfig holds per-scanner configuration options.
type ScannerConfig struct {
	Enabled *bool          `mapstructure:"enabled" toml:"enabled,omitempty" yaml:"enabled,omitempty"`
	Options map[string]any `mapstructure:"options" toml:"options,omitempty" yaml:"options,omitempty"`
}

// OutputFormat specifies the output format for scan results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatMsgpack OutputFormat = "msgpack"
	FormatSCIP    OutputFormat = "scip"
)

// ValidFormats returns the accepted output formats.
func ValidFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatMsgpack, FormatSCIP}
}

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	for _, known := range ValidFormats() {
		if f == known {
			return true
		}
	}
	return false
}

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Config is the root configuration structure for docmodel.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `mapstructure:"flavor" toml:"flavor" yaml:"flavor"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" toml:"ignore,omitempty" yaml:"ignore,omitempty"`

	// Extensions maps file extensions, with their dot, to document types.
	Extensions map[string]string `mapstructure:"extensions" toml:"extensions,omitempty" yaml:"extensions,omitempty"`

	// DetectLanguage enables content detection for unlabeled code blocks.
	DetectLanguage bool `mapstructure:"detect_language" toml:"detect_language" yaml:"detect_language"`

	// Scanners contains per-scanner configuration keyed by scanner ID.
	Scanners map[string]ScannerConfig `mapstructure:"scanners" toml:"scanners,omitempty" yaml:"scanners,omitempty"`

	// MinSeverity drops warnings below this severity from the output.
	MinSeverity string `mapstructure:"min_severity" toml:"min_severity" yaml:"min_severity"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" toml:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" toml:"-" yaml:"-"`

	// EnableScanners contains scanner IDs to explicitly enable.
	EnableScanners []string `mapstructure:"-" toml:"-" yaml:"-"`

	// DisableScanners contains scanner IDs to explicitly disable.
	DisableScanners []string `mapstructure:"-" toml:"-" yaml:"-"`

	// Kinds limits the reported features to these kinds.
	Kinds []string `mapstructure:"-" toml:"-" yaml:"-"`
}

// DefaultExtensions returns the built-in extension to document type map.
func DefaultExtensions() map[string]string {
	return map[string]string{
		".md":       TypeMarkdown,
		".markdown": TypeMarkdown,
		".js":       TypeJavaScript,
		".mjs":      TypeJavaScript,
		".cjs":      TypeJavaScript,
		".css":      TypeCSS,
	}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:         FlavorGFM,
		Extensions:     DefaultExtensions(),
		DetectLanguage: true,
		Scanners:       make(map[string]ScannerConfig),
		MinSeverity:    "info",
		Format:         FormatText,
		Jobs:           0, // 0 means use GOMAXPROCS
	}
}

// DocumentType returns the document type for path by extension, or "" when
// the extension is not mapped.
func (c *Config) DocumentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if c != nil && c.Extensions != nil {
		return c.Extensions[ext]
	}
	return DefaultExtensions()[ext]
}

// ScannerEnabled reports the configured enablement of a scanner, if any.
func (c *Config) ScannerEnabled(id string) (bool, bool) {
	if c == nil {
		return false, false
	}
	sc, ok := c.Scanners[id]
	if !ok || sc.Enabled == nil {
		return false, false
	}
	return *sc.Enabled, true
}
