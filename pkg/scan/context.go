package scan

import (
	"context"

	"github.com/yaklabco/docmodel/pkg/config"
	"github.com/yaklabco/docmodel/pkg/document"
)

// Context provides everything a scanner needs to scan one document.
//
// Context stores context.Context as a field (Ctx) because it is a
// short-lived parameter object created per scanner invocation.
type Context struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// Document is the document being scanned. Scanners type-assert it to
	// the concrete document of their DocumentType.
	Document document.Document

	// Config is the resolved configuration.
	Config *config.Config

	// ScannerConfig is the scanner-specific configuration (may be nil).
	ScannerConfig *config.ScannerConfig
}

// NewContext creates a Context for the given document and configuration.
func NewContext(
	ctx context.Context,
	doc document.Document,
	cfg *config.Config,
	scannerCfg *config.ScannerConfig,
) *Context {
	return &Context{
		Ctx:           ctx,
		Document:      doc,
		Config:        cfg,
		ScannerConfig: scannerCfg,
	}
}

// Cancelled returns true if the context has been cancelled.
func (sc *Context) Cancelled() bool {
	select {
	case <-sc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Option returns a scanner-specific option value, or the default if not set.
func (sc *Context) Option(key string, defaultValue any) any {
	if sc.ScannerConfig == nil || sc.ScannerConfig.Options == nil {
		return defaultValue
	}
	if v, ok := sc.ScannerConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionInt returns a scanner-specific integer option, or the default.
func (sc *Context) OptionInt(key string, defaultValue int) int {
	switch val := sc.Option(key, defaultValue).(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// OptionString returns a scanner-specific string option, or the default.
func (sc *Context) OptionString(key string, defaultValue string) string {
	if s, ok := sc.Option(key, defaultValue).(string); ok {
		return s
	}
	return defaultValue
}

// OptionBool returns a scanner-specific boolean option, or the default.
func (sc *Context) OptionBool(key string, defaultValue bool) bool {
	if b, ok := sc.Option(key, defaultValue).(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a scanner-specific string slice option, or the default.
func (sc *Context) OptionStringSlice(key string, defaultValue []string) []string {
	v := sc.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	// YAML and TOML decode lists as []any.
	if iface, ok := v.([]any); ok {
		result := make([]string, 0, len(iface))
		for _, item := range iface {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
