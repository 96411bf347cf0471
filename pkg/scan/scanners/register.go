// Package scanners provides the built-in feature scanners.
package scanners

import (
	"errors"

	"github.com/yaklabco/docmodel/pkg/scan"
)

// ErrUnexpectedDocument is returned when a scanner is handed a document of
// a type it does not understand.
var ErrUnexpectedDocument = errors.New("unexpected document type")

// RegisterAll registers all built-in scanners with the given registry.
func RegisterAll(registry *scan.Registry) {
	// JavaScript
	registry.Register(NewFunctionsScanner()) // SCN001
	registry.Register(NewElementsScanner())  // SCN002

	// CSS
	registry.Register(NewCustomPropertiesScanner()) // SCN003
}

// init registers all built-in scanners with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic scanner registration
func init() {
	RegisterAll(scan.DefaultRegistry)
}
