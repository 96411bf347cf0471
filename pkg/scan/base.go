package scan

import "github.com/yaklabco/docmodel/pkg/feature"

// BaseScanner provides the metadata half of the Scanner interface.
// Embed this in scanner implementations and override methods as needed.
type BaseScanner struct {
	id      string
	name    string
	desc    string
	docType string
}

// NewBaseScanner creates a BaseScanner with the given properties.
func NewBaseScanner(id, name, desc, docType string) BaseScanner {
	return BaseScanner{
		id:      id,
		name:    name,
		desc:    desc,
		docType: docType,
	}
}

// ID returns the unique identifier for this scanner.
func (s *BaseScanner) ID() string {
	return s.id
}

// Name returns the human-readable name of the scanner.
func (s *BaseScanner) Name() string {
	return s.name
}

// Description returns a description of what the scanner finds.
func (s *BaseScanner) Description() string {
	return s.desc
}

// DocumentType returns the document type the scanner understands.
func (s *BaseScanner) DocumentType() string {
	return s.docType
}

// DefaultEnabled returns whether the scanner runs by default.
// Override this method to change the default.
func (s *BaseScanner) DefaultEnabled() bool {
	return true
}

// Scan must be overridden by concrete scanners.
// The default implementation finds nothing.
func (s *BaseScanner) Scan(_ *Context) ([]feature.Scanned, error) {
	return nil, nil
}
