package scan

import (
	"cmp"
	"slices"
	"sync"
)

// Registry holds all registered scanners.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]Scanner
	byName map[string]Scanner
}

// NewRegistry creates an empty scanner registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]Scanner),
		byName: make(map[string]Scanner),
	}
}

// Register adds a scanner to the registry.
// If a scanner with the same ID already exists, it is replaced.
func (r *Registry) Register(scanner Scanner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byID[scanner.ID()]; ok {
		delete(r.byName, old.Name())
	}
	r.byID[scanner.ID()] = scanner
	r.byName[scanner.Name()] = scanner
}

// Get retrieves a scanner by ID or name.
// It tries ID first, then falls back to name lookup.
func (r *Registry) Get(key string) (Scanner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if scanner, ok := r.byID[key]; ok {
		return scanner, true
	}
	if scanner, ok := r.byName[key]; ok {
		return scanner, true
	}
	return nil, false
}

// GetByID retrieves a scanner by its ID only.
func (r *Registry) GetByID(id string) (Scanner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	scanner, ok := r.byID[id]
	return scanner, ok
}

// GetByName retrieves a scanner by its name only.
func (r *Registry) GetByName(name string) (Scanner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	scanner, ok := r.byName[name]
	return scanner, ok
}

// CanonicalID returns the scanner ID for an ID or name.
func (r *Registry) CanonicalID(key string) (string, bool) {
	scanner, ok := r.Get(key)
	if !ok {
		return "", false
	}
	return scanner.ID(), true
}

// Scanners returns all registered scanners sorted by ID.
func (r *Registry) Scanners() []Scanner {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Scanner, 0, len(r.byID))
	for _, scanner := range r.byID {
		result = append(result, scanner)
	}

	slices.SortFunc(result, func(a, b Scanner) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return result
}

// ForType returns the scanners for docType sorted by ID.
func (r *Registry) ForType(docType string) []Scanner {
	all := r.Scanners()
	out := all[:0]
	for _, scanner := range all {
		if scanner.DocumentType() == docType {
			out = append(out, scanner)
		}
	}
	return out
}

// IDs returns all registered scanner IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byID))
	for id := range r.byID {
		result = append(result, id)
	}

	slices.Sort(result)
	return result
}

// DefaultRegistry is the global registry for built-in scanners.
//
//nolint:gochecknoglobals // Global registry is intentional for scanner registration
var DefaultRegistry = NewRegistry()
