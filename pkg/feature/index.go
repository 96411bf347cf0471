package feature

import (
	"slices"
	"sync"
)

// Index is a queryable collection of features, keyed by each kind and each
// identifier the features declare. It is safe for concurrent use.
type Index struct {
	mu       sync.RWMutex
	features []Feature
	byKind   map[string][]Feature
	byID     map[string]map[string][]Feature
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		byKind: make(map[string][]Feature),
		byID:   make(map[string]map[string][]Feature),
	}
}

// Add indexes features.
func (idx *Index) Add(features ...Feature) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, f := range features {
		if f == nil {
			continue
		}
		idx.features = append(idx.features, f)
		for _, kind := range f.Kinds().items {
			idx.byKind[kind] = append(idx.byKind[kind], f)
			ids := idx.byID[kind]
			if ids == nil {
				ids = make(map[string][]Feature)
				idx.byID[kind] = ids
			}
			for _, id := range f.Identifiers().items {
				ids[id] = append(ids[id], f)
			}
		}
	}
}

// ByKind returns the features answering to kind, in insertion order.
func (idx *Index) ByKind(kind string) []Feature {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return slices.Clone(idx.byKind[kind])
}

// Get returns every feature of kind with identifier id, in insertion order.
func (idx *Index) Get(kind, id string) []Feature {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return slices.Clone(idx.byID[kind][id])
}

// Lookup returns the first feature of kind with identifier id.
func (idx *Index) Lookup(kind, id string) (Feature, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	matches := idx.byID[kind][id]
	if len(matches) == 0 {
		return nil, false
	}
	return matches[0], true
}

// Features returns every feature in insertion order.
func (idx *Index) Features() []Feature {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return slices.Clone(idx.features)
}

// Len returns the number of features.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.features)
}
