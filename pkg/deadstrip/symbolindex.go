package deadstrip

import "github.com/objstrip/deadstrip/pkg/utils"

// SymbolIndex maps a normalized symbol name to the section node it was
// registered under. A second registration under an already-present key is
// a no-op: the first-inserted node wins. Duplicate symbols across object
// files at this stage indicate weak/linkonce sections, and the analysis
// only needs a representative one for reachability.
type SymbolIndex struct {
	entries map[string]NodeID
}

// NewSymbolIndex returns an empty index sized for sizeHint entries.
func NewSymbolIndex(sizeHint int) *SymbolIndex {
	return &SymbolIndex{entries: make(map[string]NodeID, sizeHint)}
}

// Get returns the node registered under key, if any.
func (s *SymbolIndex) Get(key string) (NodeID, bool) {
	id, ok := s.entries[key]
	return id, ok
}

// Set registers id under key unless key is already present.
func (s *SymbolIndex) Set(id NodeID, key string) {
	if _, exists := s.entries[key]; exists {
		return
	}
	s.entries[key] = id
}

// Len returns the number of distinct keys registered.
func (s *SymbolIndex) Len() int {
	return len(s.entries)
}

// Keys returns every registered key, in no particular order.
func (s *SymbolIndex) Keys() []string {
	return utils.Keys(s.entries)
}
