package presets

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Store holds definitions by name. It is safe for concurrent use; the
// latest registration for a name wins.
type Store struct {
	mu          sync.RWMutex
	definitions map[string]Definition
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{definitions: make(map[string]Definition)}
}

// Register validates def and adds or replaces it.
func (s *Store) Register(def Definition) error {
	if s == nil {
		return fmt.Errorf("presets: store is nil")
	}
	def.Name = strings.TrimSpace(def.Name)
	if err := def.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.definitions == nil {
		s.definitions = make(map[string]Definition)
	}
	s.definitions[def.Name] = def
	return nil
}

// Get returns the definition registered under name.
func (s *Store) Get(name string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.definitions[strings.TrimSpace(name)]
	return def, ok
}

// Names lists registered names in lexical order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	names := make([]string, 0, len(s.definitions))
	for name := range s.definitions {
		names = append(names, name)
	}
	s.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Definitions returns every definition ordered by name.
func (s *Store) Definitions() []Definition {
	names := s.Names()
	out := make([]Definition, 0, len(names))
	for _, name := range names {
		if def, ok := s.Get(name); ok {
			out = append(out, def)
		}
	}
	return out
}

// Len reports the number of definitions.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.definitions)
}

// Merge registers every definition of other, replacing same-named entries.
func (s *Store) Merge(other *Store) error {
	for _, def := range other.Definitions() {
		if err := s.Register(def); err != nil {
			return err
		}
	}
	return nil
}
