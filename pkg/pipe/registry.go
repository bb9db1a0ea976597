package pipe

import (
	"sort"
	"strings"
	"sync"
)

// Registry resolves pipes by name so configuration files can reference them.
// The latest registration for a name wins.
type Registry struct {
	mu    sync.RWMutex
	pipes map[string]Pipe
}

// NewRegistry constructs a registry with the built-in pipes registered.
func NewRegistry() *Registry {
	reg := &Registry{pipes: make(map[string]Pipe)}
	reg.Register(NameUpper, UpperCase())
	reg.Register(NameLower, LowerCase())
	return reg
}

// Register adds or replaces a named pipe. Empty names and nil pipes are
// ignored.
func (r *Registry) Register(name string, p Pipe) {
	if r == nil || p == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pipes == nil {
		r.pipes = make(map[string]Pipe)
	}
	r.pipes[trimmed] = p
}

// Lookup returns the pipe registered under name.
func (r *Registry) Lookup(name string) (Pipe, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pipes[strings.TrimSpace(name)]
	return p, ok
}

// Names lists registered pipe names in lexical order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	names := make([]string, 0, len(r.pipes))
	for name := range r.pipes {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
