package tag

import (
	"strings"
	"sync"
)

// Tag is a registered gameplay tag identity.
// Tags are hierarchical: "State.Debuff.Stun" has parents "State.Debuff" and "State".
type Tag uint32

// None is the zero Tag. It is never issued by the registry.
const None Tag = 0

type registry struct {
	mu      sync.RWMutex
	byName  map[string]Tag
	names   []string // index = Tag
	parents [][]Tag  // index = Tag, ancestors nearest first
}

var defaultRegistry = &registry{
	byName:  make(map[string]Tag),
	names:   []string{""},
	parents: [][]Tag{nil},
}

// Get returns the Tag for name, registering it (and its ancestors) on first use.
// Empty name returns None.
func Get(name string) Tag {
	name = strings.TrimSpace(name)
	if name == "" {
		return None
	}

	defaultRegistry.mu.RLock()
	t, ok := defaultRegistry.byName[name]
	defaultRegistry.mu.RUnlock()
	if ok {
		return t
	}

	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	return defaultRegistry.register(name)
}

// Lookup returns the Tag for name without registering it.
func Lookup(name string) (Tag, bool) {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	t, ok := defaultRegistry.byName[name]
	return t, ok
}

// register must be called with mu held.
func (r *registry) register(name string) Tag {
	if t, ok := r.byName[name]; ok {
		return t
	}

	var parents []Tag
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		parent := r.register(name[:i])
		parents = append([]Tag{parent}, r.parents[parent]...)
	}

	t := Tag(len(r.names))
	r.byName[name] = t
	r.names = append(r.names, name)
	r.parents = append(r.parents, parents)
	return t
}

// Name returns the dotted name of t.
func (t Tag) Name() string {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	if int(t) >= len(defaultRegistry.names) {
		return ""
	}
	return defaultRegistry.names[t]
}

func (t Tag) String() string { return t.Name() }

// Parents returns the ancestors of t, nearest first.
func (t Tag) Parents() []Tag {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	if int(t) >= len(defaultRegistry.parents) {
		return nil
	}
	return defaultRegistry.parents[t]
}

// IsChildOf reports whether t equals other or descends from it.
func (t Tag) IsChildOf(other Tag) bool {
	if t == other {
		return true
	}
	for _, p := range t.Parents() {
		if p == other {
			return true
		}
	}
	return false
}
