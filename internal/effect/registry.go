package effect

import "fmt"

// Registry maps effect name → template.
// Filled by the definition loader; read-only afterwards.
type Registry struct {
	byName map[string]*Effect
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Effect)}
}

// Register adds e. Returns error on empty or duplicate name.
func (r *Registry) Register(e *Effect) error {
	if e == nil || e.Name == "" {
		return fmt.Errorf("effect without name")
	}
	if _, ok := r.byName[e.Name]; ok {
		return fmt.Errorf("duplicate effect %q", e.Name)
	}
	r.byName[e.Name] = e
	return nil
}

// Get returns the template by name.
func (r *Registry) Get(name string) (*Effect, error) {
	e, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown effect: %s", name)
	}
	return e, nil
}

// Len returns the number of registered templates.
func (r *Registry) Len() int { return len(r.byName) }
