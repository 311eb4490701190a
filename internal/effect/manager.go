package effect

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/udisondev/gascore/internal/tag"
)

// Manager tracks the effects living on one owner and the owner's attributes.
//
// Instant specs change base attribute values once. Duration and Infinite specs
// are tracked: their modifiers contribute to current values and their granted
// tags are held by the owner until the spec expires or is removed.
//
// Thread-safe: all methods are protected by sync.RWMutex.
type Manager struct {
	mu      sync.RWMutex
	ownerID uint32
	base    map[string]float64
	active  []*Spec
	granted *tag.Counter

	// modifiers from all tracked specs
	modifiers []Modifier
}

// NewManager creates an empty Manager for ownerID with the given base attributes.
func NewManager(ownerID uint32, base map[string]float64) *Manager {
	m := &Manager{
		ownerID:   ownerID,
		base:      make(map[string]float64, len(base)),
		active:    make([]*Spec, 0, 8),
		granted:   tag.NewCounter(),
		modifiers: make([]Modifier, 0, 16),
	}
	for k, v := range base {
		m.base[k] = v
	}
	return m
}

// Apply applies spec to the owner.
// Instant specs are executed and dropped; others are tracked.
// Returns false if spec is nil or already tracked.
func (m *Manager) Apply(spec *Spec) bool {
	if spec == nil {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if spec.active {
		return false
	}

	if spec.policy == Instant {
		for _, mod := range spec.Effect.Modifiers {
			m.base[mod.Attribute] = mod.apply(m.base[mod.Attribute])
		}
		slog.Debug("instant effect executed",
			"effect", spec.Effect.Name,
			"source", spec.SourceID,
			"target", m.ownerID)
		return true
	}

	spec.active = true
	m.active = append(m.active, spec)
	m.granted.AddSet(spec.Effect.GrantedTags)
	m.rebuildModifiers()

	slog.Debug("effect added",
		"effect", spec.Effect.Name,
		"policy", spec.policy,
		"source", spec.SourceID,
		"target", m.ownerID)
	return true
}

// Remove stops tracking spec.
// Returns false if spec is not tracked by this manager.
func (m *Manager) Remove(spec *Spec) bool {
	if spec == nil {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, s := range m.active {
		if s == spec {
			m.active = slices.Delete(m.active, i, i+1)
			m.detach(spec)
			m.rebuildModifiers()
			slog.Debug("effect removed", "effect", spec.Effect.Name, "target", m.ownerID)
			return true
		}
	}
	return false
}

// Tick decrements timers on tracked Duration specs and drops expired ones.
// Returns the number of expired specs.
func (m *Manager) Tick(dt time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	expired := 0
	n := 0
	for _, s := range m.active {
		if !s.Tick(dt) {
			m.detach(s)
			expired++
			continue
		}
		m.active[n] = s
		n++
	}
	clear(m.active[n:])
	m.active = m.active[:n]

	if expired > 0 {
		m.rebuildModifiers()
	}
	return expired
}

// Remaining returns the longest remaining time of tracked Duration specs created
// from e. Infinite specs of e report a negative duration (never expires).
// Returns 0 when none is tracked.
func (m *Manager) Remaining(e *Effect) time.Duration {
	if e == nil {
		return 0
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var longest time.Duration
	for _, s := range m.active {
		if s.Effect != e {
			continue
		}
		if s.policy == Infinite {
			return -1
		}
		longest = max(longest, s.remaining)
	}
	return longest
}

// CanAfford reports whether applying e would keep every attribute it lowers at or
// above zero. A nil effect is always affordable.
func (m *Manager) CanAfford(e *Effect) bool {
	if e == nil {
		return true
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	projected := make(map[string]float64, len(e.Modifiers))
	for _, mod := range e.Modifiers {
		v, ok := projected[mod.Attribute]
		if !ok {
			v = m.base[mod.Attribute]
		}
		projected[mod.Attribute] = mod.apply(v)
	}
	for _, v := range projected {
		if v < 0 {
			return false
		}
	}
	return true
}

// GrantedTags returns the tags held through tracked specs.
func (m *Manager) GrantedTags() tag.Set {
	m.mu.Lock() // Counter.Set rebuilds lazily
	defer m.mu.Unlock()
	return m.granted.Set()
}

// BaseAttribute returns the base value of an attribute.
func (m *Manager) BaseAttribute(name string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.base[name]
}

// SetBaseAttribute overrides the base value of an attribute.
func (m *Manager) SetBaseAttribute(name string, v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.base[name] = v
}

// Attribute returns the current value: (base + Σadd) × Πmul over tracked modifiers.
func (m *Manager) Attribute(name string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	add := 0.0
	mul := 1.0
	for _, mod := range m.modifiers {
		if mod.Attribute != name {
			continue
		}
		switch mod.Op {
		case OpAdd:
			add += mod.Value
		case OpMul:
			mul *= mod.Value
		}
	}
	return (m.base[name] + add) * mul
}

// Active returns a copy of the tracked specs.
func (m *Manager) Active() []*Spec {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Spec, len(m.active))
	copy(result, m.active)
	return result
}

// ActiveCount returns the number of tracked specs.
func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.active)
}

// detach must be called with mu held.
func (m *Manager) detach(s *Spec) {
	s.active = false
	m.granted.RemoveSet(s.Effect.GrantedTags)
}

// rebuildModifiers must be called with mu held.
func (m *Manager) rebuildModifiers() {
	m.modifiers = m.modifiers[:0]
	for _, s := range m.active {
		m.modifiers = append(m.modifiers, s.Effect.Modifiers...)
	}
}
