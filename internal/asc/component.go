package asc

import (
	"time"

	"github.com/udisondev/gascore/internal/ability"
	"github.com/udisondev/gascore/internal/effect"
	"github.com/udisondev/gascore/internal/tag"
)

// Component is an actor that owns abilities and effects.
// Implements ability.Owner.
//
// Not safe for concurrent use; the simulation drives each component from a
// single goroutine. The effect manager has its own lock so status readers can
// query attributes from elsewhere.
type Component struct {
	id   uint32
	name string
	x, y float64

	fixed   tag.Set
	loose   *tag.Counter
	blocked *tag.Counter

	effects   *effect.Manager
	abilities *ability.Container
}

// NewComponent creates a Component with base attributes and permanent tags.
func NewComponent(id uint32, name string, attributes map[string]float64, fixed tag.Set) *Component {
	c := &Component{
		id:      id,
		name:    name,
		fixed:   fixed.Clone(),
		loose:   tag.NewCounter(),
		blocked: tag.NewCounter(),
		effects: effect.NewManager(id, attributes),
	}
	c.abilities = ability.NewContainer(c)
	return c
}

func (c *Component) ID() uint32   { return c.id }
func (c *Component) Name() string { return c.name }

// Abilities returns the ability container.
func (c *Component) Abilities() *ability.Container { return c.abilities }

// Effects returns the effect manager.
func (c *Component) Effects() *effect.Manager { return c.effects }

// Position returns the component's location.
func (c *Component) Position() (x, y float64) { return c.x, c.y }

// SetPosition moves the component.
func (c *Component) SetPosition(x, y float64) { c.x, c.y = x, y }

// Attribute returns the current value of an attribute.
func (c *Component) Attribute(name string) float64 { return c.effects.Attribute(name) }

// Tick advances abilities, then effect timers.
func (c *Component) Tick(dt time.Duration) {
	c.abilities.Tick(dt)
	c.effects.Tick(dt)
}

// Tags returns fixed, loose and effect-granted tags combined.
func (c *Component) Tags() tag.Set {
	s := c.fixed.Union(c.loose.Set())
	s.AddSet(c.effects.GrantedTags())
	return s
}

func (c *Component) HasAllTags(query tag.Set) bool { return c.Tags().HasAll(query) }

func (c *Component) HasAnyTags(query tag.Set) bool {
	if query.IsEmpty() {
		return false
	}
	return c.Tags().HasAny(query)
}

func (c *Component) AddLooseTags(tags tag.Set)    { c.loose.AddSet(tags) }
func (c *Component) RemoveLooseTags(tags tag.Set) { c.loose.RemoveSet(tags) }

func (c *Component) BlockAbilities(tags tag.Set)   { c.blocked.AddSet(tags) }
func (c *Component) UnblockAbilities(tags tag.Set) { c.blocked.RemoveSet(tags) }

// IsAbilityBlocked reports whether an ability with assetTags is blocked by an active ability.
func (c *Component) IsAbilityBlocked(assetTags tag.Set) bool {
	return assetTags.HasAny(c.blocked.Set())
}

// ReceiveEffect applies spec to this component.
func (c *Component) ReceiveEffect(spec *effect.Spec) bool {
	return c.effects.Apply(spec)
}

// ApplyEffectToSelf applies a fresh instance of e to this component.
// Returns the spec handle, or nil if it was not applied.
func (c *Component) ApplyEffectToSelf(e *effect.Effect) *effect.Spec {
	return c.ApplyEffectTo(e, c)
}

// ApplyEffectTo applies a fresh instance of e from this component to target.
// Returns the spec handle, or nil if it was not applied.
func (c *Component) ApplyEffectTo(e *effect.Effect, target ability.Owner) *effect.Spec {
	if e == nil || target == nil {
		return nil
	}
	spec := effect.NewSpec(e, c.id, target.ID())
	if !target.ReceiveEffect(spec) {
		return nil
	}
	return spec
}

// RemoveEffect removes a tracked spec from this component.
func (c *Component) RemoveEffect(spec *effect.Spec) bool {
	return c.effects.Remove(spec)
}

func (c *Component) CooldownRemaining(e *effect.Effect) time.Duration {
	return c.effects.Remaining(e)
}

func (c *Component) CanAfford(cost *effect.Effect) bool {
	return c.effects.CanAfford(cost)
}

// Grant, TryActivate, End and Remove forward to the ability container.

func (c *Component) Grant(a ability.Ability) { c.abilities.GrantAbility(a) }

func (c *Component) TryActivate(name string, args ...any) bool {
	return c.abilities.TryActivateAbility(name, args...)
}

func (c *Component) End(name string)    { c.abilities.EndAbility(name) }
func (c *Component) Remove(name string) { c.abilities.RemoveAbility(name) }
