package ability

import (
	"log/slog"
	"slices"
	"time"
)

// Container is the per-owner registry of granted abilities.
//
// Specs are kept in grant order; that order is the iteration order for Tick
// and for the cancellation scan. Not safe for concurrent use: an owner's
// abilities are driven from one goroutine.
type Container struct {
	owner  Owner
	specs  []*Spec
	byName map[string]*Spec

	// scratch holds the Tick snapshot so grants/removals made by a ticking
	// ability do not disturb the traversal.
	scratch []*Spec
}

// NewContainer creates an empty Container for owner.
func NewContainer(owner Owner) *Container {
	return &Container{
		owner:  owner,
		byName: make(map[string]*Spec),
	}
}

// Owner returns the owner abilities are granted to.
func (c *Container) Owner() Owner { return c.owner }

// GrantAbility creates and registers a spec for a.
// No-op if an ability with the same name is already granted.
func (c *Container) GrantAbility(a Ability) {
	name := a.Definition().Name
	if _, ok := c.byName[name]; ok {
		return
	}

	spec := a.CreateSpec(c.owner)
	c.byName[name] = spec
	c.specs = append(c.specs, spec)

	slog.Debug("ability granted", "ability", name, "owner", c.owner.Name())
}

// RemoveAbility ends the ability (interrupting any playback) and unregisters it.
// No-op if name is unknown.
func (c *Container) RemoveAbility(name string) {
	spec, ok := c.byName[name]
	if !ok {
		return
	}

	spec.TryEndAbility()

	delete(c.byName, name)
	if i := slices.Index(c.specs, spec); i >= 0 {
		c.specs = slices.Delete(c.specs, i, i+1)
	}

	slog.Debug("ability removed", "ability", name, "owner", c.owner.Name())
}

// TryActivateAbility activates the named ability.
// On success every granted ability (including this one) whose asset tags match
// the activated ability's CancelAbilitiesWith set is cancelled.
// Returns false without side effects if name is unknown or activation is refused.
func (c *Container) TryActivateAbility(name string, args ...any) bool {
	spec, ok := c.byName[name]
	if !ok {
		return false
	}
	if !spec.TryActivateAbility(args...) {
		return false
	}

	c.cancelAbilitiesWithTags(spec.def)
	return true
}

// EndAbility asks the named ability to end. No-op if name is unknown.
func (c *Container) EndAbility(name string) {
	if spec, ok := c.byName[name]; ok {
		spec.TryEndAbility()
	}
}

// CancelAbility interrupts the named ability. No-op if name is unknown.
func (c *Container) CancelAbility(name string) {
	if spec, ok := c.byName[name]; ok {
		spec.TryCancelAbility()
	}
}

// Tick advances every granted ability by dt, in grant order.
func (c *Container) Tick(dt time.Duration) {
	c.scratch = append(c.scratch[:0], c.specs...)
	for _, spec := range c.scratch {
		spec.Tick(dt)
	}
	clear(c.scratch)
}

// Has reports whether name is granted.
func (c *Container) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Spec returns the granted spec for name.
func (c *Container) Spec(name string) (*Spec, bool) {
	spec, ok := c.byName[name]
	return spec, ok
}

// Specs returns a copy of the granted specs in grant order.
func (c *Container) Specs() []*Spec {
	return slices.Clone(c.specs)
}

// Names returns granted ability names in grant order.
func (c *Container) Names() []string {
	names := make([]string, len(c.specs))
	for i, s := range c.specs {
		names[i] = s.def.Name
	}
	return names
}

// Len returns the number of granted abilities.
func (c *Container) Len() int { return len(c.specs) }

func (c *Container) cancelAbilitiesWithTags(def *Definition) {
	cancelTags := def.Tags.CancelAbilitiesWith
	if cancelTags.IsEmpty() {
		return
	}

	for _, spec := range slices.Clone(c.specs) {
		if spec.def.Tags.Asset.HasAny(cancelTags) && spec.TryCancelAbility() {
			slog.Debug("ability cancelled by tag",
				"ability", spec.def.Name,
				"by", def.Name,
				"owner", c.owner.Name())
		}
	}
}
