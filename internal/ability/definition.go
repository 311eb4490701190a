package ability

import (
	"log/slog"
	"time"

	"github.com/udisondev/gascore/internal/effect"
	"github.com/udisondev/gascore/internal/tag"
)

// Tags groups the tag sets that drive activation gating and cross-ability cancellation.
type Tags struct {
	Asset               tag.Set // identifies the ability
	ActivationOwned     tag.Set // held by the owner while the ability is active
	ActivationRequired  tag.Set // owner must hold all of them to activate
	ActivationBlocked   tag.Set // owner must hold none of them to activate
	CancelAbilitiesWith tag.Set // activating cancels abilities whose Asset matches
	BlockAbilitiesWith  tag.Set // while active, abilities whose Asset matches cannot activate
}

// Definition is the static configuration of an ability.
// It is shared by every Spec created from it and must not change after
// the first grant.
type Definition struct {
	Name         string
	Tags         Tags
	CooldownTime time.Duration // overrides the cooldown template duration when > 0

	cooldown *effect.Effect
	cost     *effect.Effect
}

// NewDefinition creates a Definition without cooldown or cost.
func NewDefinition(name string, tags Tags) *Definition {
	return &Definition{Name: name, Tags: tags}
}

// Cooldown returns the cooldown template, nil when unconstrained.
func (d *Definition) Cooldown() *effect.Effect { return d.cooldown }

// Cost returns the cost template, nil when free.
func (d *Definition) Cost() *effect.Effect { return d.cost }

// SetCooldown sets the cooldown template. Only Duration effects are accepted;
// anything else is logged and the previous value is kept.
func (d *Definition) SetCooldown(e *effect.Effect) bool {
	if e != nil && e.Policy != effect.Duration {
		slog.Error("cooldown must have duration policy",
			"ability", d.Name,
			"effect", e.Name,
			"policy", e.Policy)
		return false
	}
	d.cooldown = e
	return true
}

// SetCost sets the cost template. Only Instant effects are accepted;
// anything else is logged and the previous value is kept.
func (d *Definition) SetCost(e *effect.Effect) bool {
	if e != nil && e.Policy != effect.Instant {
		slog.Error("cost must have instant policy",
			"ability", d.Name,
			"effect", e.Name,
			"policy", e.Policy)
		return false
	}
	d.cost = e
	return true
}

// cooldownDuration returns how long a fresh cooldown lasts.
func (d *Definition) cooldownDuration() time.Duration {
	if d.CooldownTime > 0 {
		return d.CooldownTime
	}
	if d.cooldown != nil {
		return d.cooldown.Duration
	}
	return 0
}
