package ability

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/gascore/internal/effect"
)

// ActivateResult explains why an activation was accepted or refused.
type ActivateResult int8

const (
	ActivateSuccess ActivateResult = iota
	ActivateFailActive
	ActivateFailTags
	ActivateFailBlocked
	ActivateFailCost
	ActivateFailCooldown
)

func (r ActivateResult) String() string {
	switch r {
	case ActivateSuccess:
		return "success"
	case ActivateFailActive:
		return "already active"
	case ActivateFailTags:
		return "tag requirements not met"
	case ActivateFailBlocked:
		return "blocked by active ability"
	case ActivateFailCost:
		return "cost unaffordable"
	case ActivateFailCooldown:
		return "on cooldown"
	default:
		return fmt.Sprintf("ActivateResult(%d)", int8(r))
	}
}

type specState uint8

const (
	stateInactive specState = iota
	stateActive
	stateEnding // cancel or end in progress
)

// Spec is a granted ability bound to one owner.
// The definition is captured once at construction.
type Spec struct {
	def      *Definition
	owner    Owner
	target   Owner
	behavior Behavior

	state       specState
	activeCount int
}

// NewSpec binds def to owner. Ability kinds call it from CreateSpec.
func NewSpec(def *Definition, owner Owner, behavior Behavior) *Spec {
	return &Spec{def: def, owner: owner, behavior: behavior}
}

func (s *Spec) Definition() *Definition { return s.def }
func (s *Spec) Owner() Owner            { return s.owner }

// Target returns the target passed on the last activation (may be nil).
func (s *Spec) Target() Owner { return s.target }

// Behavior returns the kind-specific behavior.
func (s *Spec) Behavior() Behavior { return s.behavior }

// IsActive reports whether the ability is running.
func (s *Spec) IsActive() bool { return s.state == stateActive }

// ActiveCount returns how many times the ability was activated.
func (s *Spec) ActiveCount() int { return s.activeCount }

// CanActivate checks activation preconditions without side effects.
func (s *Spec) CanActivate() ActivateResult {
	if s.state != stateInactive {
		return ActivateFailActive
	}
	tags := s.def.Tags
	if !s.owner.HasAllTags(tags.ActivationRequired) || s.owner.HasAnyTags(tags.ActivationBlocked) {
		return ActivateFailTags
	}
	if s.owner.IsAbilityBlocked(tags.Asset) {
		return ActivateFailBlocked
	}
	if !s.owner.CanAfford(s.def.cost) {
		return ActivateFailCost
	}
	if s.def.cooldown != nil && s.owner.CooldownRemaining(s.def.cooldown) != 0 {
		return ActivateFailCooldown
	}
	return ActivateSuccess
}

// TryActivateAbility activates the ability if CanActivate allows it.
// When args[0] is an Owner it becomes the spec's target.
func (s *Spec) TryActivateAbility(args ...any) bool {
	if r := s.CanActivate(); r != ActivateSuccess {
		slog.Debug("ability activation refused",
			"ability", s.def.Name,
			"owner", s.owner.Name(),
			"reason", r)
		return false
	}

	s.state = stateActive
	s.activeCount++
	s.target = nil
	if len(args) > 0 {
		if t, ok := args[0].(Owner); ok {
			s.target = t
		}
	}

	s.owner.AddLooseTags(s.def.Tags.ActivationOwned)
	s.owner.BlockAbilities(s.def.Tags.BlockAbilitiesWith)
	s.commitCost()
	s.commitCooldown()

	slog.Debug("ability activated",
		"ability", s.def.Name,
		"owner", s.owner.Name(),
		"count", s.activeCount)

	s.behavior.Activate(s, args...)
	return true
}

// TryCancelAbility interrupts a running ability.
// Returns false (no-op) if the ability is not active or already ending.
func (s *Spec) TryCancelAbility() bool {
	if s.state != stateActive {
		return false
	}
	s.state = stateEnding
	s.behavior.Cancel(s)
	s.finish("cancelled")
	return true
}

// TryEndAbility ends a running ability gracefully.
// Returns false (no-op) if the ability is not active or already ending.
func (s *Spec) TryEndAbility() bool {
	if s.state != stateActive {
		return false
	}
	s.state = stateEnding
	s.behavior.End(s)
	s.finish("ended")
	return true
}

// Tick advances a running ability by dt.
func (s *Spec) Tick(dt time.Duration) {
	if s.state != stateActive {
		return
	}
	s.behavior.Tick(s, dt)
}

func (s *Spec) finish(how string) {
	s.owner.RemoveLooseTags(s.def.Tags.ActivationOwned)
	s.owner.UnblockAbilities(s.def.Tags.BlockAbilitiesWith)
	s.state = stateInactive

	slog.Debug("ability "+how,
		"ability", s.def.Name,
		"owner", s.owner.Name())
}

func (s *Spec) commitCost() {
	if s.def.cost == nil {
		return
	}
	s.owner.ApplyEffectToSelf(s.def.cost)
}

func (s *Spec) commitCooldown() {
	if s.def.cooldown == nil {
		return
	}
	cd := effect.NewSpec(s.def.cooldown, s.owner.ID(), s.owner.ID())
	cd.SetDuration(s.def.cooldownDuration())
	s.owner.ReceiveEffect(cd)
}
