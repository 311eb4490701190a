package ability

import (
	"time"

	"github.com/udisondev/gascore/internal/effect"
	"github.com/udisondev/gascore/internal/tag"
)

// Owner is the actor an ability is granted to.
// It routes effects and answers the tag queries used for activation gating.
type Owner interface {
	ID() uint32
	Name() string

	// Tags returns every tag the owner currently holds (fixed, loose and effect-granted).
	Tags() tag.Set
	HasAllTags(query tag.Set) bool
	HasAnyTags(query tag.Set) bool
	AddLooseTags(tags tag.Set)
	RemoveLooseTags(tags tag.Set)

	// BlockAbilities blocks activation of abilities whose asset tags match tags,
	// until the same set is passed to UnblockAbilities.
	BlockAbilities(tags tag.Set)
	UnblockAbilities(tags tag.Set)
	IsAbilityBlocked(assetTags tag.Set) bool

	// ReceiveEffect applies an already built spec to the owner.
	ReceiveEffect(spec *effect.Spec) bool
	ApplyEffectToSelf(e *effect.Effect) *effect.Spec
	ApplyEffectTo(e *effect.Effect, target Owner) *effect.Spec
	RemoveEffect(spec *effect.Spec) bool

	// CooldownRemaining returns how long the cooldown effect e still runs on the owner.
	// Zero means not on cooldown; negative means it never expires.
	CooldownRemaining(e *effect.Effect) time.Duration
	CanAfford(cost *effect.Effect) bool
}

// Host is the view of a running ability used by timeline playback, cues,
// tasks and target catchers. *Spec implements it.
type Host interface {
	Owner() Owner
	Target() Owner
	Definition() *Definition
	TryEndAbility() bool
}
