package cue

import "github.com/udisondev/gascore/internal/ability"

// Instant is a one-shot presentation hook fired by an instant-cue mark.
type Instant interface {
	ApplyFrom(h ability.Host)
}

// Durational is a cue that lives over a clip window.
// ApplyFrom returns nil when the cue does not apply to this spec.
type Durational interface {
	ApplyFrom(h ability.Host) Handle
}

// Handle receives the lifecycle of one durational cue instance.
// Every OnAdd is matched by exactly one OnRemove.
type Handle interface {
	OnAdd()
	OnTick()
	OnRemove()
}
