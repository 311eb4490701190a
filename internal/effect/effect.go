package effect

import (
	"fmt"
	"strings"
	"time"

	"github.com/udisondev/gascore/internal/tag"
)

// DurationPolicy defines how long an applied effect lives.
type DurationPolicy int8

const (
	Instant  DurationPolicy = iota // Modifies base attributes once, never tracked
	Duration                       // Tracked until its duration elapses
	Infinite                       // Tracked until explicitly removed
)

func (p DurationPolicy) String() string {
	switch p {
	case Instant:
		return "instant"
	case Duration:
		return "duration"
	case Infinite:
		return "infinite"
	default:
		return fmt.Sprintf("DurationPolicy(%d)", int8(p))
	}
}

// ParseDurationPolicy parses "instant", "duration" or "infinite" (case-insensitive).
func ParseDurationPolicy(s string) (DurationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "instant", "":
		return Instant, nil
	case "duration":
		return Duration, nil
	case "infinite":
		return Infinite, nil
	default:
		return Instant, fmt.Errorf("unknown duration policy %q", s)
	}
}

// Effect is an immutable gameplay effect template.
// Every application produces a fresh Spec; the template itself is shared.
type Effect struct {
	Name        string
	Policy      DurationPolicy
	Duration    time.Duration // only meaningful for Duration policy
	Modifiers   []Modifier
	GrantedTags tag.Set // held by the target while a tracked Spec is active
}

// IsBuff reports whether the effect can live on an owner (Duration or Infinite).
func (e *Effect) IsBuff() bool {
	return e.Policy == Duration || e.Policy == Infinite
}

// Spec is a runtime instance of an applied Effect.
// Tracked specs double as handles for Manager.Remove.
type Spec struct {
	Effect   *Effect
	SourceID uint32
	TargetID uint32

	policy    DurationPolicy
	remaining time.Duration
	active    bool
}

// NewSpec creates a Spec for e, copying the template's policy and duration.
func NewSpec(e *Effect, sourceID, targetID uint32) *Spec {
	return &Spec{
		Effect:    e,
		SourceID:  sourceID,
		TargetID:  targetID,
		policy:    e.Policy,
		remaining: e.Duration,
	}
}

// DurationPolicy returns the policy of this instance (may differ from the template).
func (s *Spec) DurationPolicy() DurationPolicy { return s.policy }

// SetDurationPolicy overrides the policy of this instance only.
func (s *Spec) SetDurationPolicy(p DurationPolicy) { s.policy = p }

// Remaining returns the time left for a Duration spec.
func (s *Spec) Remaining() time.Duration { return s.remaining }

// SetDuration restarts the countdown with d.
func (s *Spec) SetDuration(d time.Duration) { s.remaining = d }

// IsActive reports whether the spec is currently tracked by a Manager.
func (s *Spec) IsActive() bool { return s.active }

// Tick decrements remaining time by dt.
// Returns true if the spec is still alive. Only Duration specs expire.
func (s *Spec) Tick(dt time.Duration) bool {
	if s.policy != Duration {
		return true
	}
	s.remaining -= dt
	return s.remaining > 0
}
