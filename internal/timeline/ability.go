package timeline

import (
	"time"

	"github.com/udisondev/gascore/internal/ability"
)

// Ability is an ability kind whose activation plays a Timeline.
// Every spec created from it owns its own Player.
type Ability struct {
	def      *ability.Definition
	timeline *Timeline
	opts     []Option
}

// NewAbility creates a timeline ability. opts apply to every spec's Player.
func NewAbility(def *ability.Definition, tl *Timeline, opts ...Option) *Ability {
	return &Ability{def: def, timeline: tl, opts: opts}
}

func (a *Ability) Definition() *ability.Definition { return a.def }

// Timeline returns the authored timeline.
func (a *Ability) Timeline() *Timeline { return a.timeline }

func (a *Ability) CreateSpec(owner ability.Owner) *ability.Spec {
	b := &behavior{}
	spec := ability.NewSpec(a.def, owner, b)
	b.player = NewPlayer(spec, a.timeline, a.opts...)
	return spec
}

// PlayerOf returns the Player of a spec created by a timeline Ability.
func PlayerOf(spec *ability.Spec) (*Player, bool) {
	b, ok := spec.Behavior().(*behavior)
	if !ok {
		return nil, false
	}
	return b.player, true
}

type behavior struct {
	player *Player
}

func (b *behavior) Activate(*ability.Spec, ...any)         { b.player.Play() }
func (b *behavior) Cancel(*ability.Spec)                   { b.player.Stop() }
func (b *behavior) End(*ability.Spec)                      { b.player.Stop() }
func (b *behavior) Tick(_ *ability.Spec, dt time.Duration) { b.player.Tick(dt) }
