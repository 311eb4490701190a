package timeline

import (
	"log/slog"
	"time"

	"github.com/udisondev/gascore/internal/ability"
	"github.com/udisondev/gascore/internal/effect"
)

// Player drives one spec's timeline frame by frame.
//
// Tick accumulates real time and runs every frame between the last processed
// frame and the frame the elapsed time points at, in ascending order, each
// exactly once. A frame runs six phases in a fixed order: instant cues,
// release effects, instant tasks, durational cues, buff effects, ongoing tasks.
//
// Not re-entrant and not safe for concurrent use.
type Player struct {
	host     ability.Host
	timeline *Timeline
	name     string
	rate     int

	instantCues    []InstantCueMark
	releaseEffects []runtimeReleaseMark
	instantTasks   []runtimeTaskMark
	durationalCues []runtimeCueClip
	buffs          []runtimeBuffClip
	ongoingTasks   []runtimeTaskClip

	// reused by release marks, cleared after each mark
	targets []ability.Owner

	frame   int
	elapsed time.Duration
	playing bool
	stops   uint64 // bumped by Stop so a frame interrupted mid-way skips its remaining phases

	maxCatchUp int
	tracer     Tracer
}

// Option configures a Player.
type Option func(*Player)

// WithTracer installs a hook around TickFrame and each of its phases.
func WithTracer(t Tracer) Option {
	return func(p *Player) { p.tracer = t }
}

// WithMaxCatchUp limits how many frames one Tick may run. Frames over the limit
// are deferred to later ticks, never skipped. n <= 0 means unbounded.
func WithMaxCatchUp(n int) Option {
	return func(p *Player) { p.maxCatchUp = n }
}

// NewPlayer binds tl to host and caches its tracks.
func NewPlayer(host ability.Host, tl *Timeline, opts ...Option) *Player {
	p := &Player{
		host:     host,
		timeline: tl,
		name:     host.Definition().Name,
		rate:     tl.Rate(),
		targets:  make([]ability.Owner, 0, 8),
		frame:    -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.cache()
	return p
}

// IsPlaying reports whether the player is in the Playing state.
func (p *Player) IsPlaying() bool { return p.playing }

// CurrentFrame returns the last processed frame (-1 before frame 0 ran).
func (p *Player) CurrentFrame() int { return p.frame }

// Elapsed returns the time accumulated since Play.
func (p *Player) Elapsed() time.Duration { return p.elapsed }

// Timeline returns the authored timeline.
func (p *Player) Timeline() *Timeline { return p.timeline }

// Play starts playback from frame 0, which runs on the next Tick.
// Playing again while already playing stops the current run first so no cue
// or buff from it is left behind.
func (p *Player) Play() {
	if p.playing {
		p.Stop()
	}
	p.frame = -1
	p.elapsed = 0
	p.prepare()
	p.playing = true
}

// Stop interrupts playback.
// Every durational cue and ongoing task that has not finished yet is torn
// down, including clips whose start frame was never reached. Live buffs are
// removed from the owner. Ongoing tasks receive their authored end frame,
// not the frame playback stopped at.
func (p *Player) Stop() {
	if !p.playing {
		return
	}

	for i := range p.durationalCues {
		c := &p.durationalCues[i]
		if !c.done {
			c.done = true
			c.handle.OnRemove()
		}
	}

	owner := p.owner()
	for i := range p.buffs {
		b := &p.buffs[i]
		if b.handle != nil {
			owner.RemoveEffect(b.handle)
			b.handle = nil
		}
	}

	for i := range p.ongoingTasks {
		t := &p.ongoingTasks[i]
		if !t.done {
			t.done = true
			t.task.End(t.end)
		}
	}

	p.playing = false
	p.stops++
	slog.Debug("timeline stopped", "ability", p.name, "frame", p.frame)
}

// Tick advances playback by dt.
func (p *Player) Tick(dt time.Duration) {
	if !p.playing {
		return
	}

	p.elapsed += dt
	target := p.targetFrame()

	steps := 0
	for p.playing && p.frame < target {
		if p.maxCatchUp > 0 && steps >= p.maxCatchUp {
			slog.Warn("timeline catch-up clamped",
				"ability", p.name,
				"frame", p.frame,
				"behind", target-p.frame)
			break
		}
		p.frame++
		p.TickFrame(p.frame)
		steps++
	}

	if p.playing && p.frame >= p.timeline.FrameCount {
		p.OnPlayEnd()
	}
}

// targetFrame returns floor(elapsed × rate) using integer arithmetic.
func (p *Player) targetFrame() int {
	return int(p.elapsed * time.Duration(p.rate) / time.Second)
}

// OnPlayEnd finishes playback. Unless the timeline is manual-end, the owning
// ability ends too.
func (p *Player) OnPlayEnd() {
	p.playing = false
	slog.Debug("timeline finished", "ability", p.name, "frame", p.frame)

	if !p.timeline.ManualEnd {
		p.host.TryEndAbility()
	}
}

// TickFrame runs the six phases for frame.
// Lists are sorted by start frame, so each scan stops at the first event
// starting after frame. If a phase stops playback (a task ending the ability)
// the remaining phases of the frame are skipped.
func (p *Player) TickFrame(frame int) {
	stops := p.stops
	p.begin(frame, PhaseFrame)
	for _, ph := range phases {
		if p.stops != stops {
			break
		}
		p.begin(frame, ph.phase)
		ph.run(p, frame)
		p.end(frame, ph.phase)
	}
	p.end(frame, PhaseFrame)
}

var phases = [...]struct {
	phase Phase
	run   func(p *Player, frame int)
}{
	{PhaseInstantCues, (*Player).instantCuesAt},
	{PhaseReleaseEffects, (*Player).releaseEffectsAt},
	{PhaseInstantTasks, (*Player).instantTasksAt},
	{PhaseDurationalCues, (*Player).durationalCuesAt},
	{PhaseBuffEffects, (*Player).buffsAt},
	{PhaseOngoingTasks, (*Player).ongoingTasksAt},
}

func (p *Player) instantCuesAt(frame int) {
	for i := range p.instantCues {
		m := &p.instantCues[i]
		if m.Frame > frame {
			break
		}
		if m.Frame == frame {
			for _, c := range m.Cues {
				c.ApplyFrom(p.host)
			}
		}
	}
}

func (p *Player) instantTasksAt(frame int) {
	for i := range p.instantTasks {
		m := &p.instantTasks[i]
		if m.frame > frame {
			break
		}
		if m.frame == frame {
			m.task.Execute()
		}
	}
}

func (p *Player) durationalCuesAt(frame int) {
	for i := range p.durationalCues {
		c := &p.durationalCues[i]
		if c.start > frame {
			break
		}
		if frame == c.start {
			c.handle.OnAdd()
		}
		if frame <= c.end {
			c.handle.OnTick()
		}
		if frame == c.end && !c.done {
			c.done = true
			c.handle.OnRemove()
		}
	}
}

func (p *Player) ongoingTasksAt(frame int) {
	for i := range p.ongoingTasks {
		t := &p.ongoingTasks[i]
		if t.start > frame {
			break
		}
		if frame == t.start {
			t.task.Start(frame)
		}
		if frame <= t.end {
			t.task.Tick(frame, t.start, t.end)
		}
		if frame == t.end && !t.done {
			t.done = true
			t.task.End(frame)
		}
	}
}

func (p *Player) releaseEffectsAt(frame int) {
	owner := p.owner()
	for i := range p.releaseEffects {
		m := &p.releaseEffects[i]
		if m.frame > frame {
			break
		}
		if m.frame != frame {
			continue
		}

		m.catcher.Init(owner)
		p.targets = m.catcher.CatchTargets(p.host.Target(), p.targets[:0])
		for _, target := range p.targets {
			for _, e := range m.effects {
				owner.ApplyEffectTo(e, target)
			}
		}
		clear(p.targets)
		p.targets = p.targets[:0]
	}
}

func (p *Player) buffsAt(frame int) {
	owner := p.owner()
	for i := range p.buffs {
		b := &p.buffs[i]
		if b.start > frame {
			break
		}

		if frame == b.start && b.handle == nil {
			// clip bounds decide the lifetime, not the template duration
			spec := effect.NewSpec(b.buff, owner.ID(), owner.ID())
			spec.SetDurationPolicy(effect.Infinite)
			if owner.ReceiveEffect(spec) {
				b.handle = spec
			}
		}

		if frame == b.end {
			if b.handle != nil {
				owner.RemoveEffect(b.handle)
			}
			b.handle = nil
		}
	}
}

func (p *Player) begin(frame int, phase Phase) {
	if p.tracer != nil {
		p.tracer.BeginPhase(p.name, frame, phase)
	}
}

func (p *Player) end(frame int, phase Phase) {
	if p.tracer != nil {
		p.tracer.EndPhase(p.name, frame, phase)
	}
}
