package timeline

import (
	"cmp"
	"slices"

	"github.com/udisondev/gascore/internal/ability"
	"github.com/udisondev/gascore/internal/cue"
	"github.com/udisondev/gascore/internal/effect"
	"github.com/udisondev/gascore/internal/targeting"
	"github.com/udisondev/gascore/internal/task"
)

// Runtime copies of the authored events, bound to one player.

type runtimeReleaseMark struct {
	frame   int
	catcher targeting.Catcher
	effects []*effect.Effect
}

type runtimeTaskMark struct {
	frame int
	task  task.Instant
}

type runtimeCueClip struct {
	start, end int
	handle     cue.Handle
	done       bool // OnRemove already called this play
}

type runtimeBuffClip struct {
	start, end int
	buff       *effect.Effect
	handle     *effect.Spec // non-nil only while the clip's effect is on the owner
}

type runtimeTaskClip struct {
	start, end int
	task       task.Ongoing
	done       bool // End already called this play
}

// cache flattens the timeline tracks into frame-sorted runtime lists.
// Called once from NewPlayer; the lists are never re-sorted.
func (p *Player) cache() {
	tl := p.timeline

	p.instantCues = p.instantCues[:0]
	for _, tr := range tl.InstantCues {
		p.instantCues = append(p.instantCues, tr.Events...)
	}
	slices.SortStableFunc(p.instantCues, func(a, b InstantCueMark) int { return cmp.Compare(a.Frame, b.Frame) })

	p.releaseEffects = p.releaseEffects[:0]
	for _, tr := range tl.ReleaseEffects {
		for _, m := range tr.Events {
			p.releaseEffects = append(p.releaseEffects, runtimeReleaseMark{
				frame:   m.Frame,
				catcher: m.NewCatcher(),
				effects: m.Effects,
			})
		}
	}
	slices.SortStableFunc(p.releaseEffects, func(a, b runtimeReleaseMark) int { return cmp.Compare(a.frame, b.frame) })

	p.instantTasks = p.instantTasks[:0]
	for _, tr := range tl.InstantTasks {
		for _, m := range tr.Events {
			for _, factory := range m.Tasks {
				p.instantTasks = append(p.instantTasks, runtimeTaskMark{frame: m.Frame, task: factory(p.host)})
			}
		}
	}
	slices.SortStableFunc(p.instantTasks, func(a, b runtimeTaskMark) int { return cmp.Compare(a.frame, b.frame) })

	p.durationalCues = p.durationalCues[:0]
	for _, tr := range tl.DurationalCues {
		for _, c := range tr.Events {
			handle := c.Cue.ApplyFrom(p.host)
			if handle == nil {
				continue
			}
			p.durationalCues = append(p.durationalCues, runtimeCueClip{start: c.Start, end: c.End, handle: handle})
		}
	}
	slices.SortStableFunc(p.durationalCues, func(a, b runtimeCueClip) int { return cmp.Compare(a.start, b.start) })

	p.buffs = p.buffs[:0]
	for _, tr := range tl.BuffEffects {
		for _, c := range tr.Events {
			// only effects that can live on the owner qualify as buffs
			if c.Effect == nil || !c.Effect.IsBuff() {
				continue
			}
			p.buffs = append(p.buffs, runtimeBuffClip{start: c.Start, end: c.End, buff: c.Effect})
		}
	}
	slices.SortStableFunc(p.buffs, func(a, b runtimeBuffClip) int { return cmp.Compare(a.start, b.start) })

	p.ongoingTasks = p.ongoingTasks[:0]
	for _, tr := range tl.OngoingTasks {
		for _, c := range tr.Events {
			p.ongoingTasks = append(p.ongoingTasks, runtimeTaskClip{start: c.Start, end: c.End, task: c.Task(p.host)})
		}
	}
	slices.SortStableFunc(p.ongoingTasks, func(a, b runtimeTaskClip) int { return cmp.Compare(a.start, b.start) })
}

// prepare resets per-play state. Buff handles were released by Stop or by
// reaching their end frame, so they are only forgotten here.
func (p *Player) prepare() {
	for i := range p.buffs {
		p.buffs[i].handle = nil
	}
	for i := range p.durationalCues {
		p.durationalCues[i].done = false
	}
	for i := range p.ongoingTasks {
		p.ongoingTasks[i].done = false
	}
	clear(p.targets)
	p.targets = p.targets[:0]
}

// owner is a shortcut used by the effect phases.
func (p *Player) owner() ability.Owner { return p.host.Owner() }
