package timeline

import (
	"errors"
	"fmt"

	"github.com/udisondev/gascore/internal/cue"
	"github.com/udisondev/gascore/internal/effect"
	"github.com/udisondev/gascore/internal/targeting"
	"github.com/udisondev/gascore/internal/task"
)

// DefaultFrameRate is used when a timeline leaves FrameRate at zero.
const DefaultFrameRate = 30

// Track is a named, authored list of timed events of one category.
type Track[E any] struct {
	Name   string
	Events []E
}

// InstantCueMark fires its cues once at Frame.
type InstantCueMark struct {
	Frame int
	Cues  []cue.Instant
}

// ReleaseEffectMark catches targets at Frame and applies each effect to each target.
// NewCatcher is called once per player so catcher state is never shared.
type ReleaseEffectMark struct {
	Frame      int
	NewCatcher func() targeting.Catcher
	Effects    []*effect.Effect
}

// InstantTaskMark executes its tasks once at Frame.
type InstantTaskMark struct {
	Frame int
	Tasks []task.InstantFactory
}

// DurationalCueClip keeps a cue alive from Start to End (inclusive).
type DurationalCueClip struct {
	Start, End int
	Cue        cue.Durational
}

// BuffEffectClip keeps an effect on the owner from Start to End (inclusive).
// The effect must be a Duration or Infinite template; its lifetime is
// governed by the clip, not by the template duration.
type BuffEffectClip struct {
	Start, End int
	Effect     *effect.Effect
}

// OngoingTaskClip runs a task from Start to End (inclusive).
type OngoingTaskClip struct {
	Start, End int
	Task       task.OngoingFactory
}

// Timeline is the authored, frame-indexed script of a timeline ability.
// Tracks may be in any order; the player sorts its own copies.
type Timeline struct {
	FrameRate  int // frames per second; DefaultFrameRate when 0
	FrameCount int
	ManualEnd  bool // when set, reaching the end does not end the ability

	InstantCues    []Track[InstantCueMark]
	ReleaseEffects []Track[ReleaseEffectMark]
	InstantTasks   []Track[InstantTaskMark]
	DurationalCues []Track[DurationalCueClip]
	BuffEffects    []Track[BuffEffectClip]
	OngoingTasks   []Track[OngoingTaskClip]
}

// Rate returns the effective frame rate.
func (t *Timeline) Rate() int {
	if t.FrameRate > 0 {
		return t.FrameRate
	}
	return DefaultFrameRate
}

// Validate checks that every mark and clip lies within [0, FrameCount] and
// that clips do not end before they start.
func (t *Timeline) Validate() error {
	var errs []error
	if t.FrameRate < 0 {
		errs = append(errs, fmt.Errorf("negative frame rate %d", t.FrameRate))
	}
	if t.FrameCount < 0 {
		errs = append(errs, fmt.Errorf("negative frame count %d", t.FrameCount))
	}

	mark := func(track string, frame int) {
		if frame < 0 || frame > t.FrameCount {
			errs = append(errs, fmt.Errorf("track %q: mark frame %d outside [0, %d]", track, frame, t.FrameCount))
		}
	}
	clip := func(track string, start, end int) {
		if start < 0 || end > t.FrameCount || end < start {
			errs = append(errs, fmt.Errorf("track %q: clip [%d, %d] invalid for %d frames", track, start, end, t.FrameCount))
		}
	}

	for _, tr := range t.InstantCues {
		for _, e := range tr.Events {
			mark(tr.Name, e.Frame)
		}
	}
	for _, tr := range t.ReleaseEffects {
		for _, e := range tr.Events {
			mark(tr.Name, e.Frame)
			if e.NewCatcher == nil {
				errs = append(errs, fmt.Errorf("track %q: release mark at frame %d has no catcher", tr.Name, e.Frame))
			}
		}
	}
	for _, tr := range t.InstantTasks {
		for _, e := range tr.Events {
			mark(tr.Name, e.Frame)
		}
	}
	for _, tr := range t.DurationalCues {
		for _, e := range tr.Events {
			clip(tr.Name, e.Start, e.End)
		}
	}
	for _, tr := range t.BuffEffects {
		for _, e := range tr.Events {
			clip(tr.Name, e.Start, e.End)
			if e.Effect == nil {
				errs = append(errs, fmt.Errorf("track %q: buff clip at frame %d has no effect", tr.Name, e.Start))
			}
		}
	}
	for _, tr := range t.OngoingTasks {
		for _, e := range tr.Events {
			clip(tr.Name, e.Start, e.End)
		}
	}
	return errors.Join(errs...)
}
