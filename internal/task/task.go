package task

import "github.com/udisondev/gascore/internal/ability"

// Instant is a one-shot task body fired by an instant-task mark.
type Instant interface {
	Execute()
}

// Ongoing is a task body that runs over a clip window.
// Tick receives the current frame and the clip's authored bounds.
type Ongoing interface {
	Start(frame int)
	Tick(frame, start, end int)
	End(frame int)
}

// InstantFactory binds an instant task to a running ability.
// Timeline playback calls it once per spec when caching tracks.
type InstantFactory func(h ability.Host) Instant

// OngoingFactory binds an ongoing task to a running ability.
type OngoingFactory func(h ability.Host) Ongoing
