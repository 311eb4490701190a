package sim

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/udisondev/gascore/internal/asc"
)

// Loop owns a World and advances it on a fixed ticker.
// The world is only touched from the Run goroutine; other goroutines reach it
// through Do.
type Loop struct {
	world    *asc.World
	interval time.Duration
	cmds     chan command
	ticks    atomic.Uint64
}

type command struct {
	fn   func(*asc.World)
	done chan struct{}
}

// NewLoop creates a loop that ticks world every interval.
func NewLoop(world *asc.World, interval time.Duration) *Loop {
	return &Loop{
		world:    world,
		interval: interval,
		cmds:     make(chan command, 64),
	}
}

// Run ticks the world until ctx is canceled. Each tick advances the world by
// the wall time since the previous tick, so a late tick catches up instead
// of slowing playback down.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	slog.Info("simulation loop started", "interval", l.interval, "components", l.world.Len())

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation loop stopping", "ticks", l.ticks.Load())
			return ctx.Err()

		case cmd := <-l.cmds:
			cmd.fn(l.world)
			close(cmd.done)

		case now := <-ticker.C:
			l.world.Tick(now.Sub(last))
			last = now
			l.ticks.Add(1)
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func(*asc.World)) error {
	cmd := command{fn: fn, done: make(chan struct{})}
	select {
	case l.cmds <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-cmd.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ticks returns the number of completed ticks.
func (l *Loop) Ticks() uint64 {
	return l.ticks.Load()
}
