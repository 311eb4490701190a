package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/gascore/internal/asc"
	"github.com/udisondev/gascore/internal/data"
	"github.com/udisondev/gascore/internal/db"
	"github.com/udisondev/gascore/internal/sim"
	"github.com/udisondev/gascore/internal/tag"
)

// arena is the demo scene: one caster cycling through its abilities against
// a few training dummies.
type arena struct {
	world   *asc.World
	caster  *asc.Component
	dummies []*asc.Component
	names   []string
	next    int
}

func newArena(ctx context.Context, world *asc.World, catalog *data.Catalog, grants *db.GrantRepository) (*arena, error) {
	caster := asc.NewComponent(1, "Mage", map[string]float64{"hp": 200, "mp": 200, "regen": 5, "defense": 10}, tag.Set{})
	world.Add(caster)

	a := &arena{world: world, caster: caster}
	for i, pos := range [][2]float64{{4, 0}, {5, 3}, {30, 30}} {
		d := asc.NewComponent(uint32(i+2), fmt.Sprintf("Dummy-%d", i+1),
			map[string]float64{"hp": 1000, "regen": 5, "defense": 10}, tag.FromNames("Unit.Dummy"))
		d.SetPosition(pos[0], pos[1])
		world.Add(d)
		a.dummies = append(a.dummies, d)
	}

	names := catalog.Names()
	if grants != nil {
		restored, err := grants.LoadByOwner(ctx, caster.ID())
		if err != nil {
			return nil, fmt.Errorf("restoring grants: %w", err)
		}
		if len(restored) > 0 {
			names = restored
		}
	}

	for _, name := range names {
		ab, ok := catalog.Ability(name)
		if !ok {
			slog.Warn("skipping unknown ability grant", "ability", name, "owner", caster.Name())
			continue
		}
		caster.Grant(ab)
	}
	a.names = caster.Abilities().Names()

	slog.Info("arena ready", "components", world.Len(), "abilities", a.names)
	return a, nil
}

// drive activates the caster's abilities in turn until ctx is canceled.
func (a *arena) drive(ctx context.Context, loop *sim.Loop, every time.Duration) {
	if len(a.names) == 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		name := a.names[a.next%len(a.names)]
		target := a.dummies[a.next%len(a.dummies)]
		a.next++

		err := loop.Do(ctx, func(*asc.World) {
			ok := a.caster.TryActivate(name, target)
			slog.Debug("arena activation",
				"ability", name,
				"target", target.Name(),
				"ok", ok,
				"mp", a.caster.Attribute("mp"),
				"target_hp", target.Attribute("hp"))
		})
		if err != nil {
			return
		}
	}
}

// grantSnapshot returns the granted ability names of every component.
// Called after the loop has stopped.
func (a *arena) grantSnapshot() map[uint32][]string {
	out := make(map[uint32][]string, a.world.Len())
	for _, c := range a.world.Components() {
		out[c.ID()] = c.Abilities().Names()
	}
	return out
}
