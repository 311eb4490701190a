package asc

import (
	"slices"
	"time"

	"github.com/udisondev/gascore/internal/ability"
)

// World holds the components of one simulation and answers spatial queries
// for target catchers.
type World struct {
	components []*Component
	byID       map[uint32]*Component
	scratch    []*Component
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{byID: make(map[uint32]*Component)}
}

// Add registers c. No-op if a component with the same ID exists.
func (w *World) Add(c *Component) {
	if _, ok := w.byID[c.ID()]; ok {
		return
	}
	w.byID[c.ID()] = c
	w.components = append(w.components, c)
}

// Remove unregisters the component with id.
func (w *World) Remove(id uint32) {
	c, ok := w.byID[id]
	if !ok {
		return
	}
	delete(w.byID, id)
	if i := slices.Index(w.components, c); i >= 0 {
		w.components = slices.Delete(w.components, i, i+1)
	}
}

// Get returns the component with id.
func (w *World) Get(id uint32) (*Component, bool) {
	c, ok := w.byID[id]
	return c, ok
}

// Components returns a copy of the registered components in insertion order.
func (w *World) Components() []*Component {
	return slices.Clone(w.components)
}

// Len returns the number of registered components.
func (w *World) Len() int { return len(w.components) }

// Tick advances every component by dt.
func (w *World) Tick(dt time.Duration) {
	w.scratch = append(w.scratch[:0], w.components...)
	for _, c := range w.scratch {
		c.Tick(dt)
	}
	clear(w.scratch)
}

// FindInRadius appends to out every component within radius of center
// (center included) and returns the extended slice.
func (w *World) FindInRadius(center ability.Owner, radius float64, out []ability.Owner) []ability.Owner {
	origin, ok := w.byID[center.ID()]
	if !ok {
		return out
	}
	cx, cy := origin.Position()
	r2 := radius * radius
	for _, c := range w.components {
		x, y := c.Position()
		dx, dy := x-cx, y-cy
		if dx*dx+dy*dy <= r2 {
			out = append(out, c)
		}
	}
	return out
}
