package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gascore/internal/asc"
	"github.com/udisondev/gascore/internal/data"
	"github.com/udisondev/gascore/internal/sim"
)

func TestArena_GrantsCatalogAndDrives(t *testing.T) {
	world := asc.NewWorld()
	catalog, err := data.Load(filepath.Join("..", "..", "config", "abilities.yaml"), data.WithFinder(world))
	require.NoError(t, err)

	a, err := newArena(context.Background(), world, catalog, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, world.Len())
	assert.Equal(t, catalog.Names(), a.names)

	loop := sim.NewLoop(world, time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = loop.Run(ctx)
	}()

	a.drive(ctx, loop, 20*time.Millisecond)
	<-done
	assert.Positive(t, a.next, "driver activated at least one ability")

	snap := a.grantSnapshot()
	assert.Equal(t, catalog.Names(), snap[1])
	assert.Empty(t, snap[2])
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}
