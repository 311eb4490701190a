package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gascore/internal/ability"
	"github.com/udisondev/gascore/internal/asc"
	"github.com/udisondev/gascore/internal/effect"
	"github.com/udisondev/gascore/internal/tag"
	"github.com/udisondev/gascore/internal/timeline"
)

func TestLoad_DemoFile(t *testing.T) {
	world := asc.NewWorld()
	cat, err := Load(filepath.Join("..", "..", "config", "abilities.yaml"),
		WithFinder(world), WithFrameRate(30))
	require.NoError(t, err)

	assert.Equal(t, []string{"Fireball", "Channel", "Nova", "Blink"}, cat.Names())
	assert.Equal(t, 6, cat.EffectCount())

	fb, ok := cat.Ability("Fireball")
	require.True(t, ok)
	def := fb.Definition()
	require.NotNil(t, def.Cooldown())
	assert.Equal(t, effect.Duration, def.Cooldown().Policy)
	require.NotNil(t, def.Cost())
	assert.True(t, def.Tags.CancelAbilitiesWith.Has(tag.Get("Ability.Channel")))

	tla, ok := fb.(*timeline.Ability)
	require.True(t, ok)
	assert.Equal(t, 30, tla.Timeline().Rate())
	assert.Equal(t, 24, tla.Timeline().FrameCount)

	blink, ok := cat.Ability("Blink")
	require.True(t, ok)
	assert.IsType(t, &ability.Simple{}, blink)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "reading abilities")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_CollectsEveryError(t *testing.T) {
	doc := `
effects:
  - {name: Instant, policy: instant}
  - {name: Timed, policy: duration, duration: 1s}
  - {name: Forever, policy: sometimes}
  - {name: Broken, policy: duration}
abilities:
  - name: BadCooldown
    cooldown: Instant
  - name: BadCost
    cost: Timed
  - name: Dangling
    cost: Nowhere
  - name: OutOfRange
    timeline:
      frame_count: 5
      instant_cues:
        - name: late
          events: [{frame: 9, cues: [{kind: log}]}]
  - name: UnknownKinds
    timeline:
      frame_count: 5
      instant_tasks:
        - name: t
          events: [{frame: 1, tasks: [{kind: teleport}]}]
      release_effects:
        - name: r
          events: [{frame: 1, catcher: {kind: cone}}]
  - name: InstantBuff
    timeline:
      frame_count: 5
      buff_effects:
        - name: b
          events: [{start: 0, end: 2, effect: Instant}]
  - name: OutOfRange
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)

	for _, want := range []string{
		`effect "Forever"`,
		`effect "Broken": duration policy needs a positive duration`,
		`ability "BadCooldown": cooldown "Instant" must have duration policy`,
		`ability "BadCost": cost "Timed" must have instant policy`,
		`ability "Dangling": unknown effect: Nowhere`,
		`ability "OutOfRange": track "late"`,
		`unknown instant task: teleport`,
		`unknown target catcher: cone`,
		`buff "Instant" has instant policy`,
		`duplicate ability "OutOfRange"`,
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestParse_KindMismatch(t *testing.T) {
	_, err := Parse([]byte(`
abilities:
  - {name: A, kind: timeline}
  - {name: B, kind: simple, timeline: {frame_count: 1}}
  - {name: C, kind: passive}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `ability "A": timeline ability without timeline`)
	assert.Contains(t, err.Error(), `ability "B": simple ability cannot have a timeline`)
	assert.Contains(t, err.Error(), `ability "C": unknown kind "passive"`)
}

func TestParse_RadiusNeedsFinder(t *testing.T) {
	_, err := Parse([]byte(`
abilities:
  - name: Nova
    timeline:
      frame_count: 3
      release_effects:
        - name: burst
          events: [{frame: 1, catcher: {kind: radius, params: {range: "4"}}}]
`))
	assert.ErrorContains(t, err, "finder")
}

func TestCatalog_PlaysThroughComponent(t *testing.T) {
	world := asc.NewWorld()
	cat, err := Load(filepath.Join("..", "..", "config", "abilities.yaml"),
		WithFinder(world), WithPlayerOptions(timeline.WithMaxCatchUp(100)))
	require.NoError(t, err)

	caster := asc.NewComponent(1, "Caster", map[string]float64{"hp": 100, "mp": 100}, tag.Set{})
	dummy := asc.NewComponent(2, "Dummy", map[string]float64{"hp": 100, "regen": 5}, tag.Set{})
	world.Add(caster)
	world.Add(dummy)

	fb, _ := cat.Ability("Fireball")
	caster.Grant(fb)

	require.True(t, caster.TryActivate("Fireball", dummy))
	assert.Equal(t, 80.0, caster.Attribute("mp"))
	assert.True(t, caster.HasAnyTags(tag.FromNames("State.Casting")))

	world.Tick(500 * time.Millisecond) // frame 15 > impact at 12
	assert.Equal(t, 75.0, dummy.Attribute("hp"))
	assert.Equal(t, 2.0, dummy.Attribute("regen"))
	assert.True(t, dummy.HasAnyTags(tag.FromNames("State.Debuff")))

	world.Tick(500 * time.Millisecond) // past frame 24: ability ended
	assert.False(t, caster.HasAnyTags(tag.FromNames("State.Casting")))
	assert.False(t, caster.TryActivate("Fireball", dummy), "still on cooldown")
}
