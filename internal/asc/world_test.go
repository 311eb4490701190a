package asc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gascore/internal/ability"
	"github.com/udisondev/gascore/internal/effect"
	"github.com/udisondev/gascore/internal/tag"
)

func TestWorld_FindInRadius(t *testing.T) {
	w := NewWorld()
	a := NewComponent(1, "A", nil, tag.Set{})
	b := NewComponent(2, "B", nil, tag.Set{})
	c := NewComponent(3, "C", nil, tag.Set{})
	b.SetPosition(3, 4)
	c.SetPosition(6, 8)
	w.Add(a)
	w.Add(b)
	w.Add(c)
	w.Add(NewComponent(1, "Duplicate", nil, tag.Set{}))

	require.Equal(t, 3, w.Len())
	got, ok := w.Get(1)
	require.True(t, ok)
	assert.Equal(t, "A", got.Name())

	out := make([]ability.Owner, 0, 4)
	out = w.FindInRadius(a, 5, out)
	assert.Equal(t, []ability.Owner{a, b}, out, "boundary is inclusive")

	out = w.FindInRadius(c, 5, out[:0])
	assert.Equal(t, []ability.Owner{b, c}, out)

	w.Remove(2)
	assert.Equal(t, []*Component{a, c}, w.Components())
	assert.Empty(t, w.FindInRadius(NewComponent(9, "Stranger", nil, tag.Set{}), 100, nil))
}

func TestWorld_TickAdvancesEffects(t *testing.T) {
	w := NewWorld()
	c := NewComponent(1, "A", map[string]float64{"speed": 10}, tag.Set{})
	w.Add(c)

	haste := &effect.Effect{
		Name:        "Haste",
		Policy:      effect.Duration,
		Duration:    time.Second,
		Modifiers:   []effect.Modifier{{Attribute: "speed", Op: effect.OpMul, Value: 2}},
		GrantedTags: tag.FromNames("Test.Asc.Hasted"),
	}
	require.NotNil(t, c.ApplyEffectToSelf(haste))
	assert.Equal(t, 20.0, c.Attribute("speed"))
	assert.True(t, c.HasAnyTags(tag.FromNames("Test.Asc")))

	w.Tick(time.Second)
	assert.Equal(t, 10.0, c.Attribute("speed"))
	assert.False(t, c.HasAnyTags(tag.FromNames("Test.Asc")))
}

func TestComponent_TagSources(t *testing.T) {
	c := NewComponent(1, "A", nil, tag.FromNames("Test.Asc.Fixed"))
	c.AddLooseTags(tag.FromNames("Test.Asc.Loose"))
	c.AddLooseTags(tag.FromNames("Test.Asc.Loose"))

	assert.True(t, c.HasAllTags(tag.FromNames("Test.Asc.Fixed", "Test.Asc.Loose")))
	assert.False(t, c.HasAnyTags(tag.Set{}), "empty query never matches")
	assert.True(t, c.HasAllTags(tag.Set{}), "empty query always satisfied")

	c.RemoveLooseTags(tag.FromNames("Test.Asc.Loose"))
	assert.True(t, c.HasAnyTags(tag.FromNames("Test.Asc.Loose")), "loose tags are counted")
	c.RemoveLooseTags(tag.FromNames("Test.Asc.Loose"))
	assert.False(t, c.HasAnyTags(tag.FromNames("Test.Asc.Loose")))
}

func TestComponent_ApplyEffectTo(t *testing.T) {
	src := NewComponent(1, "Src", nil, tag.Set{})
	dst := NewComponent(2, "Dst", map[string]float64{"hp": 50}, tag.Set{})

	poison := &effect.Effect{Name: "Poison", Policy: effect.Infinite}
	spec := src.ApplyEffectTo(poison, dst)
	require.NotNil(t, spec)
	assert.Equal(t, uint32(1), spec.SourceID)
	assert.Equal(t, uint32(2), spec.TargetID)
	assert.Equal(t, 1, dst.Effects().ActiveCount())
	assert.Negative(t, dst.CooldownRemaining(poison), "infinite spec never expires")

	assert.True(t, dst.RemoveEffect(spec))
	assert.False(t, dst.RemoveEffect(spec))
	assert.Nil(t, src.ApplyEffectTo(nil, dst))
	assert.Nil(t, src.ApplyEffectTo(poison, nil))
}
