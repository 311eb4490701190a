package targeting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gascore/internal/ability"
	"github.com/udisondev/gascore/internal/asc"
	"github.com/udisondev/gascore/internal/tag"
	"github.com/udisondev/gascore/internal/targeting"
)

func arena() (*asc.World, *asc.Component, *asc.Component, *asc.Component) {
	w := asc.NewWorld()
	owner := asc.NewComponent(1, "Owner", nil, tag.Set{})
	ally := asc.NewComponent(2, "Ally", nil, tag.Set{})
	enemy := asc.NewComponent(3, "Enemy", nil, tag.Set{})
	ally.SetPosition(2, 0)
	enemy.SetPosition(20, 0)
	w.Add(owner)
	w.Add(ally)
	w.Add(enemy)
	return w, owner, ally, enemy
}

func TestSelfAndTarget(t *testing.T) {
	_, owner, _, enemy := arena()

	newSelf, err := targeting.Create("self", nil, nil)
	require.NoError(t, err)
	self := newSelf()
	self.Init(owner)
	assert.Equal(t, []ability.Owner{owner}, self.CatchTargets(enemy, nil))

	newTarget, err := targeting.Create("target", nil, nil)
	require.NoError(t, err)
	target := newTarget()
	target.Init(owner)
	assert.Equal(t, []ability.Owner{enemy}, target.CatchTargets(enemy, nil))
	assert.Empty(t, target.CatchTargets(nil, nil))
}

func TestRadius(t *testing.T) {
	w, owner, ally, enemy := arena()

	tests := []struct {
		name   string
		params map[string]string
		target ability.Owner
		want   []ability.Owner
	}{
		{"around target", map[string]string{"range": "3"}, enemy, []ability.Owner{enemy}},
		{"no target falls back to owner", map[string]string{"range": "3"}, nil, []ability.Owner{owner, ally}},
		{"around owner", map[string]string{"range": "3", "around": "owner"}, enemy, []ability.Owner{owner, ally}},
		{"exclude owner", map[string]string{"range": "3", "around": "owner", "exclude_owner": "true"}, enemy, []ability.Owner{ally}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newRadius, err := targeting.Create("radius", tt.params, w)
			require.NoError(t, err)
			c := newRadius()
			c.Init(owner)
			assert.Equal(t, tt.want, c.CatchTargets(tt.target, make([]ability.Owner, 0, 4)))
		})
	}
}

func TestRadius_AppendsWithoutAllocating(t *testing.T) {
	w, owner, _, _ := arena()
	c := &targeting.Radius{Finder: w, Range: 3, ExcludeOwner: true}
	c.Init(owner)

	buf := make([]ability.Owner, 0, 8)
	allocs := testing.AllocsPerRun(100, func() {
		buf = c.CatchTargets(nil, buf[:0])
	})
	assert.Zero(t, allocs)
	assert.Len(t, buf, 1)
}

func TestCreate_Errors(t *testing.T) {
	_, err := targeting.Create("cone", nil, nil)
	assert.ErrorContains(t, err, "unknown target catcher")

	_, err = targeting.Create("radius", map[string]string{"range": "far"}, nil)
	assert.ErrorContains(t, err, "range")

	_, err = targeting.Create("radius", map[string]string{"range": "3"}, nil)
	assert.ErrorContains(t, err, "finder")
}

func TestCreate_FreshInstances(t *testing.T) {
	w, owner, ally, _ := arena()
	newSelf, err := targeting.Create("self", nil, w)
	require.NoError(t, err)

	a, b := newSelf(), newSelf()
	a.Init(owner)
	b.Init(ally)
	assert.Equal(t, []ability.Owner{owner}, a.CatchTargets(nil, nil))
	assert.Equal(t, []ability.Owner{ally}, b.CatchTargets(nil, nil))
}
