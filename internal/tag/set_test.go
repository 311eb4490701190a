package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_SameNameSameTag(t *testing.T) {
	a := Get("Test.Get.Same")
	b := Get("Test.Get.Same")

	assert.Equal(t, a, b)
	assert.Equal(t, "Test.Get.Same", a.Name())
	assert.Equal(t, None, Get(""))
}

func TestGet_RegistersParents(t *testing.T) {
	child := Get("Test.Parents.Leaf")

	parent, ok := Lookup("Test.Parents")
	require.True(t, ok)
	root, ok := Lookup("Test")
	require.True(t, ok)

	assert.Equal(t, []Tag{parent, root}, child.Parents())
	assert.True(t, child.IsChildOf(parent))
	assert.True(t, child.IsChildOf(root))
	assert.False(t, parent.IsChildOf(child))
}

func TestSet_HasAny(t *testing.T) {
	stun := Get("Test.Debuff.Stun")
	channel := Get("Test.Ability.Channel")

	s := NewSet(stun)

	assert.True(t, s.HasAny(NewSet(stun)))
	assert.True(t, s.HasAny(FromNames("Test.Debuff")), "parent query matches child tag")
	assert.False(t, s.HasAny(NewSet(channel)))
	assert.False(t, s.HasAny(Set{}), "empty query never matches")

	parentOnly := FromNames("Test.Debuff")
	assert.False(t, parentOnly.HasAny(NewSet(stun)), "child query does not match parent tag")
}

func TestSet_HasAll(t *testing.T) {
	s := FromNames("Test.All.A", "Test.All.B")

	assert.True(t, s.HasAll(Set{}))
	assert.True(t, s.HasAll(FromNames("Test.All.A")))
	assert.True(t, s.HasAll(FromNames("Test.All.A", "Test.All.B")))
	assert.False(t, s.HasAll(FromNames("Test.All.A", "Test.All.C")))
}

func TestSet_RemoveRebuildsParents(t *testing.T) {
	a := Get("Test.Remove.A")
	b := Get("Test.Remove.B")
	parent := Get("Test.Remove")

	s := NewSet(a, b)
	s.Remove(a)
	assert.True(t, s.Has(parent), "B still implies parent")
	assert.False(t, s.HasExact(a))

	s.Remove(b)
	assert.False(t, s.Has(parent))
	assert.True(t, s.IsEmpty())
}

func TestSet_LargeIdentities(t *testing.T) {
	var tags []Tag
	for i := 0; i < 200; i++ {
		tags = append(tags, Get("Test.Large."+string(rune('a'+i%26))+string(rune('a'+i/26))))
	}
	s := NewSet(tags...)

	assert.Equal(t, len(tags), s.Len())
	last := NewSet(tags[len(tags)-1])
	assert.True(t, s.HasAny(last))
	assert.True(t, last.HasAny(s))
}

func TestSet_UnionDoesNotAlias(t *testing.T) {
	a := FromNames("Test.Union.A")
	b := FromNames("Test.Union.B")

	u := a.Union(b)
	u.Add(Get("Test.Union.C"))

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 3, u.Len())
}

func TestCounter(t *testing.T) {
	c := NewCounter()
	s := FromNames("Test.Counter.X")

	c.AddSet(s)
	c.AddSet(s)
	assert.Equal(t, 2, c.Count(Get("Test.Counter.X")))
	assert.True(t, c.Set().HasAny(s))

	c.RemoveSet(s)
	assert.True(t, c.Set().HasAny(s), "one source still holds the tag")

	c.RemoveSet(s)
	c.RemoveSet(s)
	assert.False(t, c.Set().HasAny(s))
	assert.Equal(t, 0, c.Count(Get("Test.Counter.X")))
}

func TestCounter_SetIsACopy(t *testing.T) {
	c := NewCounter()
	held := FromNames("Test.Counter.Held")
	c.AddSet(held)

	got := c.Set()
	got.Remove(Get("Test.Counter.Held"))
	got.Add(Get("Test.Counter.Intruder"))

	assert.True(t, c.Set().HasAny(held))
	assert.False(t, c.Set().Has(Get("Test.Counter.Intruder")))
}
