package tag

import (
	"math/bits"
	"strings"
)

// Set is a bitset of tags.
//
// Two bitsets are kept: explicit holds the tags that were added, implied holds
// those tags plus all of their ancestors. A query tag matches the set when it is
// present in implied, so {State.Debuff.Stun} matches a query for State.Debuff.
//
// The zero Set is empty and ready to use. Copies share storage: Clone before
// mutating a set obtained from someone else.
type Set struct {
	explicit []uint64
	implied  []uint64
}

// NewSet builds a Set from tags. None entries are ignored.
func NewSet(tags ...Tag) Set {
	var s Set
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

// FromNames builds a Set from dotted tag names, registering unknown names.
func FromNames(names ...string) Set {
	var s Set
	for _, n := range names {
		s.Add(Get(n))
	}
	return s
}

// Add inserts t.
func (s *Set) Add(t Tag) {
	if t == None {
		return
	}
	s.explicit = setBit(s.explicit, t)
	s.implied = setBit(s.implied, t)
	for _, p := range t.Parents() {
		s.implied = setBit(s.implied, p)
	}
}

// Remove deletes t and recomputes the implied ancestors.
func (s *Set) Remove(t Tag) {
	if !hasBit(s.explicit, t) {
		return
	}
	clearBit(s.explicit, t)
	s.rebuildImplied()
}

func (s *Set) rebuildImplied() {
	clear(s.implied)
	for _, t := range s.Tags() {
		s.implied = setBit(s.implied, t)
		for _, p := range t.Parents() {
			s.implied = setBit(s.implied, p)
		}
	}
}

// Has reports whether t (or a descendant of t) is in the set.
func (s Set) Has(t Tag) bool {
	return t != None && hasBit(s.implied, t)
}

// HasExact reports whether t itself was added.
func (s Set) HasExact(t Tag) bool {
	return t != None && hasBit(s.explicit, t)
}

// HasAny reports whether any tag of query matches the set.
// An empty query never matches.
func (s Set) HasAny(query Set) bool {
	n := min(len(s.implied), len(query.explicit))
	for i := 0; i < n; i++ {
		if s.implied[i]&query.explicit[i] != 0 {
			return true
		}
	}
	return false
}

// HasAll reports whether every tag of query matches the set.
// An empty query always matches.
func (s Set) HasAll(query Set) bool {
	for i, w := range query.explicit {
		var have uint64
		if i < len(s.implied) {
			have = s.implied[i]
		}
		if w&^have != 0 {
			return false
		}
	}
	return true
}

// Union returns a new set holding the tags of both s and other.
func (s Set) Union(other Set) Set {
	out := s.Clone()
	out.AddSet(other)
	return out
}

// AddSet inserts every tag of other.
func (s *Set) AddSet(other Set) {
	if len(other.explicit) > len(s.explicit) {
		s.explicit = grow(s.explicit, len(other.explicit))
	}
	if len(other.implied) > len(s.implied) {
		s.implied = grow(s.implied, len(other.implied))
	}
	for i, w := range other.explicit {
		s.explicit[i] |= w
	}
	for i, w := range other.implied {
		s.implied[i] |= w
	}
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	return Set{
		explicit: append([]uint64(nil), s.explicit...),
		implied:  append([]uint64(nil), s.implied...),
	}
}

// Clear empties the set, keeping its storage.
func (s *Set) Clear() {
	clear(s.explicit)
	clear(s.implied)
}

// IsEmpty reports whether no tag was added.
func (s Set) IsEmpty() bool {
	for _, w := range s.explicit {
		if w != 0 {
			return false
		}
	}
	return true
}

// Len returns the number of explicit tags.
func (s Set) Len() int {
	n := 0
	for _, w := range s.explicit {
		n += bits.OnesCount64(w)
	}
	return n
}

// Tags returns the explicit tags in ascending identity order.
func (s Set) Tags() []Tag {
	out := make([]Tag, 0, s.Len())
	for i, w := range s.explicit {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, Tag(i*64+b))
			w &^= 1 << b
		}
	}
	return out
}

func (s Set) String() string {
	tags := s.Tags()
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name()
	}
	return "{" + strings.Join(names, ", ") + "}"
}

func setBit(words []uint64, t Tag) []uint64 {
	i := int(t) / 64
	if i >= len(words) {
		words = grow(words, i+1)
	}
	words[i] |= 1 << (uint(t) % 64)
	return words
}

func clearBit(words []uint64, t Tag) {
	i := int(t) / 64
	if i < len(words) {
		words[i] &^= 1 << (uint(t) % 64)
	}
}

func hasBit(words []uint64, t Tag) bool {
	i := int(t) / 64
	return i < len(words) && words[i]&(1<<(uint(t)%64)) != 0
}

func grow(words []uint64, n int) []uint64 {
	if n <= len(words) {
		return words
	}
	out := make([]uint64, n)
	copy(out, words)
	return out
}
