package tag

// Counter is a reference-counted tag multiset.
// A tag stays in the resulting Set until every source that added it removed it.
type Counter struct {
	counts map[Tag]int
	set    Set
	dirty  bool
}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[Tag]int)}
}

// AddSet increments the count of every tag in s.
func (c *Counter) AddSet(s Set) {
	for _, t := range s.Tags() {
		c.counts[t]++
		if c.counts[t] == 1 {
			c.dirty = true
		}
	}
}

// RemoveSet decrements the count of every tag in s. Counts never go negative.
func (c *Counter) RemoveSet(s Set) {
	for _, t := range s.Tags() {
		n, ok := c.counts[t]
		if !ok {
			continue
		}
		if n <= 1 {
			delete(c.counts, t)
			c.dirty = true
			continue
		}
		c.counts[t] = n - 1
	}
}

// Count returns how many sources currently hold t.
func (c *Counter) Count(t Tag) int {
	return c.counts[t]
}

// Set returns a copy of the tags with a positive count.
func (c *Counter) Set() Set {
	if c.dirty {
		c.set = Set{}
		for t := range c.counts {
			c.set.Add(t)
		}
		c.dirty = false
	}
	return c.set.Clone()
}
