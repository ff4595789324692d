package goap

// closedSet holds the fact stores already expanded during one goal search,
// bucketed by Hash and resolved with Equal.
type closedSet struct {
	buckets map[uint64][]*Facts
	size    int
}

func newClosedSet() *closedSet {
	return &closedSet{buckets: make(map[uint64][]*Facts)}
}

func (c *closedSet) contains(f *Facts) bool {
	for _, existing := range c.buckets[f.Hash()] {
		if existing.Equal(f) {
			return true
		}
	}
	return false
}

// insert adds f and reports whether it was new.
func (c *closedSet) insert(f *Facts) bool {
	h := f.Hash()
	for _, existing := range c.buckets[h] {
		if existing.Equal(f) {
			return false
		}
	}
	c.buckets[h] = append(c.buckets[h], f)
	c.size++
	return true
}
