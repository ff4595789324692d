package goap

import "github.com/emirpasic/gods/queues/priorityqueue"

type openEntry struct {
	cost  int
	seq   uint64
	index nodeIndex
}

// openSet is the search frontier: least accumulated cost first, and first pushed
// first among equal costs.
type openSet struct {
	q   *priorityqueue.Queue
	seq uint64
}

func newOpenSet() *openSet {
	return &openSet{q: priorityqueue.NewWith(byCostThenSeq)}
}

func byCostThenSeq(a, b interface{}) int {
	ea, eb := a.(openEntry), b.(openEntry)
	switch {
	case ea.cost < eb.cost:
		return -1
	case ea.cost > eb.cost:
		return 1
	case ea.seq < eb.seq:
		return -1
	case ea.seq > eb.seq:
		return 1
	default:
		return 0
	}
}

func (o *openSet) push(index nodeIndex, cost int) {
	o.q.Enqueue(openEntry{cost: cost, seq: o.seq, index: index})
	o.seq++
}

func (o *openSet) pop() (openEntry, bool) {
	v, ok := o.q.Dequeue()
	if !ok {
		return openEntry{}, false
	}
	return v.(openEntry), true
}

func (o *openSet) len() int {
	return o.q.Size()
}
