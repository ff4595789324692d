package goap

// nodeIndex addresses a node in an arena. Indices are only ever produced by
// arena.insert, so every parent link points at a node that exists.
type nodeIndex int

const noIndex nodeIndex = -1

const rootName = "root"

// node is one visited hypothetical state. It refers to its parent by index so the
// search graph never holds references back into itself.
type node struct {
	name   string
	facts  *Facts
	cost   int
	action int // index into Planner.actions, -1 for the root
	parent nodeIndex
}

// arena is the append-only store of nodes for a single goal search.
type arena struct {
	nodes []node
}

func newArena(capacity int) *arena {
	return &arena{nodes: make([]node, 0, capacity)}
}

func (a *arena) insert(n node) nodeIndex {
	a.nodes = append(a.nodes, n)
	return nodeIndex(len(a.nodes) - 1)
}

func (a *arena) at(i nodeIndex) *node {
	return &a.nodes[i]
}

func (a *arena) len() int {
	return len(a.nodes)
}

// path walks parent links from i back to the root and returns the producing
// action indices in execution order. The root contributes nothing.
func (a *arena) path(i nodeIndex) []int {
	var reversed []int
	for cur := i; cur != noIndex; cur = a.nodes[cur].parent {
		if n := a.nodes[cur]; n.action >= 0 {
			reversed = append(reversed, n.action)
		}
	}
	out := make([]int, len(reversed))
	for j, action := range reversed {
		out[len(reversed)-1-j] = action
	}
	return out
}
