package goap

import "sync/atomic"

// nodeID indexes a node inside a nodeArena.
type nodeID int32

const noNode nodeID = -1

// node is one search state: the facts still required, the action that led
// here from the parent, and the A* costs.
type node struct {
	requires requirementSet
	action   Action
	parent   nodeID
	g        int
	h        int
	f        int
}

// nodeArena owns every node created during one Plan call. Nodes refer to each
// other by index, and the whole arena is released at once when the search
// ends, whether the node was expanded, pruned to a dead end or still waiting
// in the open set.
type nodeArena struct {
	nodes []node
	live  *atomic.Int64
}

func newNodeArena(live *atomic.Int64) *nodeArena {
	return &nodeArena{
		nodes: make([]node, 0, 64),
		live:  live,
	}
}

func (a *nodeArena) alloc(n node) nodeID {
	a.nodes = append(a.nodes, n)
	a.live.Add(1)
	return nodeID(len(a.nodes) - 1)
}

func (a *nodeArena) get(id nodeID) *node {
	return &a.nodes[id]
}

func (a *nodeArena) len() int {
	return len(a.nodes)
}

// release frees every node and returns how many were freed.
func (a *nodeArena) release() int {
	n := len(a.nodes)
	clear(a.nodes)
	a.nodes = a.nodes[:0]
	a.live.Add(-int64(n))
	return n
}

// openSet is a min-heap of node ids ordered by f. Equal f pops in insertion
// order, which is the id order of the arena.
type openSet struct {
	arena *nodeArena
	ids   []nodeID
}

func (o *openSet) Len() int { return len(o.ids) }

func (o *openSet) Less(i, j int) bool {
	a, b := o.arena.get(o.ids[i]), o.arena.get(o.ids[j])
	if a.f != b.f {
		return a.f < b.f
	}
	return o.ids[i] < o.ids[j]
}

func (o *openSet) Swap(i, j int) {
	o.ids[i], o.ids[j] = o.ids[j], o.ids[i]
}

func (o *openSet) Push(x interface{}) {
	o.ids = append(o.ids, x.(nodeID))
}

func (o *openSet) Pop() interface{} {
	old := o.ids
	n := len(old)
	id := old[n-1]
	o.ids = old[0 : n-1]
	return id
}

// requirementSet is the set of fact names a node still needs to become true.
// It keeps insertion order so searches are reproducible; it is never mutated
// after the node holding it is created.
type requirementSet []string

func newRequirementSet(names []string) requirementSet {
	return requirementSet(uniqueNames(names))
}

func (r requirementSet) contains(name string) bool {
	for _, n := range r {
		if n == name {
			return true
		}
	}
	return false
}

// with returns a copy of r plus any names not already in it.
func (r requirementSet) with(names []string) requirementSet {
	out := make(requirementSet, len(r), len(r)+len(names))
	copy(out, r)
	for _, n := range names {
		if !out.contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// without returns a copy of r minus names.
func (r requirementSet) without(names []string) requirementSet {
	out := make(requirementSet, 0, len(r))
	for _, n := range r {
		drop := false
		for _, m := range names {
			if n == m {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, n)
		}
	}
	return out
}
