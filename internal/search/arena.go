package search

// Arena is a flat, preallocated array of search nodes, one per
// underlying map element (grid cell or PRM vertex), indexed by id.
// A* and Theta* allocate a fresh Arena for each plan call; LPA* and
// D* Lite allocate one at Initialize and keep it for the mission.
type Arena struct {
	nodes []*Node
}

// NewArena allocates n fresh nodes.
func NewArena(n int) *Arena {
	a := &Arena{nodes: make([]*Node, n)}
	a.Reset()
	return a
}

// Get returns the node at id.
func (a *Arena) Get(id int) *Node { return a.nodes[id] }

// Len returns the arena size.
func (a *Arena) Len() int { return len(a.nodes) }

// Reset reinitializes every node to its New state. NewArena calls it
// to populate the arena; incremental planners (LPA*/D* Lite) never
// call it mid-mission.
func (a *Arena) Reset() {
	for i := range a.nodes {
		a.nodes[i] = NewNode(i)
	}
}
