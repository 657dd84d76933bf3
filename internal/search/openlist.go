package search

import "container/heap"

// Less compares two nodes for open-list priority: it should return
// true if a must come out of the queue before b. A*/Theta* order on
// (FCost, HCost); LPA*/D* Lite order on (Key1, Key2), each matching
// the spec's lexicographic tie-break with absolute-tolerance
// comparisons left to the caller's key computation.
type Less func(a, b *Node) bool

// OpenList is an indexed min-heap of *Node, ordered by an injectable
// Less so the same structure backs A*'s fcost/hcost ordering and
// LPA*/D* Lite's key1/key2 ordering. It supports O(log n) push, pop,
// fix (after a key changes), and presence/removal by node id —
// membership the spec's UpdateCell needs ("remove s from the open
// list if present").
type OpenList struct {
	items []*Node
	index map[int]*Node
	less  Less
}

// NewOpenList creates an empty open list ordered by less.
func NewOpenList(less Less) *OpenList {
	return &OpenList{
		items: make([]*Node, 0),
		index: make(map[int]*Node),
		less:  less,
	}
}

func (q *OpenList) Len() int            { return len(q.items) }
func (q *OpenList) Less(i, j int) bool  { return q.less(q.items[i], q.items[j]) }
func (q *OpenList) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].heapIndex = i
	q.items[j].heapIndex = j
}

func (q *OpenList) Push(x any) {
	n := x.(*Node)
	n.heapIndex = len(q.items)
	q.items = append(q.items, n)
}

func (q *OpenList) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.heapIndex = -1
	q.items = old[0 : n-1]
	return item
}

// Insert pushes n onto the open list and marks it Open.
func (q *OpenList) Insert(n *Node) {
	n.State = Open
	heap.Push(q, n)
	q.index[n.ID] = n
}

// PopMin removes and returns the minimum node, or nil if empty.
func (q *OpenList) PopMin() *Node {
	if q.Len() == 0 {
		return nil
	}
	n := heap.Pop(q).(*Node)
	delete(q.index, n.ID)
	return n
}

// PeekMin returns the minimum node without removing it, or nil if
// empty.
func (q *OpenList) PeekMin() *Node {
	if q.Len() == 0 {
		return nil
	}
	return q.items[0]
}

// Contains reports whether n.ID is currently in the open list.
func (q *OpenList) Contains(id int) bool {
	_, ok := q.index[id]
	return ok
}

// Remove removes n from the open list if present, no-op otherwise.
func (q *OpenList) Remove(n *Node) {
	if n.heapIndex < 0 {
		return
	}
	heap.Remove(q, n.heapIndex)
	delete(q.index, n.ID)
}

// Fix re-establishes heap order for n after its key fields changed
// while it was already in the open list.
func (q *OpenList) Fix(n *Node) {
	if n.heapIndex < 0 {
		return
	}
	heap.Fix(q, n.heapIndex)
}

// Reset empties the open list.
func (q *OpenList) Reset() {
	q.items = q.items[:0]
	q.index = make(map[int]*Node)
}
