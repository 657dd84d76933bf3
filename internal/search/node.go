// Package search provides the arena-indexed search node and open-list
// priority queue shared by every planner (A*, Theta*, LPA*, D* Lite).
// Nodes live in a flat array and reference each other by integer id,
// never by pointer, so the same machinery serves both PRM vertices and
// grid cells.
package search

import "math"

// State classifies a node's membership in the search frontier.
type State int

const (
	// New: never seen by the search.
	New State = iota
	// Open: in the open list, locally inconsistent or on the frontier.
	Open
	// Closed: expanded (A*/Theta* only; LPA*/D* Lite only use
	// Open/New since a node can re-enter the frontier after closing).
	Closed
)

// Node is one search node in the arena. Not every field is used by
// every planner: GCost/HCost/FCost/ParentID/State drive A* and Theta*;
// RHS/Key1/Key2 drive LPA* and D* Lite. The planners identify the
// underlying map element by the node's ID (PRM vertex id, or row-major
// grid cell id); of VertexID/CellI/CellJ only VertexID is filled in,
// by A*'s PRM plan, and the others keep their NewNode defaults.
type Node struct {
	ID       int
	ParentID int // -1 if none

	GCost float64
	HCost float64
	FCost float64

	RHS  float64
	Key1 float64
	Key2 float64

	State State

	VertexID  int // PRM vertex id, or -1
	CellI     int // grid cell column, meaningful when CellJ >= 0
	CellJ     int // grid cell row, or -1 when not set

	heapIndex int
}

// NewNode returns a fresh, unvisited node for arena slot id.
func NewNode(id int) *Node {
	inf := math.Inf(1)
	return &Node{
		ID:        id,
		ParentID:  -1,
		GCost:     inf,
		HCost:     0,
		FCost:     inf,
		RHS:       inf,
		Key1:      inf,
		Key2:      inf,
		State:     New,
		VertexID:  -1,
		CellJ:     -1,
		heapIndex: -1,
	}
}
