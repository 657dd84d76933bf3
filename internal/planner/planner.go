// Package planner implements the five planner families over a PRM or
// Grid map: A*, Theta*, LPA*, D* Lite, and Potential Field. Each type
// owns its search state for the duration it needs it (one query for
// A*/Theta*, the full mission for LPA*/D* Lite), built from the shared
// helpers in this file rather than an embedded base type, per the
// composition-over-inheritance redesign of the original's C++
// inheritance chain.
package planner

import (
	"math"

	"github.com/mayB1998/Motion-Planning/internal/geom"
	"github.com/mayB1998/Motion-Planning/internal/grid"
	"github.com/mayB1998/Motion-Planning/internal/prm"
)

// Path is an ordered sequence of waypoints from start to goal.
type Path []geom.Vector2D

// heuristic is the Euclidean-distance admissible heuristic every
// search-based planner in this package uses.
func heuristic(a, b geom.Vector2D) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// gridNeighbors returns the up-to-8 neighbour indices of idx.
func gridNeighbors(g *grid.Grid, idx grid.Index) []grid.Index {
	return g.Neighbors8(idx)
}

// cellID maps a grid index to its arena/node id, matching the
// row-major layout grid.Grid uses internally.
func cellID(g *grid.Grid, idx grid.Index) int {
	w, _ := g.Dimensions()
	return idx.J*w + idx.I
}

// idToCell is the inverse of cellID.
func idToCell(g *grid.Grid, id int) grid.Index {
	w, _ := g.Dimensions()
	return grid.Index{I: id % w, J: id / w}
}

// prmNeighbors returns the neighbour ids and edge costs of a PRM
// vertex, in arbitrary (map iteration) order.
func prmNeighbors(verts []prm.Vertex, id int) map[int]float64 {
	return verts[id].Neighbors
}
