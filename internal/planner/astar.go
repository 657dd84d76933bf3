package planner

import (
	"github.com/mayB1998/Motion-Planning/internal/geom"
	"github.com/mayB1998/Motion-Planning/internal/grid"
	"github.com/mayB1998/Motion-Planning/internal/logging"
	"github.com/mayB1998/Motion-Planning/internal/planerr"
	"github.com/mayB1998/Motion-Planning/internal/prm"
	"github.com/mayB1998/Motion-Planning/internal/search"
)

// AStar is a single-shot best-first planner over either a PRM or a
// Grid. Open list is a min-heap ordered by (fcost, hcost); neighbours
// are PRM edges or the 8 grid neighbours with diagonal cost
// resolution*sqrt(2).
type AStar struct {
	log *logging.Logger
}

// Option configures an AStar planner.
type Option func(*AStar)

// WithLogger attaches a structured logger.
func WithLogger(log *logging.Logger) Option {
	return func(a *AStar) { a.log = log }
}

// NewAStar returns a ready-to-use A* planner.
func NewAStar(opts ...Option) *AStar {
	a := &AStar{log: logging.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func astarLess(a, b *search.Node) bool {
	if a.FCost != b.FCost {
		return a.FCost < b.FCost
	}
	return a.HCost < b.HCost
}

// PlanPRM runs A* over a PRM, temporarily splicing start and goal into
// the roadmap.
func (a *AStar) PlanPRM(p *prm.PRM, start, goal geom.Vector2D, k int) (Path, error) {
	startID, err := p.AttachTemp(start, k)
	if err != nil {
		return nil, err
	}
	defer p.DetachTemp(startID)
	goalID, err := p.AttachTemp(goal, k)
	if err != nil {
		return nil, err
	}
	defer p.DetachTemp(goalID)

	verts := p.ReturnPRM()
	arena := search.NewArena(len(verts))
	for i, v := range verts {
		arena.Get(i).VertexID = v.ID
	}

	goalPos := verts[goalID].Coords
	path, ok := runAStar(arena, startID, goalID, len(verts),
		func(id int) float64 { return heuristic(verts[id].Coords, goalPos) },
		func(id int) map[int]float64 { return prmNeighbors(verts, id) },
	)
	if !ok {
		return nil, planerr.New(planerr.Infeasible, "no path found on PRM")
	}

	out := make(Path, len(path))
	for i, id := range path {
		out[i] = verts[id].Coords
	}
	return out, nil
}

// PlanGrid runs A* over a Grid's true occupancy (A* plans with full
// information, unlike the incremental planners which reason over the
// perceived grid).
func (a *AStar) PlanGrid(g *grid.Grid, start, goal geom.Vector2D) (Path, error) {
	startIdx := g.IndexOf(start)
	goalIdx := g.IndexOf(goal)
	if !g.InBounds(startIdx) || !g.InBounds(goalIdx) {
		return nil, planerr.New(planerr.OutOfBounds, "start or goal outside grid")
	}

	w, h := g.Dimensions()
	n := w * h
	arena := search.NewArena(n)

	startID := cellID(g, startIdx)
	goalID := cellID(g, goalIdx)
	goalPos := g.CellAt(goalIdx).Center

	neighborsOf := func(id int) map[int]float64 {
		idx := idToCell(g, id)
		out := make(map[int]float64)
		for _, nb := range gridNeighbors(g, idx) {
			cost := g.TrueStepCost(idx, nb)
			if cost < infCutoff {
				out[cellID(g, nb)] = cost
			}
		}
		return out
	}

	path, ok := runAStar(arena, startID, goalID, n,
		func(id int) float64 { return heuristic(idToCell2Center(g, id), goalPos) },
		neighborsOf,
	)
	if !ok {
		return nil, planerr.New(planerr.Infeasible, "no path found on grid")
	}

	out := make(Path, len(path))
	for i, id := range path {
		out[i] = idToCell2Center(g, id)
	}
	return out, nil
}

func idToCell2Center(g *grid.Grid, id int) geom.Vector2D {
	return g.CellAt(idToCell(g, id)).Center
}

const infCutoff = 1e17

// runAStar is the shared best-first search loop used by both PlanPRM
// and PlanGrid: pop the minimum (fcost, hcost) node, relax its
// neighbours, stop when the goal is popped or the open list empties.
func runAStar(arena *search.Arena, startID, goalID, n int, h func(int) float64, neighborsOf func(int) map[int]float64) ([]int, bool) {
	open := search.NewOpenList(astarLess)

	start := arena.Get(startID)
	start.GCost = 0
	start.HCost = h(startID)
	start.FCost = start.HCost
	open.Insert(start)

	if startID == goalID {
		return []int{startID}, true
	}

	for open.Len() > 0 {
		u := open.PopMin()
		if u.State == search.Closed {
			continue
		}
		u.State = search.Closed

		if u.ID == goalID {
			return reconstruct(arena, goalID), true
		}

		for nbID, cost := range neighborsOf(u.ID) {
			v := arena.Get(nbID)
			if v.State == search.Closed {
				continue
			}
			tentative := u.GCost + cost
			if tentative >= v.GCost {
				continue
			}
			v.ParentID = u.ID
			v.GCost = tentative
			v.HCost = h(nbID)
			v.FCost = v.GCost + v.HCost
			if v.State == search.Open {
				open.Fix(v)
			} else {
				open.Insert(v)
			}
		}
	}
	return nil, false
}

// reconstruct follows ParentID from goal back to start and reverses.
func reconstruct(arena *search.Arena, goalID int) []int {
	var rev []int
	for id := goalID; id != -1; {
		rev = append(rev, id)
		id = arena.Get(id).ParentID
	}
	out := make([]int, len(rev))
	for i, id := range rev {
		out[len(rev)-1-i] = id
	}
	return out
}
