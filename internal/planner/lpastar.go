package planner

import (
	"math"

	"github.com/mayB1998/Motion-Planning/internal/geom"
	"github.com/mayB1998/Motion-Planning/internal/grid"
	"github.com/mayB1998/Motion-Planning/internal/logging"
	"github.com/mayB1998/Motion-Planning/internal/planerr"
	"github.com/mayB1998/Motion-Planning/internal/search"
)

// keyTol is the absolute tolerance used to compare LPA*/D* Lite keys:
// key1 is compared with absolute tolerance, and ties are broken on the
// smaller key2.
const keyTol = 1e-9

// keyLess reports whether key (k1a, k2a) sorts strictly before
// (k1b, k2b): k1 compared with absolute tolerance, ties broken on k2.
func keyLess(k1a, k2a, k1b, k2b float64) bool {
	if !geom.EqualWithinAbs(k1a, k1b, keyTol) {
		return k1a < k1b
	}
	return k2a < k2b
}

func lpaLess(a, b *search.Node) bool {
	return keyLess(a.Key1, a.Key2, b.Key1, b.Key2)
}

// LPAStar is Lifelong Planning A*: an incremental grid planner that
// reuses search state across a mission, reacting to a stream of
// cell-occupancy updates instead of replanning from scratch. It owns
// its open list and node arena for the full mission, not one query.
type LPAStar struct {
	g    *grid.Grid
	log  *logging.Logger
	arena *search.Arena
	open  *search.OpenList

	startIdx, goalIdx grid.Index
	startID, goalID   int

	iterCap     int
	capExceeded bool

	lastPath  Path
	lastValid bool
}

// LPAOption configures an LPAStar planner.
type LPAOption func(*LPAStar)

// WithLPALogger attaches a structured logger.
func WithLPALogger(log *logging.Logger) LPAOption {
	return func(l *LPAStar) { l.log = log }
}

// WithLPAIterCap overrides the per-call ComputeShortestPath iteration
// cap. Exceeding it stops the search early; ReturnPath still returns the
// best path found so far, but ReturnValid reports false.
func WithLPAIterCap(cap int) LPAOption {
	return func(l *LPAStar) { l.iterCap = cap }
}

// NewLPAStar returns an LPA* planner over g. Call Initialize before
// ComputeShortestPath.
func NewLPAStar(g *grid.Grid, opts ...LPAOption) *LPAStar {
	l := &LPAStar{g: g, log: logging.NewNop(), iterCap: defaultIterCap}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Initialize sets up the search over the current perceived grid:
// rhs(start) = 0, start inserted into the open list with its key. The
// perceived grid itself lives in the Grid this planner was built on;
// Initialize does not duplicate it, since nothing mutates it except
// Grid.UpdateGrid, which the caller runs before passing the flipped
// cells to SimulateUpdate.
func (l *LPAStar) Initialize(start, goal geom.Vector2D) error {
	l.startIdx = l.g.IndexOf(start)
	l.goalIdx = l.g.IndexOf(goal)
	if !l.g.InBounds(l.startIdx) || !l.g.InBounds(l.goalIdx) {
		return planerr.New(planerr.OutOfBounds, "start or goal outside grid")
	}

	w, h := l.g.Dimensions()
	n := w * h
	l.arena = search.NewArena(n)
	l.open = search.NewOpenList(lpaLess)

	l.startID = cellID(l.g, l.startIdx)
	l.goalID = cellID(l.g, l.goalIdx)

	startNode := l.arena.Get(l.startID)
	startNode.RHS = 0
	k1, k2 := l.calcKey(l.startID)
	startNode.Key1, startNode.Key2 = k1, k2
	l.open.Insert(startNode)

	l.log.Debugw("lpastar initialized", "start", l.startIdx, "goal", l.goalIdx)
	return nil
}

// calcKey computes key(s) = (min(g,rhs) + h(s,goal), min(g,rhs)).
func (l *LPAStar) calcKey(id int) (float64, float64) {
	n := l.arena.Get(id)
	m := math.Min(n.GCost, n.RHS)
	goalCenter := l.g.CellAt(l.goalIdx).Center
	return m + heuristic(l.g.CellAt(idToCell(l.g, id)).Center, goalCenter), m
}

// neighborIDs returns the node ids of id's up-to-8 grid neighbours.
func (l *LPAStar) neighborIDs(id int) []int {
	idx := idToCell(l.g, id)
	nbs := gridNeighbors(l.g, idx)
	out := make([]int, len(nbs))
	for i, nb := range nbs {
		out[i] = cellID(l.g, nb)
	}
	return out
}

// UpdateCell recomputes rhs(s) from its predecessors (the grid is
// undirected, so predecessors == neighbours) and reinserts s into the
// open list if it is now locally inconsistent.
func (l *LPAStar) UpdateCell(id int) {
	if id != l.startID {
		idx := idToCell(l.g, id)
		best := math.Inf(1)
		for _, nbID := range l.neighborIDs(id) {
			nbIdx := idToCell(l.g, nbID)
			cost := l.g.StepCost(nbIdx, idx)
			cand := l.arena.Get(nbID).GCost + cost
			if cand < best {
				best = cand
			}
		}
		l.arena.Get(id).RHS = best
	}

	n := l.arena.Get(id)
	l.open.Remove(n)
	if !geom.EqualWithinAbs(n.GCost, n.RHS, keyTol) {
		n.Key1, n.Key2 = l.calcKey(id)
		l.open.Insert(n)
	}
}

// ComputeShortestPath processes the open list until its minimum key is
// not smaller than key(goal) and rhs(goal) = g(goal). It is bounded by
// iterCap: exceeding it stops the search with whatever g/rhs values have
// been settled so far, and ReturnPath's validity flag reflects that the
// search did not converge.
func (l *LPAStar) ComputeShortestPath() {
	l.capExceeded = false
	for iters := 0; ; iters++ {
		if iters >= l.iterCap {
			l.capExceeded = true
			l.log.Debugw("lpastar hit iteration cap", "cap", l.iterCap)
			break
		}

		top := l.open.PeekMin()
		goalNode := l.arena.Get(l.goalID)
		gk1, gk2 := l.calcKey(l.goalID)

		goalConsistent := geom.EqualWithinAbs(goalNode.GCost, goalNode.RHS, keyTol)
		if top == nil {
			break
		}
		if !keyLess(top.Key1, top.Key2, gk1, gk2) && goalConsistent {
			break
		}

		u := l.open.PopMin()
		if u.GCost > u.RHS {
			u.GCost = u.RHS
			for _, succ := range l.neighborIDs(u.ID) {
				l.UpdateCell(succ)
			}
		} else {
			u.GCost = math.Inf(1)
			l.UpdateCell(u.ID)
			for _, succ := range l.neighborIDs(u.ID) {
				l.UpdateCell(succ)
			}
		}
	}
}

// SimulateUpdate applies a batch of perceived-occupancy flips (as
// produced by grid.Grid.UpdateGrid): for each changed cell, the cell
// and its 8 neighbours have their edge costs recomputed via UpdateCell,
// then ComputeShortestPath brings g/rhs back into agreement.
func (l *LPAStar) SimulateUpdate(changedCells []grid.Cell) {
	for _, c := range changedCells {
		id := cellID(l.g, c.Index)
		l.UpdateCell(id)
		for _, nbID := range l.neighborIDs(id) {
			l.UpdateCell(nbID)
		}
	}
	l.ComputeShortestPath()
}

// ReturnPath extracts the path from start to goal by repeatedly moving
// from goal to the predecessor minimizing g(s') + cost(s', current).
// If no finite predecessor exists before reaching start, the path is
// flagged invalid via ReturnValid.
func (l *LPAStar) ReturnPath() Path {
	current := l.goalID
	var rev []int
	seen := make(map[int]bool)
	valid := true

	for current != l.startID {
		rev = append(rev, current)
		seen[current] = true

		idx := idToCell(l.g, current)
		best := math.Inf(1)
		bestID := -1
		for _, nbID := range l.neighborIDs(current) {
			if seen[nbID] {
				continue
			}
			nbIdx := idToCell(l.g, nbID)
			cand := l.arena.Get(nbID).GCost + l.g.StepCost(nbIdx, idx)
			if cand < best {
				best = cand
				bestID = nbID
			}
		}
		if bestID == -1 || math.IsInf(best, 1) {
			valid = false
			break
		}
		current = bestID
	}
	if valid {
		rev = append(rev, l.startID)
	}

	l.lastValid = valid && !l.capExceeded
	if !valid {
		l.lastPath = nil
		return nil
	}

	out := make(Path, len(rev))
	for i, id := range rev {
		out[len(rev)-1-i] = l.g.CellAt(idToCell(l.g, id)).Center
	}
	l.lastPath = out
	return out
}

// ReturnValid reports whether the last ReturnPath call reached start
// and the last ComputeShortestPath finished within its iteration cap.
func (l *LPAStar) ReturnValid() bool { return l.lastValid }
