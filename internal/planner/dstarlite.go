package planner

import (
	"math"

	"github.com/mayB1998/Motion-Planning/internal/geom"
	"github.com/mayB1998/Motion-Planning/internal/grid"
	"github.com/mayB1998/Motion-Planning/internal/logging"
	"github.com/mayB1998/Motion-Planning/internal/planerr"
	"github.com/mayB1998/Motion-Planning/internal/search"
)

// DStarLite is LPA* with start and goal swapped so the search tree is
// rooted at the goal: as the robot's effective start advances, an
// accumulator km is added to every heuristic term to preserve key
// monotonicity without re-keying the whole open list. It is built from
// the same shared helpers as LPAStar rather than embedding it, since
// the role swap and the extra +km term make the two key formulas
// differ.
type DStarLite struct {
	g   *grid.Grid
	log *logging.Logger

	arena *search.Arena
	open  *search.OpenList

	// rootID is the search root: the goal, held fixed for the mission.
	rootID int
	// currentID is the robot's current position, which advances
	// between SimulateUpdate calls.
	currentID int
	km        float64

	iterCap     int
	capExceeded bool

	lastPath  Path
	lastValid bool
}

// DStarOption configures a DStarLite planner.
type DStarOption func(*DStarLite)

// WithDStarLogger attaches a structured logger.
func WithDStarLogger(log *logging.Logger) DStarOption {
	return func(d *DStarLite) { d.log = log }
}

// WithDStarIterCap overrides the per-call ComputeShortestPath iteration
// cap. Exceeding it stops the search early; ReturnPath still returns the
// best path found so far, but ReturnValid reports false.
func WithDStarIterCap(cap int) DStarOption {
	return func(d *DStarLite) { d.iterCap = cap }
}

// defaultIterCap bounds a single ComputeShortestPath call against an
// unbounded spin when occupancy updates keep invalidating the open list.
const defaultIterCap = 200000

// NewDStarLite returns a D* Lite planner over g.
func NewDStarLite(g *grid.Grid, opts ...DStarOption) *DStarLite {
	d := &DStarLite{g: g, log: logging.NewNop(), iterCap: defaultIterCap}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Initialize inserts the goal (acting as the reversed start) into the
// open list, zeroes km, and records last = start.
func (d *DStarLite) Initialize(start, goal geom.Vector2D) error {
	startIdx := d.g.IndexOf(start)
	goalIdx := d.g.IndexOf(goal)
	if !d.g.InBounds(startIdx) || !d.g.InBounds(goalIdx) {
		return planerr.New(planerr.OutOfBounds, "start or goal outside grid")
	}

	w, h := d.g.Dimensions()
	d.arena = search.NewArena(w * h)
	d.open = search.NewOpenList(lpaLess)

	d.rootID = cellID(d.g, goalIdx)
	d.currentID = cellID(d.g, startIdx)
	d.km = 0

	root := d.arena.Get(d.rootID)
	root.RHS = 0
	k1, k2 := d.calcKey(d.rootID)
	root.Key1, root.Key2 = k1, k2
	d.open.Insert(root)

	d.log.Debugw("dstarlite initialized", "start", startIdx, "goal", goalIdx)
	return nil
}

// calcKey computes key(s) = (min(g,rhs) + h(s, current_start) + km,
// min(g,rhs)), h measured from s to the robot's current position
// rather than to the search root.
func (d *DStarLite) calcKey(id int) (float64, float64) {
	n := d.arena.Get(id)
	m := math.Min(n.GCost, n.RHS)
	currentCenter := d.g.CellAt(idToCell(d.g, d.currentID)).Center
	return m + heuristic(d.g.CellAt(idToCell(d.g, id)).Center, currentCenter) + d.km, m
}

func (d *DStarLite) neighborIDs(id int) []int {
	idx := idToCell(d.g, id)
	nbs := gridNeighbors(d.g, idx)
	out := make([]int, len(nbs))
	for i, nb := range nbs {
		out[i] = cellID(d.g, nb)
	}
	return out
}

// UpdateCell recomputes rhs(s) from its neighbours (predecessors on
// the undirected grid), exactly as LPAStar.UpdateCell but rooted at
// the goal instead of the start.
func (d *DStarLite) UpdateCell(id int) {
	if id != d.rootID {
		idx := idToCell(d.g, id)
		best := math.Inf(1)
		for _, nbID := range d.neighborIDs(id) {
			nbIdx := idToCell(d.g, nbID)
			cost := d.g.StepCost(nbIdx, idx)
			cand := d.arena.Get(nbID).GCost + cost
			if cand < best {
				best = cand
			}
		}
		d.arena.Get(id).RHS = best
	}

	n := d.arena.Get(id)
	d.open.Remove(n)
	if !geom.EqualWithinAbs(n.GCost, n.RHS, keyTol) {
		n.Key1, n.Key2 = d.calcKey(id)
		d.open.Insert(n)
	}
}

// ComputeShortestPath mirrors LPAStar.ComputeShortestPath with the
// termination test keyed to the robot's current position rather than
// a fixed goal. It is bounded by iterCap: exceeding it stops the search
// with whatever g/rhs values have been settled so far, and ReturnPath's
// validity flag reflects that the search did not converge.
func (d *DStarLite) ComputeShortestPath() {
	d.capExceeded = false
	for iters := 0; ; iters++ {
		if iters >= d.iterCap {
			d.capExceeded = true
			d.log.Debugw("dstarlite hit iteration cap", "cap", d.iterCap)
			break
		}

		top := d.open.PeekMin()
		cur := d.arena.Get(d.currentID)
		ck1, ck2 := d.calcKey(d.currentID)

		curConsistent := geom.EqualWithinAbs(cur.GCost, cur.RHS, keyTol)
		if top == nil {
			break
		}
		if !keyLess(top.Key1, top.Key2, ck1, ck2) && curConsistent {
			break
		}

		u := d.open.PopMin()
		if u.GCost > u.RHS {
			u.GCost = u.RHS
			for _, pred := range d.neighborIDs(u.ID) {
				d.UpdateCell(pred)
			}
		} else {
			u.GCost = math.Inf(1)
			d.UpdateCell(u.ID)
			for _, pred := range d.neighborIDs(u.ID) {
				d.UpdateCell(pred)
			}
		}
	}
}

// SimulateUpdate advances the robot's position to newStart, accumulating
// km += h(last, s) where last is the position just left (preserving key
// monotonicity across the move without re-keying the whole open list),
// applies the batch of perceived-occupancy flips exactly as LPAStar
// does, then recomputes the shortest path.
func (d *DStarLite) SimulateUpdate(newStart geom.Vector2D, changedCells []grid.Cell) {
	newIdx := d.g.IndexOf(newStart)
	newID := cellID(d.g, newIdx)
	if newID != d.currentID {
		lastCenter := d.g.CellAt(idToCell(d.g, d.currentID)).Center
		newCenter := d.g.CellAt(newIdx).Center
		d.km += heuristic(lastCenter, newCenter)
		d.currentID = newID
	}

	for _, c := range changedCells {
		id := cellID(d.g, c.Index)
		d.UpdateCell(id)
		for _, nbID := range d.neighborIDs(id) {
			d.UpdateCell(nbID)
		}
	}
	d.ComputeShortestPath()
}

// ReturnPath traces forward from the robot's current position to the
// goal via the successor minimizing g(s') + cost(s, s'): the LPAStar
// backward trace reversed, since the search tree here is rooted at the
// goal instead of the start.
func (d *DStarLite) ReturnPath() Path {
	current := d.currentID
	var fwd []int
	seen := make(map[int]bool)
	valid := true

	for current != d.rootID {
		fwd = append(fwd, current)
		seen[current] = true

		idx := idToCell(d.g, current)
		best := math.Inf(1)
		bestID := -1
		for _, nbID := range d.neighborIDs(current) {
			if seen[nbID] {
				continue
			}
			nbIdx := idToCell(d.g, nbID)
			cand := d.arena.Get(nbID).GCost + d.g.StepCost(idx, nbIdx)
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
		fwd = append(fwd, d.rootID)
	}

	d.lastValid = valid && !d.capExceeded
	if !valid {
		d.lastPath = nil
		return nil
	}

	out := make(Path, len(fwd))
	for i, id := range fwd {
		out[i] = d.g.CellAt(idToCell(d.g, id)).Center
	}
	d.lastPath = out
	return out
}

// ReturnValid reports whether the last ReturnPath call reached goal
// and the last ComputeShortestPath finished within its iteration cap.
func (d *DStarLite) ReturnValid() bool { return d.lastValid }
