package planner

import (
	"github.com/mayB1998/Motion-Planning/internal/geom"
	"github.com/mayB1998/Motion-Planning/internal/logging"
	"github.com/mayB1998/Motion-Planning/internal/obstacle"
	"github.com/mayB1998/Motion-Planning/internal/planerr"
	"github.com/mayB1998/Motion-Planning/internal/prm"
	"github.com/mayB1998/Motion-Planning/internal/search"
)

// ThetaStar is A* with an any-angle relaxation: when considering edge
// (s, s'), if s's parent has line-of-sight to s', s' may inherit that
// parent directly instead of routing through s. PRM-only: a grid's
// collision model has no meaningful "line of sight" shortcut beyond
// what the 8-neighbour connectivity already offers.
type ThetaStar struct {
	log *logging.Logger
}

// ThetaOption configures a ThetaStar planner.
type ThetaOption func(*ThetaStar)

// WithThetaLogger attaches a structured logger.
func WithThetaLogger(log *logging.Logger) ThetaOption {
	return func(t *ThetaStar) { t.log = log }
}

// NewThetaStar returns a ready-to-use Theta* planner.
func NewThetaStar(opts ...ThetaOption) *ThetaStar {
	t := &ThetaStar{log: logging.NewNop()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// PlanPRM runs Theta* over a PRM, temporarily splicing start and goal
// into the roadmap.
func (t *ThetaStar) PlanPRM(p *prm.PRM, start, goal geom.Vector2D, k int) (Path, error) {
	startID, err := p.AttachTemp(start, k)
	if err != nil {
		return nil, err
	}
	defer p.DetachTemp(startID)
	if start.AlmostEqual(goal, geom.Epsilon) {
		return Path{start}, nil
	}
	goalID, err := p.AttachTemp(goal, k)
	if err != nil {
		return nil, err
	}
	defer p.DetachTemp(goalID)

	verts := p.ReturnPRM()
	arena := search.NewArena(len(verts))

	goalPos := verts[goalID].Coords
	path, ok := runThetaStar(arena, verts, p.Inflated(), startID, goalID,
		func(id int) float64 { return heuristic(verts[id].Coords, goalPos) },
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

func runThetaStar(arena *search.Arena, verts []prm.Vertex, inflated []geom.Polygon, startID, goalID int, h func(int) float64) ([]int, bool) {
	open := search.NewOpenList(astarLess)

	start := arena.Get(startID)
	start.ParentID = startID // Theta* treats the start as its own parent, per the standard formulation
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
			return reconstructTheta(arena, startID, goalID), true
		}

		parent := u.ParentID
		for nbID, cost := range prmNeighbors(verts, u.ID) {
			v := arena.Get(nbID)
			if v.State == search.Closed {
				continue
			}

			// Path 2: try inheriting the grandparent directly (any-angle
			// shortcut) if it has line-of-sight to the neighbour.
			if !obstacle.SegmentBlocked(inflated, verts[parent].Coords, verts[nbID].Coords) {
				tentative := arena.Get(parent).GCost + prm.Euclidean(verts[parent].Coords, verts[nbID].Coords)
				if tentative < v.GCost {
					v.ParentID = parent
					v.GCost = tentative
					v.HCost = h(nbID)
					v.FCost = v.GCost + v.HCost
					if v.State == search.Open {
						open.Fix(v)
					} else {
						open.Insert(v)
					}
					continue
				}
			}

			// Path 1: standard A* relaxation via u.
			tentative := u.GCost + cost
			if tentative < v.GCost {
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
	}
	return nil, false
}

func reconstructTheta(arena *search.Arena, startID, goalID int) []int {
	var rev []int
	id := goalID
	for {
		rev = append(rev, id)
		if id == startID {
			break
		}
		id = arena.Get(id).ParentID
	}
	out := make([]int, len(rev))
	for i, id := range rev {
		out[len(rev)-1-i] = id
	}
	return out
}
