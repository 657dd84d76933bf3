// Package prm builds a probabilistic roadmap: a graph of
// collision-free configurations connected by collision-free straight
// edges, sampled once and read-only for every subsequent plan.
package prm

import (
	"math"
	"math/rand"
	"sort"

	"github.com/mayB1998/Motion-Planning/internal/geom"
	"github.com/mayB1998/Motion-Planning/internal/logging"
	"github.com/mayB1998/Motion-Planning/internal/obstacle"
	"github.com/mayB1998/Motion-Planning/internal/planerr"
)

// Vertex is one PRM node: a collision-free configuration together
// with its symmetric neighbour set and the Euclidean cost of each
// incident edge.
type Vertex struct {
	ID        int
	Coords    geom.Vector2D
	Neighbors map[int]float64 // neighbour id -> edge cost
}

// PRM is the roadmap: a set of vertices built once over a bounded
// workspace dotted with obstacles.
type PRM struct {
	obstacles     []obstacle.Obstacle
	inflated      []geom.Polygon
	inflateRadius float64
	bounds        geom.Bounds
	rng           *rand.Rand
	log           *logging.Logger

	Nodes []Vertex
}

// Option configures a PRM at construction.
type Option func(*PRM)

// WithRand overrides the default (seed-0) random source used for
// rejection sampling, for deterministic tests that need a specific
// seed (e.g. the "PRM seed 42" end-to-end scenario).
func WithRand(rng *rand.Rand) Option {
	return func(p *PRM) { p.rng = rng }
}

// WithLogger attaches a structured logger.
func WithLogger(log *logging.Logger) Option {
	return func(p *PRM) { p.log = log }
}

// New creates an empty PRM over the given obstacles, inflation
// radius, and workspace bounds.
func New(obstacles []obstacle.Obstacle, inflateRadius float64, bounds geom.Bounds, opts ...Option) *PRM {
	p := &PRM{
		obstacles:     obstacles,
		inflated:      obstacle.InflateAll(obstacles, inflateRadius),
		inflateRadius: inflateRadius,
		bounds:        bounds,
		rng:           rand.New(rand.NewSource(0)),
		log:           logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Bounds returns the workspace bounds this PRM samples within.
func (p *PRM) Bounds() geom.Bounds { return p.bounds }

// Inflated returns the inflated obstacle polygons backing every
// collision check this PRM performs.
func (p *PRM) Inflated() []geom.Polygon { return p.inflated }

// BuildMap rejection-samples n collision-free configurations at least
// thresh apart, then connects each to its k nearest neighbours with a
// collision-free straight edge. The resulting graph may be
// disconnected; feasibility between any given start/goal pair is a
// property of the samples, not a guarantee this call makes.
func (p *PRM) BuildMap(n, k int, thresh float64) error {
	p.Nodes = make([]Vertex, 0, n)

	for len(p.Nodes) < n {
		cand := geom.Vector2D{
			X: p.bounds.Min.X + p.rng.Float64()*(p.bounds.Max.X-p.bounds.Min.X),
			Y: p.bounds.Min.Y + p.rng.Float64()*(p.bounds.Max.Y-p.bounds.Min.Y),
		}
		if obstacle.PointBlocked(p.inflated, cand) {
			continue
		}
		if p.tooClose(cand, thresh) {
			continue
		}
		p.Nodes = append(p.Nodes, Vertex{
			ID:        len(p.Nodes),
			Coords:    cand,
			Neighbors: make(map[int]float64),
		})
	}

	for i := range p.Nodes {
		p.connectNearest(i, k)
	}

	p.log.Debugw("prm built", "n", len(p.Nodes), "k", k, "thresh", thresh)
	return nil
}

func (p *PRM) tooClose(cand geom.Vector2D, thresh float64) bool {
	for _, v := range p.Nodes {
		if cand.Distance(v.Coords) < thresh {
			return true
		}
	}
	return false
}

type neighborCandidate struct {
	id   int
	dist float64
}

// connectNearest connects node i to its k nearest collision-free
// neighbours, adding the symmetric edge on both sides.
func (p *PRM) connectNearest(i, k int) {
	v := p.Nodes[i]
	candidates := make([]neighborCandidate, 0, len(p.Nodes)-1)
	for j := range p.Nodes {
		if j == i {
			continue
		}
		if _, already := v.Neighbors[p.Nodes[j].ID]; already {
			continue
		}
		candidates = append(candidates, neighborCandidate{
			id:   j,
			dist: v.Coords.Distance(p.Nodes[j].Coords),
		})
	}
	sort.Slice(candidates, func(a, b int) bool { return candidates[a].dist < candidates[b].dist })

	connected := 0
	for _, c := range candidates {
		if connected >= k {
			break
		}
		w := p.Nodes[c.id]
		if obstacle.SegmentBlocked(p.inflated, v.Coords, w.Coords) {
			continue
		}
		p.addEdge(i, c.id, c.dist)
		connected++
	}
}

func (p *PRM) addEdge(i, j int, cost float64) {
	p.Nodes[i].Neighbors[p.Nodes[j].ID] = cost
	p.Nodes[j].Neighbors[p.Nodes[i].ID] = cost
}

// ReturnPRM returns the built vertex set.
func (p *PRM) ReturnPRM() []Vertex {
	return p.Nodes
}

// AttachTemp appends a temporary vertex at pos (used to splice start
// or goal into the roadmap for one plan call), connecting it to its k
// nearest collision-free-visible existing nodes. It reports
// OutOfBounds if pos is outside the workspace or inside an inflated
// obstacle.
func (p *PRM) AttachTemp(pos geom.Vector2D, k int) (int, error) {
	if !p.bounds.Contains(pos) {
		return 0, planerr.New(planerr.OutOfBounds, "position outside map bounds")
	}
	if obstacle.PointBlocked(p.inflated, pos) {
		return 0, planerr.New(planerr.OutOfBounds, "position inside inflated obstacle")
	}

	id := len(p.Nodes)
	p.Nodes = append(p.Nodes, Vertex{ID: id, Coords: pos, Neighbors: make(map[int]float64)})
	p.connectNearest(id, k)
	return id, nil
}

// DetachTemp removes a vertex previously added by AttachTemp, along
// with every edge referencing it, so the roadmap is left exactly as
// it was before the temporary attachment. It assumes id was the last
// vertex appended (the normal start/goal splice-then-unsplice usage).
func (p *PRM) DetachTemp(id int) {
	if id < 0 || id >= len(p.Nodes) {
		return
	}
	for nb := range p.Nodes[id].Neighbors {
		delete(p.Nodes[nb].Neighbors, id)
	}
	if id == len(p.Nodes)-1 {
		p.Nodes = p.Nodes[:id]
	}
}

// Euclidean returns the straight-line distance between two vertex
// coordinates, the same measure BuildMap uses for edge costs.
func Euclidean(a, b geom.Vector2D) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
