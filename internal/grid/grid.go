// Package grid builds the axis-aligned uniform occupancy grid shared
// by every grid-based planner (A*, LPA*, D* Lite), and the
// perceived/"fake" grid that incremental planners react to as
// visibility grows.
package grid

import (
	"math"

	"github.com/mayB1998/Motion-Planning/internal/geom"
	"github.com/mayB1998/Motion-Planning/internal/logging"
	"github.com/mayB1998/Motion-Planning/internal/obstacle"
)

// Index is a cell's row-major (i, j) coordinate.
type Index struct {
	I, J int
}

// Cell is one grid cell: its index, the world coordinate of its
// centre, and whether it is occupied.
type Cell struct {
	Index    Index
	Center   geom.Vector2D
	Occupied bool
}

// Grid is an axis-aligned uniform grid over a bounded workspace. Cells
// is the immutable ground truth; FakeCells is the perceived grid that
// incremental planners see, synced cell-by-cell as visibility grows.
type Grid struct {
	bounds     geom.Bounds
	resolution float64
	w, h       int

	Cells     []Cell
	FakeCells []Cell

	inflated []geom.Polygon
	log      *logging.Logger
}

// Option configures a Grid at construction.
type Option func(*Grid)

// WithLogger attaches a structured logger.
func WithLogger(log *logging.Logger) Option {
	return func(g *Grid) { g.log = log }
}

// New creates an empty Grid over the given obstacles, inflation
// radius, and workspace bounds.
func New(obstacles []obstacle.Obstacle, inflateRadius float64, bounds geom.Bounds, opts ...Option) *Grid {
	g := &Grid{
		bounds: bounds,
		log:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.inflated = obstacle.InflateAll(obstacles, inflateRadius)
	return g
}

// BuildMap lays out a (W, H) grid of the given resolution over the
// workspace bounds, expanding W and H up to whole cells, and labels
// each cell occupied if its centre falls inside an inflated obstacle
// or the cell sits on the outer boundary ring.
func (g *Grid) BuildMap(resolution float64) error {
	g.resolution = resolution
	g.w = int(math.Ceil((g.bounds.Max.X - g.bounds.Min.X) / resolution))
	g.h = int(math.Ceil((g.bounds.Max.Y - g.bounds.Min.Y) / resolution))
	if g.w < 1 {
		g.w = 1
	}
	if g.h < 1 {
		g.h = 1
	}

	g.Cells = make([]Cell, g.w*g.h)
	for j := 0; j < g.h; j++ {
		for i := 0; i < g.w; i++ {
			center := geom.Vector2D{
				X: g.bounds.Min.X + (float64(i)+0.5)*resolution,
				Y: g.bounds.Min.Y + (float64(j)+0.5)*resolution,
			}
			boundary := i == 0 || j == 0 || i == g.w-1 || j == g.h-1
			occupied := boundary || obstacle.PointBlocked(g.inflated, center)
			g.Cells[g.index(i, j)] = Cell{Index: Index{I: i, J: j}, Center: center, Occupied: occupied}
		}
	}

	g.FakeCells = make([]Cell, len(g.Cells))
	copy(g.FakeCells, g.Cells)
	// Every non-boundary cell starts free in the perceived grid; the
	// boundary ring's occupancy is known up front, not discovered
	// through visibility, so it starts truth-aligned.
	for i, c := range g.FakeCells {
		boundary := c.Index.I == 0 || c.Index.J == 0 || c.Index.I == g.w-1 || c.Index.J == g.h-1
		if !boundary {
			g.FakeCells[i].Occupied = false
		}
	}

	g.log.Debugw("grid built", "w", g.w, "h", g.h, "resolution", resolution)
	return nil
}

func (g *Grid) index(i, j int) int { return j*g.w + i }

// Dimensions returns the grid's (W, H).
func (g *Grid) Dimensions() (w, h int) { return g.w, g.h }

// Resolution returns the grid spacing.
func (g *Grid) Resolution() float64 { return g.resolution }

// Bounds returns the workspace bounds the grid was built over.
func (g *Grid) Bounds() geom.Bounds { return g.bounds }

// InBounds reports whether idx is a valid cell index.
func (g *Grid) InBounds(idx Index) bool {
	return idx.I >= 0 && idx.I < g.w && idx.J >= 0 && idx.J < g.h
}

// CellAt returns the true cell at idx.
func (g *Grid) CellAt(idx Index) Cell { return g.Cells[g.index(idx.I, idx.J)] }

// FakeCellAt returns the perceived cell at idx.
func (g *Grid) FakeCellAt(idx Index) Cell { return g.FakeCells[g.index(idx.I, idx.J)] }

// IndexOf returns the cell index containing world point p.
func (g *Grid) IndexOf(p geom.Vector2D) Index {
	i := int((p.X - g.bounds.Min.X) / g.resolution)
	j := int((p.Y - g.bounds.Min.Y) / g.resolution)
	return Index{I: i, J: j}
}

// OccupancyGrid emits a row-major byte array of the true grid: 0 free,
// 100 occupied.
func (g *Grid) OccupancyGrid() []byte {
	return toBytes(g.Cells)
}

// FakeOccupancyGrid emits a row-major byte array of the perceived
// grid: 0 free, 100 occupied.
func (g *Grid) FakeOccupancyGrid() []byte {
	return toBytes(g.FakeCells)
}

func toBytes(cells []Cell) []byte {
	out := make([]byte, len(cells))
	for i, c := range cells {
		if c.Occupied {
			out[i] = 100
		}
	}
	return out
}

// Neighbors8 returns the up-to-8 grid-adjacent indices of idx that are
// in bounds.
func (g *Grid) Neighbors8(idx Index) []Index {
	out := make([]Index, 0, 8)
	for dj := -1; dj <= 1; dj++ {
		for di := -1; di <= 1; di++ {
			if di == 0 && dj == 0 {
				continue
			}
			n := Index{I: idx.I + di, J: idx.J + dj}
			if g.InBounds(n) {
				out = append(out, n)
			}
		}
	}
	return out
}

// StepCost returns the traversal cost between adjacent cells a and b
// on the perceived grid: +Inf if either endpoint is perceived
// occupied, otherwise resolution (4-neighbour) or resolution*sqrt(2)
// (diagonal).
func (g *Grid) StepCost(a, b Index) float64 {
	if g.FakeCellAt(a).Occupied || g.FakeCellAt(b).Occupied {
		return math.Inf(1)
	}
	if a.I != b.I && a.J != b.J {
		return g.resolution * math.Sqrt2
	}
	return g.resolution
}

// TrueStepCost is StepCost against ground truth rather than the
// perceived grid, used by the single-shot A* grid planner, which
// plans against full information.
func (g *Grid) TrueStepCost(a, b Index) float64 {
	if g.CellAt(a).Occupied || g.CellAt(b).Occupied {
		return math.Inf(1)
	}
	if a.I != b.I && a.J != b.J {
		return g.resolution * math.Sqrt2
	}
	return g.resolution
}

// UpdateGrid copies true occupancy into the perceived grid for every
// cell within Chebyshev distance visibility of fromCell, and returns
// the subset whose perceived occupancy flipped.
func (g *Grid) UpdateGrid(fromCell Index, visibility int) []Cell {
	var flipped []Cell
	for dj := -visibility; dj <= visibility; dj++ {
		for di := -visibility; di <= visibility; di++ {
			idx := Index{I: fromCell.I + di, J: fromCell.J + dj}
			if !g.InBounds(idx) {
				continue
			}
			pos := g.index(idx.I, idx.J)
			if g.FakeCells[pos].Occupied != g.Cells[pos].Occupied {
				g.FakeCells[pos].Occupied = g.Cells[pos].Occupied
				flipped = append(flipped, g.FakeCells[pos])
			}
		}
	}
	return flipped
}

// ReturnFakeGrid returns the perceived grid's cells.
func (g *Grid) ReturnFakeGrid() []Cell { return g.FakeCells }

// ReturnMapBounds returns the workspace bounds.
func (g *Grid) ReturnMapBounds() geom.Bounds { return g.bounds }

// ReturnGridDimensions returns (W, H).
func (g *Grid) ReturnGridDimensions() (int, int) { return g.w, g.h }
