package planner

import (
	"github.com/mayB1998/Motion-Planning/internal/geom"
	"github.com/mayB1998/Motion-Planning/internal/logging"
	"github.com/mayB1998/Motion-Planning/internal/obstacle"
	"github.com/mayB1998/Motion-Planning/internal/planerr"
)

// PotentialField is a gradient-descent planner: it does not search a
// discretized map at all, stepping the robot downhill through the sum
// of an attractive potential toward the goal and a repulsive potential
// away from every inflated obstacle, parameterized by a repulsive gain,
// step size, attractive gain, conic-capping distance, and repulsive
// influence radius (eta, alpha, zeta, dStar, qStar).
type PotentialField struct {
	eta   float64 // repulsive gain
	alpha float64 // step size
	zeta  float64 // attractive gain
	dStar float64 // attractive potential's conic-capping distance
	qStar float64 // repulsive potential's influence radius

	epsGoal  float64
	epsStall float64
	minIters int

	// stallCount and terminated track the step-then-poll protocol: each
	// OneStepGD call updates them, and ReturnTerminate reports whether
	// the walk has ended (goal reached or stalled at a local minimum).
	stallCount int
	terminated bool

	log *logging.Logger
}

// PFOption configures a PotentialField planner.
type PFOption func(*PotentialField)

// WithPFLogger attaches a structured logger.
func WithPFLogger(log *logging.Logger) PFOption {
	return func(p *PotentialField) { p.log = log }
}

// WithTermination overrides the default goal/stall termination
// tolerances and the minimum iteration count before a stall counts as
// a local minimum.
func WithTermination(epsGoal, epsStall float64, minIters int) PFOption {
	return func(p *PotentialField) {
		p.epsGoal = epsGoal
		p.epsStall = epsStall
		p.minIters = minIters
	}
}

// NewPotentialField returns a gradient-descent planner with the given
// repulsive gain eta, step size alpha, attractive gain zeta, conic
// cap distance dStar, and repulsive influence radius qStar.
func NewPotentialField(eta, alpha, zeta, dStar, qStar float64, opts ...PFOption) *PotentialField {
	p := &PotentialField{
		eta: eta, alpha: alpha, zeta: zeta, dStar: dStar, qStar: qStar,
		epsGoal:  1e-2,
		epsStall: 1e-4,
		minIters: 20,
		log:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// attractiveGradient returns the gradient of U_att at q: the standard
// quadratic-near/conic-far attractive potential capped past dStar to
// bound the gradient magnitude.
func (p *PotentialField) attractiveGradient(q, goal geom.Vector2D) geom.Vector2D {
	diff := q.Sub(goal)
	d := diff.Norm()
	if d <= p.dStar {
		return diff.Scale(p.zeta)
	}
	return diff.Normalize().Scale(p.dStar * p.zeta)
}

// repulsiveGradient returns the true gradient of U_rep at q with
// respect to a single inflated obstacle polygon: zero beyond qStar,
// otherwise pointing toward the nearest boundary point, since U_rep
// grows as the robot gets closer to the obstacle. OneStepGD then
// subtracts it, which is what actually steers the robot away.
func (p *PotentialField) repulsiveGradient(q geom.Vector2D, poly geom.Polygon) geom.Vector2D {
	d, nearest := geom.DistanceToPolygon(poly, q)
	if d < geom.Epsilon {
		toward := nearest.Sub(q)
		if toward.Norm() < geom.Epsilon {
			return geom.Vector2D{}
		}
		return toward.Normalize().Scale(p.eta / (geom.Epsilon * geom.Epsilon))
	}
	if d > p.qStar {
		return geom.Vector2D{}
	}
	coeff := p.eta * (1/d - 1/p.qStar) / (d * d)
	toward := nearest.Sub(q).Normalize()
	return toward.Scale(coeff)
}

// OneStepGD takes one gradient-descent step from q toward goal,
// repelled by every inflated obstacle polygon: q_next = q - alpha *
// (grad U_att + sum grad U_rep). It also updates the walk's terminate
// state, polled via ReturnTerminate: the step counts toward a stall once
// it moves less than epsStall, and the walk terminates on reaching goal
// tolerance or stalling for minIters consecutive steps.
func (p *PotentialField) OneStepGD(q, goal geom.Vector2D, inflated []geom.Polygon) geom.Vector2D {
	grad := p.attractiveGradient(q, goal)
	for _, poly := range inflated {
		grad = grad.Add(p.repulsiveGradient(q, poly))
	}
	next := q.Sub(grad.Scale(p.alpha))

	if next.Distance(q) <= p.epsStall {
		p.stallCount++
	} else {
		p.stallCount = 0
	}
	p.terminated = next.Distance(goal) <= p.epsGoal || p.stallCount >= p.minIters

	return next
}

// ReturnTerminate reports whether the walk has ended as of the last
// OneStepGD call: the robot reached goal tolerance, or gradient descent
// stalled at a local minimum.
func (p *PotentialField) ReturnTerminate() bool { return p.terminated }

// Plan runs gradient descent from start to goal, stopping on arrival,
// on a stall (local minimum), or after maxIters steps. Reports
// LocalMinimum if the walk stalls before reaching the goal, or
// OutOfBounds if start lies inside an inflated obstacle.
func (p *PotentialField) Plan(start, goal geom.Vector2D, obstacles []obstacle.Obstacle, inflateRadius float64, maxIters int) (Path, error) {
	inflated := obstacle.InflateAll(obstacles, inflateRadius)
	if obstacle.PointBlocked(inflated, start) {
		return nil, planerr.New(planerr.OutOfBounds, "start inside inflated obstacle")
	}

	path := Path{start}
	q := start
	p.stallCount = 0
	p.terminated = false

	for i := 0; i < maxIters; i++ {
		if q.Distance(goal) <= p.epsGoal {
			return path, nil
		}

		next := p.OneStepGD(q, goal, inflated)
		path = append(path, next)
		q = next

		if p.terminated && q.Distance(goal) > p.epsGoal {
			p.log.Debugw("potential field stalled", "iter", i, "pos", q)
			return path, planerr.New(planerr.LocalMinimum, "gradient descent stalled away from goal")
		}
	}

	if q.Distance(goal) <= p.epsGoal {
		return path, nil
	}
	return path, planerr.New(planerr.IterationCapExceeded, "gradient descent did not converge")
}
