// Command plandemo runs each of the five planner families over a
// small fixed scenario and prints the resulting path summaries.
package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mayB1998/Motion-Planning/internal/geom"
	"github.com/mayB1998/Motion-Planning/internal/grid"
	"github.com/mayB1998/Motion-Planning/internal/logging"
	"github.com/mayB1998/Motion-Planning/internal/obstacle"
	"github.com/mayB1998/Motion-Planning/internal/planner"
	"github.com/mayB1998/Motion-Planning/internal/prm"
)

func main() {
	fmt.Println("=== Motion Planning: A*, Theta*, LPA*, D* Lite, Potential Field ===")

	log := logging.NewDevelopment("plandemo")
	bounds := geom.Bounds{Min: geom.Vector2D{X: 0, Y: 0}, Max: geom.Vector2D{X: 30, Y: 30}}
	start := geom.Vector2D{X: 2, Y: 15}
	goal := geom.Vector2D{X: 28, Y: 15}

	wall, err := obstacle.New([]geom.Vector2D{
		{X: 14, Y: 3}, {X: 16, Y: 3}, {X: 16, Y: 23}, {X: 14, Y: 23},
	})
	if err != nil {
		log.Fatalw("bad obstacle", "err", err)
	}
	obstacles := []obstacle.Obstacle{wall}

	fmt.Println("\n--- A* and Theta* over a PRM ---")
	runPRMPlanners(obstacles, bounds, start, goal, log)

	fmt.Println("\n--- A* over a Grid ---")
	runGridAStar(obstacles, bounds, start, goal, log)

	fmt.Println("\n--- LPA* incremental replanning ---")
	runLPAStar(obstacles, bounds, start, goal, log)

	fmt.Println("\n--- D* Lite incremental replanning ---")
	runDStarLite(obstacles, bounds, start, goal, log)

	fmt.Println("\n--- Potential Field gradient descent ---")
	runPotentialField(obstacles, start, goal, log)
}

func runPRMPlanners(obstacles []obstacle.Obstacle, bounds geom.Bounds, start, goal geom.Vector2D, log *logging.Logger) {
	roadmap := prm.New(obstacles, 0.5, bounds, prm.WithRand(rand.New(rand.NewSource(42))), prm.WithLogger(log))
	if err := roadmap.BuildMap(400, 8, 0.3); err != nil {
		log.Fatalw("build prm", "err", err)
	}

	a := planner.NewAStar(planner.WithLogger(log))
	aPath, err := a.PlanPRM(roadmap, start, goal, 8)
	report("A* (PRM)", aPath, err)

	th := planner.NewThetaStar(planner.WithThetaLogger(log))
	thPath, err := th.PlanPRM(roadmap, start, goal, 8)
	report("Theta* (PRM)", thPath, err)
}

func runGridAStar(obstacles []obstacle.Obstacle, bounds geom.Bounds, start, goal geom.Vector2D, log *logging.Logger) {
	g := grid.New(obstacles, 0.5, bounds, grid.WithLogger(log))
	if err := g.BuildMap(0.5); err != nil {
		log.Fatalw("build grid", "err", err)
	}

	a := planner.NewAStar(planner.WithLogger(log))
	path, err := a.PlanGrid(g, start, goal)
	report("A* (Grid)", path, err)
}

func runLPAStar(obstacles []obstacle.Obstacle, bounds geom.Bounds, start, goal geom.Vector2D, log *logging.Logger) {
	g := grid.New(obstacles, 0.5, bounds, grid.WithLogger(log))
	if err := g.BuildMap(0.5); err != nil {
		log.Fatalw("build grid", "err", err)
	}

	lp := planner.NewLPAStar(g, planner.WithLPALogger(log))
	if err := lp.Initialize(start, goal); err != nil {
		log.Fatalw("initialize lpastar", "err", err)
	}
	lp.ComputeShortestPath()
	report("LPA* (pre-visibility)", lp.ReturnPath(), nil)

	visibility := 6
	pos := start
	for step := 0; step < 20; step++ {
		idx := g.IndexOf(pos)
		flipped := g.UpdateGrid(idx, visibility)
		if len(flipped) > 0 {
			lp.SimulateUpdate(flipped)
		}
		path := lp.ReturnPath()
		if !lp.ReturnValid() || len(path) < 2 {
			break
		}
		pos = path[1]
	}
	report("LPA* (converged)", lp.ReturnPath(), nil)
}

func runDStarLite(obstacles []obstacle.Obstacle, bounds geom.Bounds, start, goal geom.Vector2D, log *logging.Logger) {
	g := grid.New(obstacles, 0.5, bounds, grid.WithLogger(log))
	if err := g.BuildMap(0.5); err != nil {
		log.Fatalw("build grid", "err", err)
	}

	d := planner.NewDStarLite(g, planner.WithDStarLogger(log))
	if err := d.Initialize(start, goal); err != nil {
		log.Fatalw("initialize dstarlite", "err", err)
	}
	d.ComputeShortestPath()

	visibility := 6
	pos := start
	for step := 0; step < 20; step++ {
		idx := g.IndexOf(pos)
		flipped := g.UpdateGrid(idx, visibility)
		d.SimulateUpdate(pos, flipped)
		path := d.ReturnPath()
		if !d.ReturnValid() || len(path) < 2 {
			break
		}
		pos = path[1]
	}
	report("D* Lite (converged)", d.ReturnPath(), nil)
}

func runPotentialField(obstacles []obstacle.Obstacle, start, goal geom.Vector2D, log *logging.Logger) {
	pf := planner.NewPotentialField(4.0, 0.05, 1.0, 2.0, 2.5, planner.WithPFLogger(log))
	t0 := time.Now()
	path, err := pf.Plan(start, goal, obstacles, 0.5, 50000)
	report("Potential Field", path, err)
	log.Debugw("potential field timing", "elapsed", time.Since(t0))
}

func report(name string, path planner.Path, err error) {
	if err != nil {
		fmt.Printf("  %s: FAILED (%v)\n", name, err)
		return
	}
	length := 0.0
	for i := 1; i < len(path); i++ {
		length += path[i-1].Distance(path[i])
	}
	fmt.Printf("  %s: %d waypoints, length=%.2f\n", name, len(path), length)
}
