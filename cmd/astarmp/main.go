// Command astarmp runs the parallel A* engine against a chosen problem
// domain, reading a batch instance file and printing per-worker and
// aggregate search statistics, mirroring tabular/main.go's init/flag-parse
// and config-then-run structure.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/alexyz79/astarmp/astar"
	"github.com/alexyz79/astarmp/config"
	"github.com/alexyz79/astarmp/domain/maze"
	"github.com/alexyz79/astarmp/domain/numberlink"
	"github.com/alexyz79/astarmp/domain/puzzle"
	"github.com/alexyz79/astarmp/telemetry"
)

var (
	nworkers     *int
	firstSolFlag *bool
	configPath   *string
	liveAddr     *string
)

func init() {
	nworkers = flag.Int("n", 0, "number of worker goroutines (0 selects the sequential engine)")
	firstSolFlag = flag.Bool("p", false, "stop at the first solution found, instead of the optimal one")
	configPath = flag.String("config", "", "path to an engine config YAML file (optional)")
	liveAddr = flag.String("live", "", "serve live search telemetry on this address, e.g. :8080 (optional)")
}

// workerCount maps the CLI's 0-means-sequential convention
// (original_source/8puzzle/src/main.c and numberlink/src/main.c both default
// -n to 0, "algoritmo sequencial") onto astar.NewEngine's numWorkers, which
// must be at least 1: 0 runs the sequential specialization on a single
// worker, matching spec.md's framing of sequential as N=1 of the same code
// path.
func workerCount() int {
	if *nworkers <= 0 {
		return 1
	}
	return *nworkers
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: astarmp <puzzle|maze|numberlink> <instance_file> [-n N] [-p] [-config path] [-live addr]")
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(2)
	}
	// Flags may also follow the two positional arguments.
	if err := flag.CommandLine.Parse(args[2:]); err != nil || flag.NArg() != 0 {
		usage()
		os.Exit(2)
	}

	if err := run(args[0], args[1]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadEngineConfig() (astar.EngineConfig, error) {
	if *configPath == "" {
		return astar.DefaultEngineConfig(), nil
	}
	cfg, err := config.FromYaml(*configPath)
	if err != nil {
		return astar.EngineConfig{}, fmt.Errorf("astarmp: loading config: %w", err)
	}
	return cfg.ToEngineConfig(), nil
}

func run(domainName, instancePath string) error {
	engineCfg, err := loadEngineConfig()
	if err != nil {
		return err
	}

	switch domainName {
	case "puzzle":
		return runPuzzle(instancePath, engineCfg)
	case "maze":
		return runMaze(instancePath, engineCfg)
	case "numberlink":
		return runNumberlink(instancePath, engineCfg)
	default:
		usage()
		return fmt.Errorf("astarmp: unknown domain %q", domainName)
	}
}

func runPuzzle(instancePath string, engineCfg astar.EngineConfig) error {
	instances, err := puzzle.ReadInstances(instancePath)
	if err != nil {
		return err
	}

	for i, board := range instances {
		fmt.Printf("instance %d: %s\n", i, string(board))
		// Each instance gets a fresh engine: Solve leaves running, solution
		// and the node table set, so an engine serves one solve only.
		engine, err := astar.NewEngine(9, puzzle.Callbacks(), workerCount(), engineCfg)
		if err != nil {
			return err
		}
		err = solveAndReport(engine, board, puzzle.GoalBytes())
		engine.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func runMaze(instancePath string, engineCfg astar.EngineConfig) error {
	board, err := maze.ParseBoard(instancePath)
	if err != nil {
		return err
	}

	engine, err := astar.NewEngine(maze.StructSize, board.Callbacks(), workerCount(), engineCfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	initial := maze.StateBytes(board.Start[0], board.Start[1])
	goal := maze.StateBytes(board.Exit[0], board.Exit[1])
	return solveAndReport(engine, initial, goal)
}

func runNumberlink(instancePath string, engineCfg astar.EngineConfig) error {
	board, err := numberlink.ParseBoard(instancePath)
	if err != nil {
		return err
	}

	engine, err := astar.NewEngine(numberlink.StructSize, board.Callbacks(), workerCount(), engineCfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	initial := numberlink.StateBytes(board.A[0], board.A[1])
	goal := numberlink.StateBytes(board.B[0], board.B[1])
	return solveAndReport(engine, initial, goal)
}

// solveAndReport runs one Solve call, optionally serving live telemetry
// alongside it, and prints the solution cost plus per-worker and aggregate
// statistics, the supplemented printout original_source's sequential and
// parallel CLIs both produce at the end of a run.
func solveAndReport(engine *astar.Engine, initialBytes, goalBytes []byte) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *liveAddr != "" {
		srv := telemetry.NewServer(*liveAddr, engine.Stats())
		go func() {
			if err := srv.Serve(ctx); err != nil {
				fmt.Fprintln(os.Stderr, "telemetry:", err)
			}
		}()
	}

	start := time.Now()
	solution, err := engine.Solve(ctx, initialBytes, goalBytes, *firstSolFlag)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if solution == nil {
		fmt.Println("no solution found")
	} else {
		fmt.Printf("solution cost: %d\n", solution.G())
	}
	fmt.Printf("elapsed: %s\n", elapsed)
	printStats(engine.Stats())
	return nil
}

func printStats(stats *astar.Stats) {
	for i, w := range stats.Workers {
		fmt.Printf("  worker %d: expanded=%d visited=%d\n", i, w.Expanded(), w.Visited())
	}
	fmt.Printf("  total: expanded=%d visited=%d rate=%.1f/s\n", stats.Expanded(), stats.Visited(), stats.Rate())
}
