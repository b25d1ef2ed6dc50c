// Package telemetry publishes live per-worker search progress from a
// running astar.Engine to a browser over a websocket, generalizing
// tabular/server.Server's training-progress publisher ("publish training
// progress to a browser") to search progress ("publish search progress to
// a browser"). It serves one websocket route, /ws, and no HTML page; each
// snapshot goes to one client, with no multi-client fan-out.
package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	channerics "github.com/niceyeti/channerics/channels"

	"github.com/alexyz79/astarmp/astar"
)

const publishResolution = 200 * time.Millisecond

// Snapshot is the JSON payload pushed to the browser each publish tick.
type Snapshot struct {
	ElapsedSeconds float64          `json:"elapsedSeconds"`
	Rate           float64          `json:"rate"`
	Expanded       int64            `json:"expanded"`
	Visited        int64            `json:"visited"`
	Workers        []WorkerSnapshot `json:"workers"`
}

// WorkerSnapshot is one worker's expanded/visited counters.
type WorkerSnapshot struct {
	Expanded int64 `json:"expanded"`
	Visited  int64 `json:"visited"`
}

// Server serves /ws, streaming a Snapshot of stats at a fixed cadence while
// a solve is running.
type Server struct {
	addr  string
	stats *astar.Stats
}

// NewServer returns a Server that will publish stats snapshots on addr.
func NewServer(addr string, stats *astar.Stats) *Server {
	return &Server{addr: addr, stats: stats}
}

// Serve blocks until ctx is cancelled, serving the live stats websocket.
func (s *Server) Serve(ctx context.Context) error {
	snapshots := s.sampleLoop(ctx)

	router := mux.NewRouter()
	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		cli, err := newClient(snapshots, w, r)
		if err != nil {
			return
		}
		_ = cli.Sync()
	})

	httpSrv := &http.Server{Addr: s.addr, Handler: router}
	go func() {
		<-ctx.Done()
		_ = httpSrv.Close()
	}()

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("telemetry: serve: %w", err)
	}
	return nil
}

// sampleLoop periodically snapshots stats onto a channel the websocket
// client reads from, the search-progress analogue of
// tabular/main.go's exportStates callback feeding server.stateUpdates.
func (s *Server) sampleLoop(ctx context.Context) <-chan Snapshot {
	out := make(chan Snapshot)
	go func() {
		defer close(out)
		for range channerics.NewTicker(ctx.Done(), publishResolution) {
			select {
			case out <- s.snapshot():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (s *Server) snapshot() Snapshot {
	workers := make([]WorkerSnapshot, len(s.stats.Workers))
	for i, w := range s.stats.Workers {
		workers[i] = WorkerSnapshot{Expanded: w.Expanded(), Visited: w.Visited()}
	}
	return Snapshot{
		ElapsedSeconds: s.stats.Elapsed().Seconds(),
		Rate:           s.stats.Rate(),
		Expanded:       s.stats.Expanded(),
		Visited:        s.stats.Visited(),
		Workers:        workers,
	}
}
