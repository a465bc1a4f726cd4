// Package rebuild runs surface builds off the render thread.
//
// Requests are coalesced: while a build is running, newer requests replace
// any pending one, and a finished build is dropped if a newer request is
// already waiting. The render loop therefore only ever sees meshes for the
// latest parameters, at most one build behind.
package rebuild

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/surfacelab/internal/logger"
	"github.com/Faultbox/surfacelab/pkg/surface"
)

// Request asks for a mesh.
type Request struct {
	Params     surface.Params
	Config     surface.Config
	Generation uint64
}

// Result is a finished build.
type Result struct {
	Request
	Mesh    *surface.Mesh
	Err     error
	Elapsed time.Duration
}

// Worker builds meshes on a background goroutine.
type Worker struct {
	mu      sync.Mutex
	pending *Request
	gen     uint64

	wake    chan struct{}
	results chan Result
	log     *zap.Logger
}

// NewWorker creates a worker. Call Run to start it.
func NewWorker() *Worker {
	return &Worker{
		wake:    make(chan struct{}, 1),
		results: make(chan Result, 1),
		log:     logger.Named("rebuild"),
	}
}

// Submit queues a build, replacing any request that has not started yet.
// It returns the request's generation.
func (w *Worker) Submit(p surface.Params, cfg surface.Config) uint64 {
	w.mu.Lock()
	w.gen++
	gen := w.gen
	w.pending = &Request{Params: p, Config: cfg, Generation: gen}
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
	return gen
}

// Results delivers finished builds.
func (w *Worker) Results() <-chan Result {
	return w.results
}

// Latest returns the generation of the most recent Submit.
func (w *Worker) Latest() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gen
}

// Run processes requests until ctx is canceled.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.wake:
		}

		req, ok := w.take()
		if !ok {
			continue
		}
		res := w.build(req)

		if w.superseded(req.Generation) {
			w.log.Debug("dropping stale build", zap.Uint64("generation", req.Generation))
			continue
		}
		w.publish(ctx, res)
	}
}

func (w *Worker) take() (Request, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == nil {
		return Request{}, false
	}
	req := *w.pending
	w.pending = nil
	return req, true
}

func (w *Worker) superseded(gen uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending != nil && w.pending.Generation > gen
}

func (w *Worker) build(req Request) Result {
	start := time.Now()
	res := Result{Request: req}

	b, err := surface.NewBuilder(req.Config)
	if err == nil {
		res.Mesh, err = b.Build(req.Params)
	}
	res.Err = err
	res.Elapsed = time.Since(start)

	if err != nil {
		w.log.Warn("surface build failed",
			zap.Stringer("params", req.Params),
			zap.Uint64("generation", req.Generation),
			zap.Error(err))
	} else {
		w.log.Debug("surface built",
			zap.Stringer("params", req.Params),
			zap.Uint64("generation", req.Generation),
			zap.Int("vertices", res.Mesh.VertexCount()),
			zap.Int("primitives", res.Mesh.PrimitiveCount()),
			zap.Duration("elapsed", res.Elapsed))
	}
	return res
}

// publish hands res to the consumer, replacing an unconsumed older result.
func (w *Worker) publish(ctx context.Context, res Result) {
	for {
		select {
		case w.results <- res:
			return
		case <-ctx.Done():
			return
		default:
		}
		select {
		case <-w.results:
		default:
		}
	}
}
