package rebuild

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Faultbox/surfacelab/pkg/surface"
)

func smallConfig() surface.Config {
	cfg := surface.DefaultConfig()
	cfg.Grid.USteps, cfg.Grid.VSteps = 8, 8
	return cfg
}

func startWorker(t *testing.T) *Worker {
	t.Helper()
	w := NewWorker()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return w
}

func waitResult(t *testing.T, w *Worker) Result {
	t.Helper()
	select {
	case res := <-w.Results():
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for build")
		return Result{}
	}
}

func TestWorkerBuilds(t *testing.T) {
	w := startWorker(t)
	p := surface.Params{A: 1, C: 0.5, Phi: 0.3}

	gen := w.Submit(p, smallConfig())
	res := waitResult(t, w)

	if res.Err != nil {
		t.Fatalf("build failed: %v", res.Err)
	}
	if res.Generation != gen || res.Params != p {
		t.Errorf("unexpected request %+v", res.Request)
	}
	if got := res.Mesh.VertexCount(); got != 81 {
		t.Errorf("expected 81 vertices, got %d", got)
	}
}

func TestWorkerReportsErrors(t *testing.T) {
	w := startWorker(t)

	w.Submit(surface.Params{A: math.NaN()}, smallConfig())
	if res := waitResult(t, w); !errors.Is(res.Err, surface.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", res.Err)
	}

	bad := smallConfig()
	bad.Grid.USteps = 0
	w.Submit(surface.Params{A: 1}, bad)
	if res := waitResult(t, w); !errors.Is(res.Err, surface.ErrInvalidGrid) {
		t.Errorf("expected ErrInvalidGrid, got %v", res.Err)
	}
}

func TestWorkerLatestWins(t *testing.T) {
	w := NewWorker()

	// Queue several requests before the worker starts; only the last runs.
	for i := 1; i <= 5; i++ {
		w.Submit(surface.Params{A: float64(i)}, smallConfig())
	}
	if w.Latest() != 5 {
		t.Fatalf("expected generation 5, got %d", w.Latest())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	res := waitResult(t, w)
	if res.Generation != 5 || res.Params.A != 5 {
		t.Errorf("expected latest request, got generation %d a=%v", res.Generation, res.Params.A)
	}

	select {
	case extra := <-w.Results():
		t.Errorf("unexpected extra result for generation %d", extra.Generation)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWorkerStopsOnCancel(t *testing.T) {
	w := NewWorker()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestPublishReplacesUnread(t *testing.T) {
	w := NewWorker()
	ctx := context.Background()

	w.publish(ctx, Result{Request: Request{Generation: 1}})
	w.publish(ctx, Result{Request: Request{Generation: 2}})

	if res := <-w.Results(); res.Generation != 2 {
		t.Errorf("expected newest result, got generation %d", res.Generation)
	}
}
