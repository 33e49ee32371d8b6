package sim

import (
	"context"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/metrics"
	"github.com/san-kum/rigid2d/internal/space"
)

func fallingBall(t *testing.T) *space.Space {
	t.Helper()
	sp, err := space.New(space.DefaultSettings())
	if err != nil {
		t.Fatalf("new space: %v", err)
	}
	sp.AddBody(body.New(&body.Circle{Radius: 0.5}, body.Basic, mgl64.Vec2{0, 10}))
	return sp
}

func TestRunnerRun(t *testing.T) {
	sp := fallingBall(t)

	runner := New()
	result, err := runner.Run(context.Background(), sp, 0.1, 1.0)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Times) != 11 {
		t.Errorf("expected 11 samples, got %d", len(result.Times))
	}
	if result.Steps != 10 {
		t.Errorf("expected 10 steps, got %d", result.Steps)
	}
	if len(result.Frames) != len(result.Times) {
		t.Errorf("frames and times out of sync: %d vs %d", len(result.Frames), len(result.Times))
	}

	first := result.Frames[0][0]
	last := result.Frames[len(result.Frames)-1][0]
	if last.Y >= first.Y {
		t.Errorf("body should fall under gravity: start y=%v, end y=%v", first.Y, last.Y)
	}
}

func TestRunnerInvalidArgs(t *testing.T) {
	sp := fallingBall(t)
	runner := New()

	if _, err := runner.Run(context.Background(), sp, 0, 1.0); err == nil {
		t.Error("expected error for zero dt")
	}
	if _, err := runner.Run(context.Background(), sp, 0.1, -1); err == nil {
		t.Error("expected error for negative duration")
	}
}

func TestRunnerCancellation(t *testing.T) {
	sp := fallingBall(t)
	runner := New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := runner.Run(ctx, sp, 0.01, 100.0)
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result == nil {
		t.Fatal("expected partial result")
	}
	if result.Steps > 1 {
		t.Errorf("expected immediate stop, took %d steps", result.Steps)
	}
}

func TestRunnerMetrics(t *testing.T) {
	sp := fallingBall(t)

	runner := New()
	for _, m := range metrics.Default() {
		runner.AddMetric(m)
	}

	result, err := runner.Run(context.Background(), sp, 0.1, 1.0)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	ke, ok := result.Metrics["kinetic_energy"]
	if !ok {
		t.Fatal("expected kinetic_energy metric")
	}
	if ke <= 0 || math.IsNaN(ke) {
		t.Errorf("falling body should have positive mean kinetic energy, got %v", ke)
	}
}

type stepCounter struct{ n int }

func (c *stepCounter) OnStep(sp *space.Space, t float64) { c.n++ }

func TestRunnerObserver(t *testing.T) {
	sp := fallingBall(t)

	runner := New()
	counter := &stepCounter{}
	runner.AddObserver(counter)

	if _, err := runner.Run(context.Background(), sp, 0.1, 1.0); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if counter.n != 10 {
		t.Errorf("expected observer called 10 times, got %d", counter.n)
	}
}

func TestEnsemble(t *testing.T) {
	factory := func() (*space.Space, error) {
		sp, err := space.New(space.DefaultSettings())
		if err != nil {
			return nil, err
		}
		sp.AddBody(body.New(&body.Circle{Radius: 0.5}, body.Basic, mgl64.Vec2{0, 5}))
		return sp, nil
	}

	ens := NewEnsemble(factory, factory, factory)
	results, err := ens.Run(context.Background(), 0.1, 1.0)
	if err != nil {
		t.Fatalf("ensemble run failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// identical factories must produce identical trajectories
	for i := 1; i < len(results); i++ {
		a := results[0].Frames[len(results[0].Frames)-1][0]
		b := results[i].Frames[len(results[i].Frames)-1][0]
		if a != b {
			t.Errorf("run %d diverged: %+v vs %+v", i, a, b)
		}
	}
}
