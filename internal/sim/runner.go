package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/rigid2d/internal/metrics"
	"github.com/san-kum/rigid2d/internal/space"
)

// BodyState is one body's pose at a recorded tick.
type BodyState struct {
	X     float64
	Y     float64
	Angle float64
}

type Result struct {
	Times   []float64
	Frames  [][]BodyState
	Metrics map[string]float64
	Steps   int
}

// Observer receives the space after every completed step.
type Observer interface {
	OnStep(sp *space.Space, t float64)
}

type Runner struct {
	metrics   []metrics.Metric
	observers []Observer
}

func New() *Runner {
	return &Runner{
		metrics:   make([]metrics.Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, sp *space.Space, dt, duration float64) (*Result, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("sim: dt must be positive, got %v", dt)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("sim: duration must be positive, got %v", duration)
	}

	steps := int(duration / dt)
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		Frames:  make([][]BodyState, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	result.record(sp, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := sp.Step(dt); err != nil {
			return result, err
		}
		t += dt
		result.Steps++

		for _, m := range r.metrics {
			m.Observe(sp, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(sp, t)
		}

		result.record(sp, t)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (res *Result) record(sp *space.Space, t float64) {
	bodies := sp.Bodies()
	frame := make([]BodyState, len(bodies))
	for i, b := range bodies {
		frame[i] = BodyState{X: b.Position[0], Y: b.Position[1], Angle: b.Angle}
	}
	res.Times = append(res.Times, t)
	res.Frames = append(res.Frames, frame)
}
