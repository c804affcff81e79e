package sim

import (
	"context"
	"errors"
	"fmt"
)

func (s *Simulator) validateRun(rc RunConfig) error {
	if rc.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidRun, rc.Frames)
	}
	if rc.FrameTime <= 0 {
		return fmt.Errorf("%w: frame time must be positive, got %f", ErrInvalidRun, rc.FrameTime)
	}
	if rc.ClickEvery < 0 {
		return fmt.Errorf("%w: click interval must not be negative", ErrInvalidRun)
	}
	return nil
}

// Run drives the simulator without a display. Clicks are aimed at the
// projected center of a random live object, so they go through the same
// ray-cast path as a pointer click. Splits refused by the scale floor or
// the population cap are counted, not returned.
//
// Breath follows one object. Clicks are not aimed at it while another
// object is live; when it does split, the first child takes over and
// BreathFrom moves to that frame.
func (s *Simulator) Run(ctx context.Context, rc RunConfig) (*Result, error) {
	if err := s.validateRun(rc); err != nil {
		return nil, err
	}

	result := &Result{
		Times:      make([]float64, 0, rc.Frames),
		Population: make([]float64, 0, rc.Frames),
		Energy:     make([]float64, 0, rc.Frames),
		Breath:     make([]float64, 0, rc.Frames),
		FirstSplit: -1,
		Metrics:    make(map[string]float64),
	}

	follow := 0
	if o := s.registry.At(0); o != nil {
		follow = o.ID
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < rc.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if rc.ClickEvery > 0 && i > 0 && i%rc.ClickEvery == 0 {
			res, err := s.clickRandom(follow)
			switch {
			case errors.Is(err, ErrBelowMinScale), errors.Is(err, ErrPopulationCap):
				result.Refused++
			case err != nil:
				return result, err
			case res != nil:
				result.Splits++
				if result.FirstSplit < 0 {
					result.FirstSplit = i
				}
				if res.Parent == follow {
					follow = res.Children[0]
					result.BreathFrom = i
				}
			}
		}

		stats := s.Frame(rc.FrameTime)
		result.Times = append(result.Times, stats.Time)
		result.Population = append(result.Population, float64(stats.Population))
		result.Energy = append(result.Energy, stats.KineticEnergy)
		if o := s.registry.Get(follow); o != nil {
			result.Breath = append(result.Breath, o.Mesh.Scale-o.BaseScale)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// clickRandom clicks a random live object other than skip, falling back
// to skip when it is the only one.
func (s *Simulator) clickRandom(skip int) (*SplitResult, error) {
	n := s.registry.Len()
	if n == 0 {
		return nil, nil
	}
	var o *Object
	if k := s.indexOfID(skip); k >= 0 && n > 1 {
		i := s.rng.Intn(n - 1)
		if i >= k {
			i++
		}
		o = s.registry.At(i)
	} else {
		o = s.registry.At(s.rng.Intn(n))
	}
	x, y, ok := s.ScreenPosition(o)
	if !ok {
		return nil, nil
	}
	return s.Click(x, y)
}

func (s *Simulator) indexOfID(id int) int {
	for i, o := range s.registry.All() {
		if o.ID == id {
			return i
		}
	}
	return -1
}
