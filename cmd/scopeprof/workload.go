package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/scopeprof/profiler"
)

var (
	// ErrReadWorkload indicates the workload file could not be read or parsed.
	ErrReadWorkload = errors.New("read workload")
	// ErrBadWorkload indicates the workload description is invalid.
	ErrBadWorkload = errors.New("invalid workload")
)

// Workload is a synthetic frame loop: every frame enters a "frame" scope and
// runs the configured stages inside it.
type Workload struct {
	Frames int     `yaml:"frames"`
	Stages []Stage `yaml:"stages"`
}

// Stage is one named region of simulated work.
type Stage struct {
	Name string `yaml:"name"`

	// Busy is how long the stage spins per run, as a [time.ParseDuration]
	// string. Empty means no simulated work of its own.
	Busy string `yaml:"busy,omitempty"`

	// Every runs the stage only on every Nth frame; 0 or 1 means every
	// frame.
	Every int `yaml:"every,omitempty"`

	Children []Stage `yaml:"children,omitempty"`
}

// defaultWorkload mirrors the classic game loop: physics (with nested
// collision detection) every tenth frame, rendering every frame.
func defaultWorkload() Workload {
	return Workload{
		Frames: 100,
		Stages: []Stage{
			{
				Name:  "physics",
				Busy:  "2ms",
				Every: 10,
				Children: []Stage{
					{Name: "collisions", Busy: "1ms"},
				},
			},
			{Name: "render", Busy: "10ms"},
		},
	}
}

// loadWorkload reads a YAML workload description from path.
func loadWorkload(path string) (Workload, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Workload path from CLI flag is expected.
	if err != nil {
		return Workload{}, fmt.Errorf("%w: %w", ErrReadWorkload, err)
	}

	var w Workload

	err = yaml.Unmarshal(data, &w)
	if err != nil {
		return Workload{}, fmt.Errorf("%w: %w", ErrReadWorkload, err)
	}

	err = w.validate()
	if err != nil {
		return Workload{}, err
	}

	return w, nil
}

// validate checks stage names and busy durations up front so run never
// fails halfway through a frame loop.
func (w Workload) validate() error {
	if w.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrBadWorkload, w.Frames)
	}

	if len(w.Stages) == 0 {
		return fmt.Errorf("%w: no stages", ErrBadWorkload)
	}

	return validateStages(w.Stages)
}

func validateStages(stages []Stage) error {
	for _, s := range stages {
		if s.Name == "" {
			return fmt.Errorf("%w: stage with empty name", ErrBadWorkload)
		}

		_, err := s.busy()
		if err != nil {
			return fmt.Errorf("%w: stage %q: %w", ErrBadWorkload, s.Name, err)
		}

		err = validateStages(s.Children)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s Stage) busy() (time.Duration, error) {
	if s.Busy == "" {
		return 0, nil
	}

	return time.ParseDuration(s.Busy)
}

// run executes all frames against p.
func (w Workload) run(p *profiler.Profiler) error {
	for i := range w.Frames {
		err := w.runFrame(p, i)
		if err != nil {
			return err
		}
	}

	return nil
}

// runFrame executes one frame against p.
func (w Workload) runFrame(p *profiler.Profiler, frame int) error {
	defer p.Enter("frame").End()

	return runStages(p, w.Stages, frame)
}

func runStages(p *profiler.Profiler, stages []Stage, frame int) error {
	for _, s := range stages {
		if s.Every > 1 && frame%s.Every != 0 {
			continue
		}

		err := runStage(p, s, frame)
		if err != nil {
			return err
		}
	}

	return nil
}

func runStage(p *profiler.Profiler, s Stage, frame int) error {
	defer p.Enter(s.Name).End()

	busy, err := s.busy()
	if err != nil {
		return fmt.Errorf("%w: stage %q: %w", ErrBadWorkload, s.Name, err)
	}

	if busy > 0 {
		time.Sleep(busy)
	}

	return runStages(p, s.Children, frame)
}
