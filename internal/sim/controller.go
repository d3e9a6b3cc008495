package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/motionlab/internal/kinematics"
)

// Controller owns one demo: its model, clock and current pose. It is not safe for
// concurrent use; commands and ticks must come from one goroutine.
type Controller struct {
	model     Model
	presenter Presenter
	dt        float64

	clock  Clock
	pose   kinematics.Pose
	max    float64
	ticks  int
	result *Result

	pending []Event
	rebuild bool
}

type Option func(*Controller) error

// WithTimestep overrides DefaultTimestep.
func WithTimestep(dt float64) Option {
	return func(c *Controller) error {
		if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
			return fmt.Errorf("%w, got %g", ErrInvalidTimestep, dt)
		}
		c.dt = dt
		return nil
	}
}

func WithPresenter(p Presenter) Option {
	return func(c *Controller) error {
		if p == nil {
			p = Discard
		}
		c.presenter = p
		return nil
	}
}

func NewController(m Model, opts ...Option) (*Controller, error) {
	c := &Controller{
		model:     m,
		presenter: Discard,
		dt:        DefaultTimestep,
		pose:      m.Rest(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Controller) Model() Model          { return c.model }
func (c *Controller) Clock() Clock          { return c.clock }
func (c *Controller) Phase() Phase          { return c.clock.Phase() }
func (c *Controller) Pose() kinematics.Pose { return c.pose }
func (c *Controller) Timestep() float64     { return c.dt }
func (c *Controller) MaxPosition() float64  { return c.max }

// Ticks counts ticks since the last start, reset or restarting edit.
func (c *Controller) Ticks() int { return c.ticks }

// Result returns the completion snapshot once the demo has completed.
func (c *Controller) Result() (Result, bool) {
	if c.result == nil {
		return Result{}, false
	}
	return *c.result, true
}

// SetParameter validates and applies one parameter. A rejected value leaves the
// model unchanged.
func (c *Controller) SetParameter(name string, value float64) error {
	if err := c.model.SetParam(name, value); err != nil {
		return err
	}
	effect := c.model.Effect(name)
	if effect&EffectRebuild != 0 {
		c.rebuild = true
	}
	if effect&EffectRestart != 0 && c.clock.Running && !c.clock.Completed {
		c.clock.Elapsed = 0
		c.ticks = 0
	}

	switch c.clock.Phase() {
	case PhaseIdle:
		c.pose = c.model.Rest()
	case PhasePaused:
		c.pose = c.model.Advance(c.pose, c.clock.Elapsed, 0)
	}
	return nil
}

// Start (re)starts the demo from zero elapsed time.
func (c *Controller) Start() {
	c.clock = Clock{Running: true}
	c.pose = c.model.Rest()
	c.max = 0
	c.ticks = 0
	c.result = nil
	c.emit(EventStarted, "simulation started")
}

// TogglePause flips between running and paused. It does nothing unless the demo is
// running and not completed.
func (c *Controller) TogglePause() {
	if c.clock.Paused {
		c.Resume()
	} else {
		c.Pause()
	}
}

func (c *Controller) Pause() {
	if !c.clock.Running || c.clock.Completed || c.clock.Paused {
		return
	}
	c.clock.Paused = true
	c.emit(EventPaused, "simulation paused")
}

func (c *Controller) Resume() {
	if !c.clock.Running || c.clock.Completed || !c.clock.Paused {
		return
	}
	c.clock.Paused = false
	c.emit(EventResumed, "simulation resumed")
}

// Reset returns to idle with a zeroed clock and the resting pose.
func (c *Controller) Reset() {
	c.clock = Clock{}
	c.pose = c.model.Rest()
	c.max = 0
	c.ticks = 0
	c.result = nil
	c.emit(EventReset, "simulation reset")
}

// Tick advances the clock by one timestep when active, evaluates the model, runs
// the completion detector and presents a frame. Idle, paused and completed demos
// are presented too.
func (c *Controller) Tick() Frame {
	if c.clock.Active() {
		c.clock.Elapsed += c.dt
		c.ticks++
		c.pose = c.model.Advance(c.pose, c.clock.Elapsed, c.dt)
		c.detect()
	}

	f := c.Snapshot()
	c.pending = nil
	c.rebuild = false
	c.presenter.Present(f)
	return f
}

// Snapshot builds the current frame without advancing or draining events.
func (c *Controller) Snapshot() Frame {
	f := Frame{
		Model:       c.model.Name(),
		Tick:        c.ticks,
		Pose:        c.pose,
		Clock:       c.clock,
		Phase:       c.clock.Phase(),
		MaxPosition: c.max,
		Params:      c.model.GetParams(),
		Rebuild:     c.rebuild,
	}
	if len(c.pending) > 0 {
		f.Events = append([]Event(nil), c.pending...)
	}
	if c.result != nil {
		r := *c.result
		f.Result = &r
	}
	return f
}

func (c *Controller) detect() {
	b, ok := c.model.(Bounded)
	if !ok {
		return
	}

	reached := c.pose.Position >= b.Limit()
	if reached {
		c.pose.Position = b.Limit()
	}
	if b.Farther(c.pose.Position, c.max) {
		c.max = c.pose.Position
	}
	if !reached {
		return
	}

	c.clock.Running = false
	c.clock.Paused = false
	c.clock.Completed = true
	r := b.Finish(c.clock.Elapsed, c.pose, c.max)
	c.result = &r
	c.emit(EventCompleted, "simulation complete: reached end of track")
}

func (c *Controller) emit(kind EventKind, msg string) {
	c.pending = append(c.pending, Event{Kind: kind, Message: msg, Time: c.clock.Elapsed})
}
