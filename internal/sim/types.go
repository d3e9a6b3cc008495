package sim

import (
	"fmt"

	"github.com/san-kum/motionlab/internal/kinematics"
)

// DefaultTimestep is the nominal per-tick advance, an assumed ~60 Hz cadence.
const DefaultTimestep = 0.016

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseCompleted:
		return "completed"
	default:
		return "idle"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range [...]Phase{PhaseIdle, PhaseRunning, PhasePaused, PhaseCompleted} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Clock is the simulated time of one demo. Completed implies !Running.
type Clock struct {
	Elapsed   float64 `json:"elapsed"`
	Running   bool    `json:"running"`
	Paused    bool    `json:"paused"`
	Completed bool    `json:"completed"`
}

func (c Clock) Phase() Phase {
	switch {
	case c.Completed:
		return PhaseCompleted
	case c.Running && c.Paused:
		return PhasePaused
	case c.Running:
		return PhaseRunning
	default:
		return PhaseIdle
	}
}

// Active reports whether the next tick advances the clock.
func (c Clock) Active() bool {
	return c.Running && !c.Paused && !c.Completed
}

// Effect flags what a parameter change means beyond the new value.
type Effect int

const (
	// EffectRebuild marks parameters that change the visual geometry.
	EffectRebuild Effect = 1 << iota
	// EffectRestart marks parameters whose edit restarts a running clock at zero.
	EffectRestart
)

// Model is one demo's parameter store plus its kinematics.
type Model interface {
	Name() string
	ParamNames() []string
	GetParams() map[string]float64
	SetParam(name string, value float64) error
	Effect(name string) Effect
	// Rest is the pose shown while idle.
	Rest() kinematics.Pose
	// Advance evaluates the pose at elapsed time t. prev and dt let models that
	// accumulate per tick (wheel angle) do so; dt is zero for a pure re-evaluation.
	Advance(prev kinematics.Pose, t, dt float64) kinematics.Pose
}

// Bounded models stop when they reach a travel limit.
type Bounded interface {
	Limit() float64
	// Farther reports whether pos beats the recorded maximum excursion.
	Farther(pos, max float64) bool
	// Finish builds the completion report.
	Finish(elapsed float64, final kinematics.Pose, max float64) Result
}

// Result is the final snapshot of a completed track demo.
type Result struct {
	Model         string             `json:"model"`
	Elapsed       float64            `json:"elapsed"`
	FinalPosition float64            `json:"final_position"`
	Velocity      float64            `json:"velocity"`
	MaxPosition   float64            `json:"max_position"`
	WheelTurns    float64            `json:"wheel_turns"`
	Params        map[string]float64 `json:"params"`
}

type EventKind int

const (
	EventStarted EventKind = iota
	EventPaused
	EventResumed
	EventReset
	EventCompleted
)

func (k EventKind) String() string {
	return [...]string{"started", "paused", "resumed", "reset", "completed"}[k]
}

// Event is a notification raised by a command or by the completion detector.
type Event struct {
	Kind    EventKind `json:"kind"`
	Message string    `json:"message"`
	Time    float64   `json:"time"`
}

// Frame is everything a presenter needs to draw one tick.
type Frame struct {
	Model       string             `json:"model"`
	Tick        int                `json:"tick"`
	Pose        kinematics.Pose    `json:"pose"`
	Clock       Clock              `json:"clock"`
	Phase       Phase              `json:"phase"`
	MaxPosition float64            `json:"max_position"`
	Params      map[string]float64 `json:"params"`
	Events      []Event            `json:"events,omitempty"`
	Rebuild     bool               `json:"rebuild,omitempty"`
	Result      *Result            `json:"result,omitempty"`
}

// Presenter consumes one frame per tick.
type Presenter interface {
	Present(f Frame)
}

type PresenterFunc func(f Frame)

func (fn PresenterFunc) Present(f Frame) { fn(f) }

type discard struct{}

func (discard) Present(Frame) {}

// Discard drops every frame. Used headless.
var Discard Presenter = discard{}

// Sample is one recorded tick of a headless run.
type Sample struct {
	Tick  int             `json:"tick"`
	Time  float64         `json:"time"`
	Pose  kinematics.Pose `json:"pose"`
	Phase Phase           `json:"phase"`
}

// Trace is the recorded output of Run.
type Trace struct {
	Model    string             `json:"model"`
	Timestep float64            `json:"timestep"`
	Params   map[string]float64 `json:"params"`
	Samples  []Sample           `json:"samples"`
	Result   *Result            `json:"result,omitempty"`
}
