package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/motionlab/internal/demos"
	"github.com/san-kum/motionlab/internal/kinematics"
	"github.com/san-kum/motionlab/internal/sim"
)

const (
	canvasWidth     = 60
	canvasHeight    = 20
	historyCapacity = 300
	trailCapacity   = 80
)

type TickMsg time.Time

// BackMsg asks the owner of a LiveModel to close it.
type BackMsg struct{}

// paramStep is the increment applied by the up/down keys. Flags toggle instead.
var paramStep = map[string]float64{
	"amplitude":        5,
	"length":           0.1,
	"mass":             0.1,
	"velocity":         0.5,
	"wheel_radius":     0.05,
	"initial_velocity": 0.5,
	"acceleration":     0.25,
}

// LiveModel is the bubbletea program for one demo. All controller access happens
// inside Update, on the bubbletea goroutine.
type LiveModel struct {
	ctrl *sim.Controller
	fps  int
	now  func() time.Time

	canvas   *Canvas
	camera   *Follow
	toasts   Toasts
	frame    sim.Frame
	history  []float64
	trail    []pixel
	initial  map[string]float64
	selected int
	showHelp bool
}

func NewLiveModel(ctrl *sim.Controller, fps int) LiveModel {
	if fps <= 0 {
		fps = 60
	}
	m := LiveModel{
		ctrl:    ctrl,
		fps:     fps,
		now:     time.Now,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		camera:  NewFollow(fps),
		history: make([]float64, 0, historyCapacity),
		initial: ctrl.Model().GetParams(),
	}
	m.frame = ctrl.Snapshot()
	m.camera.Snap(m.frame.Pose.Position)
	return m
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Init() tea.Cmd { return m.tick() }

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case BackMsg:
		return m, tea.Quit
	case TickMsg:
		m.absorb(m.ctrl.Tick())
		return m, m.tick()
	}
	return m, nil
}

func (m LiveModel) handleKey(msg tea.KeyMsg) (LiveModel, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m, func() tea.Msg { return BackMsg{} }
	case "s", "enter":
		m.ctrl.Start()
	case " ", "p":
		m.ctrl.TogglePause()
	case "r":
		m.ctrl.Reset()
	case "tab":
		names := m.ctrl.Model().ParamNames()
		m.selected = (m.selected + 1) % len(names)
	case "shift+tab":
		names := m.ctrl.Model().ParamNames()
		m.selected = (m.selected + len(names) - 1) % len(names)
	case "up", "k", "right", "l":
		m.adjust(1)
	case "down", "j", "left", "h":
		m.adjust(-1)
	case "t":
		NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// adjust nudges the selected parameter by one step in dir. Rejected values keep
// the old value and raise an error toast.
func (m *LiveModel) adjust(dir float64) {
	names := m.ctrl.Model().ParamNames()
	name := names[m.selected]
	current := m.ctrl.Model().GetParams()[name]

	next := current + dir*paramStep[name]
	if _, ok := paramStep[name]; !ok {
		next = 1 - current
	}
	if err := m.ctrl.SetParameter(name, next); err != nil {
		m.toasts.Push(err.Error(), ToastError, m.now())
	}
}

// absorb takes one presented frame into the view state.
func (m *LiveModel) absorb(f sim.Frame) {
	now := m.now()
	m.toasts.Prune(now)
	for _, e := range f.Events {
		m.toasts.PushEvent(e, now)
		if e.Kind == sim.EventReset || e.Kind == sim.EventStarted {
			m.history = m.history[:0]
			m.trail = m.trail[:0]
		}
	}
	if f.Rebuild {
		m.trail = m.trail[:0]
		m.camera.Snap(f.Pose.Position)
	}

	if f.Phase == sim.PhaseRunning {
		m.history = append(m.history, historyValue(f))
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
	}
	if f.Phase == sim.PhaseIdle {
		m.camera.Snap(f.Pose.Position)
	} else {
		m.camera.Update(f.Pose.Position)
	}
	if f.Model == demos.PendulumName && f.Phase == sim.PhaseRunning {
		bx, by := NewPendulumLayout(m.canvas, f.Params["length"]).Bob(f.Pose)
		m.trail = append(m.trail, pixel{bx, by})
		if len(m.trail) > trailCapacity {
			m.trail = m.trail[1:]
		}
	}
	m.frame = f
}

func historyValue(f sim.Frame) float64 {
	if f.Model == demos.PendulumName {
		return float64(kinematics.Degrees(f.Pose.Rotation))
	}
	return f.Pose.Position
}

func (m LiveModel) draw() {
	m.canvas.Clear()
	for _, p := range m.trail {
		m.canvas.Set(p.x, p.y)
	}
	DrawFrame(m.canvas, m.frame, m.camera.Offset())
}

func (m LiveModel) View() string {
	st := newStyles(CurrentTheme)
	m.draw()

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.frame.Model)) + "\n")
	s.WriteString(m.status(st) + "\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	pose := m.frame.Pose
	row("Time", fmt.Sprintf("%.2f s", m.frame.Clock.Elapsed))
	switch m.frame.Model {
	case demos.PendulumName:
		period, frequency, omega := kinematics.PendulumFigures(m.frame.Params["length"])
		row("Angle", fmt.Sprintf("%d°", kinematics.Degrees(pose.Rotation)))
		row("Velocity", fmt.Sprintf("%.2f m/s", pose.Velocity))
		row("Period", fmt.Sprintf("%.2f s", period))
		row("Frequency", fmt.Sprintf("%.2f Hz", frequency))
		row("Angular freq", fmt.Sprintf("%.2f rad/s", omega))
	default:
		row("Distance", fmt.Sprintf("%.2f m", pose.Position))
		row("Velocity", fmt.Sprintf("%.2f m/s", pose.Velocity))
		if m.frame.Model == demos.UniformName {
			row("Wheel", fmt.Sprintf("%.2f turns", kinematics.WheelTurns(pose.Position, m.frame.Params["wheel_radius"])))
		} else {
			row("Wheel", fmt.Sprintf("%.2f rad", pose.Rotation))
		}
		row("Track", ProgressBar(pose.Position/kinematics.TrackLength, 20))
	}

	s.WriteString(st.section.Render("PARAMETERS") + "\n")
	for i, name := range m.ctrl.Model().ParamNames() {
		line := fmt.Sprintf("%-16s %s", name, formatParam(name, m.frame.Params[name]))
		if i == m.selected {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.value.Render(line) + "\n")
		}
	}

	if len(m.history) > 1 {
		caption := "Distance (m)"
		if m.frame.Model == demos.PendulumName {
			caption = "Angle (°)"
		}
		chart := asciigraph.Plot(m.history, asciigraph.Height(5), asciigraph.Width(32), asciigraph.Caption(caption))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	if m.frame.Result != nil {
		s.WriteString(m.results(st) + "\n")
	}

	s.WriteString(st.help.Render("S:Start SP:Pause R:Reset Q:Quit\nTab:Param ↑↓:Tune T:Theme ?:Help"))

	left := st.canvas.Render(m.canvas.String())
	if toasts := m.renderToasts(st); toasts != "" {
		left = lipgloss.JoinVertical(lipgloss.Left, left, toasts)
	}
	view := lipgloss.JoinHorizontal(lipgloss.Top, left, st.panel.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n" + view
	}
	return view
}

func (m LiveModel) status(st styles) string {
	switch m.frame.Phase {
	case sim.PhaseRunning:
		return st.running.Render("RUNNING")
	case sim.PhasePaused:
		return st.paused.Render("PAUSED")
	case sim.PhaseCompleted:
		return st.finished.Render("COMPLETED")
	}
	return st.value.Render("READY")
}

func (m LiveModel) renderToasts(st styles) string {
	active := m.toasts.Active(m.now())
	if len(active) == 0 {
		return ""
	}
	lines := make([]string, len(active))
	for i, t := range active {
		lines[i] = st.toasts[t.Level].Render(t.Text)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// results renders the completion panel: the parameters the run started with, the
// final figures and the formulas behind them.
func (m LiveModel) results(st styles) string {
	r := m.frame.Result
	var b strings.Builder
	b.WriteString(st.section.Render("RESULTS") + "\n")

	for _, name := range m.ctrl.Model().ParamNames() {
		fmt.Fprintf(&b, "%-16s %s\n", name, formatParam(name, r.Params[name]))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-16s %.2f s\n", "time", r.Elapsed)
	fmt.Fprintf(&b, "%-16s %.2f m\n", "distance", r.FinalPosition)
	fmt.Fprintf(&b, "%-16s %.2f m/s\n", "final velocity", r.Velocity)
	fmt.Fprintf(&b, "%-16s %.2f\n", "wheel turns", r.WheelTurns)
	b.WriteString("\n")
	for _, f := range Formulas(r.Model) {
		b.WriteString(st.formula.Render(f) + "\n")
	}
	return st.results.Render(strings.TrimRight(b.String(), "\n"))
}

// Formulas lists the relations a demo's readouts are computed from.
func Formulas(model string) []string {
	switch model {
	case demos.PendulumName:
		return []string{"θ(t) = θ₀·cos(ωt)·0.995^(10t)", "ω = √(g/L)", "T = 2π/ω"}
	case demos.UniformName:
		return []string{"s = v·t", "t = s/v", "n = s/(2πr)"}
	case demos.AcceleratedName:
		return []string{"v = v₀ + a·t", "s = v₀·t + ½·a·t²", "v² = v₀² + 2·a·s"}
	}
	return nil
}

func formatParam(name string, v float64) string {
	if _, ok := paramStep[name]; !ok {
		if v == 1 {
			return "on"
		}
		return "off"
	}
	if math.Abs(v) >= 10 {
		return fmt.Sprintf("%.1f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  S/Enter  - Start (restarts)         ║
║  Space/P  - Pause/Resume             ║
║  R        - Reset                    ║
║  Tab      - Next parameter           ║
║  Up/K     - Increase parameter       ║
║  Down/J   - Decrease parameter       ║
║  T        - Cycle themes             ║
║  Esc      - Back to menu             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
`
