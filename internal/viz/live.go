// Package viz renders the live collision view in the terminal: a 1D track
// with both particles, the before/after readouts, and a kinetic-energy
// history chart. The bubbletea tick loop is the frame scheduler; every tick
// yields back to the host program between frames.
package viz

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/crashsim/internal/config"
	"github.com/san-kum/crashsim/internal/sim"
)

const (
	trackWidth      = 72
	trackHeight     = 7
	worldHalf       = 100.0
	historyCapacity = 600
)

type TickMsg time.Time

// resolvedMsg carries a boundary-call completion back into the update loop.
type resolvedMsg struct{ c sim.Completion }

// Model drives the live view: it owns the state machine, the frame
// scheduler, and the display buffers.
type Model struct {
	machine *sim.Machine
	sched   *sim.Scheduler

	fps       int
	presets   []config.Preset
	presetIdx int
	selected  sim.Target
	elapsed   float64
	keHistory []float64
	showHelp  bool
}

// NewModel builds the live view for a scenario.
func NewModel(cfg *config.Config, resolver sim.Resolver) Model {
	p1 := sim.NewParticle("p1", cfg.Particle1.Mass, cfg.Particle1.Velocity, cfg.Particle1.Position)
	p2 := sim.NewParticle("p2", cfg.Particle2.Mass, cfg.Particle2.Velocity, cfg.Particle2.Position)

	machine := sim.NewMachine(sim.NewState(p1, p2, cfg.Restitution), resolver)

	return Model{
		machine:   machine,
		sched:     sim.NewScheduler(machine),
		fps:       cfg.FrameRate,
		presets:   config.Presets,
		presetIdx: -1,
		keHistory: make([]float64, 0, historyCapacity),
	}
}

// Run opens the live view and blocks until the user quits.
func Run(cfg *config.Config, resolver sim.Resolver) error {
	p := tea.NewProgram(NewModel(cfg, resolver))
	_, err := p.Run()
	return err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the frame loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			return m.togglePlay()
		case "r":
			m.machine.Reset()
			m.elapsed = 0
			m.keHistory = m.keHistory[:0]
		case "tab":
			m.selected = 1 - m.selected
		case "1":
			m.selected = sim.Particle1
		case "2":
			m.selected = sim.Particle2
		case "up", "k":
			m.adjustMass(0.1)
		case "down", "j":
			m.adjustMass(-0.1)
		case "right", "l":
			m.adjustVelocity(0.5)
		case "left", "h":
			m.adjustVelocity(-0.5)
		case "]":
			m.adjustRestitution(0.05)
		case "[":
			m.adjustRestitution(-0.05)
		case "t":
			m.cycleCollisionType()
		case "p":
			m.applyNextPreset()
		case "?":
			m.showHelp = !m.showHelp
		}
		return m, nil

	case resolvedMsg:
		m.machine.Finish(msg.c)
		return m, nil

	case TickMsg:
		res := m.sched.Tick(time.Time(msg))
		if res.Advanced {
			m.elapsed += res.Dt
			m.keHistory = append(m.keHistory, m.machine.State().TotalKineticEnergy())
			if len(m.keHistory) > historyCapacity {
				m.keHistory = m.keHistory[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// togglePlay starts, pauses, or resumes depending on status. Starting kicks
// off the boundary call as a command; motion begins only when the result
// lands.
func (m Model) togglePlay() (tea.Model, tea.Cmd) {
	switch m.machine.State().Status {
	case sim.Idle:
		work, ok := m.machine.Begin()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return resolvedMsg{c: work(context.Background())} }
	case sim.Playing:
		m.machine.Dispatch(sim.Pause{})
	case sim.Paused:
		m.machine.Dispatch(sim.Resume{})
	}
	return m, nil
}

func (m *Model) adjustMass(delta float64) {
	st := m.machine.State()
	current := st.P1.Mass
	if m.selected == sim.Particle2 {
		current = st.P2.Mass
	}
	v := clamp(current+delta, 0.1, config.MaxMass)
	m.machine.Dispatch(sim.SetMass{Target: m.selected, Value: v})
}

func (m *Model) adjustVelocity(delta float64) {
	st := m.machine.State()
	current := st.P1.Velocity
	if m.selected == sim.Particle2 {
		current = st.P2.Velocity
	}
	v := clamp(current+delta, -config.MaxVelocity, config.MaxVelocity)
	m.machine.Dispatch(sim.SetVelocity{Target: m.selected, Value: v})
}

func (m *Model) adjustRestitution(delta float64) {
	e := clamp(m.machine.State().Restitution+delta, 0, 1)
	// snap near-boundary values so stepping reaches the labelled modes
	e = math.Round(e*100) / 100
	m.machine.Dispatch(sim.SetRestitution{Value: e})
}

func (m *Model) cycleCollisionType() {
	switch m.machine.State().CollisionType {
	case sim.Elastic:
		m.machine.Dispatch(sim.SetCollisionType{Type: sim.Inelastic})
	case sim.Inelastic:
		m.machine.Dispatch(sim.SetCollisionType{Type: sim.Custom})
	default:
		m.machine.Dispatch(sim.SetCollisionType{Type: sim.Elastic})
	}
}

func (m *Model) applyNextPreset() {
	if len(m.presets) == 0 || m.machine.State().Status != sim.Idle {
		return
	}
	m.presetIdx = (m.presetIdx + 1) % len(m.presets)
	p := m.presets[m.presetIdx]
	m.machine.Dispatch(sim.LoadPreset{
		Mass1: p.Particle1.Mass, Velocity1: p.Particle1.Velocity,
		Mass2: p.Particle2.Mass, Velocity2: p.Particle2.Velocity,
		Restitution: p.Restitution,
	})
}

// View renders the track and the stats panel side by side.
func (m Model) View() string {
	st := m.machine.State()

	canvasView := canvasStyle.Render(m.drawTrack(st))
	statsView := statsStyle.Render(m.drawStats(st))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

// drawTrack renders the 1D world: a baseline with both particles drawn to
// scale, widths proportional to their display radii.
func (m Model) drawTrack(st sim.State) string {
	canvas := make([][]rune, trackHeight)
	for i := range canvas {
		canvas[i] = make([]rune, trackWidth)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	baseline := trackHeight - 2
	for x := 0; x < trackWidth; x++ {
		canvas[baseline][x] = '─'
	}
	canvas[baseline][trackWidth/2] = '┼'

	drawParticle(canvas, baseline-1, st.P1, '●')
	drawParticle(canvas, baseline-1, st.P2, 'o')

	var s strings.Builder
	s.WriteString(headerStyle.Render("CRASHSIM") + "\n\n")
	for _, row := range canvas {
		s.WriteString(string(row) + "\n")
	}
	s.WriteString(fmt.Sprintf("%*s%*s\n", 6, fmt.Sprintf("%.0f", -worldHalf), trackWidth-6, fmt.Sprintf("%.0f", worldHalf)))
	return s.String()
}

func drawParticle(canvas [][]rune, row int, p sim.Particle, glyph rune) {
	center := worldToCol(p.Position)
	half := int(p.Radius / (2 * worldHalf) * float64(trackWidth-1))

	for x := center - half; x <= center+half; x++ {
		if x >= 0 && x < trackWidth {
			canvas[row][x] = glyph
		}
	}
}

func worldToCol(x float64) int {
	return int((x + worldHalf) / (2 * worldHalf) * float64(trackWidth-1))
}

func (m Model) drawStats(st sim.State) string {
	var s strings.Builder

	status := strings.ToUpper(st.Status.String())
	if st.InFlight {
		status = "RESOLVING..."
	}
	s.WriteString(statusStyle.Render(status) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.elapsed)) + "\n\n")

	s.WriteString(m.particleLine(sim.Particle1, st.P1, particle1Style.Render("● particle 1")))
	s.WriteString(m.particleLine(sim.Particle2, st.P2, particle2Style.Render("o particle 2")))

	s.WriteString(labelStyle.Render("Restitution") + valueStyle.Render(fmt.Sprintf("%.2f (%s)", st.Restitution, st.CollisionType)) + "\n")
	if m.presetIdx >= 0 {
		s.WriteString(labelStyle.Render("Preset") + valueStyle.Render(m.presets[m.presetIdx].Name) + "\n")
	}

	s.WriteString("\n")
	s.WriteString(labelStyle.Render("Momentum") + valueStyle.Render(fmt.Sprintf("%.2f", st.TotalMomentum())) + "\n")
	s.WriteString(labelStyle.Render("Kinetic E") + valueStyle.Render(fmt.Sprintf("%.2f", st.TotalKineticEnergy())) + "\n")

	if st.Result != nil {
		r := st.Result
		s.WriteString("\nRESULT            before      after\n")
		s.WriteString(fmt.Sprintf("  v1        %10.2f %10.2f\n", r.Particle1Before.Velocity, r.Particle1After.Velocity))
		s.WriteString(fmt.Sprintf("  v2        %10.2f %10.2f\n", r.Particle2Before.Velocity, r.Particle2After.Velocity))
		s.WriteString(fmt.Sprintf("  momentum  %10.2f %10.2f\n", r.TotalMomentumBefore, r.TotalMomentumAfter))
		s.WriteString(fmt.Sprintf("  kinetic E %10.2f %10.2f\n", r.TotalKineticEnergyBefore, r.TotalKineticEnergyAfter))
	}

	if st.Err != "" {
		s.WriteString("\n" + errorStyle.Render("ERROR: "+st.Err) + "\n")
		s.WriteString(helpStyle.Render("press R to reset") + "\n")
	}

	if len(m.keHistory) > 1 {
		chart := asciigraph.Plot(m.keHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Total KE"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("\n──────────────────────\nSP:Start/Pause R:Reset Q:Quit\nTab/1/2:Select ↑↓:Mass ←→:Velocity\n[ ]:Restitution T:Type P:Preset ?:Help"))
	return s.String()
}

func (m Model) particleLine(t sim.Target, p sim.Particle, title string) string {
	line := fmt.Sprintf("%s  m=%.1f v=%+.1f x=%+.0f\n", title, p.Mass, p.Velocity, p.Position)
	if m.selected == t {
		return selectedStyle.Render("> ") + line
	}
	return "  " + line
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

const helpText = `
╔═══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS           ║
╠═══════════════════════════════════════╣
║  Space    - Start / pause / resume    ║
║  R        - Reset to configuration    ║
║  Tab,1,2  - Select particle           ║
║  Up/Down  - Adjust mass (idle only)   ║
║  L/R      - Adjust velocity           ║
║  [ ]      - Adjust restitution        ║
║  T        - Cycle collision type      ║
║  P        - Apply next preset         ║
║  Q        - Quit                      ║
╚═══════════════════════════════════════╝`
