package viz

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/mitosis/internal/metrics"
	"github.com/san-kum/mitosis/internal/sim"
)

const (
	hudWidth        = 34
	historyCapacity = 600
	orbitStep       = 0.12
	dragStep        = 0.05
	zoomStep        = 1.15
)

type TickMsg time.Time

// Options configures the terminal front-end.
type Options struct {
	// Logger receives split, refusal and resize events. Nil discards.
	Logger *log.Logger
	FPS    int
	Theme  string
}

// Model is the bubbletea model driving a simulator. All simulator access
// happens inside Update, so clicks land between frames.
type Model struct {
	sim         *sim.Simulator
	canvas      *Canvas
	renderer    *Renderer
	containment *metrics.Containment
	logger      *log.Logger
	styles      styles

	width, height int
	frameTime     time.Duration
	lastTick      time.Time
	fps           float64
	running       bool
	showHelp      bool
	dragging      bool
	dragX, dragY  int
	event         string
	population    []float64
	energy        []float64
}

func NewModel(s *sim.Simulator, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	if opts.Theme != "" {
		SetTheme(opts.Theme)
	}

	canvas := NewCanvas(80-hudWidth, 24)
	r := NewRenderer(canvas)
	r.RingColor = CurrentTheme.Ring
	s.SetRenderer(r)

	c := metrics.NewContainment()
	s.AddMetric(c)

	m := Model{
		sim:         s,
		canvas:      canvas,
		renderer:    r,
		containment: c,
		logger:      logger,
		styles:      newStyles(CurrentTheme),
		width:       80,
		height:      24,
		frameTime:   time.Second / time.Duration(fps),
		lastTick:    time.Now(),
		running:     true,
		population:  make([]float64, 0, historyCapacity),
		energy:      make([]float64, 0, historyCapacity),
	}
	m.resize(m.width, m.height)
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frameTime, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

// step advances one frame with the real time since the previous tick. While
// paused only the camera eases and the scene is redrawn.
func (m *Model) step(now time.Time) {
	elapsed := now.Sub(m.lastTick).Seconds()
	m.lastTick = now
	if elapsed > 0 {
		m.fps = 0.9*m.fps + 0.1/elapsed
	}

	if !m.running {
		m.sim.Controls().Update()
		m.renderer.Render(m.sim.Scene(), m.sim.Camera())
		return
	}

	stats := m.sim.Frame(elapsed)
	m.population = appendCapped(m.population, float64(stats.Population))
	m.energy = appendCapped(m.energy, stats.KineticEnergy)
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// resize gives the canvas everything left of the HUD panel.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cw, ch := max(w-hudWidth-2, 8), max(h, 4)
	m.canvas.Resize(cw, ch)
	pw, ph := m.canvas.PixelSize()
	m.sim.Resize(pw, ph)
	m.logger.Printf("resize: %dx%d cells, %dx%d dots", cw, ch, pw, ph)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	oc := m.sim.Controls()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.sim.Reset()
		m.population = m.population[:0]
		m.energy = m.energy[:0]
		m.event = "reset"
		m.logger.Printf("reset")
	case "t":
		t := NextTheme()
		m.styles = newStyles(t)
		m.renderer.RingColor = t.Ring
	case "?":
		m.showHelp = !m.showHelp
	case "left", "h":
		oc.Rotate(-orbitStep, 0)
	case "right", "l":
		oc.Rotate(orbitStep, 0)
	case "up", "k":
		oc.Rotate(0, -orbitStep)
	case "down", "j":
		oc.Rotate(0, orbitStep)
	case "+", "=":
		oc.Zoom(1 / zoomStep)
	case "-", "_":
		oc.Zoom(zoomStep)
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.sim.Controls().Zoom(1 / zoomStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.sim.Controls().Zoom(zoomStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.click(msg.X, msg.Y)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		m.dragging, m.dragX, m.dragY = true, msg.X, msg.Y
	case msg.Action == tea.MouseActionMotion && m.dragging:
		m.sim.Controls().Rotate(float64(m.dragX-msg.X)*dragStep, float64(m.dragY-msg.Y)*dragStep*2)
		m.dragX, m.dragY = msg.X, msg.Y
	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
	}
}

// click splits the sphere under a terminal cell, if any.
func (m *Model) click(col, row int) {
	x, y, ok := CellNDC(col, row, m.canvas.Width, m.canvas.Height)
	if !ok {
		return
	}
	res, err := m.sim.Click(x, y)
	switch {
	case err != nil:
		m.event = "refused: " + err.Error()
		m.logger.Printf("click (%d,%d) refused: %v", col, row, err)
	case res != nil:
		m.event = fmt.Sprintf("split #%d → #%d #%d", res.Parent, res.Children[0], res.Children[1])
		m.logger.Printf("split object %d into %d and %d (population %d)",
			res.Parent, res.Children[0], res.Children[1], m.sim.Len())
	}
}

func (m Model) View() string {
	st := m.styles
	stats := m.sim.Stats()

	var s strings.Builder
	s.WriteString(GradientText("MITOSIS", CurrentTheme.Primary, CurrentTheme.Secondary) + "\n")
	if m.running {
		s.WriteString(st.running.Render("● RUNNING") + "\n\n")
	} else {
		s.WriteString(st.paused.Render("❚❚ PAUSED") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Spheres", fmt.Sprintf("%d", stats.Population))
	row("Splits", fmt.Sprintf("%d", stats.Splits))
	row("Time", fmt.Sprintf("%.1fs", stats.Time))
	row("Energy", fmt.Sprintf("%.4f", stats.KineticEnergy))
	row("FPS", fmt.Sprintf("%.0f", m.fps))
	row("Distance", fmt.Sprintf("%.1f", m.sim.Controls().Distance()))

	inner := hudWidth - 4
	s.WriteString("\n" + st.label.Render("Contained") + "\n")
	s.WriteString(st.ProgressBar(m.containment.Value(), inner) + "\n")
	s.WriteString("\n" + st.label.Render("Population") + "\n")
	s.WriteString(st.Sparkline(m.population, inner) + "\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy,
			asciigraph.Height(4),
			asciigraph.Width(inner-8),
			asciigraph.Caption("kinetic energy"),
		)
		s.WriteString("\n" + chart + "\n")
	}

	if m.event != "" {
		line := st.event
		if strings.HasPrefix(m.event, "refused") {
			line = st.warn
		}
		s.WriteString("\n" + line.Width(inner).Render(m.event) + "\n")
	}
	s.WriteString("\n" + st.Separator(inner) + "\n")
	s.WriteString(st.hint.Render("click:split  space:pause  ?:help"))

	hud := st.panel.Width(hudWidth - 2).Render(s.String())
	view := lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.Render(), " ", hud)

	if m.showHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, st.help.Render(helpText))
	}
	return view
}

const helpText = `KEYS

left click        split a sphere
right drag        orbit
wheel  + -        zoom
arrows  h j k l   orbit
space             pause / resume
r                 reset
t                 next theme
?                 toggle help
q                 quit`

// Run starts the terminal program and blocks until it exits.
func Run(s *sim.Simulator, opts Options) error {
	p := tea.NewProgram(NewModel(s, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
