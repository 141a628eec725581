package viz

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/threebody/internal/palette"
	"github.com/san-kum/threebody/internal/render"
	"github.com/san-kum/threebody/internal/scene"
	"github.com/san-kum/threebody/internal/storage"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 45
	historyCapacity = 120
	recordingName   = "live.gif"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).Padding(1, 2).Width(statsWidth)
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model is the live terminal view of a scene. It advances the scene on every
// tick, draws the frame onto a braille canvas and optionally records it.
type Model struct {
	scene  *scene.Scene
	frame  *scene.Frame
	canvas *Canvas
	theme  Theme
	dt     float64
	tick   time.Duration

	width, height int
	running       bool
	showHelp      bool

	store    *storage.Store
	raster   *render.Raster
	recorder *render.Recorder
	session  *storage.Session
	saved    string
	err      error
	logger   *log.Logger

	frameTimes []float64 // milliseconds
	iterations []float64
}

// NewModel prepares a live view. Recordings are written into store; a nil
// logger discards log output.
func NewModel(sc *scene.Scene, store *storage.Store, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fps := max(sc.Config.FPS, 1)
	m := Model{
		scene:    sc,
		canvas:   NewCanvas(width, height),
		theme:    ThemeFor(sc.Scheme),
		dt:       1 / float64(fps),
		tick:     time.Second / time.Duration(fps),
		width:    width,
		height:   height,
		running:  true,
		store:    store,
		raster:   render.NewRaster(sc.Config.Size),
		recorder: render.NewRecorder(sc.Config.Record.Frames, sc.Config.Record.Skip, fps),
		logger:   logger,
	}
	m.frame = sc.Frame()
	m.draw()
	return m
}

func (m Model) next() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.next()
}

// Update handles input events and advances the scene.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recorder.Active() {
				m.stopRecording()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "t":
			m.scene.Scheme = palette.Next(m.scene.Scheme.Name)
			m.theme = ThemeFor(m.scene.Scheme)
		case "a":
			m.scene.Config.Grid.Arrows = !m.scene.Config.Grid.Arrows
		case "g":
			if m.recorder.Active() {
				m.stopRecording()
			} else {
				m.startRecording()
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		w := max(msg.Width-statsWidth-6, 10)
		h := max(msg.Height-2, 6)
		if w != m.width || h != m.height {
			m.width, m.height = w, h
			m.canvas = NewCanvas(w, h)
			m.draw()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.next()
	}
	return m, nil
}

// step advances the scene by one frame.
func (m *Model) step() {
	start := time.Now()
	m.scene.Advance(m.dt)
	m.frame = m.scene.Frame()
	m.frameTimes = pushHistory(m.frameTimes, float64(time.Since(start).Microseconds())/1000)
	m.iterations = pushHistory(m.iterations, float64(m.frame.Stats.Iterations))
	m.draw()

	if m.recorder.Active() {
		done, err := m.recorder.Capture(m.raster.Render(m.frame))
		if err != nil {
			m.err = err
		}
		if done {
			m.commit()
		}
	}
}

func pushHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) startRecording() {
	if m.store == nil {
		m.err = fmt.Errorf("viz: no data directory for recordings")
		return
	}
	if err := m.store.Init(); err != nil {
		m.err = err
		return
	}
	sess, err := m.store.Begin("gif", m.scene)
	if err != nil {
		m.err = err
		return
	}
	out, err := sess.Create(recordingName)
	if err != nil {
		m.err = err
		return
	}
	if err := m.recorder.Start(out, m.scene.Scheme); err != nil {
		out.Close()
		m.err = err
		return
	}
	m.session, m.err = sess, nil
	m.logger.Info("recording started", "export", sess.ID(), "limit", m.recorder.Limit)
}

func (m *Model) stopRecording() {
	if err := m.recorder.Stop(); err != nil {
		m.err = err
		m.session = nil
		return
	}
	m.commit()
}

func (m *Model) commit() {
	if m.session == nil {
		return
	}
	if err := m.session.Commit(); err != nil {
		m.err = err
	} else {
		m.saved = m.session.ID()
		m.logger.Info("recording saved", "export", m.saved)
	}
	m.session = nil
}

// draw plots the current frame onto the braille canvas.
func (m *Model) draw() {
	c, f := m.canvas, m.frame
	c.Clear()
	if f == nil {
		return
	}
	for _, a := range f.Arrows {
		c.Line(a.At, a.At.Add(a.V.Normalize().Scale(scene.ArrowLength(a.V))))
	}
	for _, pl := range f.Streamlines {
		for _, d := range pl.Dashes() {
			c.Polyline(d)
		}
	}
	for _, ct := range f.Contours {
		for _, d := range ct.Dashes() {
			c.Polyline(d)
		}
	}
	for _, ci := range f.Circles {
		c.Circle(ci.Center, ci.Radius)
	}
	for _, s := range f.Segments {
		c.Line(s.A, s.B)
	}
	for _, mv := range f.Moons {
		c.Polyline(mv.Trail)
		c.Dot(mv.Position, 0)
	}
	for _, mv := range f.Particles {
		c.Polyline(mv.Trail)
		c.Dot(mv.Position, 0)
	}
	if f.CenterOfMass != nil {
		c.Dot(*f.CenterOfMass, 1)
	}
	for _, b := range f.Bodies {
		c.Circle(b.Center, b.Radius)
		c.Dot(b.Center, 1)
	}
}

func (m Model) status() string {
	switch {
	case m.recorder.Active():
		return StatusRecording.Render(fmt.Sprintf("● REC %d/%d", m.recorder.Frames(), m.recorder.Limit))
	case !m.running:
		return StatusPaused.Render("PAUSED")
	}
	return StatusRunning.Render("RUNNING")
}

func (m Model) row(label, value string) string {
	return MetricLabel.Render(label) + lipgloss.NewStyle().Foreground(m.theme.Text).Render(value) + "\n"
}

// View renders the canvas beside the scene statistics.
func (m Model) View() string {
	th := m.theme
	canvasView := canvasStyle.Foreground(th.Primary).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Foreground(th.Accent).Render("THREEBODY · "+m.scene.Config.Seed) + "\n")
	s.WriteString(m.status() + "\n\n")

	sc := m.scene
	s.WriteString(m.row("Bodies", fmt.Sprintf("%d (drawn %d)", len(sc.Bodies), sc.Drawn)))
	s.WriteString(m.row("Palette", sc.Scheme.Name))
	s.WriteString(m.row("Time", fmt.Sprintf("%.2fs", sc.Elapsed)))
	s.WriteString(m.row("Phase", fmt.Sprintf("%.3f", sc.Phase)))
	s.WriteString(m.row("Frame", fmt.Sprintf("%d", sc.Frames)))
	if f := m.frame; f != nil {
		s.WriteString(m.row("Lines", fmt.Sprintf("%d/%d", len(f.Streamlines), f.Stats.Streamlines)))
		s.WriteString(m.row("Contours", fmt.Sprintf("%d closed of %d", f.Stats.Closed, f.Stats.Contours)))
	}
	if n := len(m.frameTimes); n > 0 {
		s.WriteString(m.row("Frame ms", fmt.Sprintf("%.1f", m.frameTimes[n-1])))
		s.WriteString(SparklineChart(m.frameTimes, 30) + "\n")
	}
	if len(m.iterations) > 1 {
		chart := asciigraph.Plot(m.iterations, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Iterations"))
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(th.Secondary).Render(chart) + "\n")
	}
	if m.saved != "" {
		s.WriteString("\n" + m.row("Saved", m.saved))
	}
	if m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(th.Warning).Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause T:Palette A:Arrows\nG:Record ?:Help Q:Quit"))

	statsView := statsStyle.BorderForeground(th.Muted).Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return KeyHint.Render(`
  Space  pause or resume
  T      cycle palette
  A      toggle grid arrows
  G      start or stop GIF recording
  ?      toggle this help
  Q      quit
`) + "\n" + mainView
	}
	return mainView
}

// Run starts the live view on the alternate screen.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
