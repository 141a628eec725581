package viz

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/san-kum/threebody/internal/config"
	"github.com/san-kum/threebody/internal/scene"
	"github.com/san-kum/threebody/internal/storage"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var presetInfo = map[string]string{
	"classic": "three bodies on the ring",
	"binary":  "a tight pair",
	"trinary": "three bodies, no moons, ember",
	"quintet": "five light bodies",
	"lonely":  "one body and its moons",
	"busy":    "dense lines, trails and arrows",
}

const (
	stateMenu = iota
	stateSeed
	stateLive
)

// picker chooses a preset and a seed before handing over to the live view.
type picker struct {
	state   int
	cursor  int
	presets []string
	seed    string
	base    *config.Config
	store   *storage.Store
	logger  *log.Logger
	live    Model
	err     error
}

// NewPicker starts at the preset menu. base supplies everything the preset
// does not set, including the initial seed.
func NewPicker(base *config.Config, store *storage.Store, logger *log.Logger) tea.Model {
	return picker{
		presets: append([]string{"default"}, config.ListPresets()...),
		seed:    base.Seed,
		base:    base,
		store:   store,
		logger:  logger,
	}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateLive {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch m.state {
	case stateMenu:
		return m.menuKey(key)
	case stateSeed:
		return m.seedKey(key)
	}
	return m, nil
}

func (m picker) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.state = stateSeed
	}
	return m, nil
}

func (m picker) seedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.state = stateMenu
	case tea.KeyBackspace:
		if len(m.seed) > 0 {
			r := []rune(m.seed)
			m.seed = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.seed += string(msg.Runes)
	case tea.KeyEnter:
		return m.start()
	}
	return m, nil
}

// start composes the chosen scene and switches to the live view.
func (m picker) start() (tea.Model, tea.Cmd) {
	cfg := *m.base
	if name := m.presets[m.cursor]; name != "default" {
		p, err := config.GetPreset(name)
		if err != nil {
			m.err = err
			return m, nil
		}
		p.DataDir = cfg.DataDir
		cfg = *p
	}
	cfg.Seed = m.seed
	sc, err := scene.Compose(&cfg)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live = NewModel(sc, m.store, m.logger)
	m.state, m.err = stateLive, nil
	return m, m.live.Init()
}

func (m picker) View() string {
	switch m.state {
	case stateLive:
		return m.live.View()
	case stateSeed:
		return m.viewSeed()
	}
	return m.viewMenu()
}

func (m picker) viewMenu() string {
	var b strings.Builder
	b.WriteString(cyan.Bold(true).Render("THREEBODY") + "  " + dim.Render("pick a preset") + "\n\n")
	for i, name := range m.presets {
		line := name
		if info, ok := presetInfo[name]; ok {
			line += "  " + dim.Render(info)
		}
		if i == m.cursor {
			b.WriteString(magenta.Render("> ") + white.Bold(true).Render(line) + "\n")
		} else {
			b.WriteString("  " + white.Render(line) + "\n")
		}
	}
	b.WriteString("\n" + dim.Render("↑↓ select · enter choose · q quit"))
	return b.String()
}

func (m picker) viewSeed() string {
	var b strings.Builder
	b.WriteString(cyan.Bold(true).Render(m.presets[m.cursor]) + "\n\n")
	b.WriteString(white.Render("seed: ") + magenta.Render(m.seed+"█") + "\n")
	if m.err != nil {
		b.WriteString("\n" + StatusRecording.UnsetBlink().Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + dim.Render("type a seed · enter start · esc back"))
	return b.String()
}

// RunInteractive opens the preset picker.
func RunInteractive(base *config.Config, store *storage.Store, logger *log.Logger) error {
	_, err := tea.NewProgram(NewPicker(base, store, logger), tea.WithAltScreen()).Run()
	return err
}
