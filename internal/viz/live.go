package viz

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/atmos/internal/engine"
	"github.com/san-kum/atmos/internal/export"
	"github.com/san-kum/atmos/internal/selector"
)

const (
	// DefaultColumns and DefaultRows size the canvas until the terminal
	// reports its size.
	DefaultColumns  = 80
	DefaultRows     = 24
	statusLines     = 1
	historyCapacity = 600
	DefaultGIFPath  = "atmos.gif"
)

type TickMsg time.Time

// StateMsg carries a fresh selector state from the poller goroutine.
type StateMsg selector.State

// Ambience follows the engine from the render loop, e.g. a sound layer.
type Ambience interface {
	Update(s engine.Stats)
}

type Options struct {
	Interval time.Duration
	// Auto applies modes from StateMsg until a key forces one.
	Auto     bool
	GIFPath  string
	Ambience Ambience
}

// Model is the terminal host. It is the only code that touches the engine
// once the program starts.
type Model struct {
	eng      *engine.Engine
	canvas   *Canvas
	interval time.Duration
	auto     bool
	state    selector.State
	hasState bool
	history  []float64
	ticks    int

	recording bool
	gif       *export.GIFRecorder
	gifPath   string
	notice    string

	ambience Ambience
	showHelp bool
}

func NewModel(eng *engine.Engine, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 60
	}
	if opts.GIFPath == "" {
		opts.GIFPath = DefaultGIFPath
	}
	m := Model{
		eng:      eng,
		canvas:   NewCanvas(DefaultColumns, DefaultRows-statusLines),
		interval: opts.Interval,
		auto:     opts.Auto,
		history:  make([]float64, 0, historyCapacity),
		gifPath:  opts.GIFPath,
		ambience: opts.Ambience,
	}
	m.eng.Resize(m.canvas.SurfaceSize())
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.canvas.Resize(msg.Width, msg.Height-statusLines)
		m.eng.Resize(m.canvas.SurfaceSize())
	case StateMsg:
		m.state, m.hasState = selector.State(msg), true
		if m.auto {
			m.setMode(m.state.Mode())
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.stopRecording()
			}
			return m, tea.Quit
		case "c":
			m.force(engine.ModeClear)
		case "s":
			m.force(engine.ModeSnow)
		case "r":
			m.force(engine.ModeRain)
		case "f":
			m.force(engine.ModeFireworks)
		case "a":
			m.auto = true
			if m.hasState {
				m.setMode(m.state.Mode())
			}
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.gif = export.NewGIFRecorder(int(m.interval / (10 * time.Millisecond)))
				m.notice = ""
			}
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		}
	case TickMsg:
		m.eng.Frame(m.canvas)
		m.ticks++
		st := m.eng.Stats()
		m.record(st)
		if m.ambience != nil {
			m.ambience.Update(st)
		}
		if m.recording {
			if !m.gif.Add(m.canvas.Image()) {
				m.stopRecording()
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) force(mode engine.Mode) {
	m.auto = false
	m.setMode(mode)
}

func (m *Model) setMode(mode engine.Mode) {
	if err := m.eng.SetMode(mode); err != nil {
		log.Printf("set mode: %v", err)
	}
}

func (m *Model) record(st engine.Stats) {
	if len(m.history) == historyCapacity {
		copy(m.history, m.history[1:])
		m.history = m.history[:historyCapacity-1]
	}
	m.history = append(m.history, float64(st.Population))
}

func (m *Model) stopRecording() {
	m.recording = false
	if err := m.gif.Save(m.gifPath); err != nil {
		log.Printf("save gif: %v", err)
		m.notice = "gif: " + err.Error()
	} else {
		m.notice = fmt.Sprintf("saved %d frames to %s", m.gif.Len(), m.gifPath)
	}
	m.gif = nil
}

// View renders the canvas above a one-line status bar.
func (m Model) View() string {
	if m.showHelp {
		return m.helpView()
	}
	return m.canvas.Render() + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	th := CurrentTheme
	label := lipgloss.NewStyle().Foreground(th.Muted)
	value := lipgloss.NewStyle().Foreground(th.Primary).Bold(true)

	parts := []string{value.Render(strings.ToUpper(m.eng.Mode().String()))}

	switch {
	case m.hasState:
		badge := m.state.Badge()
		if g := m.state.Season.Greeting(); g != "" {
			badge += " " + lipgloss.NewStyle().Foreground(th.Accent).Render(g)
		}
		parts = append(parts, badge)
	case m.auto:
		parts = append(parts, label.Render(AnimatedSpinner(m.ticks/4)+" weather"))
	}

	source := "auto"
	if !m.auto {
		source = "manual"
	}
	parts = append(parts,
		label.Render(source),
		label.Render("n=")+value.Render(fmt.Sprintf("%d", m.eng.Len())),
		SparklineChart(m.history, 16),
	)
	if m.recording {
		parts = append(parts, StatusRecording.Render(fmt.Sprintf("● REC %d", m.gif.Len())))
	} else if m.notice != "" {
		parts = append(parts, label.Render(m.notice))
	}
	parts = append(parts, KeyHint.Render("? help"))

	return strings.Join(parts, label.Render(" │ "))
}

func (m Model) helpView() string {
	th := CurrentTheme
	var s strings.Builder
	s.WriteString(GradientText("atmos", th.Primary, th.Secondary) + "\n")
	s.WriteString(Separator(38) + "\n")
	for _, row := range [][2]string{
		{"c s r f", "clear / snow / rain / fireworks"},
		{"a", "follow weather again"},
		{"t", "cycle themes (" + th.Name + ")"},
		{"g", "toggle GIF recording"},
		{"?", "toggle this help"},
		{"q", "quit"},
	} {
		s.WriteString(MetricLabel.Render(fmt.Sprintf("%-8s", row[0])) + MetricValue.Render(row[1]) + "\n")
	}
	if m.hasState {
		s.WriteString("\n" + MetricLabel.Render("date     ") + m.state.Date.Format("Mon Jan 2") +
			MetricLabel.Render("  season ") + m.state.Season.String() + "\n")
	}
	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(5), asciigraph.Width(32), asciigraph.Caption("population"))
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(th.Secondary).Render(chart) + "\n")
	}
	box := GlassPanel.BorderForeground(th.Muted).Render(s.String())
	return lipgloss.Place(m.canvas.Width, m.canvas.Height+statusLines, lipgloss.Center, lipgloss.Center, box)
}

// Run starts the bubbletea program and blocks until it quits. start, when
// non-nil, receives the program so background goroutines can Send to it.
func Run(eng *engine.Engine, opts Options, start func(p *tea.Program)) error {
	p := tea.NewProgram(NewModel(eng, opts), tea.WithAltScreen())
	if start != nil {
		start(p)
	}
	_, err := p.Run()
	return err
}
