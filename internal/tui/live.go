package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/odestep/internal/problems"
	"github.com/san-kum/odestep/internal/runner"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var problemInfo = map[string]string{
	"polyexp":    "y' = y - x² + 1",
	"decay":      "exponential decay",
	"riccati":    "finite-time blow-up",
	"quinney":    "corrector iteration showcase",
	"oscillator": "harmonic motion",
	"rotation":   "uniform circular motion",
}

type screen int

const (
	screenMenu screen = iota
	screenConfig
	screenRun
)

type model struct {
	screen   screen
	cursor   int
	problems []string
	selected string

	methods     []string
	methodIdx   int
	params      map[string]float64
	paramNames  []string
	paramCursor int
	editing     bool
	editBuf     string
	startErr    string

	spec     runner.Spec
	sess     *runner.Session
	prob     problems.Problem
	exact    problems.Analytic
	cons     problems.Conserved
	e0       float64
	running  bool
	paused   bool
	done     bool
	diverged bool
	speed    float64
	history  []float64

	lastFrame time.Time
	fps       float64

	width  int
	height int
}

func NewApp() *model {
	return &model{
		screen:   screenMenu,
		problems: problems.Names(),
		methods:  runner.Methods(),
		params: map[string]float64{
			"step": 0.01, "steps": 500, "iterations": 1,
		},
		paramNames: []string{"method", "step", "steps", "iterations"},
		speed:      1.0,
		history:    make([]float64, 0, 256),
		width:      80,
		height:     24,
	}
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.screen != screenRun {
			return m, nil
		}
		if m.running && !m.paused && m.sess != nil {
			now := time.Now()
			if !m.lastFrame.IsZero() {
				dt := now.Sub(m.lastFrame).Seconds()
				if dt > 0 {
					m.fps = 1.0 / dt
				}
			}
			m.lastFrame = now
			steps := int(m.speed)
			if steps < 1 {
				steps = 1
			}
			for i := 0; i < steps; i++ {
				m.step()
			}
		}
		if m.running && m.screen == screenRun {
			return m, tick()
		}
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.screen {
	case screenMenu:
		return m.menuKey(msg)
	case screenConfig:
		return m.configKey(msg)
	case screenRun:
		return m.runKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.problems)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.problems[m.cursor]
		m.screen = screenConfig
		m.paramCursor = 0
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			fmt.Sscanf(m.editBuf, "%f", &val)
			m.params[m.paramNames[m.paramCursor]] = val
			m.editing = false
			m.editBuf = ""
		case "escape":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "escape":
		m.screen = screenMenu
	case "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		if m.paramNames[m.paramCursor] == "method" {
			m.methodIdx = (m.methodIdx + 1) % len(m.methods)
		} else {
			m.editing = true
			m.editBuf = fmt.Sprintf("%g", m.params[m.paramNames[m.paramCursor]])
		}
	case "s":
		m.start()
		if m.startErr == "" {
			m.screen = screenRun
			return m, tea.Batch(tea.ClearScreen, tick())
		}
	case "left", "h":
		m.adjust(m.paramNames[m.paramCursor], -1)
	case "right", "l":
		m.adjust(m.paramNames[m.paramCursor], +1)
	}
	return m, nil
}

func (m model) runKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "escape":
		m.running = false
		m.screen = screenMenu
		m.reset()
		return m, tea.ClearScreen
	case "ctrl+c":
		return m, tea.Quit
	case " ", "p":
		if !m.done && !m.diverged {
			m.paused = !m.paused
		}
	case "r":
		m.start()
		return m, tea.Batch(tea.ClearScreen, tick())
	case "c":
		m.running = false
		m.screen = screenConfig
		m.reset()
		return m, tea.ClearScreen
	case "+", "=":
		m.speed = math.Min(m.speed*2, 64)
	case "-", "_":
		m.speed = math.Max(m.speed/2, 0.25)
	case "0":
		m.speed = 1.0
	}
	return m, nil
}

func (m *model) adjust(name string, dir float64) {
	switch name {
	case "method":
		n := len(m.methods)
		m.methodIdx = (m.methodIdx + int(dir) + n) % n
	case "step":
		if dir > 0 {
			m.params["step"] *= 2
		} else {
			m.params["step"] /= 2
		}
	case "steps":
		m.params["steps"] = math.Max(1, m.params["steps"]+dir*100)
	case "iterations":
		m.params["iterations"] = math.Max(0, m.params["iterations"]+dir)
	}
}

func (m *model) start() {
	m.spec = runner.Spec{
		Problem:    m.selected,
		Method:     m.methods[m.methodIdx],
		H:          m.params["step"],
		Steps:      int(m.params["steps"]),
		Iterations: int(m.params["iterations"]),
	}

	sess, err := runner.NewSession(m.spec)
	if err != nil {
		m.startErr = err.Error()
		return
	}
	m.startErr = ""
	m.sess = sess

	p, _ := problems.Lookup(m.selected)
	m.prob = p
	m.exact, _ = p.(problems.Analytic)
	m.cons, _ = p.(problems.Conserved)
	if m.cons != nil {
		m.e0 = m.cons.Energy(p.Initial())
	}

	m.history = m.history[:0]
	_, seeded := sess.Seeded()
	for _, y := range seeded {
		m.history = append(m.history, y[0])
	}

	m.running = true
	m.paused = false
	m.done = false
	m.diverged = false
	m.speed = 1.0
	m.lastFrame = time.Time{}
}

func (m *model) reset() {
	m.sess = nil
	m.prob = nil
	m.exact = nil
	m.cons = nil
	m.history = nil
}

func (m *model) step() {
	if m.sess == nil || m.done || m.diverged {
		return
	}
	if m.sess.Remaining() <= 0 {
		m.done = true
		m.paused = true
		return
	}
	m.sess.Step()

	y := m.sess.Y()
	if !y.IsValid() {
		m.diverged = true
		m.paused = true
		return
	}
	m.history = append(m.history, y[0])
	if len(m.history) > 256 {
		m.history = m.history[1:]
	}
}

func (m model) View() string {
	switch m.screen {
	case screenMenu:
		return m.viewMenu()
	case screenConfig:
		return m.viewConfig()
	case screenRun:
		return m.viewRun()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("o d e s t e p") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.problems {
		desc := problemInfo[name]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-14s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-14s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter configure   q quit") + "\n")

	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.selected) + "  " + dim.Render(problemInfo[m.selected]) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 32)) + "\n\n")

	for i, name := range m.paramNames {
		var val string
		if name == "method" {
			val = fmt.Sprintf("%10s", m.methods[m.methodIdx])
		} else {
			val = fmt.Sprintf("%10g", m.params[name])
		}
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%10s", m.editBuf+"▋")
		}
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dim.Render(val) + "\n")
		}
	}

	if m.startErr != "" {
		b.WriteString("\n      " + red.Render(m.startErr) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  s start  esc back") + "\n")

	return b.String()
}

func (m model) viewRun() string {
	var b strings.Builder

	statusIcon := green.Render("●")
	statusText := green.Render("running")
	switch {
	case m.diverged:
		statusIcon = red.Render("✗")
		statusText = red.Render("diverged")
	case m.done:
		statusIcon = green.Render("✓")
		statusText = green.Render("done")
	case m.paused:
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("paused")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s %s  %s\n",
		statusIcon, cyan.Render(m.selected), dim.Render(m.spec.Method), statusText))

	total := m.spec.Steps
	completed := total
	if m.sess != nil {
		completed = total - m.sess.Remaining()
	}
	progress := float64(completed) / float64(total)
	if progress > 1 {
		progress = 1
	}
	barWidth := 36
	filled := int(progress * float64(barWidth))
	xStr := fmt.Sprintf("x=%.3f", m.x())
	bar := cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", barWidth-filled))
	b.WriteString(fmt.Sprintf("   %s %s  %s\n\n", bar, dim.Render(xStr), dim.Render(fmt.Sprintf("%.0ffps", m.fps))))

	if len(m.history) > 1 {
		gw := m.width - 16
		if gw > 72 {
			gw = 72
		}
		if gw < 32 {
			gw = 32
		}
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(12),
			asciigraph.Width(gw),
			asciigraph.Caption("y0"),
		)
		for _, line := range strings.Split(chart, "\n") {
			b.WriteString("   " + line + "\n")
		}
	}

	if m.sess != nil {
		y := m.sess.Y()
		var stateStr strings.Builder
		stateStr.WriteString("   ")
		for i, v := range y {
			if i >= 4 {
				break
			}
			stateStr.WriteString(dim.Render(fmt.Sprintf("y%d=", i)))
			stateStr.WriteString(white.Render(fmt.Sprintf("%.4f", v)))
			stateStr.WriteString("  ")
		}
		b.WriteString("\n" + stateStr.String() + "\n")

		var metrics []string
		if m.exact != nil && !m.diverged {
			metrics = append(metrics, fmt.Sprintf("error %.2e", m.errNow()))
		}
		if m.cons != nil && !m.diverged {
			metrics = append(metrics, fmt.Sprintf("energy drift %.2e", m.cons.Energy(y)-m.e0))
		}
		if len(metrics) > 0 {
			b.WriteString("   " + dim.Render(strings.Join(metrics, "   ")) + "\n")
		}
	}

	b.WriteString("\n" + dim.Render("   space pause  ±speed  r restart  c config  q quit") + "\n")

	return b.String()
}

func (m model) x() float64 {
	if m.sess == nil {
		return 0
	}
	return m.sess.X()
}

func (m model) errNow() float64 {
	y := m.sess.Y()
	want := m.exact.Exact(m.sess.X())
	worst := 0.0
	for i := range y {
		if d := math.Abs(y[i] - want[i]); d > worst {
			worst = d
		}
	}
	return worst
}
