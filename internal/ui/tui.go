// Package ui renders the control session for the operator. The bubbletea
// TUI doubles as the keyboard input source: key presses are forwarded into
// the engine's event stream while the alternate screen shows the link state.
package ui

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"linkctl/internal/config"
	"linkctl/internal/input"
	"linkctl/internal/link"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// statusMsg carries a link state update.
type statusMsg struct{ link.Status }

// beepMsg flags the outage cue.
type beepMsg struct{}

const maxLogLines = 1000

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	downStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("9")).Padding(0, 1)
	upStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	gaugeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TUI is the interactive terminal front end. It implements the engine's
// Feedback contract and the input Source contract at the same time.
type TUI struct {
	program    teaProgram
	events     chan input.Event
	done       chan struct{}
	sendSignal atomic.Bool
}

// New starts a bubbletea program on the alternate screen.
func New(cfg *config.Config) *TUI {
	u := &TUI{
		events: make(chan input.Event, 64),
		done:   make(chan struct{}),
	}
	u.sendSignal.Store(true)
	m := newModel(cfg, u.events)
	p := tea.NewProgram(m, tea.WithAltScreen())
	u.program = p
	go func() {
		_, _ = p.Run()
		close(u.events)
		close(u.done)
		if u.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return u
}

// Render implements engine.Feedback.
func (u *TUI) Render(st link.Status) {
	u.program.Send(statusMsg{st})
}

// Beep implements engine.Feedback. The bell goes to STDERR so it does not
// interleave with the renderer's output.
func (u *TUI) Beep() {
	fmt.Fprint(os.Stderr, "\a")
	u.program.Send(beepMsg{})
}

// Events implements input.Source.
func (u *TUI) Events() <-chan input.Event { return u.events }

// Close shuts down the program and waits for terminal cleanup. Idempotent.
func (u *TUI) Close() error {
	u.sendSignal.Store(false)
	if u.program != nil {
		u.program.Send(tea.Quit())
	}
	if u.done != nil {
		<-u.done
	}
	return nil
}

type model struct {
	cfg        *config.Config
	events     chan<- input.Event
	table      table.Model
	vp         viewport.Model
	logs       []string
	status     link.Status
	haveStatus bool
	flash      bool
	wrap       bool
	autoscroll bool
	width      int
	height     int
}

func newModel(cfg *config.Config, events chan<- input.Event) model {
	cols := []table.Column{
		{Title: "Config", Width: 18},
		{Title: "Value", Width: 24},
	}
	rows := []table.Row{
		{"Control mode", cfg.Mode},
		{"Control file", cfg.ControlFile},
		{"Min bandwidth", fmt.Sprintf("%6.3f Mbps", cfg.MinMbps)},
		{"Max bandwidth", fmt.Sprintf("%6.3f Mbps", cfg.MaxMbps)},
		{"Manual step", fmt.Sprintf("%6.3f Mbps", cfg.StepMbps)},
	}
	t := table.New(table.WithColumns(cols), table.WithRows(rows), table.WithHeight(len(rows)+1))
	return model{
		cfg:        cfg,
		events:     events,
		table:      t,
		vp:         viewport.New(0, 0),
		autoscroll: true,
	}
}

func (m model) Init() tea.Cmd { return nil }

// forward hands a key-derived event to the engine without ever blocking
// the render loop; events landing while a profile runs are dropped once
// the buffer fills.
func (m *model) forward(ev input.Event) {
	select {
	case m.events <- ev:
	default:
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.updateViewportHeight()
		m.refreshViewport()
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyUp:
			m.forward(input.Event{Kind: input.Increase})
			return m, nil
		case tea.KeyDown:
			m.forward(input.Event{Kind: input.Decrease})
			return m, nil
		case tea.KeyEnter:
			m.forward(input.Event{Kind: input.TriggerOutage})
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "v":
			m.forward(input.Event{Kind: input.TriggerVRamp})
		case "r":
			m.forward(input.Event{Kind: input.TriggerRandomWalk})
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
			}
		case "j":
			m.vp.LineDown(1)
		case "k":
			m.vp.LineUp(1)
		}
		return m, nil
	case statusMsg:
		m.status = msg.Status
		m.haveStatus = true
		if msg.Up {
			m.flash = false
		}
		m.appendLog(msg.Status)
		m.updateViewportHeight()
		m.refreshViewport()
	case beepMsg:
		m.flash = true
	}
	return m, nil
}

func (m *model) appendLog(st link.Status) {
	state := upStyle.Render("up")
	if !st.Up {
		state = downStyle.Render("down")
	}
	line := fmt.Sprintf("%s bw=%7.3f Mbps pps=%4d link=%s",
		dimStyle.Render(time.Now().Format("15:04:05.000")), st.Mbps, st.PPS, state)
	m.logs = append(m.logs, line)
	if len(m.logs) > maxLogLines {
		m.logs = m.logs[len(m.logs)-maxLogLines:]
	}
}

func (m *model) updateViewportHeight() {
	h := m.height - lipgloss.Height(m.header()) - 1
	if h < 3 {
		h = 3
	}
	m.vp.Height = h
}

func (m *model) refreshViewport() {
	content := ""
	for i, l := range m.logs {
		if i > 0 {
			content += "\n"
		}
		if m.wrap && m.vp.Width > 0 {
			content += wordwrap.String(l, m.vp.Width)
		} else {
			content += l
		}
	}
	m.vp.SetContent(content)
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m model) gauge() string {
	width := m.width - 20
	if width < 10 {
		width = 10
	}
	span := m.cfg.MaxMbps - m.cfg.MinMbps
	frac := 1.0
	if span > 0 {
		frac = (m.status.Mbps - m.cfg.MinMbps) / span
	}
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return gaugeStyle.Render(bar)
}

func (m model) header() string {
	title := titleStyle.Render("linkctl — interactive link control")
	state := upStyle.Render("LINK UP")
	if m.haveStatus && !m.status.Up {
		state = downStyle.Render("LINK DOWN")
	} else if m.flash {
		state = downStyle.Render("OUTAGE")
	}
	current := "waiting for first publish"
	if m.haveStatus {
		current = fmt.Sprintf("Current: %7.3f Mbps  %5d pkt/s  %s", m.status.Mbps, m.status.PPS, state)
	}
	footer := footerStyle.Render("↑/↓ step · enter outage · v ramp · r random · w wrap · s scroll · q quit")
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.table.View(),
		current,
		m.gauge(),
		footer,
	)
}

func (m model) View() string {
	return m.header() + "\n" + m.vp.View()
}
