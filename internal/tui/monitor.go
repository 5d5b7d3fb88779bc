// Package tui contains the bubbletea models behind the interactive CLI
// commands.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	serialport "github.com/allbin/go-serialport"
)

// EventMsg wraps a manager event for delivery into the program loop
type EventMsg struct {
	Event serialport.Event
}

type logLine struct {
	at   time.Time
	data []byte
}

// Monitor is the interactive model for one open port: incoming framed
// messages scroll through a viewport while the input line sends text
// back out through the manager.
type Monitor struct {
	port      string
	config    serialport.Config
	mgr       *serialport.Manager
	viewport  viewport.Model
	input     textinput.Model
	help      help.Model
	keys      keyMap
	lines     []logLine
	showHex   bool
	connected bool
	status    string
	width     int
	ready     bool
}

// NewMonitor creates the monitor model for port, which must already be
// open and reading through mgr.
func NewMonitor(port string, config serialport.Config, mgr *serialport.Manager) *Monitor {
	ti := textinput.New()
	ti.Placeholder = "type a line, enter sends it"
	ti.Focus()

	return &Monitor{
		port:      port,
		config:    config,
		mgr:       mgr,
		input:     ti,
		help:      help.New(),
		keys:      newKeyMap(),
		connected: true,
	}
}

func (m *Monitor) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		// One line each for status bar, input and help
		height := msg.Height - 5
		if height < 3 {
			height = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = height
		}
		m.refresh()

	case EventMsg:
		if msg.Event.Disconnected {
			m.connected = false
			m.status = msg.Event.Reason
		} else {
			m.lines = append(m.lines, logLine{at: time.Now(), data: msg.Event.Data})
			m.refresh()
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Clear):
			m.lines = nil
			m.refresh()

		case key.Matches(msg, m.keys.ToggleHex):
			m.showHex = !m.showHex
			m.refresh()

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Send):
			if text := m.input.Value(); text != "" {
				if _, err := m.mgr.Write(m.port, text+"\n"); err != nil {
					m.status = err.Error()
				}
				m.input.Reset()
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Monitor) View() string {
	if !m.ready {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.statusBar(),
		contentBorderStyle.Render(m.viewport.View()),
		m.input.View(),
		m.help.View(m.keys),
	)
}

// refresh re-renders the scrollback into the viewport and follows the
// tail.
func (m *Monitor) refresh() {
	if !m.ready {
		return
	}
	rendered := make([]string, len(m.lines))
	for i, l := range m.lines {
		rendered[i] = timestampStyle.Render(l.at.Format("15:04:05.000")) + " " + formatData(l.data, m.showHex)
	}
	m.viewport.SetContent(strings.Join(rendered, "\n"))
	m.viewport.GotoBottom()
}

func (m *Monitor) statusBar() string {
	var state string
	if m.connected {
		state = statusConnectedStyle.Render("CONNECTED")
	} else {
		state = statusDisconnectedStyle.Render("DISCONNECTED")
	}

	info := statusInfoStyle.Render(fmt.Sprintf("%s  %d %d%s%d  %s",
		m.port,
		m.config.BaudRate,
		m.config.DataBits,
		parityLetter(m.config.Parity),
		m.config.StopBits,
		m.config.FlowControl,
	))

	bar := state + info
	if m.status != "" {
		bar += errorStyle.Render(" " + m.status)
	}
	return bar
}

func parityLetter(p serialport.Parity) string {
	switch p {
	case serialport.ParityOdd:
		return "O"
	case serialport.ParityEven:
		return "E"
	default:
		return "N"
	}
}

// formatData renders one frame for display, either as hex pairs or as
// text with non-printable bytes replaced.
func formatData(data []byte, asHex bool) string {
	if asHex {
		parts := make([]string, len(data))
		for i, b := range data {
			parts[i] = fmt.Sprintf("%02X", b)
		}
		return strings.Join(parts, " ")
	}

	return strings.Map(func(r rune) rune {
		if r < 32 || r > 126 {
			return '·'
		}
		return r
	}, strings.TrimRight(string(data), "\r\n"))
}
