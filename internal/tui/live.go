// Package tui renders a live terminal monitor of a running simulation.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

// Frame carries one step's diagnostics from the simulation loop to the
// monitor.
type Frame struct {
	Iteration  int
	Time       float64
	Energy     float64
	Divergence float64
	CFL        float64
	Done       bool
	Err        error
}

// frameMsg wraps a received Frame as a bubbletea message.
type frameMsg Frame

// Monitor is the bubbletea model of the live view. It drains the frame
// channel the simulation loop writes to and keeps a short energy history
// for the sparkline.
type Monitor struct {
	frames   <-chan Frame
	duration float64

	last    Frame
	history []float64
	done    bool
	err     error
}

func NewMonitor(frames <-chan Frame, duration float64) *Monitor {
	return &Monitor{
		frames:   frames,
		duration: duration,
		history:  make([]float64, 0, 64),
	}
}

func (m *Monitor) Init() tea.Cmd {
	return m.wait()
}

func (m *Monitor) wait() tea.Cmd {
	return func() tea.Msg {
		f, ok := <-m.frames
		if !ok {
			return frameMsg(Frame{Done: true})
		}
		return frameMsg(f)
	}
}

func (m *Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case frameMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.done = true
			return m, nil
		}
		if msg.Done {
			m.done = true
			return m, nil
		}
		m.last = Frame(msg)
		m.history = append(m.history, msg.Energy)
		if len(m.history) > 64 {
			m.history = m.history[1:]
		}
		return m, m.wait()
	}
	return m, nil
}

func (m *Monitor) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("gocean live"))
	b.WriteString("\n\n")

	progress := 0.0
	if m.duration > 0 {
		progress = m.last.Time / m.duration
		if progress > 1 {
			progress = 1
		}
	}

	rows := []struct {
		label string
		value string
	}{
		{"iteration", fmt.Sprintf("%d", m.last.Iteration)},
		{"time", fmt.Sprintf("%.4f / %.4f", m.last.Time, m.duration)},
		{"kinetic energy", fmt.Sprintf("%.6g", m.last.Energy)},
		{"max divergence", fmt.Sprintf("%.3g", m.last.Divergence)},
		{"cfl", m.renderCFL()},
	}
	for _, r := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%16s  ", r.label)))
		b.WriteString(valueStyle.Render(r.value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(barStyle.Render(progressBar(progress, 40)))
	b.WriteString("\n\n")
	b.WriteString(sparkline(m.history, 40))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(warnStyle.Render(fmt.Sprintf("failed: %v", m.err)))
		b.WriteString("\n")
	} else if m.done {
		b.WriteString(doneStyle.Render("finished"))
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render("q to quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *Monitor) renderCFL() string {
	s := fmt.Sprintf("%.3f", m.last.CFL)
	if m.last.CFL > 0.5 {
		return warnStyle.Render(s)
	}
	return s
}

func progressBar(frac float64, width int) string {
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

// sparkline compresses the energy history into one line of block glyphs.
func sparkline(vals []float64, width int) string {
	if len(vals) == 0 {
		return ""
	}
	blocks := []rune("▁▂▃▄▅▆▇█")

	start := 0
	if len(vals) > width {
		start = len(vals) - width
	}
	window := vals[start:]

	lo, hi := window[0], window[0]
	for _, v := range window {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var b strings.Builder
	for _, v := range window {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(blocks)-1))
		}
		b.WriteRune(blocks[idx])
	}
	return labelStyle.Render("energy ") + b.String()
}
