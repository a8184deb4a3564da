package sim

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"droneinspect-sim/internal/telemetry"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// telemetryMsg carries a drone state update.
type telemetryMsg struct{ telemetry.TelemetryRow }

// anomalyMsg carries a detection log entry.
type anomalyMsg struct{ telemetry.AnomalyRow }

// alertMsg carries a critical alert log entry.
type alertMsg struct{ telemetry.AlertRow }

const maxLogLines = 200

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	lowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	mediumStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	highStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	criticalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201"))
	alertStyle    = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("52")).Foreground(lipgloss.Color("231"))
)

func severityStyle(severity string) lipgloss.Style {
	switch severity {
	case "critical":
		return criticalStyle
	case "high":
		return highStyle
	case "medium":
		return mediumStyle
	default:
		return lowStyle
	}
}

// TUIWriter renders mission progress using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(missionID string) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(missionID), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// Write implements TelemetryWriter.
func (w *TUIWriter) Write(row telemetry.TelemetryRow) error {
	w.program.Send(telemetryMsg{row})
	return nil
}

// WriteAnomaly implements AnomalyWriter.
func (w *TUIWriter) WriteAnomaly(row telemetry.AnomalyRow) error {
	w.program.Send(anomalyMsg{row})
	return nil
}

// WriteAnomalies sends multiple anomaly rows to the TUI.
func (w *TUIWriter) WriteAnomalies(rows []telemetry.AnomalyRow) error {
	for _, r := range rows {
		_ = w.WriteAnomaly(r)
	}
	return nil
}

// WriteAlert implements AlertWriter.
func (w *TUIWriter) WriteAlert(row telemetry.AlertRow) error {
	w.program.Send(alertMsg{row})
	return nil
}

// Close stops the TUI without signaling the process and waits for the
// program to exit.
func (w *TUIWriter) Close() {
	w.sendSignal.Store(false)
	w.program.Send(tea.Quit())
	<-w.done
}

type tuiModel struct {
	missionID string
	status    table.Model
	logs      viewport.Model
	lines     []string
	counts    map[string]int
	alerts    int
	last      telemetry.TelemetryRow
	width     int
	height    int
	ready     bool
}

func newTUIModel(missionID string) tuiModel {
	cols := []table.Column{
		{Title: "Tick", Width: 6},
		{Title: "X", Width: 8},
		{Title: "Y", Width: 8},
		{Title: "Z", Width: 8},
		{Title: "Battery", Width: 8},
		{Title: "Status", Width: 10},
		{Title: "WP", Width: 4},
	}
	st := table.New(table.WithColumns(cols), table.WithHeight(2))
	return tuiModel{
		missionID: missionID,
		status:    st,
		counts:    make(map[string]int),
	}
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logHeight := m.height - 10
		if logHeight < 3 {
			logHeight = 3
		}
		if !m.ready {
			m.logs = viewport.New(m.width-4, logHeight)
			m.ready = true
		} else {
			m.logs.Width = m.width - 4
			m.logs.Height = logHeight
		}
		m.refreshLogs()
	case telemetryMsg:
		m.last = msg.TelemetryRow
		m.status.SetRows([]table.Row{{
			fmt.Sprintf("%d", msg.Tick),
			fmt.Sprintf("%.1f", msg.X),
			fmt.Sprintf("%.1f", msg.Y),
			fmt.Sprintf("%.1f", msg.Z),
			fmt.Sprintf("%.1f%%", msg.Battery),
			msg.Status,
			fmt.Sprintf("%d", msg.WaypointIndex),
		}})
	case anomalyMsg:
		m.counts[msg.Severity]++
		line := severityStyle(msg.Severity).Render(
			fmt.Sprintf("[%04d] %s %s conf=%.2f at (%.1f, %.1f, %.1f)",
				msg.Tick, strings.ToUpper(msg.Severity), msg.Type, msg.Confidence, msg.X, msg.Y, msg.Z))
		m.appendLine(line)
	case alertMsg:
		m.alerts++
		line := alertStyle.Render(
			fmt.Sprintf("[%04d] ALERT %s critical anomaly %s (waypoint %d)",
				msg.Tick, msg.Type, msg.AnomalyID, msg.WaypointIndex))
		m.appendLine(line)
	}

	var cmd tea.Cmd
	m.logs, cmd = m.logs.Update(msg)
	return m, cmd
}

func (m *tuiModel) appendLine(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > maxLogLines {
		m.lines = m.lines[len(m.lines)-maxLogLines:]
	}
	m.refreshLogs()
}

func (m *tuiModel) refreshLogs() {
	if !m.ready {
		return
	}
	content := strings.Join(m.lines, "\n")
	m.logs.SetContent(wordwrap.String(content, m.logs.Width))
	m.logs.GotoBottom()
}

func (m tuiModel) View() string {
	title := titleStyle.Render(fmt.Sprintf("Inspection mission %s", m.missionID))
	countsLine := fmt.Sprintf("low=%d medium=%d high=%d critical=%d alerts=%d",
		m.counts["low"], m.counts["medium"], m.counts["high"], m.counts["critical"], m.alerts)

	sections := []string{
		title,
		panelStyle.Render(m.status.View()),
		panelStyle.Render(countsLine),
	}
	if m.ready {
		sections = append(sections, panelStyle.Render(m.logs.View()))
	}
	sections = append(sections, "press q to quit")
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
