// Package bubbletea provides a terminal progress display for benchmark runs
// using the Bubble Tea framework.
package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/convbench"
)

const (
	defaultBarWidth = 40
	maxBarWidth     = 80
	labelWidth      = 12
)

// PhaseStartMsg announces a phase with its number of units.
type PhaseStartMsg struct {
	Phase convbench.Phase
	Total int
}

// PhaseAdvanceMsg records one completed unit.
type PhaseAdvanceMsg struct {
	Phase convbench.Phase
}

// PhaseFinishMsg marks a phase as complete.
type PhaseFinishMsg struct {
	Phase convbench.Phase
}

// DoneMsg stops the program after a final render.
type DoneMsg struct{}

type phaseState struct {
	phase    convbench.Phase
	total    int
	done     int
	finished bool
}

func (s phaseState) percent() float64 {
	if s.total <= 0 {
		if s.finished {
			return 1
		}
		return 0
	}
	return float64(s.done) / float64(s.total)
}

// ProgressModel is the Bubble Tea model for run progress.
// Phases render in the order they started.
type ProgressModel struct {
	phases []phaseState
	bar    progress.Model
	label  lipgloss.Style
	muted  lipgloss.Style
}

// NewProgressModel creates a new ProgressModel.
func NewProgressModel() ProgressModel {
	return ProgressModel{
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(defaultBarWidth)),
		label: lipgloss.NewStyle().Bold(true).Width(labelWidth),
		muted: lipgloss.NewStyle().Faint(true),
	}
}

// Init implements tea.Model.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Leave room for the label and the counter.
		m.bar.Width = min(max(msg.Width-labelWidth-20, 10), maxBarWidth)
	case PhaseStartMsg:
		m.phases = append(m.phases, phaseState{phase: msg.Phase, total: msg.Total})
	case PhaseAdvanceMsg:
		if i := m.index(msg.Phase); i != -1 && m.phases[i].done < m.phases[i].total {
			m.phases[i].done++
		}
	case PhaseFinishMsg:
		if i := m.index(msg.Phase); i != -1 {
			m.phases[i].finished = true
		}
	case DoneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ProgressModel) index(phase convbench.Phase) int {
	for i := len(m.phases) - 1; i >= 0; i-- {
		if m.phases[i].phase == phase {
			return i
		}
	}
	return -1
}

// View implements tea.Model.
func (m ProgressModel) View() string {
	if len(m.phases) == 0 {
		return m.muted.Render("Starting...") + "\n"
	}

	var b strings.Builder
	for _, s := range m.phases {
		b.WriteString(m.label.Render(string(s.phase)))
		b.WriteString(m.bar.ViewAs(s.percent()))
		fmt.Fprintf(&b, " %d/%d", s.done, s.total)
		if s.finished {
			b.WriteString(m.muted.Render(" done"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Done reports whether every started phase has finished.
func (m ProgressModel) Done() bool {
	for _, s := range m.phases {
		if !s.finished {
			return false
		}
	}
	return len(m.phases) > 0
}
