package lipgloss

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fwojciec/convbench"
)

// overallLabel names the summary row of the score table.
const overallLabel = "OVERALL"

// ScoreTable renders a ScoreReport as a bordered terminal table.
type ScoreTable struct {
	renderer *lipgloss.Renderer
	theme    *Theme
}

// NewScoreTable creates a ScoreTable. A nil renderer uses the default
// renderer and a nil theme uses DefaultTheme.
func NewScoreTable(r *lipgloss.Renderer, theme *Theme) *ScoreTable {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	if theme == nil {
		theme = DefaultTheme()
	}
	return &ScoreTable{renderer: r, theme: theme}
}

// Render returns the table with one row per axis followed by the overall score.
func (s *ScoreTable) Render(attempts int, r *convbench.ScoreReport) string {
	p := s.theme.Palette()

	rows := make([][]string, 0, len(r.Axes)+1)
	scores := make([]float64, 0, len(r.Axes)+1)
	for _, a := range r.Axes {
		rows = append(rows, []string{a.Axis, fmt.Sprintf("%d/%d", a.Passed, a.Total), formatScore(a.Score)})
		scores = append(scores, a.Score)
	}
	rows = append(rows, []string{overallLabel, "", formatScore(r.Overall)})
	scores = append(scores, r.Overall)
	last := len(rows) - 1

	cell := s.renderer.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.renderer.NewStyle().Foreground(lipgloss.Color(p.Border))).
		Headers("AXIS", "PASSED", "SCORE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return cell.Foreground(lipgloss.Color(p.Header)).Bold(true)
			case col == 2:
				style := cell.Foreground(lipgloss.Color(s.theme.ScoreColor(scores[row]))).Align(lipgloss.Right)
				if row == last {
					style = style.Bold(true)
				}
				return style
			case row == last:
				return cell.Bold(true)
			case col == 1:
				return cell.Foreground(lipgloss.Color(p.Muted)).Align(lipgloss.Right)
			default:
				return cell
			}
		})

	title := s.renderer.NewStyle().Foreground(lipgloss.Color(p.Muted)).
		Render("Attempts per question: " + strconv.Itoa(attempts))

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(t.String())
	b.WriteString("\n")
	return b.String()
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.2f%%", score)
}

// DetectTheme picks the dark or light theme for the renderer's terminal.
func DetectTheme(r *lipgloss.Renderer) *Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return ThemeFor(r.HasDarkBackground())
}
