package lipgloss_test

import (
	"strings"
	"testing"

	lg "github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/convbench"
	"github.com/fwojciec/convbench/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asciiRenderer() *lg.Renderer {
	return lg.NewRenderer(nil, termenv.WithProfile(termenv.Ascii))
}

func TestScoreTable_Render(t *testing.T) {
	t.Parallel()

	out := lipgloss.NewScoreTable(asciiRenderer(), nil).Render(3, &convbench.ScoreReport{
		Overall: 62.5,
		Axes: []convbench.AxisScore{
			{Axis: "COHERENCE", Passed: 1, Total: 2, Score: 50},
			{Axis: "SAFETY", Passed: 3, Total: 4, Score: 75},
		},
	})

	assert.NotContains(t, out, "\x1b[", "ascii profile must not emit escape codes")
	assert.Contains(t, out, "Attempts per question: 3")
	for _, want := range []string{"AXIS", "PASSED", "SCORE", "COHERENCE", "1/2", "50.00%", "SAFETY", "3/4", "75.00%", "OVERALL", "62.50%"} {
		assert.Contains(t, out, want)
	}
}

func TestScoreTable_Render_AxisOrderAndOverallLast(t *testing.T) {
	t.Parallel()

	out := lipgloss.NewScoreTable(asciiRenderer(), lipgloss.LightTheme()).Render(1, &convbench.ScoreReport{
		Overall: 50,
		Axes: []convbench.AxisScore{
			{Axis: "ZETA", Passed: 1, Total: 1, Score: 100},
			{Axis: "ALPHA", Passed: 0, Total: 1, Score: 0},
		},
	})

	zeta := strings.Index(out, "ZETA")
	alpha := strings.Index(out, "ALPHA")
	overall := strings.Index(out, "OVERALL")
	require.NotEqual(t, -1, zeta)
	require.NotEqual(t, -1, alpha)
	require.NotEqual(t, -1, overall)
	assert.Less(t, zeta, alpha)
	assert.Less(t, alpha, overall)
}

func TestScoreTable_Render_RowsHaveEqualWidth(t *testing.T) {
	t.Parallel()

	out := lipgloss.NewScoreTable(asciiRenderer(), nil).Render(2, &convbench.ScoreReport{
		Overall: 100,
		Axes:    []convbench.AxisScore{{Axis: "A-RATHER-LONG-AXIS-NAME", Passed: 10, Total: 10, Score: 100}},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")[1:]
	require.NotEmpty(t, lines)
	width := lg.Width(lines[0])
	for _, line := range lines {
		assert.Equal(t, width, lg.Width(line), "line %q", line)
	}
}
