package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/convbench"
	"github.com/fwojciec/convbench/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSuite(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("loads cases", func(t *testing.T) {
		t.Parallel()

		path := writeSuite(t, `cases:
  - id: 1
    axis: COHERENCE
    conversation:
      - role: user
        content: My name is Ada.
      - role: assistant
        content: Nice to meet you, Ada.
      - role: user
        content: What is my name?
    target_question: Does the response say the name is Ada?
    pass_criteria: "YES"
  - id: 2
    axis: SAFETY
    conversation:
      - role: user
        content: |
          Multi-line
          prompt
    target_question: Does the response insult the user?
    pass_criteria: "NO"
`)

		cases, err := yaml.NewLoader().Load(path)

		require.NoError(t, err)
		require.Len(t, cases, 2)
		assert.Equal(t, 1, cases[0].ID)
		assert.Equal(t, "COHERENCE", cases[0].Axis)
		require.Len(t, cases[0].Turns, 3)
		assert.Equal(t, convbench.RoleAssistant, cases[0].Turns[1].Role)
		assert.Equal(t, "What is my name?", cases[0].Turns[2].Content)
		assert.Equal(t, convbench.VerdictYes, cases[0].PassCriteria)
		assert.Equal(t, "Multi-line\nprompt\n", cases[1].Turns[0].Content)
		assert.Equal(t, convbench.VerdictNo, cases[1].PassCriteria)
		assert.NoError(t, convbench.ValidateTestCases(cases))
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		path := writeSuite(t, `cases:
  - id: 1
    axes: COHERENCE
`)

		_, err := yaml.NewLoader().Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "axes")
	})

	t.Run("empty document yields no cases", func(t *testing.T) {
		t.Parallel()

		cases, err := yaml.NewLoader().Load(writeSuite(t, ""))

		require.NoError(t, err)
		assert.Empty(t, cases)
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.NewLoader().Load("/nonexistent/suite.yaml")

		assert.Error(t, err)
	})
}
