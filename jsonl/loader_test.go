package jsonl_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/convbench"
	"github.com/fwojciec/convbench/jsonl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("loads valid JSONL file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "questions.jsonl")
		content := `{"QUESTION_ID":1,"AXIS":"COHERENCE","CONVERSATION":[{"role":"user","content":"Hi"},{"role":"assistant","content":"Hello"},{"role":"user","content":"Recap?"}],"TARGET_QUESTION":"Does it recap?","PASS_CRITERIA":"YES"}
{"QUESTION_ID":2,"AXIS":"SELF-COHERENCE","CONVERSATION":[{"role":"user","content":"Q"}],"TARGET_QUESTION":"Is it rude?","PASS_CRITERIA":"NO"}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cases, err := jsonl.NewLoader().Load(path)

		require.NoError(t, err)
		require.Len(t, cases, 2)
		assert.Equal(t, 1, cases[0].ID)
		assert.Equal(t, "COHERENCE", cases[0].Axis)
		require.Len(t, cases[0].Turns, 3)
		assert.Equal(t, convbench.RoleAssistant, cases[0].Turns[1].Role)
		assert.Equal(t, "Recap?", cases[0].Turns[2].Content)
		assert.Equal(t, "Does it recap?", cases[0].TargetQuestion)
		assert.Equal(t, convbench.VerdictYes, cases[0].PassCriteria)
		assert.Equal(t, convbench.VerdictNo, cases[1].PassCriteria)
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		t.Parallel()

		_, err := jsonl.NewLoader().Load("/nonexistent/path.jsonl")

		assert.Error(t, err)
	})

	t.Run("returns error for malformed JSON line", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "bad.jsonl")
		content := `{"QUESTION_ID":1}
not valid json
{"QUESTION_ID":2}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := jsonl.NewLoader().Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("handles empty file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "empty.jsonl")
		require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

		cases, err := jsonl.NewLoader().Load(path)

		require.NoError(t, err)
		assert.Empty(t, cases)
	})

	t.Run("skips empty lines", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "sparse.jsonl")
		content := "\n{\"QUESTION_ID\":1}\n\n   \n{\"QUESTION_ID\":2}\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cases, err := jsonl.NewLoader().Load(path)

		require.NoError(t, err)
		require.Len(t, cases, 2)
		assert.Equal(t, 2, cases[1].ID)
	})

	t.Run("handles lines longer than the default scanner buffer", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "long.jsonl")
		long := strings.Repeat("a", 1024*1024)
		content := `{"QUESTION_ID":7,"CONVERSATION":[{"role":"user","content":"` + long + `"}]}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cases, err := jsonl.NewLoader().Load(path)

		require.NoError(t, err)
		require.Len(t, cases, 1)
		assert.Len(t, cases[0].Turns[0].Content, len(long))
	})
}
