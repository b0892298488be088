package convbench_test

import (
	"testing"

	"github.com/fwojciec/convbench"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderConversation(t *testing.T) {
	t.Parallel()

	got := convbench.RenderConversation([]convbench.Turn{
		{Role: convbench.RoleUser, Content: "Hi"},
		{Role: convbench.RoleAssistant, Content: "Hello"},
		{Role: convbench.RoleUser, Content: "Shorter please"},
	})

	assert.Equal(t, "USER:\nHi\nASSISTANT:\nHello\nUSER:\nShorter please", got)
}

func TestBuildAuditRows(t *testing.T) {
	t.Parallel()

	cases := []convbench.TestCase{
		{
			ID:             1,
			Axis:           "REFINEMENT",
			Turns:          []convbench.Turn{{Role: convbench.RoleUser, Content: "Write a haiku"}},
			TargetQuestion: "Is it a haiku?",
			PassCriteria:   convbench.VerdictYes,
		},
		{
			ID:             2,
			Axis:           "COHERENCE",
			Turns:          []convbench.Turn{{Role: convbench.RoleUser, Content: "Tell me a joke"}},
			TargetQuestion: "Is it offensive?",
			PassCriteria:   convbench.VerdictNo,
		},
	}
	responses := convbench.ResponseSet{1: {"first", "second"}}
	records := []convbench.EvaluationRecord{
		{QuestionID: 1, Axis: "REFINEMENT", AttemptIndex: 1, Reasoning: "ok", Verdict: convbench.VerdictYes, Passed: true, Final: "PASS (1/2 attempts passed)"},
		{QuestionID: 1, Axis: "REFINEMENT", AttemptIndex: 0, Reasoning: "no", Verdict: convbench.VerdictNo, Passed: false, Final: "PASS (1/2 attempts passed)"},
		{QuestionID: 2, Axis: "COHERENCE", AttemptIndex: 0, Reasoning: convbench.NotFoundReasoning, Verdict: convbench.VerdictNo, Final: "FAIL (0/1 attempts passed)"},
	}

	rows := convbench.BuildAuditRows(cases, responses, records, 3)

	require.Len(t, rows, 6)

	// Records are matched by attempt index, not list position.
	assert.Equal(t, 1, rows[0].AttemptNumber)
	assert.Equal(t, "first", rows[0].Response)
	assert.Equal(t, "NO", rows[0].Verdict)
	assert.Equal(t, "FAILED", rows[0].Passed)
	assert.Equal(t, "second", rows[1].Response)
	assert.Equal(t, "PASSED", rows[1].Passed)
	assert.Equal(t, "ok", rows[1].Reasoning)

	// Third attempt has neither response nor record.
	assert.Equal(t, 3, rows[2].AttemptNumber)
	assert.Equal(t, convbench.NotAvailable, rows[2].Response)
	assert.Equal(t, convbench.NotAvailable, rows[2].Verdict)
	assert.Equal(t, convbench.NotAvailable, rows[2].Passed)
	assert.Equal(t, convbench.NotAvailable, rows[2].Reasoning)
	assert.Equal(t, "PASS (1/2 attempts passed)", rows[2].Final)

	assert.Equal(t, "Response should receive a YES verdict", rows[0].PassCriteria)
	assert.Equal(t, "USER:\nWrite a haiku", rows[0].Conversation)

	// Missing question still gets k rows.
	for _, row := range rows[3:] {
		assert.Equal(t, 2, row.QuestionID)
		assert.Equal(t, convbench.NotAvailable, row.Response)
		assert.Equal(t, "FAIL (0/1 attempts passed)", row.Final)
		assert.Equal(t, "Response should receive a NO verdict", row.PassCriteria)
	}
	assert.Equal(t, convbench.NotFoundReasoning, rows[3].Reasoning)
	assert.Equal(t, convbench.NotAvailable, rows[4].Reasoning)
}

func TestBuildAuditRows_CaseWithoutRecords(t *testing.T) {
	t.Parallel()

	cases := []convbench.TestCase{{ID: 9, Axis: "A", PassCriteria: convbench.VerdictYes}}

	rows := convbench.BuildAuditRows(cases, nil, nil, 2)

	require.Len(t, rows, 2)
	assert.Equal(t, convbench.NotAvailable, rows[0].Final)
	assert.Equal(t, 2, rows[1].AttemptNumber)
}
