// Package eval provides test helpers for LLM-as-judge evaluation patterns.
package eval

import (
	"os"
	"testing"

	"github.com/fwojciec/convbench"
)

// Eval provides assertion helpers for LLM-based test evaluation.
type Eval struct {
	judge convbench.Judge
}

// New creates a new Eval with the given judge.
func New(judge convbench.Judge) *Eval {
	return &Eval{judge: judge}
}

// AssertVerdict judges response against targetQuestion and fails the test
// unless the judge returns want.
func (e *Eval) AssertVerdict(tb testing.TB, targetQuestion, response string, want convbench.Verdict) {
	tb.Helper()

	result, err := e.judge.Judge(tb.Context(), response, targetQuestion)
	if err != nil {
		tb.Errorf("judge evaluation failed: %v", err)
		return
	}

	if result.Verdict != want {
		tb.Errorf("verdict %s, want %s for %q\nReasoning: %s", result.Verdict, want, targetQuestion, result.Reasoning)
	}
}

// SkipUnlessEvals skips the test unless GOEVALS environment variable is set.
// Use at the start of eval tests to make them opt-in.
func SkipUnlessEvals(tb testing.TB) {
	tb.Helper()
	if os.Getenv("GOEVALS") == "" {
		tb.Skip("GOEVALS not set")
	}
}
