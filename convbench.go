// Package convbench provides domain types for benchmarking conversational models
// with an LLM judge.
package convbench

import (
	"context"
	"errors"
	"fmt"
)

// Role identifies the speaker of a conversation turn.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Turn is a single message in a conversation.
type Turn struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// Verdict is the judge's binary answer.
type Verdict string

// Judge verdicts.
const (
	VerdictYes Verdict = "YES"
	VerdictNo  Verdict = "NO"
)

// Valid reports whether v is YES or NO.
func (v Verdict) Valid() bool {
	return v == VerdictYes || v == VerdictNo
}

// Validation errors.
var (
	ErrInvalidVerdict = errors.New("verdict must be YES or NO")
	ErrNoTestCases    = errors.New("no test cases")
)

// TestCase is a single multi-turn benchmark question.
type TestCase struct {
	ID             int     `json:"QUESTION_ID"`
	Axis           string  `json:"AXIS"`            // Evaluation category, e.g. COHERENCE
	Turns          []Turn  `json:"CONVERSATION"`    // Alternating user/assistant messages
	TargetQuestion string  `json:"TARGET_QUESTION"` // Property the judge is asked about
	PassCriteria   Verdict `json:"PASS_CRITERIA"`   // Verdict that counts as a pass
}

// Validate checks that the test case is well-formed.
func (tc TestCase) Validate() error {
	if tc.Axis == "" {
		return fmt.Errorf("question %d: axis is required", tc.ID)
	}
	if len(tc.Turns) == 0 {
		return fmt.Errorf("question %d: conversation is empty", tc.ID)
	}
	for i, turn := range tc.Turns {
		if !turn.Role.Valid() {
			return fmt.Errorf("question %d: turn %d: unknown role %q", tc.ID, i, turn.Role)
		}
	}
	if !tc.PassCriteria.Valid() {
		return fmt.Errorf("question %d: pass criteria %q: %w", tc.ID, tc.PassCriteria, ErrInvalidVerdict)
	}
	return nil
}

// ValidateTestCases validates every case and rejects duplicate ids.
func ValidateTestCases(cases []TestCase) error {
	if len(cases) == 0 {
		return ErrNoTestCases
	}
	seen := make(map[int]bool, len(cases))
	for _, tc := range cases {
		if err := tc.Validate(); err != nil {
			return err
		}
		if seen[tc.ID] {
			return fmt.Errorf("question %d: duplicate id", tc.ID)
		}
		seen[tc.ID] = true
	}
	return nil
}

// ResponseSet maps a question id to its responses in attempt order.
type ResponseSet map[int][]string

// Judgment is the structured output of a judge call.
type Judgment struct {
	Reasoning string  `json:"reasoning"`
	Verdict   Verdict `json:"verdict"`
}

// Validate checks that both fields are present and the verdict is YES or NO.
func (j Judgment) Validate() error {
	if j.Reasoning == "" {
		return errors.New("judgment: missing reasoning")
	}
	if !j.Verdict.Valid() {
		return fmt.Errorf("judgment: verdict %q: %w", j.Verdict, ErrInvalidVerdict)
	}
	return nil
}

// EvaluationRecord is the judge outcome for one attempt of one question.
// Attempts, Passes and Final are shared by all records of a question and
// are populated by Finalize.
type EvaluationRecord struct {
	QuestionID   int     `json:"question_id"`
	Axis         string  `json:"axis"`
	AttemptIndex int     `json:"attempt"`
	Reasoning    string  `json:"reasoning"`
	Verdict      Verdict `json:"verdict"`
	PassCriteria Verdict `json:"pass_criteria"`
	Passed       bool    `json:"passed"`
	Attempts     int     `json:"attempts"`
	Passes       int     `json:"passes"`
	Final        string  `json:"final_status"`
}

// ModelProvider turns a conversation into the next assistant message.
type ModelProvider interface {
	Generate(ctx context.Context, turns []Turn) (string, error)
}

// Judge decides whether a response satisfies a target question.
// Implementations return an error when the backend output is not a valid Judgment.
type Judge interface {
	Judge(ctx context.Context, response, targetQuestion string) (*Judgment, error)
}

// TestCaseLoader loads benchmark questions from a source.
type TestCaseLoader interface {
	Load(path string) ([]TestCase, error)
}

// ResponseLoader loads precomputed responses.
type ResponseLoader interface {
	Load(path string) (ResponseSet, error)
}

// ResponseSaver persists generated responses.
type ResponseSaver interface {
	Save(path string, responses ResponseSet) error
}

// RecordStore persists and retrieves evaluation records.
type RecordStore interface {
	Load(path string) ([]EvaluationRecord, error)
	Save(path string, records []EvaluationRecord) error
}

// Phase names a stage of a benchmark run.
type Phase string

// Run phases.
const (
	PhaseGeneration Phase = "generation"
	PhaseEvaluation Phase = "evaluation"
)

// Progress observes units of work completing within a phase.
// Advance may be called from many goroutines concurrently.
type Progress interface {
	Start(phase Phase, total int)
	Advance(phase Phase)
	Finish(phase Phase)
}
