package convbench

import "fmt"

// Reasoning markers for records that did not come from a judge.
const (
	NotFoundReasoning    = "NA - Question ID not found in responses"
	evaluationErrorFmt   = "Error during evaluation: %v"
	generationFailureFmt = "Error generating response for question_id %d: %v.\n FAIL THIS QUESTION"
)

// GenerationFailure returns the response text recorded in place of a failed
// generation call. The text tells the judge to fail the attempt.
func GenerationFailure(questionID int, err error) string {
	return fmt.Sprintf(generationFailureFmt, questionID, err)
}

// EvaluationFailure returns the reasoning recorded when a judge call fails.
func EvaluationFailure(err error) string {
	return fmt.Sprintf(evaluationErrorFmt, err)
}

// NewRecord builds the record for a judged attempt.
func NewRecord(tc TestCase, attempt int, j Judgment) EvaluationRecord {
	return EvaluationRecord{
		QuestionID:   tc.ID,
		Axis:         tc.Axis,
		AttemptIndex: attempt,
		Reasoning:    j.Reasoning,
		Verdict:      j.Verdict,
		PassCriteria: tc.PassCriteria,
		Passed:       j.Verdict == tc.PassCriteria,
	}
}

// FailedRecord builds the record for an attempt whose judge call failed.
func FailedRecord(tc TestCase, attempt int, err error) EvaluationRecord {
	return EvaluationRecord{
		QuestionID:   tc.ID,
		Axis:         tc.Axis,
		AttemptIndex: attempt,
		Reasoning:    EvaluationFailure(err),
		Verdict:      VerdictNo,
		PassCriteria: tc.PassCriteria,
		Passed:       false,
	}
}

// NotFoundRecord builds the single record for a question with no responses.
// Absent data always fails; the judge is never consulted.
func NotFoundRecord(tc TestCase) EvaluationRecord {
	return EvaluationRecord{
		QuestionID:   tc.ID,
		Axis:         tc.Axis,
		AttemptIndex: 0,
		Reasoning:    NotFoundReasoning,
		Verdict:      VerdictNo,
		PassCriteria: tc.PassCriteria,
		Passed:       false,
	}
}

// Outcome summarizes all attempts of one question.
type Outcome struct {
	Attempts int
	Passes   int
}

// Passed reports whether any attempt passed.
func (o Outcome) Passed() bool {
	return o.Passes > 0
}

// Status returns the final status string, e.g. "PASS (2/3 attempts passed)".
func (o Outcome) Status() string {
	status := "FAIL"
	if o.Passed() {
		status = "PASS"
	}
	return fmt.Sprintf("%s (%d/%d attempts passed)", status, o.Passes, o.Attempts)
}

// Outcomes groups records by question id.
func Outcomes(records []EvaluationRecord) map[int]Outcome {
	outcomes := make(map[int]Outcome)
	for _, r := range records {
		o := outcomes[r.QuestionID]
		o.Attempts++
		if r.Passed {
			o.Passes++
		}
		outcomes[r.QuestionID] = o
	}
	return outcomes
}

// Finalize writes the per-question outcome onto every record in place.
// It must run once, after all records of the run have been collected.
func Finalize(records []EvaluationRecord) {
	outcomes := Outcomes(records)
	for i := range records {
		o := outcomes[records[i].QuestionID]
		records[i].Attempts = o.Attempts
		records[i].Passes = o.Passes
		records[i].Final = o.Status()
	}
}
