package convbench

import (
	"fmt"
	"strings"
)

// NotAvailable marks audit cells with no underlying data.
const NotAvailable = "N/A"

// AuditRow is one attempt of one question in the audit report.
type AuditRow struct {
	QuestionID     int
	Axis           string
	Conversation   string // Rendered original conversation
	TargetQuestion string
	PassCriteria   string // Human-readable restatement
	AttemptNumber  int    // 1-based
	Response       string
	Verdict        string
	Passed         string // PASSED, FAILED or N/A
	Reasoning      string
	Final          string
}

// RenderConversation formats turns as "ROLE:\ncontent" blocks separated by newlines.
func RenderConversation(turns []Turn) string {
	parts := make([]string, len(turns))
	for i, t := range turns {
		parts[i] = strings.ToUpper(string(t.Role)) + ":\n" + t.Content
	}
	return strings.Join(parts, "\n")
}

// DescribePassCriteria restates the expected verdict for humans.
func DescribePassCriteria(v Verdict) string {
	return fmt.Sprintf("Response should receive a %s verdict", v)
}

// BuildAuditRows joins test cases, responses and records into exactly attempts
// rows per test case. Records are matched by attempt index; missing data
// renders as NotAvailable.
func BuildAuditRows(cases []TestCase, responses ResponseSet, records []EvaluationRecord, attempts int) []AuditRow {
	type key struct {
		id      int
		attempt int
	}
	byAttempt := make(map[key]EvaluationRecord, len(records))
	finals := make(map[int]string)
	for _, r := range records {
		k := key{id: r.QuestionID, attempt: r.AttemptIndex}
		if _, dup := byAttempt[k]; !dup {
			byAttempt[k] = r
		}
		if r.Final != "" {
			finals[r.QuestionID] = r.Final
		}
	}

	rows := make([]AuditRow, 0, len(cases)*max(attempts, 0))
	for _, tc := range cases {
		conversation := RenderConversation(tc.Turns)
		final, ok := finals[tc.ID]
		if !ok {
			final = NotAvailable
		}
		caseResponses := responses[tc.ID]

		for i := 0; i < attempts; i++ {
			row := AuditRow{
				QuestionID:     tc.ID,
				Axis:           tc.Axis,
				Conversation:   conversation,
				TargetQuestion: tc.TargetQuestion,
				PassCriteria:   DescribePassCriteria(tc.PassCriteria),
				AttemptNumber:  i + 1,
				Response:       NotAvailable,
				Verdict:        NotAvailable,
				Passed:         NotAvailable,
				Reasoning:      NotAvailable,
				Final:          final,
			}
			if i < len(caseResponses) {
				row.Response = caseResponses[i]
			}
			if r, ok := byAttempt[key{id: tc.ID, attempt: i}]; ok {
				row.Verdict = string(r.Verdict)
				row.Reasoning = r.Reasoning
				row.Passed = "FAILED"
				if r.Passed {
					row.Passed = "PASSED"
				}
			}
			rows = append(rows, row)
		}
	}
	return rows
}
