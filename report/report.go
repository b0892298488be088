// Package report writes benchmark results to disk.
package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fwojciec/convbench"
)

// WriteSummary writes the plain-text score summary:
//
//	Attempts: 3 Overall Score: 62.50%
//
//	Axis Scores:
//	COHERENCE: 50.00%
func WriteSummary(w io.Writer, attempts int, r *convbench.ScoreReport) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Attempts: %d Overall Score: %.2f%%\n", attempts, r.Overall)
	fmt.Fprint(bw, "\nAxis Scores:\n")
	for _, a := range r.Axes {
		fmt.Fprintf(bw, "%s: %.2f%%\n", a.Axis, a.Score)
	}
	return bw.Flush()
}

// SaveSummary writes the summary to path, creating parent directories.
func SaveSummary(path string, attempts int, r *convbench.ScoreReport) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteSummary(w, attempts, r)
	})
}

// AuditHeader is the header row of the audit CSV.
var AuditHeader = []string{
	"question_id",
	"axis",
	"original_conversation",
	"target_question",
	"pass_criteria",
	"attempt_number",
	"model_response",
	"judge_verdict",
	"passed",
	"reasoning",
	"final_result",
}

// AuditWriter writes audit rows as CSV with CRLF line endings.
type AuditWriter struct {
	w *csv.Writer
}

// NewAuditWriter creates a new AuditWriter.
func NewAuditWriter(w io.Writer) *AuditWriter {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	return &AuditWriter{w: cw}
}

// Write writes the header followed by one record per row.
func (a *AuditWriter) Write(rows []convbench.AuditRow) error {
	if err := a.w.Write(AuditHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.QuestionID),
			r.Axis,
			r.Conversation,
			r.TargetQuestion,
			r.PassCriteria,
			strconv.Itoa(r.AttemptNumber),
			r.Response,
			r.Verdict,
			r.Passed,
			r.Reasoning,
			r.Final,
		}
		if err := a.w.Write(record); err != nil {
			return err
		}
	}
	a.w.Flush()
	return a.w.Error()
}

// SaveAudit writes the audit CSV to path, creating parent directories.
func SaveAudit(path string, rows []convbench.AuditRow) error {
	return writeFile(path, func(w io.Writer) error {
		return NewAuditWriter(w).Write(rows)
	})
}

func writeFile(path string, fn func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := fn(f); err != nil {
		return err
	}
	return f.Close()
}
