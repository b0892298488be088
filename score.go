package convbench

import "errors"

// ErrNoAxes is returned when scoring a record list that names no axes.
var ErrNoAxes = errors.New("no axes to score: evaluation produced no records")

// AxisScore is the pass rate of one axis.
type AxisScore struct {
	Axis   string
	Passed int     // Distinct questions with at least one passing attempt
	Total  int     // Distinct questions in the axis
	Score  float64 // 100 * Passed / Total
}

// ScoreReport holds per-axis and overall scores.
type ScoreReport struct {
	Overall float64     // Unweighted mean of axis scores
	Axes    []AxisScore // In order of first appearance
}

// AxisScores returns the axis to percentage mapping.
func (r ScoreReport) AxisScores() map[string]float64 {
	scores := make(map[string]float64, len(r.Axes))
	for _, a := range r.Axes {
		scores[a.Axis] = a.Score
	}
	return scores
}

// Score computes per-axis pass rates and the overall score.
//
// A question counts once per axis regardless of how many attempts it has, and
// passes if any of its records for that axis passed. The overall score weights
// every axis equally.
func Score(records []EvaluationRecord) (*ScoreReport, error) {
	type key struct {
		axis string
		id   int
	}

	var order []string
	members := make(map[string][]int)
	passed := make(map[key]bool)
	seen := make(map[key]bool)

	for _, r := range records {
		k := key{axis: r.Axis, id: r.QuestionID}
		if _, ok := members[r.Axis]; !ok {
			order = append(order, r.Axis)
		}
		if !seen[k] {
			seen[k] = true
			members[r.Axis] = append(members[r.Axis], r.QuestionID)
		}
		if r.Passed {
			passed[k] = true
		}
	}

	if len(order) == 0 {
		return nil, ErrNoAxes
	}

	report := &ScoreReport{Axes: make([]AxisScore, 0, len(order))}
	var sum float64
	for _, axis := range order {
		ids := members[axis]
		a := AxisScore{Axis: axis, Total: len(ids)}
		for _, id := range ids {
			if passed[key{axis: axis, id: id}] {
				a.Passed++
			}
		}
		a.Score = 100 * float64(a.Passed) / float64(a.Total)
		sum += a.Score
		report.Axes = append(report.Axes, a)
	}
	report.Overall = sum / float64(len(report.Axes))

	return report, nil
}
