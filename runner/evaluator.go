package runner

import (
	"context"
	"log/slog"

	"github.com/fwojciec/convbench"
	"golang.org/x/sync/errgroup"
)

// Evaluator judges every response of every test case.
type Evaluator struct {
	Judge convbench.Judge
	// Workers bounds how many judge calls are in flight.
	Workers  int
	Logger   *slog.Logger
	Progress convbench.Progress
}

// unit is one judge call. It carries its own key so the result never depends
// on scheduling order.
type unit struct {
	tc       convbench.TestCase
	attempt  int
	response string
}

// Evaluate returns one record per judged attempt plus one failing record per
// test case missing from responses, with final statuses populated.
func (e *Evaluator) Evaluate(ctx context.Context, cases []convbench.TestCase, responses convbench.ResponseSet) ([]convbench.EvaluationRecord, error) {
	if e.Workers < 1 {
		return nil, ErrInvalidWorkers
	}
	logger := loggerOrDefault(e.Logger)
	progress := progressOrNop(e.Progress)

	var units []unit
	var missing []convbench.EvaluationRecord
	for _, tc := range cases {
		caseResponses, ok := responses[tc.ID]
		if !ok {
			logger.Warn("question not found in responses", "question_id", tc.ID)
			missing = append(missing, convbench.NotFoundRecord(tc))
			continue
		}
		for attempt, response := range caseResponses {
			units = append(units, unit{tc: tc, attempt: attempt, response: response})
		}
	}

	progress.Start(convbench.PhaseEvaluation, len(units))

	records := make([]convbench.EvaluationRecord, len(units), len(units)+len(missing))

	var eg errgroup.Group
	eg.SetLimit(e.Workers)

	for i := range units {
		u := units[i]
		eg.Go(func() error {
			records[i] = e.evaluateUnit(ctx, logger, u)
			progress.Advance(convbench.PhaseEvaluation)
			return nil
		})
	}
	_ = eg.Wait()
	progress.Finish(convbench.PhaseEvaluation)

	records = append(records, missing...)
	convbench.Finalize(records)
	return records, nil
}

func (e *Evaluator) evaluateUnit(ctx context.Context, logger *slog.Logger, u unit) convbench.EvaluationRecord {
	judgment, err := e.Judge.Judge(ctx, u.response, u.tc.TargetQuestion)
	if err == nil && judgment == nil {
		err = errNilJudgment
	}
	if err == nil {
		err = judgment.Validate()
	}
	if err != nil {
		logger.Warn("evaluation failed, recording failing verdict",
			"question_id", u.tc.ID, "attempt", u.attempt, "error", err)
		return convbench.FailedRecord(u.tc, u.attempt, err)
	}
	return convbench.NewRecord(u.tc, u.attempt, *judgment)
}
