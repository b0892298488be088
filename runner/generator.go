package runner

import (
	"context"
	"log/slog"

	"github.com/fwojciec/convbench"
	"golang.org/x/sync/errgroup"
)

// Generator produces a fixed number of responses for every test case.
type Generator struct {
	Provider convbench.ModelProvider
	// Attempts is the number of responses generated per test case.
	Attempts int
	// Workers bounds how many test cases are processed concurrently.
	Workers  int
	Logger   *slog.Logger
	Progress convbench.Progress
}

// Generate returns a ResponseSet with exactly Attempts entries per test case.
//
// Attempts for one case run sequentially so entry i is the provider's i-th
// answer. A failed call is recorded as a failure marker and never aborts the
// case or the run. No retries are made.
func (g *Generator) Generate(ctx context.Context, cases []convbench.TestCase) (convbench.ResponseSet, error) {
	if g.Attempts < 1 {
		return nil, ErrInvalidAttempts
	}
	if g.Workers < 1 {
		return nil, ErrInvalidWorkers
	}
	logger := loggerOrDefault(g.Logger)
	progress := progressOrNop(g.Progress)

	progress.Start(convbench.PhaseGeneration, len(cases))
	defer progress.Finish(convbench.PhaseGeneration)

	// Each unit owns one slot, so no locking is needed.
	results := make([][]string, len(cases))

	var eg errgroup.Group
	eg.SetLimit(g.Workers)

	for i := range cases {
		tc := cases[i]
		eg.Go(func() error {
			results[i] = g.generateCase(ctx, logger, tc)
			progress.Advance(convbench.PhaseGeneration)
			return nil
		})
	}
	_ = eg.Wait()

	responses := make(convbench.ResponseSet, len(cases))
	for i, tc := range cases {
		responses[tc.ID] = results[i]
	}
	return responses, nil
}

func (g *Generator) generateCase(ctx context.Context, logger *slog.Logger, tc convbench.TestCase) []string {
	out := make([]string, 0, g.Attempts)
	for attempt := 0; attempt < g.Attempts; attempt++ {
		text, err := g.Provider.Generate(ctx, tc.Turns)
		if err != nil {
			logger.Warn("generation failed, recording failure as response",
				"question_id", tc.ID, "attempt", attempt, "error", err)
			text = convbench.GenerationFailure(tc.ID, err)
		}
		out = append(out, text)
	}
	return out
}
