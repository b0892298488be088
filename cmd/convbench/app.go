package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/convbench"
	"github.com/fwojciec/convbench/report"
	"github.com/fwojciec/convbench/runner"
)

// App encapsulates the application logic for testing.
type App struct {
	Cases     convbench.TestCaseLoader
	Responses convbench.ResponseLoader
	Saver     convbench.ResponseSaver
	Records   convbench.RecordStore
	Provider  convbench.ModelProvider // Required unless ResponsesFile is set
	Judge     convbench.Judge
	Progress  convbench.Progress
	Logger    *slog.Logger

	InputFile         string
	ResponsesFile     string // Load responses instead of generating them
	SaveResponsesFile string
	RecordsFile       string
	OutputFile        string
	RawFile           string

	Attempts    int
	GenWorkers  int
	EvalWorkers int
}

// Result is the outcome of a completed run.
type Result struct {
	Cases     []convbench.TestCase
	Responses convbench.ResponseSet
	Records   []convbench.EvaluationRecord
	Scores    *convbench.ScoreReport
}

// Run loads the test cases, obtains responses, evaluates them and writes
// the summary and optional audit reports.
func (a *App) Run(ctx context.Context) (*Result, error) {
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cases, err := a.Cases.Load(a.InputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load test cases: %w", err)
	}
	if err := convbench.ValidateTestCases(cases); err != nil {
		return nil, fmt.Errorf("invalid test cases in %s: %w", a.InputFile, err)
	}
	logger.Info("loaded test cases", "path", a.InputFile, "count", len(cases))

	responses, err := a.responses(ctx, logger, cases)
	if err != nil {
		return nil, err
	}

	evaluator := &runner.Evaluator{
		Judge:    a.Judge,
		Workers:  a.EvalWorkers,
		Logger:   logger,
		Progress: a.Progress,
	}
	records, err := evaluator.Evaluate(ctx, cases, responses)
	if err != nil {
		return nil, err
	}

	if a.RecordsFile != "" {
		if err := a.Records.Save(a.RecordsFile, records); err != nil {
			return nil, fmt.Errorf("failed to save records: %w", err)
		}
		logger.Info("saved evaluation records", "path", a.RecordsFile)
	}

	scores, err := convbench.Score(records)
	if err != nil {
		return nil, err
	}
	if err := report.SaveSummary(a.OutputFile, a.Attempts, scores); err != nil {
		return nil, fmt.Errorf("failed to write summary: %w", err)
	}

	if a.RawFile != "" {
		rows := convbench.BuildAuditRows(cases, responses, records, a.Attempts)
		if err := report.SaveAudit(a.RawFile, rows); err != nil {
			return nil, fmt.Errorf("failed to write raw output: %w", err)
		}
	}

	return &Result{
		Cases:     cases,
		Responses: responses,
		Records:   records,
		Scores:    scores,
	}, nil
}

func (a *App) responses(ctx context.Context, logger *slog.Logger, cases []convbench.TestCase) (convbench.ResponseSet, error) {
	if a.ResponsesFile != "" {
		responses, err := a.Responses.Load(a.ResponsesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load responses: %w", err)
		}
		logger.Info("loaded responses", "path", a.ResponsesFile, "questions", len(responses))
		return responses, nil
	}

	if a.Provider == nil {
		return nil, ErrNoProvider
	}
	generator := &runner.Generator{
		Provider: a.Provider,
		Attempts: a.Attempts,
		Workers:  a.GenWorkers,
		Logger:   logger,
		Progress: a.Progress,
	}
	responses, err := generator.Generate(ctx, cases)
	if err != nil {
		return nil, err
	}

	if a.SaveResponsesFile != "" {
		if err := a.Saver.Save(a.SaveResponsesFile, responses); err != nil {
			return nil, fmt.Errorf("failed to save responses: %w", err)
		}
		logger.Info("saved responses", "path", a.SaveResponsesFile)
	}
	return responses, nil
}
