// Package runner executes the generation and evaluation phases of a benchmark
// run on bounded worker pools.
package runner

import (
	"errors"
	"log/slog"

	"github.com/fwojciec/convbench"
)

// Configuration errors.
var (
	ErrInvalidAttempts = errors.New("runner: attempts must be at least 1")
	ErrInvalidWorkers  = errors.New("runner: workers must be at least 1")
)

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

// nopProgress discards progress updates.
type nopProgress struct{}

func (nopProgress) Start(convbench.Phase, int) {}
func (nopProgress) Advance(convbench.Phase)    {}
func (nopProgress) Finish(convbench.Phase)     {}

func progressOrNop(p convbench.Progress) convbench.Progress {
	if p == nil {
		return nopProgress{}
	}
	return p
}

var errNilJudgment = errors.New("judge returned no judgment")
