package runner

import (
	"log/slog"
	"sync"

	"github.com/fwojciec/convbench"
)

// Compile-time interface verification.
var _ convbench.Progress = (*LogProgress)(nil)

// LogProgress reports phase progress as structured log lines: once at start,
// at every 10% step and at finish.
type LogProgress struct {
	logger *slog.Logger

	mu     sync.Mutex
	totals map[convbench.Phase]int
	done   map[convbench.Phase]int
}

// NewLogProgress creates a LogProgress writing to logger.
func NewLogProgress(logger *slog.Logger) *LogProgress {
	return &LogProgress{
		logger: loggerOrDefault(logger),
		totals: make(map[convbench.Phase]int),
		done:   make(map[convbench.Phase]int),
	}
}

func (p *LogProgress) Start(phase convbench.Phase, total int) {
	p.mu.Lock()
	p.totals[phase] = total
	p.done[phase] = 0
	p.mu.Unlock()

	p.logger.Info("phase started", "phase", phase, "total", total)
}

func (p *LogProgress) Advance(phase convbench.Phase) {
	p.mu.Lock()
	p.done[phase]++
	done, total := p.done[phase], p.totals[phase]
	p.mu.Unlock()

	if total == 0 {
		return
	}
	// Log when the completed count crosses a 10% boundary.
	if done*10/total != (done-1)*10/total {
		p.logger.Info("phase progress", "phase", phase, "done", done, "total", total)
	}
}

func (p *LogProgress) Finish(phase convbench.Phase) {
	p.mu.Lock()
	done := p.done[phase]
	p.mu.Unlock()

	p.logger.Info("phase finished", "phase", phase, "done", done)
}
