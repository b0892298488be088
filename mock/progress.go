package mock

import (
	"sync"

	"github.com/fwojciec/convbench"
)

// Compile-time interface verification.
var _ convbench.Progress = (*Progress)(nil)

// Progress is a goroutine-safe recording implementation of convbench.Progress.
type Progress struct {
	mu       sync.Mutex
	Totals   map[convbench.Phase]int
	Advances map[convbench.Phase]int
	Finished map[convbench.Phase]bool
}

// NewProgress creates an empty Progress recorder.
func NewProgress() *Progress {
	return &Progress{
		Totals:   make(map[convbench.Phase]int),
		Advances: make(map[convbench.Phase]int),
		Finished: make(map[convbench.Phase]bool),
	}
}

func (p *Progress) Start(phase convbench.Phase, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Totals[phase] = total
}

func (p *Progress) Advance(phase convbench.Phase) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Advances[phase]++
}

func (p *Progress) Finish(phase convbench.Phase) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Finished[phase] = true
}
