package bubbletea

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/convbench"
)

// Compile-time interface verification.
var _ convbench.Progress = (*ProgressReporter)(nil)

// ProgressReporter implements convbench.Progress by forwarding events to a
// running ProgressModel. It is safe for concurrent use.
//
// The program reads no input and installs no signal handler, so an interrupt
// still terminates the process.
type ProgressReporter struct {
	program   *tea.Program
	done      chan struct{}
	err       error
	startOnce sync.Once
	closeOnce sync.Once
}

// NewProgressReporter creates a reporter that renders to w.
func NewProgressReporter(w io.Writer) *ProgressReporter {
	program := tea.NewProgram(NewProgressModel(),
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	return &ProgressReporter{
		program: program,
		done:    make(chan struct{}),
	}
}

// Run starts rendering in the background.
func (r *ProgressReporter) Run() {
	r.startOnce.Do(func() {
		go func() {
			_, r.err = r.program.Run()
			close(r.done)
		}()
	})
}

// Close renders the final state, stops the program and waits for it to exit.
func (r *ProgressReporter) Close() error {
	r.Run()
	r.closeOnce.Do(func() {
		r.program.Send(DoneMsg{})
	})
	<-r.done
	return r.err
}

// Start implements convbench.Progress.
func (r *ProgressReporter) Start(phase convbench.Phase, total int) {
	r.program.Send(PhaseStartMsg{Phase: phase, Total: total})
}

// Advance implements convbench.Progress.
func (r *ProgressReporter) Advance(phase convbench.Phase) {
	r.program.Send(PhaseAdvanceMsg{Phase: phase})
}

// Finish implements convbench.Progress.
func (r *ProgressReporter) Finish(phase convbench.Phase) {
	r.program.Send(PhaseFinishMsg{Phase: phase})
}
