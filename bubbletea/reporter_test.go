package bubbletea_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/fwojciec/convbench"
	"github.com/fwojciec/convbench/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestProgressReporter(t *testing.T) {
	t.Parallel()

	var out syncBuffer
	r := bubbletea.NewProgressReporter(&out)
	r.Run()

	r.Start(convbench.PhaseEvaluation, 4)
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Advance(convbench.PhaseEvaluation)
		}()
	}
	wg.Wait()
	r.Finish(convbench.PhaseEvaluation)

	require.NoError(t, r.Close())
	assert.Contains(t, out.String(), "evaluation")
	assert.Contains(t, out.String(), "4/4")
}

func TestProgressReporter_CloseWithoutEvents(t *testing.T) {
	t.Parallel()

	r := bubbletea.NewProgressReporter(&syncBuffer{})
	r.Run()

	require.NoError(t, r.Close())
}
