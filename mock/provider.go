// Package mock provides test doubles for convbench interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/convbench"
)

// Compile-time interface verification.
var (
	_ convbench.ModelProvider = (*ModelProvider)(nil)
	_ convbench.Judge         = (*Judge)(nil)
)

// ModelProvider is a mock implementation of convbench.ModelProvider.
type ModelProvider struct {
	GenerateFn func(ctx context.Context, turns []convbench.Turn) (string, error)
}

func (p *ModelProvider) Generate(ctx context.Context, turns []convbench.Turn) (string, error) {
	return p.GenerateFn(ctx, turns)
}

// Judge is a mock implementation of convbench.Judge.
type Judge struct {
	JudgeFn func(ctx context.Context, response, targetQuestion string) (*convbench.Judgment, error)
}

func (j *Judge) Judge(ctx context.Context, response, targetQuestion string) (*convbench.Judgment, error) {
	return j.JudgeFn(ctx, response, targetQuestion)
}
