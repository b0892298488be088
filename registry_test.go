package convbench_test

import (
	"context"
	"testing"

	"github.com/fwojciec/convbench"
	"github.com/fwojciec/convbench/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	provider := &mock.ModelProvider{
		GenerateFn: func(ctx context.Context, turns []convbench.Turn) (string, error) {
			return `{"reasoning":"r","verdict":"YES"}`, nil
		},
	}
	judge := &mock.Judge{}

	var gotCfg convbench.ProviderConfig
	r := convbench.NewRegistry()
	r.Register("plain", convbench.Backend{
		NewProvider: func(ctx context.Context, cfg convbench.ProviderConfig) (convbench.ModelProvider, error) {
			gotCfg = cfg
			return provider, nil
		},
	})
	r.Register("structured", convbench.Backend{
		NewProvider: func(ctx context.Context, cfg convbench.ProviderConfig) (convbench.ModelProvider, error) {
			return provider, nil
		},
		NewJudge: func(ctx context.Context, cfg convbench.ProviderConfig) (convbench.Judge, error) {
			return judge, nil
		},
	})

	t.Run("names are sorted", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"plain", "structured"}, r.Names())
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()

		_, err := r.Provider(context.Background(), "missing", convbench.ProviderConfig{})
		assert.ErrorIs(t, err, convbench.ErrUnknownProvider)

		_, err = r.Judge(context.Background(), "missing", convbench.ProviderConfig{})
		assert.ErrorIs(t, err, convbench.ErrUnknownProvider)
	})

	t.Run("structured judge is used when registered", func(t *testing.T) {
		t.Parallel()

		got, err := r.Judge(context.Background(), "structured", convbench.ProviderConfig{})

		require.NoError(t, err)
		assert.Same(t, judge, got)
	})

	t.Run("falls back to provider judge", func(t *testing.T) {
		t.Parallel()

		got, err := r.Judge(context.Background(), "plain", convbench.ProviderConfig{Model: "m"})

		require.NoError(t, err)
		assert.IsType(t, &convbench.ProviderJudge{}, got)
		j, err := got.Judge(context.Background(), "resp", "q")
		require.NoError(t, err)
		assert.Equal(t, convbench.VerdictYes, j.Verdict)
		assert.Equal(t, "m", gotCfg.Model)
	})
}
