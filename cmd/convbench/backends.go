package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/convbench"
	"github.com/fwojciec/convbench/gemini"
	"github.com/fwojciec/convbench/openai"
)

// huggingFaceMaxTokens caps generation when no max_tokens is given.
const huggingFaceMaxTokens = 2000

var errNoModel = errors.New("no model configured: pass --provider-args model=<name>")

// NewRegistry returns the registry of built-in backends.
func NewRegistry() *convbench.Registry {
	r := convbench.NewRegistry()
	r.Register("openai", convbench.Backend{
		NewProvider: newOpenAIProvider,
		NewJudge:    newOpenAIJudge,
	})
	// No structured-output judge; judging falls back to a ProviderJudge.
	r.Register("huggingface", convbench.Backend{
		NewProvider: newHuggingFaceProvider,
	})
	r.Register("gemini", convbench.Backend{
		NewProvider: newGeminiProvider,
		NewJudge:    newGeminiJudge,
	})
	return r
}

func openAIOptions(cfg convbench.ProviderConfig) []openai.Option {
	var opts []openai.Option
	if cfg.Temperature != nil {
		opts = append(opts, openai.WithTemperature(*cfg.Temperature))
	}
	if cfg.TopP != nil {
		opts = append(opts, openai.WithTopP(*cfg.TopP))
	}
	if cfg.MaxTokens > 0 {
		opts = append(opts, openai.WithMaxTokens(cfg.MaxTokens))
	}
	return opts
}

func newOpenAIProvider(_ context.Context, cfg convbench.ProviderConfig) (convbench.ModelProvider, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("openai: %w", errNoModel)
	}
	client := openai.NewClient(cfg.APIKey, cfg.BaseURL)
	return openai.NewProvider(client, cfg.Model, openAIOptions(cfg)...), nil
}

func newOpenAIJudge(_ context.Context, cfg convbench.ProviderConfig) (convbench.Judge, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("openai: %w", errNoModel)
	}
	client := openai.NewClient(cfg.APIKey, cfg.BaseURL)
	return openai.NewJudge(client, cfg.Model, openAIOptions(cfg)...), nil
}

func newHuggingFaceProvider(_ context.Context, cfg convbench.ProviderConfig) (convbench.ModelProvider, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("huggingface: %w", errNoModel)
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = huggingFaceMaxTokens
	}
	client := openai.NewClient(cfg.APIKey, cfg.BaseURL)
	return openai.NewProvider(client, cfg.Model, openAIOptions(cfg)...), nil
}

func geminiOptions(cfg convbench.ProviderConfig) []gemini.Option {
	var opts []gemini.Option
	if cfg.Temperature != nil {
		opts = append(opts, gemini.WithTemperature(*cfg.Temperature))
	}
	if cfg.TopP != nil {
		opts = append(opts, gemini.WithTopP(*cfg.TopP))
	}
	if cfg.MaxTokens > 0 {
		opts = append(opts, gemini.WithMaxTokens(cfg.MaxTokens))
	}
	return opts
}

func geminiModel(cfg convbench.ProviderConfig) string {
	if cfg.Model == "" {
		return gemini.DefaultModel
	}
	return cfg.Model
}

func newGeminiProvider(ctx context.Context, cfg convbench.ProviderConfig) (convbench.ModelProvider, error) {
	client, err := gemini.NewClient(ctx, cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return gemini.NewProvider(client, geminiModel(cfg), geminiOptions(cfg)...), nil
}

func newGeminiJudge(ctx context.Context, cfg convbench.ProviderConfig) (convbench.Judge, error) {
	client, err := gemini.NewClient(ctx, cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return gemini.NewJudge(client, geminiModel(cfg), geminiOptions(cfg)...), nil
}
