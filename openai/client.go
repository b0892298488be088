// Package openai implements convbench model backends for OpenAI-compatible
// chat completion APIs.
package openai

import (
	"context"
	"errors"
	"math"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
)

// Defaults.
const (
	DefaultJudgeModel  = "gpt-4o-2024-08-06"
	DefaultTimeout     = 120 * time.Second
	HuggingFaceBaseURL = "https://router.huggingface.co/v1"
)

// ErrNoChoices is returned when the API answers without any choice.
var ErrNoChoices = errors.New("openai: returned no choices")

// ChatClient abstracts the chat completion API for testing.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

// Compile-time check that the SDK client implements ChatClient.
var _ ChatClient = (*goopenai.Client)(nil)

// NewClient creates an SDK client. An empty baseURL uses the OpenAI API.
func NewClient(apiKey, baseURL string) *goopenai.Client {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return goopenai.NewClientWithConfig(cfg)
}

// MockChatClient is a mock implementation of ChatClient for testing.
type MockChatClient struct {
	CreateChatCompletionFn func(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

func (m *MockChatClient) CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error) {
	return m.CreateChatCompletionFn(ctx, req)
}

// Option configures a Provider or Judge.
type Option func(*options)

type options struct {
	timeout     time.Duration
	temperature *float32
	topP        *float32
	maxTokens   int
}

// WithTimeout sets the timeout for API calls.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(o *options) {
		o.temperature = &t
	}
}

// WithTopP sets nucleus sampling.
func WithTopP(p float32) Option {
	return func(o *options) {
		o.topP = &p
	}
}

// WithMaxTokens caps the response length.
func WithMaxTokens(n int) Option {
	return func(o *options) {
		o.maxTokens = n
	}
}

func newOptions(opts []Option) options {
	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// apply copies sampling options onto req.
func (o options) apply(req *goopenai.ChatCompletionRequest) {
	if o.temperature != nil {
		req.Temperature = *o.temperature
		// The SDK omits a zero temperature, which the API reads as 1.
		if req.Temperature == 0 {
			req.Temperature = math.SmallestNonzeroFloat32
		}
	}
	if o.topP != nil {
		req.TopP = *o.topP
	}
	if o.maxTokens > 0 {
		req.MaxTokens = o.maxTokens
	}
}
