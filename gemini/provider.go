package gemini

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/convbench"
)

// Compile-time interface verification.
var _ convbench.ModelProvider = (*Provider)(nil)

// DefaultTimeout bounds a single Gemini call.
const DefaultTimeout = 120 * time.Second

// ErrEmptyResponse is returned when Gemini answers with no text.
var ErrEmptyResponse = errors.New("gemini: returned empty response")

// Option configures a Provider or Judge.
type Option func(*options)

type options struct {
	timeout     time.Duration
	temperature *float32
	topP        *float32
	maxTokens   int32
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
		o.maxTokens = int32(n)
	}
}

func newOptions(opts []Option) options {
	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Provider implements convbench.ModelProvider using Google Gemini.
type Provider struct {
	client GenerativeClient
	model  string
	opts   options
}

// NewProvider creates a new Provider.
func NewProvider(client GenerativeClient, model string, opts ...Option) *Provider {
	return &Provider{client: client, model: model, opts: newOptions(opts)}
}

// Generate returns the model's next message for the conversation.
func (p *Provider) Generate(ctx context.Context, turns []convbench.Turn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.timeout)
	defer cancel()

	config := &GenerateContentConfig{
		Temperature:     p.opts.temperature,
		TopP:            p.opts.topP,
		MaxOutputTokens: p.opts.maxTokens,
	}

	resp, err := p.client.GenerateContent(ctx, p.model, BuildContents(turns), config)
	if err != nil {
		return "", err
	}
	if resp == nil || resp.Text == "" {
		return "", ErrEmptyResponse
	}
	return resp.Text, nil
}

// BuildContents converts conversation turns to Gemini contents.
// Assistant turns map to the "model" role.
func BuildContents(turns []convbench.Turn) []*Content {
	contents := make([]*Content, len(turns))
	for i, t := range turns {
		role := RoleUser
		if t.Role == convbench.RoleAssistant {
			role = RoleModel
		}
		contents[i] = &Content{Role: role, Parts: []*Part{{Text: t.Content}}}
	}
	return contents
}
