package openai

import (
	"context"
	"fmt"

	"github.com/fwojciec/convbench"
	goopenai "github.com/sashabaranov/go-openai"
)

// Compile-time interface verification.
var _ convbench.ModelProvider = (*Provider)(nil)

// Provider implements convbench.ModelProvider with chat completions.
type Provider struct {
	client ChatClient
	model  string
	opts   options
}

// NewProvider creates a new Provider.
func NewProvider(client ChatClient, model string, opts ...Option) *Provider {
	return &Provider{client: client, model: model, opts: newOptions(opts)}
}

// Generate returns the model's next message for the conversation.
func (p *Provider) Generate(ctx context.Context, turns []convbench.Turn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.timeout)
	defer cancel()

	req := goopenai.ChatCompletionRequest{
		Model:    p.model,
		Messages: BuildMessages(turns),
	}
	p.opts.apply(&req)

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

// BuildMessages converts conversation turns to chat messages.
func BuildMessages(turns []convbench.Turn) []goopenai.ChatCompletionMessage {
	messages := make([]goopenai.ChatCompletionMessage, len(turns))
	for i, t := range turns {
		role := goopenai.ChatMessageRoleUser
		if t.Role == convbench.RoleAssistant {
			role = goopenai.ChatMessageRoleAssistant
		}
		messages[i] = goopenai.ChatCompletionMessage{Role: role, Content: t.Content}
	}
	return messages
}
