package openai

import (
	"context"
	"fmt"

	"github.com/fwojciec/convbench"
	goopenai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Compile-time interface verification.
var _ convbench.Judge = (*Judge)(nil)

// Judge implements convbench.Judge using strict JSON-schema structured outputs.
type Judge struct {
	client ChatClient
	model  string
	opts   options
}

// NewJudge creates a new Judge. The temperature defaults to 0.
func NewJudge(client ChatClient, model string, opts ...Option) *Judge {
	o := newOptions(opts)
	if o.temperature == nil {
		var zero float32
		o.temperature = &zero
	}
	return &Judge{client: client, model: model, opts: o}
}

// Judge asks the model for a structured verdict on response.
func (j *Judge) Judge(ctx context.Context, response, targetQuestion string) (*convbench.Judgment, error) {
	ctx, cancel := context.WithTimeout(ctx, j.opts.timeout)
	defer cancel()

	req := goopenai.ChatCompletionRequest{
		Model: j.model,
		Messages: []goopenai.ChatCompletionMessage{{
			Role:    goopenai.ChatMessageRoleUser,
			Content: convbench.JudgePrompt(response, targetQuestion),
		}},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &goopenai.ChatCompletionResponseFormatJSONSchema{
				Name:   "judge_response",
				Schema: JudgmentSchema(),
				Strict: true,
			},
		},
	}
	j.opts.apply(&req)

	resp, err := j.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}
	msg := resp.Choices[0].Message
	if msg.Refusal != "" {
		return nil, fmt.Errorf("openai: judge refused: %s", msg.Refusal)
	}

	judgment, err := convbench.ParseJudgment([]byte(msg.Content))
	if err != nil {
		return nil, fmt.Errorf("openai: failed to parse judgment: %w", err)
	}
	return judgment, nil
}

// JudgmentSchema constrains output to {reasoning, verdict}.
func JudgmentSchema() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"reasoning": {Type: jsonschema.String},
			"verdict": {
				Type: jsonschema.String,
				Enum: []string{string(convbench.VerdictYes), string(convbench.VerdictNo)},
			},
		},
		Required:             []string{"reasoning", "verdict"},
		AdditionalProperties: false,
	}
}
