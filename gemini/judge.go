package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/convbench"
)

// Compile-time interface verification.
var _ convbench.Judge = (*Judge)(nil)

// Judge implements convbench.Judge using Gemini controlled JSON generation.
type Judge struct {
	client GenerativeClient
	model  string
	opts   options
}

// NewJudge creates a new Judge. The temperature defaults to 0.
func NewJudge(client GenerativeClient, model string, opts ...Option) *Judge {
	o := newOptions(opts)
	if o.temperature == nil {
		var zero float32
		o.temperature = &zero
	}
	return &Judge{client: client, model: model, opts: o}
}

// Judge asks Gemini for a structured verdict on response.
func (j *Judge) Judge(ctx context.Context, response, targetQuestion string) (*convbench.Judgment, error) {
	ctx, cancel := context.WithTimeout(ctx, j.opts.timeout)
	defer cancel()

	contents := []*Content{{
		Role:  RoleUser,
		Parts: []*Part{{Text: convbench.JudgePrompt(response, targetQuestion)}},
	}}

	resp, err := j.client.GenerateContent(ctx, j.model, contents, buildJudgeConfig(j.opts))
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("gemini: returned nil response")
	}

	judgment, err := convbench.ParseJudgment([]byte(resp.Text))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to parse judgment: %w", err)
	}
	return judgment, nil
}

// JudgmentSchema constrains output to {reasoning, verdict}.
func JudgmentSchema() *Schema {
	return &Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"reasoning": {Type: "STRING", Description: "Step-by-step reasoning about the criteria"},
			"verdict":   {Type: "STRING", Enum: []string{string(convbench.VerdictYes), string(convbench.VerdictNo)}},
		},
		Required:         []string{"reasoning", "verdict"},
		PropertyOrdering: []string{"reasoning", "verdict"},
	}
}

// buildJudgeConfig returns config for judge calls.
func buildJudgeConfig(o options) *GenerateContentConfig {
	return &GenerateContentConfig{
		Temperature:      o.temperature,
		TopP:             o.topP,
		MaxOutputTokens:  o.maxTokens,
		ResponseMIMEType: "application/json",
		ResponseSchema:   JudgmentSchema(),
	}
}
