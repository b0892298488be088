package convbench

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// JudgePrompt builds the instruction sent to the judge model.
func JudgePrompt(response, targetQuestion string) string {
	return fmt.Sprintf(`You are tasked with evaluating a model response to see if it meets a specific criteria.
The criteria will always be YES/NO evaluation.

The model response is as follows:
<MODEL_RESPONSE>
%s
</MODEL_RESPONSE>

The criteria that the model response must meet is as follows. Be VERY STRICT!:
<CRITERIA>
%s
</CRITERIA>

Print your reasoning followed by your verdict, either "YES" or "NO".`, response, targetQuestion)
}

// ParseJudgment strictly decodes structured judge output.
// Unknown fields, a missing reasoning or a verdict other than YES/NO are errors.
func ParseJudgment(data []byte) (*Judgment, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var j Judgment
	if err := dec.Decode(&j); err != nil {
		return nil, fmt.Errorf("judgment: decode: %w", err)
	}
	if err := j.Validate(); err != nil {
		return nil, err
	}
	return &j, nil
}

// Compile-time interface verification.
var _ Judge = (*ProviderJudge)(nil)

// ProviderJudge adapts a plain ModelProvider into a Judge for backends that
// cannot constrain their output. The reply is repaired into JSON when needed
// and then validated like structured output.
type ProviderJudge struct {
	provider ModelProvider
}

// NewProviderJudge creates a ProviderJudge.
func NewProviderJudge(provider ModelProvider) *ProviderJudge {
	return &ProviderJudge{provider: provider}
}

// Judge asks the provider for a JSON judgment and validates it.
func (j *ProviderJudge) Judge(ctx context.Context, response, targetQuestion string) (*Judgment, error) {
	prompt := JudgePrompt(response, targetQuestion) +
		"\n\nRespond only with a JSON object of the form {\"reasoning\": \"...\", \"verdict\": \"YES\" or \"NO\"}."

	text, err := j.provider.Generate(ctx, []Turn{{Role: RoleUser, Content: prompt}})
	if err != nil {
		return nil, err
	}

	text = stripCodeFence(text)
	if judgment, err := ParseJudgment([]byte(text)); err == nil {
		return judgment, nil
	}

	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return nil, fmt.Errorf("judgment: repair: %w", err)
	}
	return ParseJudgment([]byte(repaired))
}

// stripCodeFence removes a surrounding markdown code fence, if any.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl != -1 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
