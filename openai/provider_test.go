package openai_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/fwojciec/convbench"
	"github.com/fwojciec/convbench/openai"
	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reply(content string) goopenai.ChatCompletionResponse {
	return goopenai.ChatCompletionResponse{
		Choices: []goopenai.ChatCompletionChoice{{
			Message: goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleAssistant, Content: content},
		}},
	}
}

func TestProvider_Generate(t *testing.T) {
	t.Parallel()

	var got goopenai.ChatCompletionRequest
	client := &openai.MockChatClient{
		CreateChatCompletionFn: func(_ context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error) {
			got = req
			return reply("Sure, here it is."), nil
		},
	}
	p := openai.NewProvider(client, "gpt-4o", openai.WithTemperature(0.7), openai.WithTopP(0.9), openai.WithMaxTokens(256))

	text, err := p.Generate(context.Background(), []convbench.Turn{
		{Role: convbench.RoleUser, Content: "Write a haiku."},
		{Role: convbench.RoleAssistant, Content: "Leaves fall."},
		{Role: convbench.RoleUser, Content: "Another one."},
	})

	require.NoError(t, err)
	assert.Equal(t, "Sure, here it is.", text)
	assert.Equal(t, "gpt-4o", got.Model)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, goopenai.ChatMessageRoleUser, got.Messages[0].Role)
	assert.Equal(t, goopenai.ChatMessageRoleAssistant, got.Messages[1].Role)
	assert.Equal(t, "Another one.", got.Messages[2].Content)
	assert.InDelta(t, 0.7, got.Temperature, 1e-6)
	assert.InDelta(t, 0.9, got.TopP, 1e-6)
	assert.Equal(t, 256, got.MaxTokens)
	assert.Nil(t, got.ResponseFormat)
}

func TestProvider_Generate_DefaultsLeaveSamplingUnset(t *testing.T) {
	t.Parallel()

	var got goopenai.ChatCompletionRequest
	client := &openai.MockChatClient{
		CreateChatCompletionFn: func(_ context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error) {
			got = req
			return reply("ok"), nil
		},
	}

	_, err := openai.NewProvider(client, "m").Generate(context.Background(), nil)

	require.NoError(t, err)
	assert.Zero(t, got.Temperature)
	assert.Zero(t, got.TopP)
	assert.Zero(t, got.MaxTokens)
}

func TestProvider_Generate_ZeroTemperatureIsSent(t *testing.T) {
	t.Parallel()

	var got goopenai.ChatCompletionRequest
	client := &openai.MockChatClient{
		CreateChatCompletionFn: func(_ context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error) {
			got = req
			return reply("ok"), nil
		},
	}

	_, err := openai.NewProvider(client, "m", openai.WithTemperature(0)).Generate(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, float32(math.SmallestNonzeroFloat32), got.Temperature)
}

func TestProvider_Generate_PropagatesError(t *testing.T) {
	t.Parallel()

	apiErr := errors.New("rate limited")
	client := &openai.MockChatClient{
		CreateChatCompletionFn: func(context.Context, goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error) {
			return goopenai.ChatCompletionResponse{}, apiErr
		},
	}

	_, err := openai.NewProvider(client, "m").Generate(context.Background(), nil)

	require.ErrorIs(t, err, apiErr)
}

func TestProvider_Generate_NoChoices(t *testing.T) {
	t.Parallel()

	client := &openai.MockChatClient{
		CreateChatCompletionFn: func(context.Context, goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error) {
			return goopenai.ChatCompletionResponse{}, nil
		},
	}

	_, err := openai.NewProvider(client, "m").Generate(context.Background(), nil)

	require.ErrorIs(t, err, openai.ErrNoChoices)
}

func TestProvider_Generate_AppliesTimeout(t *testing.T) {
	t.Parallel()

	client := &openai.MockChatClient{
		CreateChatCompletionFn: func(ctx context.Context, _ goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error) {
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
			return reply("ok"), nil
		},
	}

	_, err := openai.NewProvider(client, "m", openai.WithTimeout(5*time.Second)).Generate(context.Background(), nil)

	require.NoError(t, err)
}

func TestNewClient_UsesBaseURL(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, openai.NewClient("key", openai.HuggingFaceBaseURL))
	assert.NotNil(t, openai.NewClient("key", ""))
}
