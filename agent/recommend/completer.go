package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"

	contractx "github.com/tanpawarit/plan-advisor/agent/contract"
)

var _ contractx.Completer = (*ChatCompleter)(nil)

// ChatCompleter sends the prompt as a single user message to an
// OpenAI-compatible chat-completions endpoint.
type ChatCompleter struct {
	client      *openaisdk.Client
	model       string
	temperature float64
}

func NewChatCompleter(client *openaisdk.Client, model string, temperature float64) (*ChatCompleter, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: chat client is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("%w: model is required", contractx.ErrValidation)
	}
	return &ChatCompleter{
		client:      client,
		model:       strings.TrimSpace(model),
		temperature: temperature,
	}, nil
}

func (c *ChatCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(c.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(prompt),
		},
		Temperature: openaisdk.Float(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %v", contractx.ErrModelInvoke, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: %v", contractx.ErrModelInvoke, errors.New("response has no choices"))
	}
	return resp.Choices[0].Message.Content, nil
}
