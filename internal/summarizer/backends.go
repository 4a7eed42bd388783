package summarizer

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	openai "github.com/sashabaranov/go-openai"

	"github.com/adriansoto/mexbrief/internal/clients"
)

const (
	anthropicModel   = "claude-sonnet-4-6"
	openAIModel      = openai.GPT4o
	digestMaxTokens  = 2500
	overloadedStatus = 529 // Anthropic overloaded_error
)

// SelectBackend picks the summarization backend from SUMMARY_BACKEND
// (default anthropic).
func SelectBackend() Backend {
	if os.Getenv("SUMMARY_BACKEND") == "openai" {
		return &OpenAIBackend{client: clients.GetOpenAIClient()}
	}
	return &AnthropicBackend{client: clients.GetAnthropicClient()}
}

type AnthropicBackend struct {
	client *clients.AnthropicClient
}

func (b *AnthropicBackend) Name() string { return "anthropic" }

func (b *AnthropicBackend) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := b.client.Client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(anthropicModel),
		MaxTokens: digestMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Content) == 0 {
		return "", errors.New("empty response from anthropic")
	}
	return resp.Content[0].Text, nil
}

func (b *AnthropicBackend) IsTransient(err error) bool {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode == overloadedStatus ||
			apierr.StatusCode == http.StatusTooManyRequests
	}
	return false
}

type OpenAIBackend struct {
	client *clients.OpenAIClient
}

func (b *OpenAIBackend) Name() string { return "openai" }

func (b *OpenAIBackend) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := b.client.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     openAIModel,
		MaxTokens: digestMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from openai")
	}
	return resp.Choices[0].Message.Content, nil
}

func (b *OpenAIBackend) IsTransient(err error) bool {
	var apierr *openai.APIError
	if errors.As(err, &apierr) {
		return apierr.HTTPStatusCode == http.StatusTooManyRequests ||
			apierr.HTTPStatusCode >= http.StatusInternalServerError
	}
	return false
}
