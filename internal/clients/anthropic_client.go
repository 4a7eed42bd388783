package clients

import (
	"log/slog"
	"os"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

var (
	anthropicInstance *AnthropicClient
	anthropicOnce     sync.Once
)

type AnthropicClient struct {
	Client *anthropic.Client
}

func GetAnthropicClient() *AnthropicClient {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		slog.Error("[AnthropicClient] Missing ANTHROPIC_API_KEY in environment variables")
		panic("[AnthropicClient] Missing ANTHROPIC_API_KEY in environment variables")
	}
	anthropicOnce.Do(func() {
		client := anthropic.NewClient(option.WithAPIKey(apiKey))
		anthropicInstance = &AnthropicClient{Client: &client}
		slog.Info("[AnthropicClient] Anthropic client initialized")
	})
	return anthropicInstance
}
