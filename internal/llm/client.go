package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/baokaotong/baokao-backend/internal/config"
)

// temperature matches the original advisor tuning; low enough for stable
// JSON output, high enough to avoid degenerate repetition.
const temperature = 0.3

// Client is the chat-completion capability the enrichment pipeline depends
// on. Implementations return the raw assistant message content.
type Client interface {
	Complete(ctx context.Context, system, user string, maxTokens int64) (string, error)
}

type deepSeekClient struct {
	api     openai.Client
	model   string
	timeout time.Duration
}

// NewDeepSeek builds a Client backed by the DeepSeek (OpenAI-compatible)
// chat-completions endpoint. Constructed once at startup and shared.
func NewDeepSeek(cfg *config.Config) Client {
	return &deepSeekClient{
		api: openai.NewClient(
			option.WithAPIKey(cfg.DeepSeekAPIKey),
			option.WithBaseURL(cfg.DeepSeekBaseURL),
		),
		model:   cfg.ChatModel,
		timeout: cfg.LLMTimeout,
	}
}

func (c *deepSeekClient) Complete(ctx context.Context, system, user string, maxTokens int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned")
	}

	return StripReasoning(resp.Choices[0].Message.Content), nil
}

// StripReasoning drops the <think>…</think> preamble emitted by reasoning
// models so only the final answer remains.
func StripReasoning(content string) string {
	if strings.Contains(content, "<think>") {
		if _, after, found := strings.Cut(content, "</think>"); found {
			return strings.TrimSpace(after)
		}
	}
	return strings.TrimSpace(content)
}
