package quizgen

import (
	"context"
	"errors"

	"note-quiz/internal/domain"
	"note-quiz/internal/logger"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

// AnthropicGenerator implements domain.QuestionGenerator with the Anthropic
// Messages API. The client is built once and reused for every request.
type AnthropicGenerator struct {
	client *anthropic.Client
	opts   Options
}

// NewAnthropicGenerator builds a generator for apiKey. Extra client options
// (base URL, HTTP client) are appended after the key. Retries are disabled:
// a failed call surfaces immediately as an upstream error.
func NewAnthropicGenerator(apiKey string, opts Options, clientOpts ...option.RequestOption) (*AnthropicGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic API key cannot be empty")
	}
	if opts.Model == "" {
		return nil, errors.New("anthropic model name cannot be empty")
	}

	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, clientOpts...)
	client := anthropic.NewClient(reqOpts...)

	logger.Get().Info("Initializing Anthropic question generator", zap.String("model", opts.Model))
	return &AnthropicGenerator{client: &client, opts: opts.withDefaults()}, nil
}

// GenerateQuestions sends one chat request and returns the first text block of the reply.
func (g *AnthropicGenerator) GenerateQuestions(ctx context.Context, content string) (string, error) {
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	l := logger.Get()
	prompt := BuildUserPrompt(content, g.opts.QuestionCount, g.opts.Now())

	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(g.opts.Model),
		MaxTokens:   int64(g.opts.MaxTokens),
		Temperature: anthropic.Float(g.opts.Temperature),
		System:      []anthropic.TextBlockParam{{Text: SystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		l.Error("Anthropic request failed", zap.Error(err))
		return "", domain.NewUpstreamError(err)
	}

	for _, block := range resp.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			l.Debug("Anthropic response received",
				zap.String("stop_reason", string(resp.StopReason)),
				zap.Int64("output_tokens", resp.Usage.OutputTokens))
			return text.Text, nil
		}
	}

	return "", domain.NewUpstreamError(errors.New("anthropic response contained no text block"))
}

var _ domain.QuestionGenerator = (*AnthropicGenerator)(nil)
