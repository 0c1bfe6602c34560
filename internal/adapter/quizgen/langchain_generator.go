package quizgen

import (
	"context"
	"errors"
	"fmt"

	"note-quiz/internal/domain"
	"note-quiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// LangchainGenerator implements domain.QuestionGenerator on any langchaingo
// chat model, which covers the OpenAI and Ollama providers.
type LangchainGenerator struct {
	llm      llms.Model
	provider string
	opts     Options
}

func NewLangchainGenerator(llm llms.Model, provider string, opts Options) *LangchainGenerator {
	return &LangchainGenerator{llm: llm, provider: provider, opts: opts.withDefaults()}
}

// NewOpenAIGenerator creates a generator backed by the OpenAI chat API.
func NewOpenAIGenerator(apiKey string, opts Options) (*LangchainGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("openai API key cannot be empty")
	}
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(opts.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI LLM client: %w", err)
	}
	logger.Get().Info("Initializing OpenAI question generator", zap.String("model", opts.Model))
	return NewLangchainGenerator(llm, "openai", opts), nil
}

// NewOllamaGenerator creates a generator backed by a local Ollama server.
func NewOllamaGenerator(serverURL string, opts Options) (*LangchainGenerator, error) {
	llm, err := ollama.New(
		ollama.WithModel(opts.Model),
		ollama.WithServerURL(serverURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama LLM client: %w", err)
	}
	logger.Get().Info("Initializing Ollama question generator",
		zap.String("model", opts.Model),
		zap.String("server", serverURL))
	return NewLangchainGenerator(llm, "ollama", opts), nil
}

func (g *LangchainGenerator) GenerateQuestions(ctx context.Context, content string) (string, error) {
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, SystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, BuildUserPrompt(content, g.opts.QuestionCount, g.opts.Now())),
	}

	resp, err := g.llm.GenerateContent(ctx, messages,
		llms.WithMaxTokens(g.opts.MaxTokens),
		llms.WithTemperature(g.opts.Temperature),
	)
	if err != nil {
		logger.Get().Error("LLM request failed", zap.String("provider", g.provider), zap.Error(err))
		return "", domain.NewUpstreamError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", domain.NewUpstreamError(fmt.Errorf("%s returned no content", g.provider))
	}

	return resp.Choices[0].Content, nil
}

var _ domain.QuestionGenerator = (*LangchainGenerator)(nil)
