package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"

	"github.com/planwell/dayplan/internal/schedule"
)

const (
	// DefaultOpenAIModel is the default model to use
	DefaultOpenAIModel = "gpt-4o-mini"
	// DefaultOpenAIBaseURL is the default OpenAI API base URL
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
)

// OpenAIProvider implements the generation provider interface using
// OpenAI's chat completion API. It is the hosted alternative to the local
// Ollama provider.
type OpenAIProvider struct {
	client openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIProvider creates an OpenAI provider. Empty baseURL and model
// fall back to the OpenAI defaults.
func NewOpenAIProvider(apiKey, baseURL, model string, logger *zap.Logger) *OpenAIProvider {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := &http.Client{
		Timeout: GenerateTimeout,
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
	)

	return &OpenAIProvider{
		client: client,
		model:  model,
		logger: logger,
	}
}

// Available lists models with a short timeout as a liveness and
// credentials probe.
func (p *OpenAIProvider) Available(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	_, err := p.client.Models.List(probeCtx)
	if err != nil {
		p.logger.Debug("openai_probe_failed", zap.Error(err))
		return false
	}
	return true
}

// Generate submits a prompt as a single-turn chat completion.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, params schedule.Params) (string, error) {
	start := time.Now()

	p.logger.Debug("openai_generate_request",
		zap.String("model", p.model),
		zap.Float64("temperature", params.Temperature),
		zap.Int("max_tokens", params.MaxTokens),
		zap.String("prompt_preview", SanitizePrompt(prompt, false)))

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(params.Temperature),
		TopP:        openai.Float(params.TopP),
		MaxTokens:   openai.Int(int64(params.MaxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	p.logger.Debug("openai_generate_response",
		zap.Duration("duration", time.Since(start)),
		zap.Int("response_len", len(content)),
		zap.String("response_preview", SanitizeResponse(content, false)))

	return content, nil
}
