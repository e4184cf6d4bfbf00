package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/planwell/dayplan/internal/schedule"
)

const (
	// DefaultOllamaBaseURL is the default Ollama API base URL
	DefaultOllamaBaseURL = "http://localhost:11434"
	// DefaultOllamaModel is the default model to use
	DefaultOllamaModel = "mistral"
	// GenerateTimeout bounds a single generation call
	GenerateTimeout = 60 * time.Second
	// ProbeTimeout bounds the cheap liveness probe
	ProbeTimeout = 5 * time.Second
)

// OllamaProvider implements the generation provider interface against a
// local Ollama server.
type OllamaProvider struct {
	baseURL     string
	model       string
	client      *http.Client
	probeClient *http.Client
	logger      *zap.Logger
}

// NewOllamaProvider creates an Ollama provider. Empty baseURL and model
// fall back to the local defaults.
func NewOllamaProvider(baseURL, model string, logger *zap.Logger) *OllamaProvider {
	if baseURL == "" {
		baseURL = DefaultOllamaBaseURL
	}
	if model == "" {
		model = DefaultOllamaModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OllamaProvider{
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		client:      &http.Client{Timeout: GenerateTimeout},
		probeClient: &http.Client{Timeout: ProbeTimeout},
		logger:      logger,
	}
}

// Available probes the tags endpoint with a short timeout. Any failure
// counts as unavailable.
func (p *OllamaProvider) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := p.probeClient.Do(req)
	if err != nil {
		p.logger.Debug("ollama_probe_failed", zap.Error(err))
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"top_p"`
	NumPredict    int     `json:"num_predict"`
	RepeatPenalty float64 `json:"repeat_penalty"`
	TopK          int     `json:"top_k"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// Generate submits a prompt to the generate endpoint and returns the raw
// response text.
func (p *OllamaProvider) Generate(ctx context.Context, prompt string, params schedule.Params) (string, error) {
	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  p.model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature:   params.Temperature,
			TopP:          params.TopP,
			NumPredict:    params.MaxTokens,
			RepeatPenalty: params.RepeatPenalty,
			TopK:          params.TopK,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	p.logger.Debug("ollama_generate_request",
		zap.String("model", p.model),
		zap.Float64("temperature", params.Temperature),
		zap.Int("num_predict", params.MaxTokens),
		zap.String("prompt_preview", SanitizePrompt(prompt, false)))

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate call failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{
			Message:    "generate call returned non-200",
			StatusCode: resp.StatusCode,
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read generate response: %w", err)
	}

	var out ollamaGenerateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}

	p.logger.Debug("ollama_generate_response",
		zap.Int("response_len", len(out.Response)),
		zap.String("response_preview", SanitizeResponse(out.Response, false)))

	return strings.TrimSpace(out.Response), nil
}
