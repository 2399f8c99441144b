// Package anthropic adapts the Anthropic messages API to the LLMService
// port.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
)

var _ driven.LLMService = (*LLMService)(nil)

const (
	DefaultBaseURL = "https://api.anthropic.com"
	DefaultModel   = "claude-3-5-sonnet-latest"
	DefaultTimeout = 120 * time.Second

	// anthropicVersion is the required API version header.
	anthropicVersion = "2023-06-01"
)

// Config configures the Anthropic LLM service. Only APIKey is required.
type Config struct {
	APIKey string

	// BaseURL overrides the API endpoint.
	BaseURL string

	// Model selects the model, DefaultModel when empty.
	Model string

	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}

// LLMService generates text through the Anthropic /v1/messages endpoint.
type LLMService struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	model       string
	promptStore driven.PromptStore
}

// messagesRequest is the /v1/messages request body. Unlike OpenAI, the
// system prompt travels as a top-level field and max_tokens is mandatory.
type messagesRequest struct {
	Model       string    `json:"model"`
	Messages    []turnMsg `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	System      string    `json:"system,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	StopSeqs    []string  `json:"stop_sequences,omitempty"`
}

type turnMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse decodes the fields we read. Answers arrive as a list
// of typed content blocks.
type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewLLMService creates an Anthropic-backed LLM service.
func NewLLMService(cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: anthropic API key is required", domain.ErrInvalidArgument)
	}
	cfg.applyDefaults()

	return &LLMService{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Generate produces a completion for a single user prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	msgs := []driven.ChatMessage{{Role: "user", Content: prompt}}
	chatOpts := driven.ChatOptions{MaxTokens: opts.MaxTokens, Temperature: opts.Temperature}
	return s.send(ctx, "", msgs, chatOpts, opts.StopWords)
}

// Chat sends a multi-turn conversation. A "system" role message is
// lifted out of the turn list into the dedicated system field.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	var system string
	turns := make([]driven.ChatMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == "system" {
			system = msg.Content
			continue
		}
		turns = append(turns, msg)
	}

	return s.send(ctx, system, turns, opts, nil)
}

// send backs both Generate and Chat.
func (s *LLMService) send(ctx context.Context, system string, messages []driven.ChatMessage, opts driven.ChatOptions, stop []string) (string, error) {
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	req := messagesRequest{
		Model:       s.model,
		Messages:    make([]turnMsg, len(messages)),
		MaxTokens:   maxTokens,
		System:      system,
		Temperature: opts.Temperature,
		StopSeqs:    stop,
	}
	for i, m := range messages {
		req.Messages[i] = turnMsg{Role: m.Role, Content: m.Content}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	s.setHeaders(httpReq)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: anthropic: %s", domain.ErrGenerationUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var out messagesResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	switch {
	case out.Error != nil:
		return "", fmt.Errorf("%w: anthropic: %s", domain.ErrGenerationUnavailable, out.Error.Message)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: anthropic status %d: %s", domain.ErrGenerationUnavailable, resp.StatusCode, string(body))
	case len(out.Content) == 0:
		return "", fmt.Errorf("%w: anthropic: no content returned", domain.ErrGenerationUnavailable)
	}

	var answer strings.Builder
	for _, block := range out.Content {
		if block.Type == "text" {
			answer.WriteString(block.Text)
		}
	}
	return answer.String(), nil
}

func (s *LLMService) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
}

// defaultSummarisePrompt is used when no PromptStore is configured.
const defaultSummarisePrompt = `Summarise the following content in %d characters or less.
Be concise and capture the key points.

Content:
%s

Summary:`

// Summarise produces a short summary of document content.
func (s *LLMService) Summarise(ctx context.Context, content string, maxLength int) (string, error) {
	template := s.loadPrompt(driven.PromptSummarise, defaultSummarisePrompt)

	result, err := s.Generate(ctx, fmt.Sprintf(template, maxLength, content), driven.GenerateOptions{
		MaxTokens:   maxLength / 4, // Rough estimate: 4 chars per token
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("summarise: %w", err)
	}

	return strings.TrimSpace(result), nil
}

// loadPrompt fetches a prompt from the store, falling back when absent.
func (s *LLMService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// ModelName returns the configured model.
func (s *LLMService) ModelName() string {
	return s.model
}

// SetPromptStore wires user-editable prompt templates into the service.
func (s *LLMService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Ping hits /v1/models, which validates the key without running inference.
func (s *LLMService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/v1/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: anthropic: ping failed: %s", domain.ErrGenerationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			body = []byte("unreadable body")
		}
		return fmt.Errorf("%w: anthropic status %d: %s", domain.ErrGenerationUnavailable, resp.StatusCode, string(body))
	}
	return nil
}

// Close implements the port. The HTTP client has nothing to release.
func (s *LLMService) Close() error {
	return nil
}
