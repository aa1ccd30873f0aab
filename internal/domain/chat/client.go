package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const maxResponseBytes = 1 << 20

// Completer produces an assistant reply for a conversation.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// ClientOption configures an OpenAIClient.
type ClientOption func(*OpenAIClient)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *OpenAIClient) { c.httpClient = hc }
}

// WithModel sets the model name sent with each request.
func WithModel(model string) ClientOption {
	return func(c *OpenAIClient) { c.model = model }
}

// WithSampling sets max_tokens and temperature.
func WithSampling(maxTokens int, temperature float64) ClientOption {
	return func(c *OpenAIClient) {
		c.maxTokens = maxTokens
		c.temperature = temperature
	}
}

// WithTimeout bounds a single upstream round trip. It applies to a copy of
// the http.Client, never to one passed with WithHTTPClient.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *OpenAIClient) { c.timeout = d }
}

// WithLogger sets the logger used for token usage and failures.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *OpenAIClient) { c.logger = logger }
}

// OpenAIClient talks to an OpenAI-compatible chat-completions endpoint.
// It makes exactly one request per call and never retries.
type OpenAIClient struct {
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
	timeout     time.Duration
	logger      zerolog.Logger
}

func NewOpenAIClient(baseURL, apiKey string, opts ...ClientOption) *OpenAIClient {
	c := &OpenAIClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		model:       "gpt-3.5-turbo",
		maxTokens:   500,
		temperature: 0.7,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		logger:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

func (c *OpenAIClient) Complete(ctx context.Context, messages []Message) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", &UpstreamError{Message: msgFetchFailed, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &UpstreamError{Message: msgFetchFailed, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UpstreamError{Message: msgFetchFailed, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &UpstreamError{Status: resp.StatusCode, Message: msgFetchFailed, Err: err}
	}

	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &UpstreamError{Status: resp.StatusCode, Message: msgUnexpectedResponse, Err: err}
	}

	if len(parsed.Choices) > 0 {
		evt := c.logger.Debug().
			Str("model", parsed.Model).
			Int("status", resp.StatusCode).
			Dur("latency", time.Since(start))
		if parsed.Usage != nil {
			evt = evt.Int("prompt_tokens", parsed.Usage.PromptTokens).
				Int("completion_tokens", parsed.Usage.CompletionTokens).
				Int("total_tokens", parsed.Usage.TotalTokens)
		}
		evt.Msg("chat completion")
		return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
	}

	if parsed.Error != nil && parsed.Error.Message != "" {
		return "", &UpstreamError{
			Status:  resp.StatusCode,
			Message: sanitizeUpstreamMessage(parsed.Error.Message),
			Err:     errors.New(parsed.Error.Message),
		}
	}

	return "", &UpstreamError{
		Status:  resp.StatusCode,
		Message: msgUnexpectedResponse,
		Err:     fmt.Errorf("no choices in response (status %d)", resp.StatusCode),
	}
}

// sanitizeUpstreamMessage hides provider messages that echo credentials.
func sanitizeUpstreamMessage(msg string) string {
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "api key") || strings.Contains(lower, "sk-") {
		return msgUpstreamRejected
	}
	return msg
}
