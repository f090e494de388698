package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"gm-poster/internal/domain"
)

const defaultBaseURL = "https://api.openai.com/v1"

// HTTPStatusError captures non-2xx upstream responses with status-aware context.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("openai: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Message)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client generates chat completions through the official openai-go SDK.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai: api key must not be empty")
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// requestOptions disables SDK retries: a failed generation ends the invocation.
func (c *Client) requestOptions() []option.RequestOption {
	opts := []option.RequestOption{
		option.WithAPIKey(c.apiKey),
		option.WithBaseURL(strings.TrimRight(c.baseURL, "/") + "/"),
		option.WithMaxRetries(0),
	}
	if c.httpClient != nil {
		opts = append(opts, option.WithHTTPClient(c.httpClient))
	}
	return opts
}

func chatURL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	return base + "/chat/completions"
}

// Generate requests a completion capped at maxTokens and returns the first
// choice's message content untouched.
func (c *Client) Generate(ctx context.Context, model string, messages []domain.ChatMessage, maxTokens int) (string, error) {
	if model == "" {
		return "", errors.New("openai: model must not be empty")
	}
	if len(messages) == 0 {
		return "", errors.New("openai: messages must not be empty")
	}

	params := sdk.ChatCompletionNewParams{
		Model:    sdk.ChatModel(model),
		Messages: toMessageParams(messages),
	}
	if maxTokens > 0 {
		params.MaxTokens = sdk.Int(int64(maxTokens))
	}

	client := sdk.NewClient(c.requestOptions()...)
	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			return "", &HTTPStatusError{
				StatusCode: apiErr.StatusCode,
				URL:        chatURL(c.baseURL),
				Message:    apiErr.Message,
			}
		}
		return "", fmt.Errorf("openai: request failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

func toMessageParams(messages []domain.ChatMessage) []sdk.ChatCompletionMessageParamUnion {
	out := make([]sdk.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		if m.Role == "system" {
			out = append(out, sdk.SystemMessage(m.Content))
			continue
		}
		out = append(out, sdk.UserMessage(m.Content))
	}
	return out
}
