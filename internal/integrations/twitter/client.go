package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dghubble/oauth1"
)

const defaultBaseURL = "https://api.twitter.com"

// Credentials are the OAuth1 user-context keys for the posting account.
type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

func (c Credentials) validate() error {
	var missing []string
	if strings.TrimSpace(c.ConsumerKey) == "" {
		missing = append(missing, "consumer key")
	}
	if strings.TrimSpace(c.ConsumerSecret) == "" {
		missing = append(missing, "consumer secret")
	}
	if strings.TrimSpace(c.AccessToken) == "" {
		missing = append(missing, "access token")
	}
	if strings.TrimSpace(c.AccessTokenSecret) == "" {
		missing = append(missing, "access token secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("twitter: missing credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}

type createTweetRequest struct {
	Text string `json:"text"`
}

type createTweetResponse struct {
	Data *struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

// HTTPStatusError captures non-2xx upstream responses with status-aware context.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("twitter: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client posts tweets through the v2 API with OAuth1 user-context signing.
type Client struct {
	baseURL    string
	config     *oauth1.Config
	token      *oauth1.Token
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

// WithHTTPClient sets the transport that signed requests are sent through.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(creds Credentials, opts ...Option) (*Client, error) {
	if err := creds.validate(); err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: defaultBaseURL,
		config:  oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret),
		token:   oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func tweetsURL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	if strings.HasSuffix(base, "/2") {
		return base + "/tweets"
	}
	return base + "/2/tweets"
}

// signedClient builds a new OAuth1 client per call so no HTTP state is shared
// between invocations.
func (c *Client) signedClient(ctx context.Context) *http.Client {
	if c.httpClient != nil {
		ctx = context.WithValue(ctx, oauth1.HTTPClient, c.httpClient)
	}
	hc := c.config.Client(ctx, c.token)
	if c.httpClient != nil {
		hc.Timeout = c.httpClient.Timeout
	}
	return hc
}

// Publish creates a tweet with text and returns its id. An empty id with a nil
// error means the API accepted the request but reported no created tweet.
func (c *Client) Publish(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", errors.New("twitter: text must not be empty")
	}

	body, err := json.Marshal(createTweetRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("twitter: marshal request: %w", err)
	}

	url := tweetsURL(c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("twitter: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.signedClient(ctx).Do(req)
	if err != nil {
		return "", fmt.Errorf("twitter: request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return "", &HTTPStatusError{
			StatusCode: res.StatusCode,
			URL:        url,
			Body:       string(buf),
		}
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("twitter: read response body: %w", err)
	}
	var payload createTweetResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("twitter: decode response: %w", err)
	}
	if payload.Data == nil {
		return "", nil
	}
	return payload.Data.ID, nil
}
