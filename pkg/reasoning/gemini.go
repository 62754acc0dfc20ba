package reasoning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Config holds the Gemini connection settings. Values come from the
// environment by default so deployments configure the client without code.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// ConfigFromEnv reads GEMINI_API_KEY, GEMINI_BASE_URL, and GEMINI_MODEL,
// applying defaults for everything but the key.
func ConfigFromEnv() Config {
	return Config{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: envOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
		Model:   envOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		Timeout: 10 * time.Second,
	}
}

// Enabled reports whether the config carries an API key.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}

func (c Config) endpoint() string {
	return c.BaseURL + "/" + c.Model + ":generateContent"
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Client is the Gemini generateContent implementation of Service.
type Client struct {
	config Config
	client *http.Client
}

// NewClient builds a Client from the provided config.
func NewClient(config Config) *Client {
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	if client != nil {
		c.client = client
	}
	return c
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and returns the first candidate's text. Transport
// errors, non-2xx statuses, and empty candidate lists are all reported as
// errors; the caller decides how to degrade.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.config.Enabled() {
		return "", ErrDisabled
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", c.config.endpoint(), c.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("reasoning: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("reasoning: unexpected status %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("reasoning: decode reply: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyReply
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}
