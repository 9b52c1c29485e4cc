// Package llm implements the nlp capability contracts against an
// OpenAI-compatible chat-completions gateway. Every call runs under its own
// timeout with exponential-backoff retries; model output is parsed as a JSON
// fragment embedded in the completion text.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"brand-insights-go/internal/logger"
)

type Config struct {
	GatewayURL     string
	APIKey         string
	Model          string
	RequestTimeout time.Duration
	MaxElapsed     time.Duration
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *logrus.Entry
}

func NewClient(cfg Config) *Client {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 12 * time.Second
	}
	if cfg.MaxElapsed <= 0 {
		cfg.MaxElapsed = 30 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.RequestTimeout},
		log:  logger.New().WithField("component", "llm"),
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete sends one prompt and returns the raw completion text, retrying on
// transport errors and 5xx responses until ctx is done or MaxElapsed passes.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if c.cfg.GatewayURL == "" || c.cfg.APIKey == "" {
		return "", fmt.Errorf("llm gateway not configured")
	}
	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var content string
	operation := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.cfg.GatewayURL, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("gateway error %d: %s", resp.StatusCode, truncate(raw, 200))
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("gateway rejected request: %d %s", resp.StatusCode, truncate(raw, 200)))
		}
		var parsed chatResponse
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}
		if len(parsed.Choices) == 0 {
			return backoff.Permanent(fmt.Errorf("empty completion"))
		}
		content = parsed.Choices[0].Message.Content
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.cfg.MaxElapsed
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return "", fmt.Errorf("llm completion failed: %w", err)
	}
	return content, nil
}

// jsonFragment slices the first balanced-looking JSON value (object or
// array) out of a completion that may carry surrounding prose or fences.
func jsonFragment(content string, open, close byte) ([]byte, error) {
	raw := []byte(content)
	start := bytes.IndexByte(raw, open)
	end := bytes.LastIndexByte(raw, close)
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON payload in completion: %s", truncate(raw, 200))
	}
	return raw[start : end+1], nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
