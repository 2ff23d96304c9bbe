package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrThrottled marks a rate-limit condition, whether it came back from the
// API as a 429 or was decided locally by the admission limiter. It is the
// only error class the retry loop is willing to retry.
var ErrThrottled = errors.New("gemini: rate limited")

const (
	maxRetries   = 2
	retryBackoff = time.Second
)

type Client struct {
	apiKey  string
	model   string
	baseURL string
	backoff time.Duration
	limiter *Limiter
	http    *http.Client
}

func NewClient(apiKey, model string, timeout time.Duration, limiter *Limiter) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		backoff: retryBackoff,
		limiter: limiter,
		http:    &http.Client{Timeout: timeout},
	}
}

// WithBaseURL points the client at a different endpoint. Used by tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
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
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends a single completion request and returns the raw model text.
// When the local budget is exhausted it fails fast with ErrThrottled without
// touching the network, so callers degrade to their fallback path instead of
// piling load onto an already-saturated quota.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.limiter.Allow() {
		return "", ErrThrottled
	}
	return c.generate(ctx, prompt)
}

// GenerateWithRetry behaves like Generate but retries throttled upstream
// responses up to two times with 1s then 2s backoff. Any other failure is
// returned immediately.
func (c *Client) GenerateWithRetry(ctx context.Context, prompt string) (string, error) {
	if !c.limiter.Allow() {
		return "", ErrThrottled
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		text, err := c.generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !errors.Is(err, ErrThrottled) || attempt >= maxRetries {
			return "", lastErr
		}
		wait := c.backoff << attempt
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gemini response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("%w: %s", ErrThrottled, resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned %s: %s", resp.Status, body)
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if out.Error != nil {
		if out.Error.Status == "RESOURCE_EXHAUSTED" {
			return "", fmt.Errorf("%w: %s", ErrThrottled, out.Error.Message)
		}
		return "", fmt.Errorf("gemini error %d: %s", out.Error.Code, out.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
