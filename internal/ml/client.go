// Package ml is the boundary to the text-model sidecar: a binary sentiment
// classifier and a sentence embedder served over HTTP. Both are read-only
// after startup and safe for concurrent inference; scoring treats every
// failure here as a degraded factor, never a fatal error.
package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Classifier yields the probability, in [0,1], that text reads positive.
type Classifier interface {
	PositiveProb(ctx context.Context, text string) (float64, error)
}

// Embedder yields a normalized sentence embedding for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Client talks to the inference sidecar. It implements both Classifier and
// Embedder.
type Client struct {
	baseURL string
	token   string
	hc      *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		hc:      &http.Client{Timeout: timeout},
	}
}

func (c *Client) PositiveProb(ctx context.Context, text string) (float64, error) {
	var out struct {
		Positive float64 `json:"positive"`
	}
	if err := c.post(ctx, "/sentiment", text, &out); err != nil {
		return 0, err
	}
	if out.Positive < 0 || out.Positive > 1 {
		return 0, fmt.Errorf("sentiment probability out of range: %v", out.Positive)
	}
	return out.Positive, nil
}

func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	var out struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := c.post(ctx, "/embed", text, &out); err != nil {
		return nil, err
	}
	if len(out.Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding")
	}
	return out.Embedding, nil
}

func (c *Client) post(ctx context.Context, path, text string, out any) error {
	if c.baseURL == "" {
		return fmt.Errorf("inference base URL not configured")
	}

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("inference %s: %w", path, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("inference %s: status %d", path, res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
