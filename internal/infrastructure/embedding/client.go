package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"talent-match/internal/domain/ranking"
)

// Client talks to a sentence-transformer serving endpoint. The model is
// deterministic for identical input and emits vectors of a fixed
// dimensionality, which the client verifies on every response.
type Client struct {
	baseURL   string
	dimension int
	client    *http.Client
	logger    *log.Logger
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

func NewClient(baseURL string, dimension int, timeout time.Duration, logger *log.Logger) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("empty embedding service url")
	}
	if dimension <= 0 {
		return nil, errors.New("non-positive embedding dimension")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		dimension: dimension,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
	}, nil
}

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	endpoint := c.baseURL + "/embed"

	b, err := json.Marshal(embedRequest{Text: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		c.logger.Printf("[Embedding] request failed | endpoint=%s status=%d body=%q", endpoint, resp.StatusCode, bodyStr)
		return nil, fmt.Errorf("embedding service: status=%d", resp.StatusCode)
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("embedding service: decode: %w", err)
	}
	if len(out.Embedding) != c.dimension {
		return nil, fmt.Errorf("embedding service: dimension mismatch: want %d, got %d", c.dimension, len(out.Embedding))
	}
	return out.Embedding, nil
}

var _ ranking.Embedder = (*Client)(nil)
