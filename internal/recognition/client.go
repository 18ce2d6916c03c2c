package recognition

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client calls the cloud handwriting-recognition service. Requests are
// signed with HMAC-SHA512 over the body using the application and HMAC keys,
// and outbound calls are rate limited.
type Client struct {
	baseURL    string
	appKey     string
	hmacKey    string
	httpClient *http.Client
	limiter    *rate.Limiter
	stats      *Stats
}

// NewClient builds a recognition client. maxPerSecond bounds outbound call
// rate; <= 0 disables limiting. stats may be nil.
func NewClient(baseURL, appKey, hmacKey string, maxPerSecond float64, stats *Stats) *Client {
	var limiter *rate.Limiter
	if maxPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(maxPerSecond), 1)
	}
	return &Client{
		baseURL: baseURL,
		appKey:  appKey,
		hmacKey: hmacKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		limiter: limiter,
		stats:   stats,
	}
}

type recognizeRequest struct {
	ContentType string   `json:"contentType"`
	Strokes     []Stroke `json:"strokes"`
}

// Recognize submits a batch of ink strokes and returns the recognized text
// with per-word geometry.
func (c *Client) Recognize(ctx context.Context, strokes []Stroke) (*Result, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	body, err := json.Marshal(recognizeRequest{ContentType: "Text", Strokes: strokes})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v4.0/iink/batch", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("applicationKey", c.appKey)
	httpReq.Header.Set("hmac", c.sign(body))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("recognition api: %w", err)
	}
	defer resp.Body.Close()
	if c.stats != nil {
		c.stats.Record(time.Since(start).Milliseconds())
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recognition api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &result, nil
}

// sign computes the request HMAC the service expects: SHA-512 keyed with the
// application key concatenated with the HMAC key.
func (c *Client) sign(body []byte) string {
	mac := hmac.New(sha512.New, []byte(c.appKey+c.hmacKey))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
