// Package logseq talks to the Logseq HTTP API server and reconciles
// structured transcriptions with previously persisted pages.
package logseq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client communicates with the Logseq HTTP API (Settings → Features →
// Enable HTTP APIs server). Every call is a POST to /api with a method name
// and positional args.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type apiRequest struct {
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// call invokes a Logseq API method and decodes the response into out when
// out is non-nil. A JSON null response leaves out untouched and returns
// errNotFound-like (nil, handled by callers via the decoded zero value).
func (c *Client) call(ctx context.Context, method string, args []any, out any) error {
	body, err := json.Marshal(apiRequest{Method: method, Args: args})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", method, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &RetryableError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s: status %d: %s", method, resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}

// Page is the metadata Logseq returns for a page.
type Page struct {
	Name         string `json:"name"`
	OriginalName string `json:"originalName"`
	UUID         string `json:"uuid"`
}

// Block is one bullet in a page's block tree.
type Block struct {
	UUID     string  `json:"uuid"`
	Content  string  `json:"content"`
	Children []Block `json:"children"`
}

// GetPage fetches page metadata, returning nil when the page does not exist.
func (c *Client) GetPage(ctx context.Context, name string) (*Page, error) {
	var page Page
	if err := c.call(ctx, "logseq.Editor.getPage", []any{name}, &page); err != nil {
		return nil, err
	}
	if page.Name == "" && page.UUID == "" {
		return nil, nil
	}
	return &page, nil
}

// GetPageBlocksTree fetches the full block tree of a page.
func (c *Client) GetPageBlocksTree(ctx context.Context, name string) ([]Block, error) {
	var blocks []Block
	if err := c.call(ctx, "logseq.Editor.getPageBlocksTree", []any{name}, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// CreatePage creates an empty page.
func (c *Client) CreatePage(ctx context.Context, name string) error {
	return c.call(ctx, "logseq.Editor.createPage", []any{name, map[string]any{}, map[string]any{"redirect": false}}, nil)
}

// BatchBlock is one node of a nested block payload for InsertBatchBlock.
type BatchBlock struct {
	Content  string       `json:"content"`
	Children []BatchBlock `json:"children,omitempty"`
}

// InsertBatchBlock inserts a nested block tree under a page or block UUID.
func (c *Client) InsertBatchBlock(ctx context.Context, uuid string, blocks []BatchBlock) error {
	return c.call(ctx, "logseq.Editor.insertBatchBlock", []any{uuid, blocks, map[string]any{"sibling": true}}, nil)
}

// AppendBlockInPage appends a block at the end of a page.
func (c *Client) AppendBlockInPage(ctx context.Context, page, content string) error {
	return c.call(ctx, "logseq.Editor.appendBlockInPage", []any{page, content}, nil)
}

// UpdateBlock replaces a block's content by UUID.
func (c *Client) UpdateBlock(ctx context.Context, uuid, content string) error {
	return c.call(ctx, "logseq.Editor.updateBlock", []any{uuid, content}, nil)
}

// Close releases any resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// RetryableError indicates a transient Logseq API failure.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable logseq error (status %d): %s", e.StatusCode, e.Message)
}
