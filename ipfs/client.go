// Package ipfs is a thin client for the content-addressed storage
// network: upload bytes and get back a content path, fetch a content path
// and get back bytes or parsed JSON. Fetches fall back across gateways in
// priority order.
package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// MaxResponseSize caps fetched content (32 MB): item metadata and
// evidence documents are small, so anything larger is a misbehaving
// gateway.
const MaxResponseSize = 32 << 20

// pathPrefix is the canonical content path marker.
const pathPrefix = "/ipfs/"

// Client uploads through one API node and fetches through an ordered list
// of gateways, first success wins.
type Client struct {
	apiURL   string
	gateways []string
	client   *http.Client
}

// NewClient creates a client. apiURL may be empty for fetch-only use;
// gateways are tried in the given order.
func NewClient(apiURL string, gateways []string) *Client {
	return &Client{
		apiURL:   strings.TrimRight(apiURL, "/"),
		gateways: gateways,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// addResponse is the API node's response to an upload.
type addResponse struct {
	Hash string `json:"Hash"`
}

// Upload stores data under filename and returns its content path
// ("/ipfs/<cid>/<filename>").
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if c.apiURL == "" {
		return "", fmt.Errorf("%w: no API node configured", ErrUploadFailed)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("%w: build form: %w", ErrUploadFailed, err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("%w: write form: %w", ErrUploadFailed, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%w: close form: %w", ErrUploadFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/api/v0/add?wrap-with-directory=true", &body)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: HTTP %d: %s", ErrUploadFailed, resp.StatusCode, string(respBody))
	}

	// With wrap-with-directory the node streams one JSON object per added
	// entry; the wrapping directory is the last one.
	var dirHash string
	dec := json.NewDecoder(resp.Body)
	for {
		var entry addResponse
		if err := dec.Decode(&entry); err == io.EOF {
			break
		} else if err != nil {
			return "", fmt.Errorf("%w: decode response: %w", ErrUploadFailed, err)
		}
		dirHash = entry.Hash
	}
	if dirHash == "" {
		return "", fmt.Errorf("%w: empty response", ErrUploadFailed)
	}

	return pathPrefix + dirHash + "/" + filename, nil
}

// Fetch retrieves the raw content at path, trying each gateway in order
// and returning the first successful result.
func (c *Client) Fetch(ctx context.Context, path string) ([]byte, error) {
	normalized, err := NormalizePath(path)
	if err != nil {
		return nil, err
	}
	if len(c.gateways) == 0 {
		return nil, ErrNoGateways
	}

	var lastErr error
	for _, gw := range c.gateways {
		data, err := c.fetchFromGateway(ctx, gw, normalized)
		if err == nil {
			return data, nil
		}
		lastErr = err
		// Continue to the next gateway on any error.
	}
	return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, normalized, lastErr)
}

// FetchJSON retrieves the content at path and unmarshals it into out.
func (c *Client) FetchJSON(ctx context.Context, path string, out interface{}) error {
	data, err := c.Fetch(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("ipfs: parse %s: %w", path, err)
	}
	return nil
}

// fetchFromGateway fetches one content path from a single gateway.
func (c *Client) fetchFromGateway(ctx context.Context, gateway, normalized string) ([]byte, error) {
	url := strings.TrimRight(gateway, "/") + pathPrefix + normalized

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ipfs: gateway %s: %w", gateway, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ipfs: gateway %s: %w", gateway, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ipfs: gateway %s: HTTP %d", gateway, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("ipfs: gateway %s: read body: %w", gateway, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("ipfs: gateway %s: empty response", gateway)
	}
	return data, nil
}

// NormalizePath strips the "/ipfs/" marker and leading slashes from a
// content path, so stored URIs in either form resolve identically.
func NormalizePath(path string) (string, error) {
	p := path
	for {
		switch {
		case strings.HasPrefix(p, pathPrefix):
			p = p[len(pathPrefix):]
		case strings.HasPrefix(p, "ipfs/"):
			p = p[len("ipfs/"):]
		case strings.HasPrefix(p, "/"):
			p = p[1:]
		default:
			if p == "" {
				return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
			}
			return p, nil
		}
	}
}
