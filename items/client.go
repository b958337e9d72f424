// Package items fetches registry items from a GraphQL indexing service in
// bounded batches, paginating by a monotonically decreasing timestamp
// cursor, with per-(chain, registry, filter) caching, cooperative
// cancellation and progress reporting.
//
// The pipeline deliberately degrades quietly: indexer failures and
// cancellations produce empty results rather than errors, because callers
// render listings from partial data. Money-moving paths never go through
// this package.
package items

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxResponseSize caps indexer response bodies (64 MB).
const maxResponseSize = 64 << 20

// IndexerClient is a client for a GraphQL indexing service. The protocol
// is one POST per query; the response carries either data or a non-empty
// errors array, which is always fatal for that call.
type IndexerClient struct {
	url    string
	client *http.Client
}

// NewIndexerClient creates a client for the indexer at url.
func NewIndexerClient(url string) *IndexerClient {
	return &IndexerClient{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// graphQLRequest is the POST body sent to the indexer.
type graphQLRequest struct {
	Query string `json:"query"`
}

// graphQLError is one error entry in an indexer response.
type graphQLError struct {
	Message string `json:"message"`
}

// graphQLResponse is the indexer response envelope.
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// Query posts a GraphQL query and unmarshals the data payload into data.
// Transport failures return ErrNetwork; indexer-reported errors and
// malformed payloads return ErrIndexerResponse.
func (c *IndexerClient) Query(ctx context.Context, query string, data interface{}) error {
	body, err := json.Marshal(graphQLRequest{Query: query})
	if err != nil {
		return fmt.Errorf("items: marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("items: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: HTTP %d: %s", ErrNetwork, resp.StatusCode, string(respBody))
	}

	var envelope graphQLResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&envelope); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrIndexerResponse, err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			messages[i] = e.Message
		}
		return fmt.Errorf("%w: %s", ErrIndexerResponse, strings.Join(messages, "; "))
	}

	if data != nil && envelope.Data != nil {
		if err := json.Unmarshal(envelope.Data, data); err != nil {
			return fmt.Errorf("%w: unmarshal data: %w", ErrIndexerResponse, err)
		}
	}
	return nil
}
