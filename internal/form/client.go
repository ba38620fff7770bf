package form

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// PlainTextJSON is a CORS-safelisted content type, so browsers and proxies
// send the request without a preflight. The endpoint decodes the body as JSON
// regardless.
const PlainTextJSON = "text/plain;charset=UTF-8"

// Result is the ingest endpoint's response body.
type Result struct {
	Status   string   `json:"status"`
	Message  string   `json:"message,omitempty"`
	Expected []string `json:"expected,omitempty"`
	Actual   []string `json:"actual,omitempty"`
}

type Client struct {
	httpClient *http.Client
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

// Submit validates the draft and posts it to endpoint. An invalid draft never
// leaves the process.
func (c *Client) Submit(ctx context.Context, endpoint string, d *Draft) error {
	if err := d.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(BuildPayload(d))
	if err != nil {
		return &TransportError{Err: fmt.Errorf("encode payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", PlainTextJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return &TransportError{Err: fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err)}
	}

	if result.Status != "success" {
		return &RemoteError{
			Message:  result.Message,
			Expected: result.Expected,
			Actual:   result.Actual,
		}
	}
	return nil
}
