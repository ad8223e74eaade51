// package services contains the HTTP clients the VibeLab terminal client
// talks through: the VibeLab backend API and the Spotify catalog.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/SheCodesAus/vibelab/internal/shared"
)

// apiError is the backend's error payload. Endpoints are not consistent
// about the field name, so every candidate is decoded and the first
// non-empty one wins.
type apiError struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e apiError) text() string {
	for _, s := range []string{e.Detail, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// decodeError extracts the server's own error text from a failed
// response, falling back to the HTTP status.
func decodeError(status string, body []byte) string {
	var payload apiError
	if json.Unmarshal(body, &payload) == nil {
		if text := payload.text(); text != "" {
			return text
		}
	}

	if trimmed := strings.TrimSpace(string(body)); trimmed != "" && len(trimmed) < 200 {
		return trimmed
	}
	return status
}

// StatusError carries the HTTP status of a failed request so callers can
// map specific codes onto domain errors. The Text is the server's own
// error message when one could be extracted.
type StatusError struct {
	Code int
	Text string
}

func (e *StatusError) Error() string {
	return e.Text
}

// doJSON performs an HTTP request with an optional JSON body and decodes
// a JSON response into result. A non-empty bearer token is sent as an
// Authorization header. Non-2xx responses become shared.ErrAPIRequest
// (or shared.ErrNotAuthenticated for 401) wrapping a [StatusError] with
// the server's error text.
func doJSON(ctx context.Context, client *http.Client, method, url, bearer string, body, result any) error {
	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %w", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &StatusError{Code: resp.StatusCode, Text: decodeError(resp.Status, raw)}
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %w", shared.ErrNotAuthenticated, se)
		}
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, se)
	}

	if result != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
