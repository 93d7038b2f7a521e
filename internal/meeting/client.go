// Package meeting talks to the external meeting-context service and turns
// its records into coaching context for the prompt pipeline.
package meeting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/evida/coach-api/internal/domain"
)

// ErrUnavailable indicates the coaching context could not be fetched.
// The HTTP layer maps it to a 502-equivalent outcome. The call is never
// retried here.
var ErrUnavailable = errors.New("coaching context unavailable")

// Client fetches meeting records by id.
type Client interface {
	GetMeeting(ctx context.Context, id string) (*domain.Meeting, error)
}

// HTTPClient implements Client against GET {base}/api/meetings/{id}.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a meeting-context client. Returns nil when no base
// URL is configured; callers treat a nil client as "no meeting service".
func NewHTTPClient(baseURL string) *HTTPClient {
	if baseURL == "" {
		return nil
	}
	return &HTTPClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetMeeting fetches one meeting record. Any non-200 status or transport
// failure surfaces as ErrUnavailable.
func (c *HTTPClient) GetMeeting(ctx context.Context, id string) (*domain.Meeting, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: meeting service not configured", ErrUnavailable)
	}

	endpoint := c.baseURL + "/api/meetings/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: meeting service returned %d", ErrUnavailable, resp.StatusCode)
	}

	var record domain.Meeting
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("%w: decode meeting record: %v", ErrUnavailable, err)
	}
	if record.ID == "" {
		record.ID = id
	}
	return &record, nil
}
