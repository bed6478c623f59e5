package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/biosync/internal/models"
	"github.com/sony/gobreaker"
)

// HTTPClient implements Client against the aggregation vendor's REST API.
// A circuit breaker sits in front of the vendor so a flapping upstream fails
// fast instead of tying up every request's category goroutines.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// Compile-time check: HTTPClient satisfies Client.
var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "provider-gateway",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// FetchCategory retrieves raw records for one category. The response body is
// decoded into generic maps; field interpretation belongs to the normalizer.
func (c *HTTPClient) FetchCategory(ctx context.Context, remoteUserID string, category models.Category, start, end time.Time) ([]models.RawRecord, error) {
	params := url.Values{}
	params.Set("user_id", remoteUserID)
	params.Set("start_date", start.Format(models.DateLayout))
	params.Set("end_date", end.Format(models.DateLayout))

	body, err := c.breaker.Execute(func() (any, error) {
		return c.get(ctx, "/v2/daily/"+string(category), params)
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data []models.RawRecord `json:"data"`
	}
	if err := json.Unmarshal(body.([]byte), &payload); err != nil {
		return nil, fmt.Errorf("gateway: decode %s response: %w", category, err)
	}
	return payload.Data, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway: create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gateway: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway: %s returned %d: %s", path, resp.StatusCode, body)
	}
	return body, nil
}
