// Package profile holds the client for the remote profile service, which
// owns the user profile created alongside every new account.
package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client creates the profile that accompanies a newly registered account.
// The call is synchronous; its failure propagates to the registration
// caller (no compensating rollback of the account).
type Client interface {
	CreateProfile(ctx context.Context, username, email string, registrationDate time.Time) (string, error)
}

// createProfileRequest is the wire format the profile service expects.
type createProfileRequest struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	RegistrationDate string `json:"registrationDate"`
}

type createProfileResponse struct {
	ProfileID string `json:"profileId"`
}

// HTTPClient calls the profile service over HTTP JSON.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient constructs a client for the profile service at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// CreateProfile registers a profile for the new account and returns its id.
func (c *HTTPClient) CreateProfile(ctx context.Context, username, email string, registrationDate time.Time) (string, error) {
	body, err := json.Marshal(createProfileRequest{
		Username:         username,
		Email:            email,
		RegistrationDate: registrationDate.Format(time.DateOnly),
	})
	if err != nil {
		return "", fmt.Errorf("error encoding profile request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/profiles", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error building profile request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error calling profile service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("profile service returned %d: %s", resp.StatusCode, payload)
	}

	var out createProfileResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("error decoding profile response: %w", err)
	}
	return out.ProfileID, nil
}
