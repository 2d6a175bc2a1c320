package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HTTPGoogleVerifier checks id tokens against Google's tokeninfo endpoint.
type HTTPGoogleVerifier struct {
	endpoint string
	client   *http.Client
}

// NewHTTPGoogleVerifier creates a verifier against the given tokeninfo URL
func NewHTTPGoogleVerifier(endpoint string) *HTTPGoogleVerifier {
	return &HTTPGoogleVerifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify validates the id token and returns the verified email
func (v *HTTPGoogleVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.endpoint+"?id_token="+url.QueryEscape(idToken), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build tokeninfo request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tokeninfo returned status %d", resp.StatusCode)
	}

	var info struct {
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}
	if info.Email == "" || info.EmailVerified != "true" {
		return "", fmt.Errorf("google account email is not verified")
	}
	return info.Email, nil
}
