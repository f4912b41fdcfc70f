package flowsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the Soloday service. It covers unauthenticated operations
// and creates authenticated Sessions via VerifyCode.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SendCode asks the service to deliver a verification code to target. A
// non-nil profile marks the signup path: the fields are stashed with the
// challenge so the backend can correlate the eventual profile creation.
func (c *Client) SendCode(ctx context.Context, target string, profile *PendingProfileParams) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/codes", SendCodeRequest{
		Target:  target,
		Profile: profile,
	})
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusAccepted)
}

// VerifyCode redeems a code and returns an authenticated Session on success.
func (c *Client) VerifyCode(ctx context.Context, target, code string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/codes/verify", VerifyCodeRequest{
		Target: target,
		Code:   code,
	})
	if err != nil {
		return nil, err
	}

	var verifyResp VerifyCodeResponse
	if err := decodeJSON(resp, &verifyResp, http.StatusOK); err != nil {
		return nil, err
	}

	return newSession(c, verifyResp), nil
}

// CheckUsername reports whether a username is still unclaimed. The name is
// normalized before the lookup, matching what the service stores.
func (c *Client) CheckUsername(ctx context.Context, username string) (bool, error) {
	normalized := NormalizeUsername(username)

	resp, err := c.doRequest(ctx, http.MethodGet,
		"/v1/usernames/"+url.PathEscape(normalized), nil)
	if err != nil {
		return false, err
	}

	var availResp UsernameAvailabilityResponse
	if err := decodeJSON(resp, &availResp, http.StatusOK); err != nil {
		return false, err
	}
	return availResp.Available, nil
}

// FetchProfile fetches a profile by its id.
func (c *Client) FetchProfile(ctx context.Context, id string) (ProfileResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/profiles/"+url.PathEscape(id), nil)
	if err != nil {
		return ProfileResponse{}, err
	}

	var profile ProfileResponse
	if err := decodeJSON(resp, &profile, http.StatusOK); err != nil {
		return ProfileResponse{}, err
	}
	return profile, nil
}

// FetchProfileByIdentity fetches the profile belonging to an identity.
// Returns an error satisfying IsNotFound when the identity never completed
// signup.
func (c *Client) FetchProfileByIdentity(ctx context.Context, identityID string) (ProfileResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet,
		"/v1/identities/"+url.PathEscape(identityID)+"/profile", nil)
	if err != nil {
		return ProfileResponse{}, err
	}

	var profile ProfileResponse
	if err := decodeJSON(resp, &profile, http.StatusOK); err != nil {
		return ProfileResponse{}, err
	}
	return profile, nil
}

// GetLiveness checks whether the service is up.
func (c *Client) GetLiveness(ctx context.Context) (HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil)
	if err != nil {
		return HealthResponse{}, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return HealthResponse{}, err
	}
	return health, nil
}
