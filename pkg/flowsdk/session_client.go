package flowsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session is an authenticated connection to the service, created by a
// successful VerifyCode call.
type Session struct {
	client *Client

	token      string
	identityID string
	hasProfile bool
}

func newSession(client *Client, resp VerifyCodeResponse) *Session {
	return &Session{
		client:     client,
		token:      resp.Token,
		identityID: resp.IdentityID,
		hasProfile: resp.HasProfile,
	}
}

// IdentityID returns the verified identity's id.
func (s *Session) IdentityID() string { return s.identityID }

// HasProfile reports whether the identity already completed signup when the
// session was created.
func (s *Session) HasProfile() bool { return s.hasProfile }

// Token returns the bearer token, for callers that persist sessions.
func (s *Session) Token() string { return s.token }

// CreateProfile creates the profile for this identity. A duplicate username
// surfaces as an error satisfying IsUsernameTaken.
func (s *Session) CreateProfile(ctx context.Context, req CreateProfileRequest) (ProfileResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/profiles", req)
	if err != nil {
		return ProfileResponse{}, err
	}

	var profile ProfileResponse
	if err := decodeJSON(resp, &profile, http.StatusCreated); err != nil {
		return ProfileResponse{}, err
	}
	s.hasProfile = true
	return profile, nil
}

// CreateDream records a dream. The returned value carries a placeholder
// interpretation until the service's asynchronous interpreter has run; poll
// with FetchDream until Interpreted flips.
func (s *Session) CreateDream(ctx context.Context, content string) (DreamResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/dreams", CreateDreamRequest{
		Content: content,
	})
	if err != nil {
		return DreamResponse{}, err
	}

	var dream DreamResponse
	if err := decodeJSON(resp, &dream, http.StatusCreated); err != nil {
		return DreamResponse{}, err
	}
	return dream, nil
}

// FetchDream fetches the current value of a dream by id.
func (s *Session) FetchDream(ctx context.Context, id string) (DreamResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/dreams/"+url.PathEscape(id), nil)
	if err != nil {
		return DreamResponse{}, err
	}

	var dream DreamResponse
	if err := decodeJSON(resp, &dream, http.StatusOK); err != nil {
		return DreamResponse{}, err
	}
	return dream, nil
}

// SignOut revokes this session's token on the service.
func (s *Session) SignOut(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/session/signout", nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}
