package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/soloday/soloday/internal/backend/domain"
	"github.com/soloday/soloday/internal/backend/store"
	"github.com/soloday/soloday/pkg/idx"
)

const minUsernameLength = 3

var (
	ErrUsernameTaken   = errors.New("username already taken")
	ErrUsernameInvalid = errors.New("username invalid")
	ErrProfileExists   = errors.New("identity already has a profile")
	ErrProfileNotFound = errors.New("profile not found")
)

// ProfileService manages user profiles and username availability.
type ProfileService struct {
	Store store.Store
}

// CreateProfileParams carries the fields collected during signup.
type CreateProfileParams struct {
	Username    string
	FirstName   string
	LastName    string
	DateOfBirth string
}

// CreateProfile creates the profile for an identity. The username is
// normalized before storage and must be unique across all profiles.
func (s *ProfileService) CreateProfile(ctx context.Context, identityID string, params CreateProfileParams) (domain.Profile, error) {
	username := normalizeUsername(params.Username)
	if len(username) < minUsernameLength {
		return domain.Profile{}, ErrUsernameInvalid
	}

	identity, err := s.Store.Identities().GetIdentityByID(ctx, identityID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("failed to load identity: %w", err)
	}

	if _, err := s.Store.Profiles().GetProfileByIdentity(ctx, identityID); err == nil {
		return domain.Profile{}, ErrProfileExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.Profile{}, fmt.Errorf("failed to check existing profile: %w", err)
	}

	now := time.Now().UTC()
	profile := domain.Profile{
		ID:          idx.New().String(),
		IdentityID:  identityID,
		Username:    username,
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		DateOfBirth: params.DateOfBirth,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if strings.Contains(identity.Target, "@") {
		profile.Email = identity.Target
	}

	if err := s.Store.Profiles().CreateProfile(ctx, profile); err != nil {
		// The identity uniqueness case is caught above, so a constraint
		// violation here means the username lost a race.
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Profile{}, ErrUsernameTaken
		}
		return domain.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

// GetProfileByID fetches a profile by its id.
func (s *ProfileService) GetProfileByID(ctx context.Context, id string) (domain.Profile, error) {
	p, err := s.Store.Profiles().GetProfileByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Profile{}, ErrProfileNotFound
	}
	return p, err
}

// GetProfileByIdentity fetches the profile belonging to an identity.
func (s *ProfileService) GetProfileByIdentity(ctx context.Context, identityID string) (domain.Profile, error) {
	p, err := s.Store.Profiles().GetProfileByIdentity(ctx, identityID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Profile{}, ErrProfileNotFound
	}
	return p, err
}

// UsernameAvailable reports whether the normalized form of a username is
// still unclaimed. Names shorter than the minimum are never available.
func (s *ProfileService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	normalized := normalizeUsername(username)
	if len(normalized) < minUsernameLength {
		return false, nil
	}

	_, err := s.Store.Profiles().GetProfileByUsername(ctx, normalized)
	if errors.Is(err, store.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return false, nil
}

// normalizeUsername lowercases and strips everything outside [a-z0-9_].
func normalizeUsername(username string) string {
	lowered := strings.ToLower(strings.TrimSpace(username))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
