package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/soloday/soloday/internal/backend/domain"
	"github.com/soloday/soloday/internal/backend/store"
	"github.com/soloday/soloday/pkg/idx"
)

// PlaceholderInterpretation is returned for a dream that has been recorded
// but not yet processed by the interpreter worker. Clients poll until the
// interpretation is replaced with a real one.
const PlaceholderInterpretation = "Interpreting your dream..."

var (
	ErrDreamNotFound = errors.New("dream not found")
	ErrEmptyDream    = errors.New("dream content is empty")
)

// DreamService records dreams and serves their interpretations.
type DreamService struct {
	Store store.Store
}

// CreateDream records a new dream for a profile. The returned dream carries
// the placeholder interpretation; the interpreter worker fills in the real
// one asynchronously.
func (s *DreamService) CreateDream(ctx context.Context, identityID, content string) (domain.Dream, error) {
	if content == "" {
		return domain.Dream{}, ErrEmptyDream
	}

	profile, err := s.Store.Profiles().GetProfileByIdentity(ctx, identityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Dream{}, ErrProfileNotFound
		}
		return domain.Dream{}, fmt.Errorf("failed to load profile: %w", err)
	}

	dream := domain.Dream{
		ID:             idx.New().String(),
		ProfileID:      profile.ID,
		Content:        content,
		Interpretation: PlaceholderInterpretation,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Store.Dreams().CreateDream(ctx, dream); err != nil {
		return domain.Dream{}, fmt.Errorf("failed to store dream: %w", err)
	}

	return dream, nil
}

// GetDream fetches a dream by id, scoped to the identity that owns it.
func (s *DreamService) GetDream(ctx context.Context, identityID, dreamID string) (domain.Dream, error) {
	dream, err := s.Store.Dreams().GetDreamByID(ctx, dreamID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Dream{}, ErrDreamNotFound
		}
		return domain.Dream{}, fmt.Errorf("failed to load dream: %w", err)
	}

	profile, err := s.Store.Profiles().GetProfileByIdentity(ctx, identityID)
	if err != nil || profile.ID != dream.ProfileID {
		return domain.Dream{}, ErrDreamNotFound
	}

	return dream, nil
}
