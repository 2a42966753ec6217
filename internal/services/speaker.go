package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"proeventos/internal/domain"
)

type speakerService struct {
	speakerRepo domain.SpeakerRepository
}

func NewSpeakerService(speakerRepo domain.SpeakerRepository) domain.SpeakerService {
	return &speakerService{speakerRepo: speakerRepo}
}

func (s *speakerService) ListAll(ctx context.Context, term string, params domain.PaginationParams) ([]*domain.Speaker, int, error) {
	speakers, total, err := s.speakerRepo.ListAll(ctx, strings.TrimSpace(term), params)
	if err != nil {
		return nil, 0, fmt.Errorf("list speakers: %w", err)
	}
	return speakers, total, nil
}

func (s *speakerService) GetMine(ctx context.Context, userID string) (*domain.Speaker, error) {
	speaker, err := s.speakerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get speaker: %w", err)
	}
	return speaker, nil
}

// CreateMine is idempotent: a user who already has a speaker record gets the
// existing record back, never a duplicate.
func (s *speakerService) CreateMine(ctx context.Context, userID, miniResume string) (*domain.Speaker, error) {
	existing, err := s.speakerRepo.GetByUserID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get speaker: %w", err)
	}

	now := time.Now()
	speaker := &domain.Speaker{
		UserID:     userID,
		MiniResume: strings.TrimSpace(miniResume),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.speakerRepo.Create(ctx, speaker); err != nil {
		return nil, fmt.Errorf("create speaker: %w", err)
	}
	return speaker, nil
}

func (s *speakerService) UpdateMine(ctx context.Context, userID, miniResume string) (*domain.Speaker, error) {
	speaker, err := s.speakerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get speaker: %w", err)
	}

	speaker.MiniResume = strings.TrimSpace(miniResume)
	speaker.UpdatedAt = time.Now()
	if err := s.speakerRepo.Update(ctx, speaker); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update speaker: %w", err)
	}
	return speaker, nil
}
