package services

import (
	"context"
	"errors"
	"fmt"

	"proeventos/internal/domain"
)

type socialLinkService struct {
	linkRepo    domain.SocialLinkRepository
	eventRepo   domain.EventRepository
	speakerRepo domain.SpeakerRepository
}

func NewSocialLinkService(linkRepo domain.SocialLinkRepository, eventRepo domain.EventRepository, speakerRepo domain.SpeakerRepository) domain.SocialLinkService {
	return &socialLinkService{
		linkRepo:    linkRepo,
		eventRepo:   eventRepo,
		speakerRepo: speakerRepo,
	}
}

// guardEventOwner verifies the caller owns the event before any event-branch
// link operation touches data. A missing event and a foreign event fail the
// same way.
func (s *socialLinkService) guardEventOwner(ctx context.Context, eventID, callerID string) error {
	_, err := s.eventRepo.GetByID(ctx, eventID, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrForbidden
		}
		return fmt.Errorf("check event owner: %w", err)
	}
	return nil
}

// resolveSpeaker returns the caller's own speaker record. A caller with no
// speaker record is unauthorized for every speaker-branch operation.
func (s *socialLinkService) resolveSpeaker(ctx context.Context, callerID string) (*domain.Speaker, error) {
	speaker, err := s.speakerRepo.GetByUserID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("resolve speaker: %w", err)
	}
	return speaker, nil
}

func (s *socialLinkService) ListByEvent(ctx context.Context, eventID, callerID string) ([]*domain.SocialLink, error) {
	if err := s.guardEventOwner(ctx, eventID, callerID); err != nil {
		return nil, err
	}
	links, err := s.linkRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list social links: %w", err)
	}
	return links, nil
}

func (s *socialLinkService) SaveByEvent(ctx context.Context, eventID, callerID string, links []*domain.SocialLink) ([]*domain.SocialLink, error) {
	if err := s.guardEventOwner(ctx, eventID, callerID); err != nil {
		return nil, err
	}
	saved, err := s.linkRepo.ReplaceForEvent(ctx, eventID, links)
	if err != nil {
		return nil, fmt.Errorf("save social links: %w", err)
	}
	return saved, nil
}

func (s *socialLinkService) DeleteByEvent(ctx context.Context, eventID, callerID, linkID string) error {
	if err := s.guardEventOwner(ctx, eventID, callerID); err != nil {
		return err
	}
	if _, err := s.linkRepo.GetByEventIDs(ctx, eventID, linkID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get social link: %w", err)
	}
	if err := s.linkRepo.DeleteByEvent(ctx, eventID, linkID); err != nil {
		return fmt.Errorf("delete social link: %w", err)
	}
	return nil
}

func (s *socialLinkService) ListBySpeaker(ctx context.Context, callerID string) ([]*domain.SocialLink, error) {
	speaker, err := s.resolveSpeaker(ctx, callerID)
	if err != nil {
		return nil, err
	}
	links, err := s.linkRepo.ListBySpeakerID(ctx, speaker.ID)
	if err != nil {
		return nil, fmt.Errorf("list social links: %w", err)
	}
	return links, nil
}

func (s *socialLinkService) SaveBySpeaker(ctx context.Context, callerID string, links []*domain.SocialLink) ([]*domain.SocialLink, error) {
	speaker, err := s.resolveSpeaker(ctx, callerID)
	if err != nil {
		return nil, err
	}
	saved, err := s.linkRepo.ReplaceForSpeaker(ctx, speaker.ID, links)
	if err != nil {
		return nil, fmt.Errorf("save social links: %w", err)
	}
	return saved, nil
}

func (s *socialLinkService) DeleteBySpeaker(ctx context.Context, callerID, linkID string) error {
	speaker, err := s.resolveSpeaker(ctx, callerID)
	if err != nil {
		return err
	}
	if _, err := s.linkRepo.GetBySpeakerIDs(ctx, speaker.ID, linkID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get social link: %w", err)
	}
	if err := s.linkRepo.DeleteBySpeaker(ctx, speaker.ID, linkID); err != nil {
		return fmt.Errorf("delete social link: %w", err)
	}
	return nil
}
