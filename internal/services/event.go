package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"proeventos/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	lotRepo        domain.LotRepository
	linkRepo       domain.SocialLinkRepository
	imageStore     domain.ImageStore
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	lotRepo domain.LotRepository,
	linkRepo domain.SocialLinkRepository,
	imageStore domain.ImageStore,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		lotRepo:        lotRepo,
		linkRepo:       linkRepo,
		imageStore:     imageStore,
		contextTimeout: timeout,
	}
}

func (s *eventService) List(ctx context.Context, ownerID, term string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.ListByOwner(ctx, ownerID, term, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

// GetByID returns the event with its lots and social links loaded. A record
// owned by another user is indistinguishable from a missing one.
func (s *eventService) GetByID(ctx context.Context, eventID, ownerID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	lots, err := s.lotRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	event.Lots = lots

	links, err := s.linkRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list social links: %w", err)
	}
	event.SocialLinks = links

	return event, nil
}

func (s *eventService) Create(ctx context.Context, ownerID string, input domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if ownerID == "" {
		return nil, fmt.Errorf("event owner is required")
	}

	now := time.Now()
	event := &domain.Event{
		OwnerID:     ownerID,
		Local:       input.Local,
		EventDate:   input.EventDate,
		Theme:       input.Theme,
		Capacity:    input.Capacity,
		PhoneNumber: input.PhoneNumber,
		Email:       input.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, eventID, ownerID string, input domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	event.Local = input.Local
	event.EventDate = input.EventDate
	event.Theme = input.Theme
	event.Capacity = input.Capacity
	event.PhoneNumber = input.PhoneNumber
	event.Email = input.Email
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

// Delete removes the event record and then attempts to remove its image
// file. The record delete is authoritative; a failed file delete is logged
// and swallowed.
func (s *eventService) Delete(ctx context.Context, eventID, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}

	if err := s.eventRepo.Delete(ctx, eventID, ownerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}

	if event.ImageURL != nil {
		if err := s.imageStore.Delete(domain.EventImageFolder, *event.ImageURL); err != nil {
			log.Printf("[STORAGE] Failed to delete event image %s: %v", *event.ImageURL, err)
		}
	}
	return nil
}

func (s *eventService) SetImage(ctx context.Context, eventID, ownerID, fileName string, size int64, contents io.Reader) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if size > 0 {
		if event.ImageURL != nil {
			if err := s.imageStore.Delete(domain.EventImageFolder, *event.ImageURL); err != nil {
				log.Printf("[STORAGE] Failed to delete old event image %s: %v", *event.ImageURL, err)
			}
		}
		storedName, err := s.imageStore.Save(domain.EventImageFolder, fileName, contents)
		if err != nil {
			return nil, fmt.Errorf("store event image: %w", err)
		}
		if err := s.eventRepo.SetImageURL(ctx, eventID, storedName); err != nil {
			return nil, fmt.Errorf("persist event image: %w", err)
		}
		event.ImageURL = &storedName
	}
	return event, nil
}
