package services

import (
	"context"
	"errors"
	"fmt"

	"proeventos/internal/domain"
)

type lotService struct {
	lotRepo domain.LotRepository
}

func NewLotService(lotRepo domain.LotRepository) domain.LotService {
	return &lotService{lotRepo: lotRepo}
}

func (s *lotService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Lot, error) {
	lots, err := s.lotRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	return lots, nil
}

// SaveBatch replaces the event's full lot set with the submitted one. The
// client always sends the complete desired list.
func (s *lotService) SaveBatch(ctx context.Context, eventID string, lots []*domain.Lot) ([]*domain.Lot, error) {
	saved, err := s.lotRepo.ReplaceForEvent(ctx, eventID, lots)
	if err != nil {
		return nil, fmt.Errorf("save lots: %w", err)
	}
	return saved, nil
}

// Delete confirms the lot exists for the event before deleting it. A delete
// that then affects no rows is an internal failure, not a missing record.
func (s *lotService) Delete(ctx context.Context, eventID, lotID string) error {
	if _, err := s.lotRepo.GetByIDs(ctx, eventID, lotID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get lot: %w", err)
	}
	if err := s.lotRepo.Delete(ctx, eventID, lotID); err != nil {
		return fmt.Errorf("delete lot: %w", err)
	}
	return nil
}
