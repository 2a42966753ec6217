package domain

import (
	"context"
	"time"
)

// Lot is a priced ticket batch tied to an event.
// swagger:model Lot
type Lot struct {
	ID        string     `json:"id"`
	EventID   string     `json:"eventoId"`
	Name      string     `json:"nome"`
	Price     float64    `json:"preco"`
	StartDate *time.Time `json:"dataInicio"`
	EndDate   *time.Time `json:"dataFim"`
	Quantity  int        `json:"quantidade"`
}

// LotRepository defines the interface for lot storage.
type LotRepository interface {
	ListByEventID(ctx context.Context, eventID string) ([]*Lot, error)
	GetByIDs(ctx context.Context, eventID, lotID string) (*Lot, error)
	// ReplaceForEvent replaces the full set of lots for the event in a
	// single transaction and returns the stored set.
	ReplaceForEvent(ctx context.Context, eventID string, lots []*Lot) ([]*Lot, error)
	Delete(ctx context.Context, eventID, lotID string) error
}

// LotService defines the business logic for ticket lots.
type LotService interface {
	ListByEvent(ctx context.Context, eventID string) ([]*Lot, error)
	SaveBatch(ctx context.Context, eventID string, lots []*Lot) ([]*Lot, error)
	Delete(ctx context.Context, eventID, lotID string) error
}
