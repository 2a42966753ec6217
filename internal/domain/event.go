package domain

import (
	"context"
	"io"
	"time"
)

// Event represents an event owned by exactly one user.
// swagger:model Event
type Event struct {
	ID          string        `json:"id"`
	OwnerID     string        `json:"userId"`
	Local       string        `json:"local"`
	EventDate   *time.Time    `json:"dataEvento"`
	Theme       string        `json:"tema"`
	Capacity    int           `json:"qtdPessoas"`
	PhoneNumber string        `json:"telefone"`
	Email       string        `json:"email"`
	ImageURL    *string       `json:"imagemURL"`
	Lots        []*Lot        `json:"lotes,omitempty"`
	SocialLinks []*SocialLink `json:"redesSociais,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// EventInput carries the mutable event fields accepted on create and update.
type EventInput struct {
	Local       string
	EventDate   *time.Time
	Theme       string
	Capacity    int
	PhoneNumber string
	Email       string
}

// EventRepository defines the interface for event storage. Read and write
// operations are owner-scoped: a record owned by another user behaves
// exactly like a missing record.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, eventID, ownerID string) (*Event, error)
	ListByOwner(ctx context.Context, ownerID, term string, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, eventID, ownerID string) error
	SetImageURL(ctx context.Context, eventID, imageURL string) error
}

// EventService defines the business logic for event management.
type EventService interface {
	List(ctx context.Context, ownerID, term string, params PaginationParams) ([]*Event, int, error)
	GetByID(ctx context.Context, eventID, ownerID string) (*Event, error)
	Create(ctx context.Context, ownerID string, input EventInput) (*Event, error)
	Update(ctx context.Context, eventID, ownerID string, input EventInput) (*Event, error)
	Delete(ctx context.Context, eventID, ownerID string) error
	SetImage(ctx context.Context, eventID, ownerID, fileName string, size int64, contents io.Reader) (*Event, error)
}
