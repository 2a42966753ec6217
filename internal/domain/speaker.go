package domain

import (
	"context"
	"time"
)

// Speaker is a speaker profile, 1:1 with a user.
// swagger:model Speaker
type Speaker struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	MiniResume string    `json:"miniCurriculo"`
	// User carries the public profile fields of the owning user when the
	// speaker is returned by the discovery listing.
	User      *User     `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SpeakerRepository defines the interface for speaker storage.
type SpeakerRepository interface {
	Create(ctx context.Context, speaker *Speaker) error
	GetByUserID(ctx context.Context, userID string) (*Speaker, error)
	Update(ctx context.Context, speaker *Speaker) error
	// ListAll returns speakers for discovery, joined with the owning user's
	// public profile. term filters by user name, case-insensitive.
	ListAll(ctx context.Context, term string, params PaginationParams) ([]*Speaker, int, error)
}

// SpeakerService defines the business logic for speaker profiles. All
// mutating operations are scoped to the caller's own speaker record.
type SpeakerService interface {
	ListAll(ctx context.Context, term string, params PaginationParams) ([]*Speaker, int, error)
	GetMine(ctx context.Context, userID string) (*Speaker, error)
	// CreateMine is idempotent: when the user already has a speaker record,
	// the existing record is returned unchanged.
	CreateMine(ctx context.Context, userID, miniResume string) (*Speaker, error)
	UpdateMine(ctx context.Context, userID, miniResume string) (*Speaker, error)
}
