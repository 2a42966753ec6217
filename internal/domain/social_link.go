package domain

import "context"

// SocialLink is a named URL attached to either an event or a speaker.
// Exactly one of EventID and SpeakerID is set.
// swagger:model SocialLink
type SocialLink struct {
	ID        string  `json:"id"`
	Name      string  `json:"nome"`
	URL       string  `json:"url"`
	EventID   *string `json:"eventoId,omitempty"`
	SpeakerID *string `json:"palestranteId,omitempty"`
}

// SocialLinkRepository defines the interface for social link storage, with
// separate accessors per owner kind.
type SocialLinkRepository interface {
	ListByEventID(ctx context.Context, eventID string) ([]*SocialLink, error)
	ListBySpeakerID(ctx context.Context, speakerID string) ([]*SocialLink, error)
	GetByEventIDs(ctx context.Context, eventID, linkID string) (*SocialLink, error)
	GetBySpeakerIDs(ctx context.Context, speakerID, linkID string) (*SocialLink, error)
	// ReplaceForEvent and ReplaceForSpeaker replace the owner's full set of
	// links in a single transaction and return the stored set.
	ReplaceForEvent(ctx context.Context, eventID string, links []*SocialLink) ([]*SocialLink, error)
	ReplaceForSpeaker(ctx context.Context, speakerID string, links []*SocialLink) ([]*SocialLink, error)
	DeleteByEvent(ctx context.Context, eventID, linkID string) error
	DeleteBySpeaker(ctx context.Context, speakerID, linkID string) error
}

// SocialLinkService defines the business logic for social links. Event-branch
// operations verify the caller owns the event; speaker-branch operations
// resolve the caller's own speaker record. Both guards fail with ErrForbidden.
type SocialLinkService interface {
	ListByEvent(ctx context.Context, eventID, callerID string) ([]*SocialLink, error)
	SaveByEvent(ctx context.Context, eventID, callerID string, links []*SocialLink) ([]*SocialLink, error)
	DeleteByEvent(ctx context.Context, eventID, callerID, linkID string) error
	ListBySpeaker(ctx context.Context, callerID string) ([]*SocialLink, error)
	SaveBySpeaker(ctx context.Context, callerID string, links []*SocialLink) ([]*SocialLink, error)
	DeleteBySpeaker(ctx context.Context, callerID, linkID string) error
}
