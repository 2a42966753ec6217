package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proeventos/internal/domain"
)

// fakeEventRepo implements domain.EventRepository for tests. Reads and writes
// are keyed by event id + owner id, mirroring the owner scoping of the real
// repository.
type fakeEventRepo struct {
	events    map[string]*domain.Event
	listErr   error
	deleteErr error
	deleted   []string
	imageSet  map[string]string
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:   make(map[string]*domain.Event),
		imageSet: make(map[string]string),
	}
}

func (f *fakeEventRepo) add(e *domain.Event) { f.events[e.ID] = e }

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	e.ID = "event-created-1"
	f.add(e)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, eventID, ownerID string) (*domain.Event, error) {
	e, ok := f.events[eventID]
	if !ok || e.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEventRepo) ListByOwner(ctx context.Context, ownerID, term string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	matched := make([]*domain.Event, 0)
	for _, e := range f.events {
		if e.OwnerID != ownerID {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(e.Theme), strings.ToLower(term)) {
			continue
		}
		matched = append(matched, e)
	}
	return matched, len(matched), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	existing, ok := f.events[e.ID]
	if !ok || existing.OwnerID != e.OwnerID {
		return domain.ErrNotFound
	}
	f.add(e)
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, eventID, ownerID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	e, ok := f.events[eventID]
	if !ok || e.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(f.events, eventID)
	f.deleted = append(f.deleted, eventID)
	return nil
}

func (f *fakeEventRepo) SetImageURL(ctx context.Context, eventID, imageURL string) error {
	if _, ok := f.events[eventID]; !ok {
		return domain.ErrNotFound
	}
	f.imageSet[eventID] = imageURL
	return nil
}

// fakeLotRepo implements domain.LotRepository for tests.
type fakeLotRepo struct {
	byEvent    map[string][]*domain.Lot
	replaceErr error
	deleteErr  error
	deleted    []string
}

func newFakeLotRepo() *fakeLotRepo {
	return &fakeLotRepo{byEvent: make(map[string][]*domain.Lot)}
}

func (f *fakeLotRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Lot, error) {
	return f.byEvent[eventID], nil
}

func (f *fakeLotRepo) GetByIDs(ctx context.Context, eventID, lotID string) (*domain.Lot, error) {
	for _, l := range f.byEvent[eventID] {
		if l.ID == lotID {
			return l, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeLotRepo) ReplaceForEvent(ctx context.Context, eventID string, lots []*domain.Lot) ([]*domain.Lot, error) {
	if f.replaceErr != nil {
		return nil, f.replaceErr
	}
	saved := make([]*domain.Lot, 0, len(lots))
	for i, l := range lots {
		stored := *l
		stored.ID = "lot-saved-" + string(rune('1'+i))
		stored.EventID = eventID
		saved = append(saved, &stored)
	}
	f.byEvent[eventID] = saved
	return saved, nil
}

func (f *fakeLotRepo) Delete(ctx context.Context, eventID, lotID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, lotID)
	return nil
}

// fakeLinkRepo implements domain.SocialLinkRepository for tests.
type fakeLinkRepo struct {
	byEvent    map[string][]*domain.SocialLink
	bySpeaker  map[string][]*domain.SocialLink
	replaceErr error
	deleted    []string
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{
		byEvent:   make(map[string][]*domain.SocialLink),
		bySpeaker: make(map[string][]*domain.SocialLink),
	}
}

func (f *fakeLinkRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.SocialLink, error) {
	return f.byEvent[eventID], nil
}

func (f *fakeLinkRepo) ListBySpeakerID(ctx context.Context, speakerID string) ([]*domain.SocialLink, error) {
	return f.bySpeaker[speakerID], nil
}

func (f *fakeLinkRepo) GetByEventIDs(ctx context.Context, eventID, linkID string) (*domain.SocialLink, error) {
	for _, l := range f.byEvent[eventID] {
		if l.ID == linkID {
			return l, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeLinkRepo) GetBySpeakerIDs(ctx context.Context, speakerID, linkID string) (*domain.SocialLink, error) {
	for _, l := range f.bySpeaker[speakerID] {
		if l.ID == linkID {
			return l, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeLinkRepo) ReplaceForEvent(ctx context.Context, eventID string, links []*domain.SocialLink) ([]*domain.SocialLink, error) {
	if f.replaceErr != nil {
		return nil, f.replaceErr
	}
	saved := make([]*domain.SocialLink, 0, len(links))
	for i, l := range links {
		id := eventID
		stored := &domain.SocialLink{ID: "link-saved-" + string(rune('1'+i)), Name: l.Name, URL: l.URL, EventID: &id}
		saved = append(saved, stored)
	}
	f.byEvent[eventID] = saved
	return saved, nil
}

func (f *fakeLinkRepo) ReplaceForSpeaker(ctx context.Context, speakerID string, links []*domain.SocialLink) ([]*domain.SocialLink, error) {
	if f.replaceErr != nil {
		return nil, f.replaceErr
	}
	saved := make([]*domain.SocialLink, 0, len(links))
	for i, l := range links {
		id := speakerID
		stored := &domain.SocialLink{ID: "link-saved-" + string(rune('1'+i)), Name: l.Name, URL: l.URL, SpeakerID: &id}
		saved = append(saved, stored)
	}
	f.bySpeaker[speakerID] = saved
	return saved, nil
}

func (f *fakeLinkRepo) DeleteByEvent(ctx context.Context, eventID, linkID string) error {
	f.deleted = append(f.deleted, linkID)
	return nil
}

func (f *fakeLinkRepo) DeleteBySpeaker(ctx context.Context, speakerID, linkID string) error {
	f.deleted = append(f.deleted, linkID)
	return nil
}

func newEventService(events *fakeEventRepo, lots *fakeLotRepo, links *fakeLinkRepo, store *fakeImageStore) domain.EventService {
	return NewEventService(events, lots, links, store, time.Second)
}

func TestEventService_GetByID(t *testing.T) {
	ctx := context.Background()

	events := newFakeEventRepo()
	events.add(&domain.Event{ID: "e1", OwnerID: "owner-1", Theme: "GopherCon"})
	lots := newFakeLotRepo()
	lots.byEvent["e1"] = []*domain.Lot{{ID: "lot-1", EventID: "e1", Name: "Early bird"}}
	links := newFakeLinkRepo()
	eid := "e1"
	links.byEvent["e1"] = []*domain.SocialLink{{ID: "link-1", Name: "Instagram", EventID: &eid}}

	svc := newEventService(events, lots, links, &fakeImageStore{})

	t.Run("loads lots and social links", func(t *testing.T) {
		event, err := svc.GetByID(ctx, "e1", "owner-1")
		require.NoError(t, err)
		require.Len(t, event.Lots, 1)
		require.Len(t, event.SocialLinks, 1)
	})

	t.Run("foreign owner behaves like missing", func(t *testing.T) {
		_, err := svc.GetByID(ctx, "e1", "intruder")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()
	svc := newEventService(newFakeEventRepo(), newFakeLotRepo(), newFakeLinkRepo(), &fakeImageStore{})

	event, err := svc.Create(ctx, "owner-1", domain.EventInput{Theme: "GopherCon", Local: "SP", Capacity: 100})
	require.NoError(t, err)
	assert.Equal(t, "event-created-1", event.ID)
	assert.Equal(t, "owner-1", event.OwnerID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestEventService_Update(t *testing.T) {
	ctx := context.Background()

	events := newFakeEventRepo()
	events.add(&domain.Event{ID: "e1", OwnerID: "owner-1", Theme: "Old"})
	svc := newEventService(events, newFakeLotRepo(), newFakeLinkRepo(), &fakeImageStore{})

	t.Run("applies input", func(t *testing.T) {
		event, err := svc.Update(ctx, "e1", "owner-1", domain.EventInput{Theme: "New", Local: "RJ"})
		require.NoError(t, err)
		assert.Equal(t, "New", event.Theme)
		assert.Equal(t, "RJ", event.Local)
	})

	t.Run("missing event", func(t *testing.T) {
		_, err := svc.Update(ctx, "ghost", "owner-1", domain.EventInput{Theme: "x"})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes record then attempts image delete", func(t *testing.T) {
		events := newFakeEventRepo()
		img := "party.png"
		events.add(&domain.Event{ID: "e1", OwnerID: "owner-1", ImageURL: &img})
		store := &fakeImageStore{}
		svc := newEventService(events, newFakeLotRepo(), newFakeLinkRepo(), store)

		require.NoError(t, svc.Delete(ctx, "e1", "owner-1"))
		assert.Equal(t, []string{"e1"}, events.deleted)
		assert.Equal(t, []string{"eventos/party.png"}, store.deleted)
	})

	t.Run("failed file delete does not fail the operation", func(t *testing.T) {
		events := newFakeEventRepo()
		img := "party.png"
		events.add(&domain.Event{ID: "e1", OwnerID: "owner-1", ImageURL: &img})
		store := &fakeImageStore{deleteErr: errors.New("disk error")}
		svc := newEventService(events, newFakeLotRepo(), newFakeLinkRepo(), store)

		require.NoError(t, svc.Delete(ctx, "e1", "owner-1"))
	})

	t.Run("foreign owner behaves like missing", func(t *testing.T) {
		events := newFakeEventRepo()
		events.add(&domain.Event{ID: "e1", OwnerID: "owner-1"})
		svc := newEventService(events, newFakeLotRepo(), newFakeLinkRepo(), &fakeImageStore{})

		require.ErrorIs(t, svc.Delete(ctx, "e1", "intruder"), domain.ErrNotFound)
		require.Contains(t, events.events, "e1")
	})
}

func TestEventService_SetImage(t *testing.T) {
	ctx := context.Background()

	events := newFakeEventRepo()
	old := "old.png"
	events.add(&domain.Event{ID: "e1", OwnerID: "owner-1", ImageURL: &old})
	store := &fakeImageStore{}
	svc := newEventService(events, newFakeLotRepo(), newFakeLinkRepo(), store)

	event, err := svc.SetImage(ctx, "e1", "owner-1", "banner.png", 42, strings.NewReader("img"))
	require.NoError(t, err)
	require.NotNil(t, event.ImageURL)
	assert.Equal(t, "eventos/stored-banner.png", *event.ImageURL)
	assert.Equal(t, "eventos/stored-banner.png", events.imageSet["e1"])
	assert.Equal(t, []string{"eventos/old.png"}, store.deleted)
}
