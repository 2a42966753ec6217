package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"proeventos/internal/domain"
)

type socialLinkRepository struct {
	DB *sql.DB
}

func NewSocialLinkRepository(db *sql.DB) domain.SocialLinkRepository {
	return &socialLinkRepository{DB: db}
}

func (r *socialLinkRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.SocialLink, error) {
	query := `
		SELECT id, name, url, event_id, speaker_id
		FROM social_links
		WHERE event_id = $1
		ORDER BY name
	`
	return r.list(ctx, query, eventID)
}

func (r *socialLinkRepository) ListBySpeakerID(ctx context.Context, speakerID string) ([]*domain.SocialLink, error) {
	query := `
		SELECT id, name, url, event_id, speaker_id
		FROM social_links
		WHERE speaker_id = $1
		ORDER BY name
	`
	return r.list(ctx, query, speakerID)
}

func (r *socialLinkRepository) GetByEventIDs(ctx context.Context, eventID, linkID string) (*domain.SocialLink, error) {
	query := `
		SELECT id, name, url, event_id, speaker_id
		FROM social_links
		WHERE event_id = $1 AND id = $2
	`
	return r.get(ctx, query, eventID, linkID)
}

func (r *socialLinkRepository) GetBySpeakerIDs(ctx context.Context, speakerID, linkID string) (*domain.SocialLink, error) {
	query := `
		SELECT id, name, url, event_id, speaker_id
		FROM social_links
		WHERE speaker_id = $1 AND id = $2
	`
	return r.get(ctx, query, speakerID, linkID)
}

func (r *socialLinkRepository) ReplaceForEvent(ctx context.Context, eventID string, links []*domain.SocialLink) ([]*domain.SocialLink, error) {
	return r.replace(ctx,
		`DELETE FROM social_links WHERE event_id = $1`,
		`INSERT INTO social_links (name, url, event_id) VALUES ($1, $2, $3) RETURNING id`,
		eventID, links,
		func(stored *domain.SocialLink, ownerID string) { stored.EventID = &ownerID },
	)
}

func (r *socialLinkRepository) ReplaceForSpeaker(ctx context.Context, speakerID string, links []*domain.SocialLink) ([]*domain.SocialLink, error) {
	return r.replace(ctx,
		`DELETE FROM social_links WHERE speaker_id = $1`,
		`INSERT INTO social_links (name, url, speaker_id) VALUES ($1, $2, $3) RETURNING id`,
		speakerID, links,
		func(stored *domain.SocialLink, ownerID string) { stored.SpeakerID = &ownerID },
	)
}

func (r *socialLinkRepository) DeleteByEvent(ctx context.Context, eventID, linkID string) error {
	return r.delete(ctx, `DELETE FROM social_links WHERE event_id = $1 AND id = $2`, eventID, linkID)
}

func (r *socialLinkRepository) DeleteBySpeaker(ctx context.Context, speakerID, linkID string) error {
	return r.delete(ctx, `DELETE FROM social_links WHERE speaker_id = $1 AND id = $2`, speakerID, linkID)
}

func (r *socialLinkRepository) list(ctx context.Context, query, ownerID string) ([]*domain.SocialLink, error) {
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]*domain.SocialLink, 0)
	for rows.Next() {
		l, err := scanSocialLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *socialLinkRepository) get(ctx context.Context, query, ownerID, linkID string) (*domain.SocialLink, error) {
	l, err := scanSocialLink(r.DB.QueryRowContext(ctx, query, ownerID, linkID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

// replace swaps the owner's full link set inside one transaction, so a failed
// insert leaves the prior set intact.
func (r *socialLinkRepository) replace(ctx context.Context, deleteQuery, insertQuery, ownerID string, links []*domain.SocialLink, setOwner func(*domain.SocialLink, string)) ([]*domain.SocialLink, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteQuery, ownerID); err != nil {
		return nil, fmt.Errorf("clear social links: %w", err)
	}

	saved := make([]*domain.SocialLink, 0, len(links))
	for _, l := range links {
		stored := &domain.SocialLink{Name: l.Name, URL: l.URL}
		setOwner(stored, ownerID)
		if err := tx.QueryRowContext(ctx, insertQuery, l.Name, l.URL, ownerID).Scan(&stored.ID); err != nil {
			return nil, fmt.Errorf("insert social link: %w", err)
		}
		saved = append(saved, stored)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return saved, nil
}

func (r *socialLinkRepository) delete(ctx context.Context, query, ownerID, linkID string) error {
	result, err := r.DB.ExecContext(ctx, query, ownerID, linkID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("delete social link: no rows affected")
	}
	return nil
}

func scanSocialLink(row rowScanner) (*domain.SocialLink, error) {
	l := &domain.SocialLink{}
	var eventID, speakerID sql.NullString
	if err := row.Scan(&l.ID, &l.Name, &l.URL, &eventID, &speakerID); err != nil {
		return nil, err
	}
	if eventID.Valid {
		l.EventID = &eventID.String
	}
	if speakerID.Valid {
		l.SpeakerID = &speakerID.String
	}
	return l, nil
}
