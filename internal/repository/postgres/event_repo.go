package postgres

import (
	"context"
	"database/sql"
	"errors"

	"proeventos/internal/domain"
)

const eventColumns = `id, owner_id, local, event_date, theme, capacity, phone_number, email, image_url, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (owner_id, local, event_date, theme, capacity, phone_number, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var eventDate sql.NullTime
	if e.EventDate != nil {
		eventDate = sql.NullTime{Time: *e.EventDate, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		e.OwnerID, e.Local, eventDate, e.Theme, e.Capacity, e.PhoneNumber, e.Email,
		e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, eventID, ownerID string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1 AND owner_id = $2
	`
	return scanEventRow(r.DB.QueryRowContext(ctx, query, eventID, ownerID))
}

func (r *eventRepository) ListByOwner(ctx context.Context, ownerID, term string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM events
		WHERE owner_id = $1 AND ($2 = '' OR theme ILIKE '%' || $2 || '%')
	`
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, ownerID, term).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE owner_id = $1 AND ($2 = '' OR theme ILIKE '%' || $2 || '%')
		ORDER BY event_date NULLS LAST, created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.DB.QueryContext(ctx, query, ownerID, term, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET local = $1, event_date = $2, theme = $3, capacity = $4,
		    phone_number = $5, email = $6, updated_at = $7
		WHERE id = $8 AND owner_id = $9
	`
	var eventDate sql.NullTime
	if e.EventDate != nil {
		eventDate = sql.NullTime{Time: *e.EventDate, Valid: true}
	}
	result, err := r.DB.ExecContext(ctx, query,
		e.Local, eventDate, e.Theme, e.Capacity, e.PhoneNumber, e.Email,
		e.UpdatedAt, e.ID, e.OwnerID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, eventID, ownerID string) error {
	query := `DELETE FROM events WHERE id = $1 AND owner_id = $2`
	result, err := r.DB.ExecContext(ctx, query, eventID, ownerID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) SetImageURL(ctx context.Context, eventID, imageURL string) error {
	query := `UPDATE events SET image_url = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, imageURL, eventID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var eventDate sql.NullTime
	var imageURL sql.NullString
	err := row.Scan(
		&e.ID, &e.OwnerID, &e.Local, &eventDate, &e.Theme, &e.Capacity,
		&e.PhoneNumber, &e.Email, &imageURL, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if eventDate.Valid {
		e.EventDate = &eventDate.Time
	}
	if imageURL.Valid {
		e.ImageURL = &imageURL.String
	}
	return e, nil
}

func scanEventRow(row *sql.Row) (*domain.Event, error) {
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}
