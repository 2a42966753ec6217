package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"proeventos/internal/domain"
)

type lotRepository struct {
	DB *sql.DB
}

func NewLotRepository(db *sql.DB) domain.LotRepository {
	return &lotRepository{DB: db}
}

func (r *lotRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Lot, error) {
	query := `
		SELECT id, event_id, name, price, start_date, end_date, quantity
		FROM lots
		WHERE event_id = $1
		ORDER BY start_date NULLS LAST, name
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lots := make([]*domain.Lot, 0)
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, err
		}
		lots = append(lots, l)
	}
	return lots, rows.Err()
}

func (r *lotRepository) GetByIDs(ctx context.Context, eventID, lotID string) (*domain.Lot, error) {
	query := `
		SELECT id, event_id, name, price, start_date, end_date, quantity
		FROM lots
		WHERE event_id = $1 AND id = $2
	`
	l, err := scanLot(r.DB.QueryRowContext(ctx, query, eventID, lotID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

// ReplaceForEvent deletes the event's current lots and inserts the submitted
// set inside one transaction, so a failed insert leaves the prior set intact.
func (r *lotRepository) ReplaceForEvent(ctx context.Context, eventID string, lots []*domain.Lot) ([]*domain.Lot, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lots WHERE event_id = $1`, eventID); err != nil {
		return nil, fmt.Errorf("clear lots: %w", err)
	}

	insert := `
		INSERT INTO lots (event_id, name, price, start_date, end_date, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	saved := make([]*domain.Lot, 0, len(lots))
	for _, l := range lots {
		var startDate, endDate sql.NullTime
		if l.StartDate != nil {
			startDate = sql.NullTime{Time: *l.StartDate, Valid: true}
		}
		if l.EndDate != nil {
			endDate = sql.NullTime{Time: *l.EndDate, Valid: true}
		}
		stored := &domain.Lot{
			EventID:   eventID,
			Name:      l.Name,
			Price:     l.Price,
			StartDate: l.StartDate,
			EndDate:   l.EndDate,
			Quantity:  l.Quantity,
		}
		if err := tx.QueryRowContext(ctx, insert, eventID, l.Name, l.Price, startDate, endDate, l.Quantity).Scan(&stored.ID); err != nil {
			return nil, fmt.Errorf("insert lot: %w", err)
		}
		saved = append(saved, stored)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return saved, nil
}

func (r *lotRepository) Delete(ctx context.Context, eventID, lotID string) error {
	query := `DELETE FROM lots WHERE event_id = $1 AND id = $2`
	result, err := r.DB.ExecContext(ctx, query, eventID, lotID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("delete lot: no rows affected")
	}
	return nil
}

func scanLot(row rowScanner) (*domain.Lot, error) {
	l := &domain.Lot{}
	var startDate, endDate sql.NullTime
	err := row.Scan(&l.ID, &l.EventID, &l.Name, &l.Price, &startDate, &endDate, &l.Quantity)
	if err != nil {
		return nil, err
	}
	if startDate.Valid {
		l.StartDate = &startDate.Time
	}
	if endDate.Valid {
		l.EndDate = &endDate.Time
	}
	return l, nil
}
