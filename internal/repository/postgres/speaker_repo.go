package postgres

import (
	"context"
	"database/sql"
	"errors"

	"proeventos/internal/domain"
)

type speakerRepository struct {
	DB *sql.DB
}

func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{DB: db}
}

func (r *speakerRepository) Create(ctx context.Context, s *domain.Speaker) error {
	query := `
		INSERT INTO speakers (user_id, mini_resume, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, s.UserID, s.MiniResume, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
}

func (r *speakerRepository) GetByUserID(ctx context.Context, userID string) (*domain.Speaker, error) {
	query := `
		SELECT id, user_id, mini_resume, created_at, updated_at
		FROM speakers
		WHERE user_id = $1
	`
	s := &domain.Speaker{}
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&s.ID, &s.UserID, &s.MiniResume, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *speakerRepository) Update(ctx context.Context, s *domain.Speaker) error {
	query := `
		UPDATE speakers
		SET mini_resume = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.DB.ExecContext(ctx, query, s.MiniResume, s.UpdatedAt, s.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAll joins the owning user so the discovery listing can show public
// profile fields without a second query per speaker.
func (r *speakerRepository) ListAll(ctx context.Context, term string, params domain.PaginationParams) ([]*domain.Speaker, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM speakers s
		JOIN users u ON u.id = s.user_id
		WHERE $1 = '' OR u.user_name ILIKE '%' || $1 || '%'
		   OR u.first_name ILIKE '%' || $1 || '%' OR u.last_name ILIKE '%' || $1 || '%'
	`
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, term).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT s.id, s.user_id, s.mini_resume, s.created_at, s.updated_at,
		       u.user_name, u.first_name, u.last_name, u.title, u.description, u.image_url
		FROM speakers s
		JOIN users u ON u.id = s.user_id
		WHERE $1 = '' OR u.user_name ILIKE '%' || $1 || '%'
		   OR u.first_name ILIKE '%' || $1 || '%' OR u.last_name ILIKE '%' || $1 || '%'
		ORDER BY u.first_name, u.last_name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, term, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	speakers := make([]*domain.Speaker, 0)
	for rows.Next() {
		s := &domain.Speaker{User: &domain.User{}}
		var imageURL sql.NullString
		err := rows.Scan(
			&s.ID, &s.UserID, &s.MiniResume, &s.CreatedAt, &s.UpdatedAt,
			&s.User.UserName, &s.User.FirstName, &s.User.LastName,
			&s.User.Title, &s.User.Description, &imageURL,
		)
		if err != nil {
			return nil, 0, err
		}
		s.User.ID = s.UserID
		if imageURL.Valid {
			s.User.ImageURL = &imageURL.String
		}
		speakers = append(speakers, s)
	}
	return speakers, total, rows.Err()
}
