package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"proeventos/internal/domain"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (user_name, email, first_name, last_name, title, phone_number, description, password_hash, salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		u.UserName, u.Email, u.FirstName, u.LastName, u.Title, u.PhoneNumber,
		u.Description, u.PasswordHash, u.Salt, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateUserName
	}
	return err
}

func (r *userRepository) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	query := `
		SELECT id, user_name, email, first_name, last_name, title, phone_number, description, image_url, password_hash, salt, created_at, updated_at
		FROM users
		WHERE user_name = $1
	`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, userName))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, user_name, email, first_name, last_name, title, phone_number, description, image_url, password_hash, salt, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, id))
}

func (r *userRepository) ExistsByUserName(ctx context.Context, userName string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE user_name = $1)`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, userName).Scan(&exists)
	return exists, err
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users
		SET user_name = $1, email = $2, first_name = $3, last_name = $4, title = $5,
		    phone_number = $6, description = $7, image_url = $8, password_hash = $9,
		    salt = $10, updated_at = $11
		WHERE id = $12
	`
	var imageURL sql.NullString
	if u.ImageURL != nil {
		imageURL = sql.NullString{String: *u.ImageURL, Valid: true}
	}
	result, err := r.DB.ExecContext(ctx, query,
		u.UserName, u.Email, u.FirstName, u.LastName, u.Title, u.PhoneNumber,
		u.Description, imageURL, u.PasswordHash, u.Salt, u.UpdatedAt, u.ID,
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateUserName
	}
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var imageURL sql.NullString
	err := row.Scan(
		&u.ID, &u.UserName, &u.Email, &u.FirstName, &u.LastName, &u.Title,
		&u.PhoneNumber, &u.Description, &imageURL, &u.PasswordHash, &u.Salt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if imageURL.Valid {
		u.ImageURL = &imageURL.String
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
