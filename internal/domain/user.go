package domain

import (
	"context"
	"io"
	"time"
)

// User represents a registered account. JSON field names follow the
// published API contract (Portuguese, camelCase).
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	UserName     string    `json:"userName"`
	Email        string    `json:"email"`
	FirstName    string    `json:"primeiroNome"`
	LastName     string    `json:"ultimoNome"`
	Title        string    `json:"titulo"`
	PhoneNumber  string    `json:"phoneNumber"`
	Description  string    `json:"descricao"`
	ImageURL     *string   `json:"imagemURL"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given identity fields. ID is set by the
// repository on create.
func NewUser(userName, email, firstName, lastName string, createdAt, updatedAt time.Time) *User {
	return &User{
		UserName:  userName,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// RegisterInput carries the fields accepted on account registration.
type RegisterInput struct {
	UserName  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UpdateAccountInput carries the fields accepted on account update.
// Password is optional; empty means unchanged.
type UpdateAccountInput struct {
	UserName    string
	Email       string
	FirstName   string
	LastName    string
	Title       string
	PhoneNumber string
	Description string
	Password    string
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, userName string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user's
// id and username.
type TokenVerifier interface {
	Verify(token string) (userID, userName string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUserName(ctx context.Context, userName string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	ExistsByUserName(ctx context.Context, userName string) (bool, error)
	Update(ctx context.Context, user *User) error
}

// AccountService defines the business logic for registration, login, and
// profile management. Register, Login, and Update return the user together
// with a freshly issued session token.
type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (*User, string, error)
	Login(ctx context.Context, userName, password string) (*User, string, error)
	GetByUserName(ctx context.Context, userName string) (*User, error)
	Update(ctx context.Context, userID string, input UpdateAccountInput) (*User, string, error)
	SetProfileImage(ctx context.Context, userID, fileName string, size int64, contents io.Reader) (*User, error)
}
