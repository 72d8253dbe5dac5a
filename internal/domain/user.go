package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User represents a registered user. The password hash is never serialized.
// swagger:model User
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(name, email, passwordHash, address string, createdAt, updatedAt time.Time) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Address:      address,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// PublicUser is the public-safe projection returned by signup and login.
// swagger:model PublicUser
type PublicUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public returns the public-safe projection of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Identity is the decoded authenticated identity carried in the request context.
type Identity struct {
	ID    int64
	Email string
	Name  string
}

// PasswordHasher hashes and verifies passwords. Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (hash string, err error)
	Compare(hash, password string) error
}

// TokenIssuer issues signed tokens (e.g. JWT) embedding the user's identity.
type TokenIssuer interface {
	Issue(user *User, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token's signature and expiry and returns the embedded identity.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Delete(ctx context.Context, id int64) error
}

// UserService defines the business logic for registration, authentication, and profiles.
type UserService interface {
	Register(ctx context.Context, name, email, password, address string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	GetProfile(ctx context.Context, id int64) (*User, error)
	ListRegisteredEvents(ctx context.Context, userID int64) ([]*RegisteredEvent, error)
}
