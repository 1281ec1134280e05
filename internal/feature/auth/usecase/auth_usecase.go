package usecase

import (
	"context"
	"errors"
	"fmt"

	"todo_backend/internal/feature/auth/domain/entity"
)

// dummyHash is a valid cost-10 bcrypt hash compared against when the email is
// unknown, so both login failure paths spend the same time hashing.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) bool
}

// JWTGenerator issues signed tokens for an authenticated user.
type JWTGenerator interface {
	GenerateToken(userID uint) (string, error)
}

// AuthUsecase implements signup and login.
type AuthUsecase struct {
	users        UserRepository
	hasher       PasswordHasher
	jwtGenerator JWTGenerator
}

// NewAuthUsecase creates a new AuthUsecase.
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, jwtGenerator JWTGenerator) *AuthUsecase {
	return &AuthUsecase{
		users:        users,
		hasher:       hasher,
		jwtGenerator: jwtGenerator,
	}
}

// Signup registers a new user with a hashed password. No token is issued;
// the client logs in separately.
func (u *AuthUsecase) Signup(ctx context.Context, name, email, password string) error {
	existing, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return ErrEmailAlreadyExists
	case err != nil && !errors.Is(err, ErrUserNotFound):
		return fmt.Errorf("failed to look up user: %w", err)
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return err
	}

	// The unique index still catches a concurrent signup with the same email.
	user := &entity.User{Name: name, Email: email, Password: hashed}
	return u.users.Create(ctx, user)
}

// Login authenticates the user and returns a signed token on success.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	passwordHash := dummyHash
	if user != nil {
		passwordHash = user.Password
	}

	// Always run the comparison so an unknown email is not faster to reject.
	matched := u.hasher.Verify(password, passwordHash)
	if user == nil || !matched {
		return "", ErrInvalidCredentials
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}
