// Package auth implements credential checking and account registration.
package auth

import (
	"context"
	"errors"

	"mingle/internal/models"
	"mingle/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when the username/password pair does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUsernameTaken is returned when registering an already-used username.
var ErrUsernameTaken = errors.New("username already taken")

// Gate verifies credentials and creates accounts. Session lifecycle is
// handled by the session store; the gate only answers "who is this".
type Gate struct {
	users repository.UserRepository
}

// NewGate creates an authentication gate backed by the user repository.
func NewGate(users repository.UserRepository) *Gate {
	return &Gate{users: users}
}

// Register creates a new user with a bcrypt-hashed password.
func (g *Gate) Register(ctx context.Context, username, firstName, lastName, password string) (*models.User, error) {
	existing, err := g.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Password:  string(hashed),
	}
	if err := g.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the username/password pair and returns the user.
func (g *Gate) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := g.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
