package auth

import (
	"context"
	"testing"

	"mingle/internal/models"
	"mingle/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupGate(t *testing.T) *Gate {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return NewGate(repository.NewUserRepository(db))
}

func TestGate_RegisterHashesPassword(t *testing.T) {
	gate := setupGate(t)
	ctx := context.Background()

	user, err := gate.Register(ctx, "alice", "Alice", "Tester", "password123")
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
}

func TestGate_RegisterDuplicateUsername(t *testing.T) {
	gate := setupGate(t)
	ctx := context.Background()

	_, err := gate.Register(ctx, "alice", "Alice", "Tester", "password123")
	require.NoError(t, err)

	_, err = gate.Register(ctx, "alice", "Another", "Person", "password456")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestGate_Authenticate(t *testing.T) {
	gate := setupGate(t)
	ctx := context.Background()

	_, err := gate.Register(ctx, "alice", "Alice", "Tester", "password123")
	require.NoError(t, err)

	user, err := gate.Authenticate(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = gate.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = gate.Authenticate(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
