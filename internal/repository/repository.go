package repository

import (
	"context"

	"github.com/Muizzyranking/drf-auth/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Activate flips the user's active flag to true.
	Activate(ctx context.Context, id string) error

	// Delete removes a user from the store by their identifier.
	Delete(ctx context.Context, id string) error
}
