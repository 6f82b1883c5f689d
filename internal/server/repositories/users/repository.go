// Package users declares the server-side repository contract for user
// records in the identity registry.
package users

import (
	"context"

	"convo/internal/server/models"
)

// Repository defines operations over stored users.
type Repository interface {
	// Create inserts a new user. A duplicate email returns
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail looks a user up by login email. Absent users return
	// common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID looks a user up by id. Absent users return common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Exists reports whether a user id references a stored user.
	Exists(ctx context.Context, id string) (bool, error)

	// ExistingIDs returns the subset of ids that reference stored users.
	ExistingIDs(ctx context.Context, ids []string) ([]string, error)

	// UpdateProfile replaces the display fields of a user.
	UpdateProfile(ctx context.Context, id, firstName, lastName, phoneNumber string) error

	// UpdatePassword replaces the stored password hash of a user.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
