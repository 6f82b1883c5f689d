// Package revokedtokens declares the repository contract for the access
// token blacklist: the set of revoked token identifiers consulted on every
// authorization check.
package revokedtokens

import (
	"context"
	"time"
)

// Repository defines operations over the blacklist. The guard only calls
// Contains; only logout calls Add.
type Repository interface {
	// Add records a token identifier as revoked. Re-adding an existing
	// identifier is a no-op, not an error; the membership check and insert
	// are a single indivisible statement.
	Add(ctx context.Context, jti string, expiresAt time.Time) error

	// Contains reports whether a token identifier has been revoked.
	Contains(ctx context.Context, jti string) (bool, error)
}
