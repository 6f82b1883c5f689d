package revokedtokens

import (
	"context"
	"fmt"
	"time"

	"convo/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Add inserts the jti into the blacklist. The ON CONFLICT clause makes the
// check-then-insert indivisible under concurrency and repeat revocations
// no-ops. The token's own expiry is stored so expired rows could be purged
// lazily later.
func (r *PostgresRepository) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	query := `
		INSERT INTO revoked_tokens (jti, expires_at)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, jti, expiresAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Contains reports blacklist membership for the given jti.
func (r *PostgresRepository) Contains(ctx context.Context, jti string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)
	`
	var revoked bool
	if err := r.db.QueryRowContext(ctx, query, jti).Scan(&revoked); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return revoked, nil
}
