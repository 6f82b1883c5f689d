// Package messages declares the repository contract for stored messages.
package messages

import (
	"context"

	"convo/internal/server/models"
	"convo/internal/server/query"
)

// Repository defines operations over stored messages.
type Repository interface {
	// Create appends a message row.
	Create(ctx context.Context, msg *models.Message) error

	// ListPage returns one page of messages visible to scopeUserID (those
	// in conversations the user belongs to), filtered by q, ordered by
	// ascending (sent_at, id), together with the total count.
	ListPage(ctx context.Context, scopeUserID string, q query.MessageQuery) ([]models.Message, int64, error)
}
