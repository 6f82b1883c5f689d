// Package conversations declares the repository contract for conversations
// and their participant sets.
package conversations

import (
	"context"

	"convo/internal/server/models"
	"convo/internal/server/query"
)

// Repository defines operations over stored conversations.
type Repository interface {
	// Create inserts a conversation row. Participant rows are added
	// separately with AddParticipant inside the same transaction.
	Create(ctx context.Context, conv *models.Conversation) error

	// AddParticipant adds a user to a conversation's participant set.
	// Adding an existing participant is a no-op.
	AddParticipant(ctx context.Context, conversationID, userID string) error

	// Exists reports whether a conversation id references a stored row.
	Exists(ctx context.Context, conversationID string) (bool, error)

	// IsParticipant reports whether userID is a current member of the
	// conversation's participant set.
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)

	// GetByID returns a conversation with its participant ids, or
	// common.ErrorNotFound.
	GetByID(ctx context.Context, conversationID string) (*models.Conversation, error)

	// ListPage returns one page of conversations visible to scopeUserID,
	// filtered by q, ordered by ascending (created_at, id), together with
	// the total count of matching rows.
	ListPage(ctx context.Context, scopeUserID string, q query.ConversationQuery) ([]models.Conversation, int64, error)
}
