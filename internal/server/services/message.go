package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"convo/internal/common"
	"convo/internal/dbx"
	"convo/internal/server/models"
	"convo/internal/server/query"
	"convo/internal/server/repositories/repomanager"

	"github.com/google/uuid"
)

// MaxMessageBodyLength bounds the size of a single message body.
const MaxMessageBodyLength = 10000

// MessageService sends and lists messages inside conversations.
type MessageService struct {
	db          *sql.DB
	repoManager repomanager.RepositoryManager
}

func NewMessageService(db *sql.DB, rm repomanager.RepositoryManager) *MessageService {
	return &MessageService{db: db, repoManager: rm}
}

// Send appends a message to a conversation the sender participates in.
func (s *MessageService) Send(ctx context.Context, senderID string, conversationID string, body string) (*models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, common.NewValidationError("message_body", "cannot be empty")
	}
	if len(body) > MaxMessageBodyLength {
		return nil, common.NewValidationError("message_body", "too long")
	}

	var msg *models.Message
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		convRepo := s.repoManager.Conversations(tx)

		exists, err := convRepo.Exists(ctx, conversationID)
		if err != nil {
			return err
		}
		if !exists {
			return common.ErrorNotFound
		}

		member, err := convRepo.IsParticipant(ctx, conversationID, senderID)
		if err != nil {
			return err
		}
		if !member {
			return common.ErrorForbidden
		}

		m := &models.Message{
			ID:             uuid.NewString(),
			ConversationID: conversationID,
			SenderID:       senderID,
			Body:           body,
			SentAt:         time.Now().UTC(),
		}
		if err := s.repoManager.Messages(tx).Create(ctx, m); err != nil {
			return err
		}
		msg = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// List returns a page of messages from conversations the requester
// participates in, matching the query.
func (s *MessageService) List(ctx context.Context, requesterID string, q query.MessageQuery) (query.Page[models.Message], error) {
	items, count, err := s.repoManager.Messages(s.db).ListPage(ctx, requesterID, q)
	if err != nil {
		return query.Page[models.Message]{}, err
	}
	return query.NewPage(count, q.Page, items), nil
}

// ListForConversation returns a page of messages from one conversation.
// The conversation must exist and the requester must participate in it.
func (s *MessageService) ListForConversation(ctx context.Context, requesterID string, conversationID string, q query.MessageQuery) (query.Page[models.Message], error) {
	var none query.Page[models.Message]

	convRepo := s.repoManager.Conversations(s.db)

	exists, err := convRepo.Exists(ctx, conversationID)
	if err != nil {
		return none, err
	}
	if !exists {
		return none, common.ErrorNotFound
	}

	member, err := convRepo.IsParticipant(ctx, conversationID, requesterID)
	if err != nil {
		return none, err
	}
	if !member {
		return none, common.ErrorForbidden
	}

	q.Conversation = conversationID
	return s.List(ctx, requesterID, q)
}
