package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"convo/internal/common"
	"convo/internal/dbx"
	"convo/internal/server/config"
	"convo/internal/server/models"
	"convo/internal/server/query"
	"convo/internal/server/repositories/repomanager"

	"github.com/google/uuid"
)

// ConversationService manages conversations and their participant sets.
type ConversationService struct {
	db          *sql.DB
	repoManager repomanager.RepositoryManager
	config      *config.Config
}

func NewConversationService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config) *ConversationService {
	return &ConversationService{db: db, repoManager: rm, config: cfg}
}

// Create starts a conversation. The creator is always a participant, even
// when absent from the requested set. Requested ids that do not resolve to
// existing users are dropped.
func (s *ConversationService) Create(ctx context.Context, creatorID string, participantIDs []string) (*models.Conversation, error) {
	requested := make([]string, 0, len(participantIDs))
	seen := map[string]bool{creatorID: true}
	for _, id := range participantIDs {
		if !seen[id] {
			seen[id] = true
			requested = append(requested, id)
		}
	}

	var conv *models.Conversation
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		existing, err := s.repoManager.Users(tx).ExistingIDs(ctx, requested)
		if err != nil {
			return err
		}

		members := append([]string{creatorID}, existing...)
		if len(members) < s.config.MinParticipants {
			return common.NewValidationError("participants",
				fmt.Sprintf("at least %d participants required", s.config.MinParticipants))
		}
		if len(members) > s.config.MaxParticipants {
			return common.NewValidationError("participants",
				fmt.Sprintf("at most %d participants allowed", s.config.MaxParticipants))
		}

		c := &models.Conversation{
			ID:        uuid.NewString(),
			CreatedAt: time.Now().UTC(),
		}
		repo := s.repoManager.Conversations(tx)
		if err := repo.Create(ctx, c); err != nil {
			return err
		}
		for _, id := range members {
			if err := repo.AddParticipant(ctx, c.ID, id); err != nil {
				return err
			}
		}

		sort.Strings(members)
		c.ParticipantIDs = members
		conv = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Get returns a conversation the requester participates in.
func (s *ConversationService) Get(ctx context.Context, requesterID string, conversationID string) (*models.Conversation, error) {
	conv, err := s.repoManager.Conversations(s.db).GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	for _, id := range conv.ParticipantIDs {
		if id == requesterID {
			return conv, nil
		}
	}
	return nil, common.ErrorForbidden
}

// AddParticipant adds a user to a conversation the requester belongs to.
// Adding an existing participant is a no-op.
func (s *ConversationService) AddParticipant(ctx context.Context, requesterID string, conversationID string, userID string) (*models.Conversation, error) {
	var conv *models.Conversation
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repoManager.Conversations(tx)

		exists, err := repo.Exists(ctx, conversationID)
		if err != nil {
			return err
		}
		if !exists {
			return common.ErrorNotFound
		}

		member, err := repo.IsParticipant(ctx, conversationID, requesterID)
		if err != nil {
			return err
		}
		if !member {
			return common.ErrorForbidden
		}

		userExists, err := s.repoManager.Users(tx).Exists(ctx, userID)
		if err != nil {
			return err
		}
		if !userExists {
			return common.ErrorNotFound
		}

		current, err := repo.GetByID(ctx, conversationID)
		if err != nil {
			return err
		}
		if len(current.ParticipantIDs) >= s.config.MaxParticipants && !contains(current.ParticipantIDs, userID) {
			return common.NewValidationError("participants",
				fmt.Sprintf("at most %d participants allowed", s.config.MaxParticipants))
		}

		if err := repo.AddParticipant(ctx, conversationID, userID); err != nil {
			return err
		}

		conv, err = repo.GetByID(ctx, conversationID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// List returns a page of the requester's conversations matching the query.
func (s *ConversationService) List(ctx context.Context, requesterID string, q query.ConversationQuery) (query.Page[models.Conversation], error) {
	items, count, err := s.repoManager.Conversations(s.db).ListPage(ctx, requesterID, q)
	if err != nil {
		return query.Page[models.Conversation]{}, err
	}
	return query.NewPage(count, q.Page, items), nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
