package conversations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"convo/internal/common"
	"convo/internal/dbx"
	"convo/internal/server/models"
	"convo/internal/server/query"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, conv *models.Conversation) error {
	q := `
		INSERT INTO conversations (id, created_at)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, q, conv.ID, conv.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) AddParticipant(ctx context.Context, conversationID, userID string) error {
	q := `
		INSERT INTO conversation_participants (conversation_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, q, conversationID, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Exists(ctx context.Context, conversationID string) (bool, error) {
	q := `
		SELECT EXISTS (SELECT 1 FROM conversations WHERE id = $1)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, conversationID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	q := `
		SELECT EXISTS (SELECT 1 FROM conversation_participants WHERE conversation_id = $1 AND user_id = $2)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, conversationID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, conversationID string) (*models.Conversation, error) {
	q := `
		SELECT id, created_at
		FROM conversations
		WHERE id = $1
	`
	conv := &models.Conversation{}
	err := r.db.QueryRowContext(ctx, q, conversationID).Scan(&conv.ID, &conv.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	participants, err := r.participantIDs(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	conv.ParticipantIDs = participants

	return conv, nil
}

func (r *PostgresRepository) participantIDs(ctx context.Context, conversationID string) ([]string, error) {
	q := `
		SELECT user_id
		FROM conversation_participants
		WHERE conversation_id = $1
		ORDER BY user_id
	`
	rows, err := r.db.QueryContext(ctx, q, conversationID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return ids, nil
}

// ListPage scopes every query to conversations the requesting user belongs
// to, then applies the recognized filters. Ordering by (created_at, id) is
// total, so repeated queries over an unchanged data set page identically.
func (r *PostgresRepository) ListPage(ctx context.Context, scopeUserID string, q query.ConversationQuery) ([]models.Conversation, int64, error) {
	conds := []string{`EXISTS (SELECT 1 FROM conversation_participants scope WHERE scope.conversation_id = c.id AND scope.user_id = $1)`}
	args := []any{scopeUserID}

	if q.Participant != "" {
		args = append(args, q.Participant)
		conds = append(conds, fmt.Sprintf(`EXISTS (SELECT 1 FROM conversation_participants f WHERE f.conversation_id = c.id AND f.user_id = $%d)`, len(args)))
	}
	if q.CreatedAfter != nil {
		args = append(args, *q.CreatedAfter)
		conds = append(conds, fmt.Sprintf(`c.created_at > $%d`, len(args)))
	}
	if q.CreatedBefore != nil {
		args = append(args, *q.CreatedBefore)
		conds = append(conds, fmt.Sprintf(`c.created_at < $%d`, len(args)))
	}

	where := strings.Join(conds, " AND ")

	var count int64
	countQuery := `SELECT COUNT(*) FROM conversations c WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	args = append(args, query.PageSize, query.Offset(q.Page))
	listQuery := fmt.Sprintf(`
		SELECT c.id, c.created_at
		FROM conversations c
		WHERE %s
		ORDER BY c.created_at, c.id
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	convs := []models.Conversation{}
	for rows.Next() {
		var conv models.Conversation
		if err := rows.Scan(&conv.ID, &conv.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		convs = append(convs, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	for i := range convs {
		participants, err := r.participantIDs(ctx, convs[i].ID)
		if err != nil {
			return nil, 0, err
		}
		convs[i].ParticipantIDs = participants
	}

	return convs, count, nil
}
