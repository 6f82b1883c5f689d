package messages

import (
	"context"
	"fmt"
	"strings"

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

func (r *PostgresRepository) Create(ctx context.Context, msg *models.Message) error {
	q := `
		INSERT INTO messages (id, conversation_id, sender_id, body, sent_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, q, msg.ID, msg.ConversationID, msg.SenderID, msg.Body, msg.SentAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// escapeLike makes a user-supplied substring safe inside a LIKE pattern so
// '%' and '_' match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// ListPage scopes every query to messages in conversations the requesting
// user belongs to, then applies the recognized filters. The bodyContains
// match is case-sensitive. Ordering by (sent_at, id) is total.
func (r *PostgresRepository) ListPage(ctx context.Context, scopeUserID string, q query.MessageQuery) ([]models.Message, int64, error) {
	conds := []string{`EXISTS (SELECT 1 FROM conversation_participants scope WHERE scope.conversation_id = m.conversation_id AND scope.user_id = $1)`}
	args := []any{scopeUserID}

	if q.Conversation != "" {
		args = append(args, q.Conversation)
		conds = append(conds, fmt.Sprintf(`m.conversation_id = $%d`, len(args)))
	}
	if q.Sender != "" {
		args = append(args, q.Sender)
		conds = append(conds, fmt.Sprintf(`m.sender_id = $%d`, len(args)))
	}
	if q.SentAfter != nil {
		args = append(args, *q.SentAfter)
		conds = append(conds, fmt.Sprintf(`m.sent_at > $%d`, len(args)))
	}
	if q.SentBefore != nil {
		args = append(args, *q.SentBefore)
		conds = append(conds, fmt.Sprintf(`m.sent_at < $%d`, len(args)))
	}
	if q.BodyContains != "" {
		args = append(args, "%"+escapeLike(q.BodyContains)+"%")
		conds = append(conds, fmt.Sprintf(`m.body LIKE $%d ESCAPE '\'`, len(args)))
	}

	where := strings.Join(conds, " AND ")

	var count int64
	countQuery := `SELECT COUNT(*) FROM messages m WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	args = append(args, query.PageSize, query.Offset(q.Page))
	listQuery := fmt.Sprintf(`
		SELECT m.id, m.conversation_id, m.sender_id, m.body, m.sent_at
		FROM messages m
		WHERE %s
		ORDER BY m.sent_at, m.id
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	msgs := []models.Message{}
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Body, &msg.SentAt); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return msgs, count, nil
}
