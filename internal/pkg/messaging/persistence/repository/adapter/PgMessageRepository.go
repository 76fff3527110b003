package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	messaging "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/domain"
	repository "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/persistence/repository/port"
)

// PgMessageRepository persists messages in the messaging.message table
// (see scripts/schema.sql).
type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

// Ensure interface compliance at compile time
var _ repository.MessageRepository = (*PgMessageRepository)(nil)

func (r *PgMessageRepository) Create(ctx context.Context, m messaging.Message) error {
	if r == nil || r.pool == nil {
		return errors.New("PgMessageRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO messaging.message (id, sender_id, recipient_id, body, ts, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`, m.ID, m.SenderID, m.RecipientID, m.Text, m.Timestamp, string(m.Status))
	return err
}

func (r *PgMessageRepository) FindByRecipientAndStatus(ctx context.Context, recipientID string, status messaging.Status) ([]messaging.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, sender_id, recipient_id, body, ts, status
		FROM messaging.message
		WHERE recipient_id = $1 AND status = $2
		ORDER BY ts ASC
	`, recipientID, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (r *PgMessageRepository) FindConversation(ctx context.Context, userID, otherUserID string) ([]messaging.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, sender_id, recipient_id, body, ts, status
		FROM messaging.message
		WHERE (sender_id = $1 AND recipient_id = $2)
		   OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY ts ASC
	`, userID, otherUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (r *PgMessageRepository) ListConversations(ctx context.Context, userID string) ([]messaging.ConversationSummary, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT other_id, id, sender_id, recipient_id, body, ts, status
		FROM (
			SELECT DISTINCT ON (other_id) *
			FROM (
				SELECT m.*,
				       CASE WHEN m.sender_id = $1 THEN m.recipient_id ELSE m.sender_id END AS other_id
				FROM messaging.message m
				WHERE m.sender_id = $1 OR m.recipient_id = $1
			) with_partner
			ORDER BY other_id, ts DESC
		) latest
		ORDER BY ts DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []messaging.ConversationSummary
	for rows.Next() {
		var (
			summary messaging.ConversationSummary
			status  string
		)
		m := &summary.LastMessage
		if err := rows.Scan(&summary.OtherUserID, &m.ID, &m.SenderID, &m.RecipientID, &m.Text, &m.Timestamp, &status); err != nil {
			return nil, err
		}
		m.Status = messaging.Status(status)
		out = append(out, summary)
	}
	return out, rows.Err()
}

func (r *PgMessageRepository) UpdateStatusByIDs(ctx context.Context, ids []string, from, to messaging.Status) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgMessageRepository: nil pool")
	}
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE messaging.message
		SET status = $1
		WHERE id = ANY($2) AND status = $3
	`, string(to), ids, string(from))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PgMessageRepository) MarkConversationRead(ctx context.Context, senderID, recipientID string) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgMessageRepository: nil pool")
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE messaging.message
		SET status = 'read'
		WHERE sender_id = $1 AND recipient_id = $2 AND status <> 'read'
	`, senderID, recipientID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PgMessageRepository) AdvanceStatus(ctx context.Context, id string, to messaging.Status) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgMessageRepository: nil pool")
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE messaging.message
		SET status = $2
		WHERE id = $1
		  AND array_position(ARRAY['sent','delivered','read'], status)
		    < array_position(ARRAY['sent','delivered','read'], $2)
	`, id, string(to))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// rowScanner is the subset of pgx.Rows used by scanMessages.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanMessages(rows rowScanner) ([]messaging.Message, error) {
	var msgs []messaging.Message
	for rows.Next() {
		var (
			m      messaging.Message
			status string
		)
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Text, &m.Timestamp, &status); err != nil {
			return nil, err
		}
		m.Status = messaging.Status(status)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
