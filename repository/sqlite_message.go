package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/pulse/database"
	"github.com/akinalp/pulse/models"
	"github.com/akinalp/pulse/pkg"
)

// sqliteMessageRepo, MessageRepository'nin SQLite implementasyonu.
type sqliteMessageRepo struct {
	db database.TxQuerier
}

// NewSQLiteMessageRepo, constructor.
func NewSQLiteMessageRepo(db database.TxQuerier) MessageRepository {
	return &sqliteMessageRepo{db: db}
}

func (r *sqliteMessageRepo) Create(ctx context.Context, tx database.TxQuerier, msg *models.Message) error {
	q := r.db
	if tx != nil {
		q = tx
	}

	query := `
		INSERT INTO messages (conversation_id, sender_id, content, image_url, video_url)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err := q.QueryRowContext(ctx, query,
		msg.ConversationID,
		msg.SenderID,
		msg.Content,
		msg.ImageURL,
		msg.VideoURL,
	).Scan(&msg.ID, &msg.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

func (r *sqliteMessageRepo) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	query := `
		SELECT m.id, m.conversation_id, m.sender_id, m.content, m.image_url, m.video_url,
		       m.is_read, m.created_at, u.id, u.name, u.avatar_url
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.id = ?`

	msg := &models.Message{Sender: &models.UserSummary{}}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Content, &msg.ImageURL,
		&msg.VideoURL, &msg.IsRead, &msg.CreatedAt,
		&msg.Sender.ID, &msg.Sender.Name, &msg.Sender.AvatarURL,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return msg, nil
}

func (r *sqliteMessageRepo) ListByConversation(ctx context.Context, conversationID int64, limit int, before int64) ([]models.Message, error) {
	// before > 0 ise o ID'den eski mesajlar döner (cursor pagination).
	// Sorgu yeniden eskiye çeker, sonuç ters çevrilip eskiden yeniye döner.
	query := `
		SELECT m.id, m.conversation_id, m.sender_id, m.content, m.image_url, m.video_url,
		       m.is_read, m.created_at, u.id, u.name, u.avatar_url
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.conversation_id = ?`

	args := []any{conversationID}
	if before > 0 {
		query += ` AND m.id < ?`
		args = append(args, before)
	}
	query += ` ORDER BY m.id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		msg := models.Message{Sender: &models.UserSummary{}}
		err := rows.Scan(
			&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Content, &msg.ImageURL,
			&msg.VideoURL, &msg.IsRead, &msg.CreatedAt,
			&msg.Sender.ID, &msg.Sender.Name, &msg.Sender.AvatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	// Ters çevir: frontend eskiden yeniye bekler.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (r *sqliteMessageRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteMessageRepo) MarkCounterpartRead(ctx context.Context, conversationID int64, readerID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE messages SET is_read = 1
		 WHERE conversation_id = ? AND sender_id != ? AND is_read = 0`,
		conversationID, readerID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return affected, nil
}

func (r *sqliteMessageRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM messages m
		JOIN conversations c ON c.id = m.conversation_id
		WHERE (c.user1_id = ? OR c.user2_id = ?)
		  AND m.sender_id != ? AND m.is_read = 0`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, userID, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}

	return count, nil
}
