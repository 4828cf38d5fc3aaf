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

// sqliteConversationRepo, ConversationRepository'nin SQLite implementasyonu.
type sqliteConversationRepo struct {
	db database.TxQuerier
}

// NewSQLiteConversationRepo, constructor.
func NewSQLiteConversationRepo(db database.TxQuerier) ConversationRepository {
	return &sqliteConversationRepo{db: db}
}

func (r *sqliteConversationRepo) GetOrCreate(ctx context.Context, userA, userB string) (*models.Conversation, error) {
	user1, user2 := models.CanonicalPair(userA, userB)

	// Önce mevcut kaydı dene — en yaygın durum.
	conv, err := r.getByPair(ctx, user1, user2)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, pkg.ErrNotFound) {
		return nil, err
	}

	query := `
		INSERT INTO conversations (user1_id, user2_id)
		VALUES (?, ?)
		RETURNING id, created_at, updated_at`

	conv = &models.Conversation{User1ID: user1, User2ID: user2}
	err = r.db.QueryRowContext(ctx, query, user1, user2).Scan(
		&conv.ID, &conv.CreatedAt, &conv.UpdatedAt,
	)

	if err != nil {
		// İki goroutine aynı anda oluşturmaya çalışırsa biri UNIQUE'e takılır —
		// bu durumda kazananın kaydını oku.
		if isUniqueViolation(err) {
			return r.getByPair(ctx, user1, user2)
		}
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	return conv, nil
}

func (r *sqliteConversationRepo) getByPair(ctx context.Context, user1, user2 string) (*models.Conversation, error) {
	query := `
		SELECT id, user1_id, user2_id, created_at, updated_at
		FROM conversations WHERE user1_id = ? AND user2_id = ?`

	conv := &models.Conversation{}
	err := r.db.QueryRowContext(ctx, query, user1, user2).Scan(
		&conv.ID, &conv.User1ID, &conv.User2ID, &conv.CreatedAt, &conv.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation by pair: %w", err)
	}

	return conv, nil
}

func (r *sqliteConversationRepo) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	query := `
		SELECT id, user1_id, user2_id, created_at, updated_at
		FROM conversations WHERE id = ?`

	conv := &models.Conversation{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&conv.ID, &conv.User1ID, &conv.User2ID, &conv.CreatedAt, &conv.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	return conv, nil
}

func (r *sqliteConversationRepo) Touch(ctx context.Context, tx database.TxQuerier, id int64) error {
	// tx nil ise repo'nun kendi bağlantısı kullanılır — mesaj insert'i ile
	// aynı transaction'da çalışabilmek için querier dışarıdan alınır.
	q := r.db
	if tx != nil {
		q = tx
	}

	_, err := q.ExecContext(ctx,
		`UPDATE conversations SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to touch conversation: %w", err)
	}
	return nil
}

func (r *sqliteConversationRepo) ListByUser(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	// Tek sorguda: karşı taraf bilgisi, son mesaj ve okunmamış sayısı.
	// Okunmamış = karşı tarafın gönderdiği, is_read = 0 mesajlar.
	query := `
		SELECT
			c.id, c.updated_at,
			u.id, u.name, u.avatar_url,
			m.id, m.sender_id, m.content, m.image_url, m.video_url, m.is_read, m.created_at,
			(SELECT COUNT(*) FROM messages
			 WHERE conversation_id = c.id AND sender_id != ? AND is_read = 0)
		FROM conversations c
		JOIN users u ON u.id = CASE WHEN c.user1_id = ? THEN c.user2_id ELSE c.user1_id END
		LEFT JOIN messages m ON m.id = (
			SELECT id FROM messages
			WHERE conversation_id = c.id
			ORDER BY created_at DESC, id DESC LIMIT 1
		)
		WHERE c.user1_id = ? OR c.user2_id = ?
		ORDER BY c.updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, userID, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	summaries := []models.ConversationSummary{}
	for rows.Next() {
		var s models.ConversationSummary
		var msgID sql.NullInt64
		var msgSender, msgContent, msgImage, msgVideo sql.NullString
		var msgRead sql.NullBool
		var msgCreated sql.NullTime

		err := rows.Scan(
			&s.ID, &s.UpdatedAt,
			&s.OtherUser.ID, &s.OtherUser.Name, &s.OtherUser.AvatarURL,
			&msgID, &msgSender, &msgContent, &msgImage, &msgVideo, &msgRead, &msgCreated,
			&s.UnreadCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation summary: %w", err)
		}

		if msgID.Valid {
			s.LastMessage = &models.Message{
				ID:             msgID.Int64,
				ConversationID: s.ID,
				SenderID:       msgSender.String,
				IsRead:         msgRead.Bool,
				CreatedAt:      msgCreated.Time,
			}
			if msgContent.Valid {
				s.LastMessage.Content = &msgContent.String
			}
			if msgImage.Valid {
				s.LastMessage.ImageURL = &msgImage.String
			}
			if msgVideo.Valid {
				s.LastMessage.VideoURL = &msgVideo.String
			}
		}

		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

func (r *sqliteConversationRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
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
