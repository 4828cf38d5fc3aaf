package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/akinalp/pulse/database"
	"github.com/akinalp/pulse/models"
	"github.com/akinalp/pulse/pkg"
)

// sqliteNotificationRepo, NotificationRepository'nin SQLite implementasyonu.
type sqliteNotificationRepo struct {
	db database.TxQuerier
}

// NewSQLiteNotificationRepo, constructor.
func NewSQLiteNotificationRepo(db database.TxQuerier) NotificationRepository {
	return &sqliteNotificationRepo{db: db}
}

func (r *sqliteNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	meta := n.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal notification meta: %w", err)
	}

	query := `
		INSERT INTO notifications (recipient_id, actor_id, type, meta)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_at`

	err = r.db.QueryRowContext(ctx, query,
		n.RecipientID, n.ActorID, string(n.Type), string(metaJSON),
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (r *sqliteNotificationRepo) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT n.id, n.recipient_id, n.actor_id, n.type, n.meta, n.is_read, n.created_at,
		       u.id, u.name, u.avatar_url
		FROM notifications n
		JOIN users u ON u.id = n.actor_id
		WHERE n.recipient_id = ?
		ORDER BY n.created_at DESC, n.id DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		n := models.Notification{Actor: &models.UserSummary{}}
		var metaJSON string
		err := rows.Scan(
			&n.ID, &n.RecipientID, &n.ActorID, &n.Type, &metaJSON, &n.IsRead, &n.CreatedAt,
			&n.Actor.ID, &n.Actor.Name, &n.Actor.AvatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		if err := json.Unmarshal([]byte(metaJSON), &n.Meta); err != nil {
			// Bozuk meta bildirimi düşürmesin — boş map ile devam et.
			n.Meta = map[string]any{}
		}

		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (r *sqliteNotificationRepo) CountUnread(ctx context.Context, recipientID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = ? AND is_read = 0`,
		recipientID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *sqliteNotificationRepo) MarkRead(ctx context.Context, id int64, recipientID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ? AND recipient_id = ?`,
		id, recipientID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
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

func (r *sqliteNotificationRepo) MarkReadBatch(ctx context.Context, recipientID string, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+1)
	args = append(args, recipientID)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(
		`UPDATE notifications SET is_read = 1
		 WHERE recipient_id = ? AND is_read = 0 AND id IN (%s)`,
		strings.Join(placeholders, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return affected, nil
}

func (r *sqliteNotificationRepo) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE recipient_id = ? AND is_read = 0`,
		recipientID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return affected, nil
}

func (r *sqliteNotificationRepo) Delete(ctx context.Context, id int64, recipientID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = ? AND recipient_id = ?`,
		id, recipientID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
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
