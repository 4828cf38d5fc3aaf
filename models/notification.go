// Package models — Bildirim modelleri.
package models

import "time"

// NotificationType, bildirimin türünü temsil eder.
type NotificationType string

// İzin verilen bildirim türleri.
const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
	NotificationMessage NotificationType = "message"
)

// Valid, türün bilinen bir bildirim türü olup olmadığını kontrol eder.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationLike, NotificationComment, NotificationFollow, NotificationMessage:
		return true
	}
	return false
}

// Notification, bir kullanıcıya düşen bildirimi temsil eder.
//
// Meta, türe özgü bağlamı taşır: like/comment için postId ve slug
// (yorumda ek olarak commentId), message için conversationId. Follow için
// boştur. DB'de JSON metni olarak saklanır.
type Notification struct {
	ID          int64            `json:"id"`
	RecipientID string           `json:"recipient_id"`
	ActorID     string           `json:"-"`
	Actor       *UserSummary     `json:"actor"`
	Type        NotificationType `json:"type"`
	Meta        map[string]any   `json:"meta"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
}
