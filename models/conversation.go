// Package models — İkili sohbet (conversation) ve mesaj modelleri.
//
// Bir conversation tam olarak iki kullanıcı arasındadır. Çift kanonik
// sırada saklanır (user1_id < user2_id) — aynı iki kullanıcı için hangi
// taraf başlatırsa başlatsın tek kayıt oluşur.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxMessageLength, bir mesajın metin içeriğinin maksimum uzunluğu (rune).
const MaxMessageLength = 2000

// Conversation, iki kullanıcı arasındaki sohbetin DB kaydı.
type Conversation struct {
	ID        int64     `json:"id"`
	User1ID   string    `json:"user1_id"`
	User2ID   string    `json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OtherUserID, sohbetin verilen kullanıcı olmayan tarafını döner.
func (c *Conversation) OtherUserID(userID string) string {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// HasParticipant, kullanıcının bu sohbetin tarafı olup olmadığını kontrol eder.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// CanonicalPair, iki kullanıcı ID'sini kanonik sıraya sokar (küçük önce).
func CanonicalPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// ConversationSummary, sohbet listesi için zenginleştirilmiş görünüm.
// Karşı tarafın özeti, son mesaj ve okunmamış sayısı tek seferde döner —
// frontend liste ekranını tek request ile çizer.
type ConversationSummary struct {
	ID          int64       `json:"id"`
	OtherUser   UserSummary `json:"other_user"`
	LastMessage *Message    `json:"last_message"`
	UnreadCount int         `json:"unread_count"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Message, bir sohbet mesajını temsil eder.
// Content, ImageURL ve VideoURL'den en az biri doludur.
type Message struct {
	ID             int64        `json:"id"`
	ConversationID int64        `json:"conversationId"`
	SenderID       string       `json:"senderId"`
	Sender         *UserSummary `json:"sender,omitempty"`
	Content        *string      `json:"content"`
	ImageURL       *string      `json:"imageUrl"`
	VideoURL       *string      `json:"videoUrl"`
	IsRead         bool         `json:"isRead"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// CreateConversationRequest, sohbet başlatma isteği.
type CreateConversationRequest struct {
	UserID string `json:"user_id"` // karşı tarafın ID'si
}

// Validate, CreateConversationRequest geçerlilik kontrolü.
func (r *CreateConversationRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("user_id is required")
	}
	return nil
}

// SendMessageRequest, mesaj gönderme payload'ı.
// Hem WebSocket send_message event'inde hem HTTP endpoint'inde kullanılır.
type SendMessageRequest struct {
	ConversationID int64   `json:"conversationId"`
	Content        *string `json:"content"`
	ImageURL       *string `json:"imageUrl"`
	VideoURL       *string `json:"videoUrl"`
}

// Validate, mesajın en az bir içerik alanı taşıdığını doğrular.
// Sadece whitespace içeren content boş sayılır.
func (r *SendMessageRequest) Validate() error {
	if r.ConversationID <= 0 {
		return fmt.Errorf("conversationId is required")
	}

	hasContent := r.Content != nil && strings.TrimSpace(*r.Content) != ""
	hasImage := r.ImageURL != nil && *r.ImageURL != ""
	hasVideo := r.VideoURL != nil && *r.VideoURL != ""

	if !hasContent && !hasImage && !hasVideo {
		return fmt.Errorf("message must have content, image, or video")
	}

	if hasContent && utf8.RuneCountInString(*r.Content) > MaxMessageLength {
		return fmt.Errorf("message content cannot exceed %d characters", MaxMessageLength)
	}

	return nil
}
