// Package repository — ConversationRepository interface tanımı.
package repository

import (
	"context"

	"github.com/akinalp/pulse/database"
	"github.com/akinalp/pulse/models"
)

// ConversationRepository, ikili sohbet veritabanı işlemleri için interface.
type ConversationRepository interface {
	// GetOrCreate, iki kullanıcı arasındaki sohbeti döner; yoksa oluşturur.
	// Çift kanonik sıraya sokulur — UNIQUE(user1_id, user2_id) kısıtı
	// sayesinde aynı çift için asla ikinci kayıt oluşmaz.
	GetOrCreate(ctx context.Context, userA, userB string) (*models.Conversation, error)

	// GetByID, sohbeti ID'ye göre döner. Bulunamazsa pkg.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.Conversation, error)

	// Touch, updated_at'i şimdiki zamana çeker — yeni mesaj geldiğinde
	// sohbet liste sıralamasının üstüne çıkması için.
	Touch(ctx context.Context, tx database.TxQuerier, id int64) error

	// ListByUser, kullanıcının tüm sohbetlerini zenginleştirilmiş görünümle
	// döner: karşı taraf özeti, son mesaj ve okunmamış sayısı.
	// updated_at'e göre yeniden eskiye sıralıdır.
	ListByUser(ctx context.Context, userID string) ([]models.ConversationSummary, error)

	// Delete, sohbeti ve (FK cascade ile) tüm mesajlarını siler.
	Delete(ctx context.Context, id int64) error
}
