// Package repository — MessageRepository interface tanımı.
package repository

import (
	"context"

	"github.com/akinalp/pulse/database"
	"github.com/akinalp/pulse/models"
)

// MessageRepository, sohbet mesajları için veritabanı interface'i.
type MessageRepository interface {
	// Create, yeni mesajı kaydeder ve ID, created_at alanlarını doldurur.
	// Querier dışarıdan alınır — sohbetin updated_at güncellemesiyle aynı
	// transaction'da çalışır.
	Create(ctx context.Context, tx database.TxQuerier, msg *models.Message) error

	// GetByID, mesajı gönderen özeti ile birlikte döner.
	GetByID(ctx context.Context, id int64) (*models.Message, error)

	// ListByConversation, sohbetin mesajlarını eskiden yeniye döner.
	// limit <= 0 ise tüm mesajlar döner.
	ListByConversation(ctx context.Context, conversationID int64, limit int, before int64) ([]models.Message, error)

	// Delete, mesajı siler.
	Delete(ctx context.Context, id int64) error

	// MarkCounterpartRead, sohbette readerID'nin GÖNDERMEDİĞİ tüm mesajları
	// okundu işaretler. Okuyan kendi mesajlarını okundu yapamaz — okundu
	// bilgisi karşı tarafın mesajları için anlamlıdır.
	MarkCounterpartRead(ctx context.Context, conversationID int64, readerID string) (int64, error)

	// CountUnread, kullanıcının tüm sohbetlerindeki okunmamış mesaj sayısı.
	CountUnread(ctx context.Context, userID string) (int, error)
}
