// Package repository — NotificationRepository interface tanımı.
package repository

import (
	"context"

	"github.com/akinalp/pulse/models"
)

// NotificationRepository, bildirim veritabanı işlemleri için interface.
type NotificationRepository interface {
	// Create, yeni bildirimi kaydeder; ID ve created_at doldurulur.
	// Meta, JSON metni olarak serialize edilip saklanır.
	Create(ctx context.Context, n *models.Notification) error

	// ListByRecipient, kullanıcının bildirimlerini yeniden eskiye döner.
	// limit <= 0 ise varsayılan 50 uygulanır.
	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]models.Notification, error)

	// CountUnread, kullanıcının okunmamış bildirim sayısını döner.
	CountUnread(ctx context.Context, recipientID string) (int, error)

	// MarkRead, tek bir bildirimi okundu işaretler.
	// Bildirim recipientID'ye ait değilse pkg.ErrNotFound döner —
	// başkasının bildirimini okundu yapmak mümkün değildir.
	MarkRead(ctx context.Context, id int64, recipientID string) error

	// MarkReadBatch, verilen ID alt kümesini okundu işaretler ve etkilenen
	// kayıt sayısını döner. Sahip olunmayan veya zaten okunmuş ID'ler
	// sessizce atlanır — operasyon idempotenttir.
	MarkReadBatch(ctx context.Context, recipientID string, ids []int64) (int64, error)

	// MarkAllRead, kullanıcının tüm bildirimlerini okundu işaretler.
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)

	// Delete, bildirimi siler (sahiplik kontrolü ile).
	Delete(ctx context.Context, id int64, recipientID string) error
}
