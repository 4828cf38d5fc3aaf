// Package repository, veritabanı erişim katmanını tanımlar.
//
// Service katmanı doğrudan SQL yazmaz — repository interface'i üzerinden
// çalışır. Interface sayesinde testlerde fake repository kullanılabilir ve
// service, concrete struct'a değil soyutlamaya bağımlı kalır.
package repository

import (
	"context"

	"github.com/akinalp/pulse/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetSummaries, verilen ID listesi için hafif kullanıcı görünümleri döner.
	// Bildirim serialize ederken actor bilgisi bu yoldan toplanır.
	GetSummaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error)
	Update(ctx context.Context, user *models.User) error
	// UpdatePassword, kullanıcının şifre hash'ini günceller.
	// Şifre sıfırlama akışı tarafından çağrılır — yeni bcrypt hash alır.
	UpdatePassword(ctx context.Context, userID string, newPasswordHash string) error
	Delete(ctx context.Context, id string) error
}
