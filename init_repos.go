// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// main.go'daki wire-up'ı modülerleştirmek için bu dosyaya taşındı.
package main

import (
	"database/sql"

	"github.com/akinalp/pulse/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
// Ayrı değişkenler yerine tek struct: fonksiyon imzaları temiz kalır,
// yeni repository eklendiğinde sadece burası güncellenir.
type Repositories struct {
	User         repository.UserRepository
	Session      repository.SessionRepository
	ResetToken   repository.PasswordResetRepository
	Conversation repository.ConversationRepository
	Message      repository.MessageRepository
	Notification repository.NotificationRepository
	Post         repository.PostRepository
	Follow       repository.FollowRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
// Her NewSQLite* fonksiyonu aynı *sql.DB'yi alır — sql.DB thread-safe
// connection pool'dur, paylaşılması güvenlidir.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:         repository.NewSQLiteUserRepo(conn),
		Session:      repository.NewSQLiteSessionRepo(conn),
		ResetToken:   repository.NewSQLiteResetTokenRepo(conn),
		Conversation: repository.NewSQLiteConversationRepo(conn),
		Message:      repository.NewSQLiteMessageRepo(conn),
		Notification: repository.NewSQLiteNotificationRepo(conn),
		Post:         repository.NewSQLitePostRepo(conn),
		Follow:       repository.NewSQLiteFollowRepo(conn),
	}
}
