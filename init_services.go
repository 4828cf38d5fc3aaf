// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
//
// Sıralama: NotificationService, MessageService / PostService /
// FollowService'den ÖNCE oluşturulmalı — üçü de bildirim push eder.
package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/akinalp/pulse/config"
	"github.com/akinalp/pulse/models"
	"github.com/akinalp/pulse/pkg/cache"
	"github.com/akinalp/pulse/pkg/email"
	"github.com/akinalp/pulse/pkg/ratelimit"
	"github.com/akinalp/pulse/services"
	"github.com/akinalp/pulse/ws"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth         services.AuthService
	Conversation services.ConversationService
	Message      services.MessageService
	Notification services.NotificationService
	ReadState    services.ReadStateService
	Post         services.PostService
	Follow       services.FollowService
}

// RateLimiters, tüm rate limiter instance'larını tutan container.
type RateLimiters struct {
	Login   *ratelimit.LoginRateLimiter
	Message *ratelimit.MessageRateLimiter
}

// initServices, tüm service'leri ve rate limiter'ları oluşturur.
// hub, service'ler arası paylaşılan event publisher'dır.
func initServices(db *sql.DB, repos *Repositories, hub ws.EventPublisher, cfg *config.Config) (*Services, *RateLimiters) {
	// ─── Email service (opsiyonel) ───
	var emailSender email.EmailSender
	if cfg.Email.ResendAPIKey != "" && cfg.Email.FromEmail != "" && cfg.Email.AppURL != "" {
		emailSender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AppURL)
		log.Printf("[main] email service enabled (from=%s)", cfg.Email.FromEmail)
	} else {
		log.Println("[main] email service disabled (RESEND_API_KEY, RESEND_FROM or APP_URL not set)")
	}

	// ─── Rate Limiters ───
	loginLimiter := ratelimit.NewLoginRateLimiter(5, 2*time.Minute)
	messageLimiter := ratelimit.NewMessageRateLimiter(5, 5*time.Second, 15*time.Second)

	// ─── Actor cache ───
	// Bildirim push'larında actor özetleri için. 30sn TTL yeterli —
	// isim/avatar değişiklikleri en geç 30sn sonra bildirimlere yansır.
	actorCache := cache.New[string, models.UserSummary](30*time.Second, 5*time.Minute)

	authService := services.NewAuthService(
		repos.User, repos.Session, repos.ResetToken, emailSender,
		cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry,
	)

	// NotificationService — mesaj/post/takip service'lerinden ÖNCE
	notificationService := services.NewNotificationService(
		repos.Notification, repos.User, hub, actorCache,
	)

	conversationService := services.NewConversationService(repos.Conversation, repos.User)
	messageService := services.NewMessageService(
		db, repos.Message, repos.Conversation, repos.User,
		notificationService, hub, messageLimiter,
	)
	readStateService := services.NewReadStateService(
		repos.Conversation, repos.Message, repos.Notification, hub,
	)
	postService := services.NewPostService(repos.Post, repos.User, notificationService, hub)
	followService := services.NewFollowService(repos.Follow, repos.User, notificationService)

	svcs := &Services{
		Auth:         authService,
		Conversation: conversationService,
		Message:      messageService,
		Notification: notificationService,
		ReadState:    readStateService,
		Post:         postService,
		Follow:       followService,
	}

	limiters := &RateLimiters{
		Login:   loginLimiter,
		Message: messageLimiter,
	}

	return svcs, limiters
}
