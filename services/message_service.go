// Package services — Mesaj relay engine'i.
//
// Relay sırası sabittir: validate → persist (tx) → broadcast → notify.
// Broadcast yalnızca kalıcılaştırma başarılıysa yapılır — client'lar
// DB'de olmayan bir mesajı asla görmez.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/akinalp/pulse/database"
	"github.com/akinalp/pulse/models"
	"github.com/akinalp/pulse/pkg"
	"github.com/akinalp/pulse/pkg/metrics"
	"github.com/akinalp/pulse/pkg/ratelimit"
	"github.com/akinalp/pulse/repository"
	"github.com/akinalp/pulse/ws"
)

// MessageService interface'i.
type MessageService interface {
	// Send, mesajı kalıcılaştırır, sohbet odasına yayar ve karşı tarafa
	// bildirim push eder. Gönderen sohbetin tarafı değilse ErrForbidden.
	Send(ctx context.Context, senderID string, req *models.SendMessageRequest) (*models.Message, error)

	// Delete, mesajı siler ve sohbet odasına message_deleted yayar.
	// Yalnızca gönderen silebilir — aksi halde ErrForbidden.
	Delete(ctx context.Context, userID string, messageID int64) error

	// List, sohbetin mesajlarını döner (taraf kontrolü ile).
	List(ctx context.Context, userID string, conversationID int64, limit int, before int64) ([]models.Message, error)
}

// messageService, MessageService implementasyonu.
type messageService struct {
	db          *sql.DB
	messageRepo repository.MessageRepository
	convRepo    repository.ConversationRepository
	userRepo    repository.UserRepository
	notifier    NotificationService
	hub         ws.EventPublisher

	// limiter: kullanıcı başına mesaj hız sınırı. nil ise devre dışı.
	limiter *ratelimit.MessageRateLimiter
}

// NewMessageService, constructor.
// db, mesaj insert'i ile sohbet touch'ını tek transaction'da koşturmak için alınır.
func NewMessageService(
	db *sql.DB,
	messageRepo repository.MessageRepository,
	convRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
	notifier NotificationService,
	hub ws.EventPublisher,
	limiter *ratelimit.MessageRateLimiter,
) MessageService {
	return &messageService{
		db:          db,
		messageRepo: messageRepo,
		convRepo:    convRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		hub:         hub,
		limiter:     limiter,
	}
}

func (s *messageService) Send(ctx context.Context, senderID string, req *models.SendMessageRequest) (*models.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if s.limiter != nil && !s.limiter.Allow(senderID) {
		cooldown := s.limiter.CooldownSeconds(senderID)
		return nil, fmt.Errorf("%w: sending too fast, wait %d seconds", pkg.ErrBadRequest, cooldown)
	}

	conv, err := s.convRepo.GetByID(ctx, req.ConversationID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: conversation not found", pkg.ErrNotFound)
		}
		return nil, err
	}

	if !conv.HasParticipant(senderID) {
		return nil, fmt.Errorf("%w: not a participant of this conversation", pkg.ErrForbidden)
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        req.Content,
		ImageURL:       req.ImageURL,
		VideoURL:       req.VideoURL,
	}

	// Mesaj insert'i ve sohbetin updated_at güncellemesi atomiktir —
	// liste sıralaması ile mesaj geçmişi birbirinden kopamaz.
	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.messageRepo.Create(ctx, tx, msg); err != nil {
			return err
		}
		return s.convRepo.Touch(ctx, tx, conv.ID)
	})
	if err != nil {
		return nil, err
	}

	// Gönderen özeti payload'a eklenir — alıcı ayrı sorgu yapmaz.
	if sender, err := s.userRepo.GetByID(ctx, senderID); err == nil {
		summary := sender.Summary()
		msg.Sender = &summary
	}

	metrics.MessagesRelayed.Inc()

	// Persist başarılı — odadaki herkese (gönderen dahil) yay.
	s.hub.EmitToRoom(ws.ConversationRoom(conv.ID), ws.Event{Op: ws.OpNewMessage, Data: msg})

	// Karşı tarafa bildirim. Self-suppression CreateAndPush içindedir;
	// bildirim hatası mesajı geri almaz, sadece loglanır.
	recipientID := conv.OtherUserID(senderID)
	if _, err := s.notifier.CreateAndPush(ctx, recipientID, senderID, models.NotificationMessage,
		map[string]any{"conversationId": conv.ID}); err != nil {
		log.Printf("[message] failed to push message notification: %v", err)
	}

	return msg, nil
}

func (s *messageService) Delete(ctx context.Context, userID string, messageID int64) error {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	if msg.SenderID != userID {
		return fmt.Errorf("%w: you can only delete your own messages", pkg.ErrForbidden)
	}

	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		return err
	}

	s.hub.EmitToRoom(ws.ConversationRoom(msg.ConversationID), ws.Event{
		Op: ws.OpMessageDeleted,
		Data: ws.MessageDeletedData{
			MessageID:      messageID,
			ConversationID: msg.ConversationID,
		},
	})

	return nil
}

func (s *messageService) List(ctx context.Context, userID string, conversationID int64, limit int, before int64) ([]models.Message, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !conv.HasParticipant(userID) {
		return nil, fmt.Errorf("%w: not a participant of this conversation", pkg.ErrForbidden)
	}

	return s.messageRepo.ListByConversation(ctx, conversationID, limit, before)
}
