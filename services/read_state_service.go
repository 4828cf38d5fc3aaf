// Package services — Okundu durumu takibi.
package services

import (
	"context"
	"fmt"

	"github.com/akinalp/pulse/pkg"
	"github.com/akinalp/pulse/repository"
	"github.com/akinalp/pulse/ws"
)

// ReadStateService interface'i.
type ReadStateService interface {
	// MarkConversationRead, sohbette okuyanın GÖNDERMEDİĞİ tüm mesajları
	// okundu işaretler ve odaya message_read yayar. Okuyan kendi
	// mesajlarını etkileyemez. Event, değişen mesaj olmasa da yayılır.
	MarkConversationRead(ctx context.Context, userID string, conversationID int64) error

	// UnreadCounts, kullanıcının toplam okunmamış mesaj ve bildirim
	// sayılarını döner.
	UnreadCounts(ctx context.Context, userID string) (messages int, notifications int, err error)

	// ReadyPayload, bağlantı kurulduğunda gönderilen ready event'inin
	// payload'ını üretir — Hub'ın OnReady callback'ine bağlanır.
	ReadyPayload(ctx context.Context, userID string) (ws.ReadyData, error)
}

// readStateService, ReadStateService implementasyonu.
type readStateService struct {
	convRepo    repository.ConversationRepository
	messageRepo repository.MessageRepository
	notifRepo   repository.NotificationRepository
	hub         ws.EventPublisher
}

// NewReadStateService, constructor.
func NewReadStateService(
	convRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	notifRepo repository.NotificationRepository,
	hub ws.EventPublisher,
) ReadStateService {
	return &readStateService{
		convRepo:    convRepo,
		messageRepo: messageRepo,
		notifRepo:   notifRepo,
		hub:         hub,
	}
}

func (s *readStateService) MarkConversationRead(ctx context.Context, userID string, conversationID int64) error {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}

	if !conv.HasParticipant(userID) {
		return fmt.Errorf("%w: not a participant of this conversation", pkg.ErrForbidden)
	}

	if _, err := s.messageRepo.MarkCounterpartRead(ctx, conversationID, userID); err != nil {
		return err
	}

	// readBy: okuyan kullanıcı. Karşı taraf bu event ile kendi gönderdiği
	// mesajları "okundu" olarak işaretler (mavi tik). Hiç mesaj
	// değişmese de yayınlanır — zaten okunmuş bir sohbeti yeniden açmak
	// karşı taraftaki receipt'i tazeler.
	s.hub.EmitToRoom(ws.ConversationRoom(conversationID), ws.Event{
		Op: ws.OpMessageRead,
		Data: ws.MessageReadData{
			ConversationID: conversationID,
			ReadBy:         userID,
		},
	})

	return nil
}

func (s *readStateService) UnreadCounts(ctx context.Context, userID string) (int, int, error) {
	messages, err := s.messageRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	notifications, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	return messages, notifications, nil
}

func (s *readStateService) ReadyPayload(ctx context.Context, userID string) (ws.ReadyData, error) {
	messages, notifications, err := s.UnreadCounts(ctx, userID)
	if err != nil {
		return ws.ReadyData{}, err
	}
	return ws.ReadyData{
		UserID:              userID,
		UnreadNotifications: notifications,
		UnreadMessages:      messages,
	}, nil
}
