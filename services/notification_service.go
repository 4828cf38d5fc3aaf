// Package services — Bildirim fan-out engine'i.
//
// Akış: bir domain olayı (beğeni, yorum, takip, mesaj) gerçekleştiğinde
// CreateAndPush çağrılır. Bildirim DB'ye yazılır, actor özeti ile
// zenginleştirilir ve alıcının kullanıcı odasına push edilir.
//
// Kalıcılaştırma + push sırası sabittir: önce DB, sonra WebSocket.
// Alıcı offline ise push sessizce boşa gider — bildirim DB'de durur,
// sonraki listelemede görünür.
package services

import (
	"context"
	"fmt"
	"log"

	"github.com/akinalp/pulse/models"
	"github.com/akinalp/pulse/pkg"
	"github.com/akinalp/pulse/pkg/cache"
	"github.com/akinalp/pulse/pkg/metrics"
	"github.com/akinalp/pulse/repository"
	"github.com/akinalp/pulse/ws"
)

// NotificationService interface'i.
type NotificationService interface {
	// CreateAndPush, bildirimi kaydeder ve alıcıya push eder.
	//
	// Recipient ve actor'ün ikisi de dolu ve farklı olmalı; aksi halde
	// no-op — (nil, nil) döner. Kullanıcı kendi postunu beğendiğinde
	// bildirim oluşmaz, eksik taraf da hata yerine sessizce atlanır.
	CreateAndPush(ctx context.Context, recipientID, actorID string, typ models.NotificationType, meta map[string]any) (*models.Notification, error)

	// List, kullanıcının bildirimlerini yeniden eskiye döner.
	List(ctx context.Context, userID string, limit int) ([]models.Notification, error)

	// CountUnread, okunmamış bildirim sayısını döner.
	CountUnread(ctx context.Context, userID string) (int, error)

	// MarkRead, tek bildirimi okundu işaretler (sahiplik kontrolü ile).
	MarkRead(ctx context.Context, userID string, notificationID int64) error

	// MarkReadBatch, verilen ID alt kümesini okundu işaretler. İdempotent:
	// sahip olunmayan veya zaten okunmuş ID'ler sayılmaz.
	MarkReadBatch(ctx context.Context, userID string, ids []int64) (int64, error)

	// MarkAllRead, kullanıcının tüm bildirimlerini okundu işaretler ve
	// etkilenen kayıt sayısını döner.
	MarkAllRead(ctx context.Context, userID string) (int64, error)

	// Delete, bildirimi kaldırır (sahiplik kontrolü ile).
	Delete(ctx context.Context, userID string, notificationID int64) error
}

// notificationService, NotificationService implementasyonu.
type notificationService struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	hub       ws.EventPublisher

	// actorCache: userID → UserSummary. Aynı actor kısa sürede çok bildirim
	// üretir (beğeni yağmuru) — her push'ta users tablosuna gitmemek için.
	actorCache *cache.TTLCache[string, models.UserSummary]
}

// NewNotificationService, constructor.
func NewNotificationService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	hub ws.EventPublisher,
	actorCache *cache.TTLCache[string, models.UserSummary],
) NotificationService {
	return &notificationService{
		notifRepo:  notifRepo,
		userRepo:   userRepo,
		hub:        hub,
		actorCache: actorCache,
	}
}

func (s *notificationService) CreateAndPush(ctx context.Context, recipientID, actorID string, typ models.NotificationType, meta map[string]any) (*models.Notification, error) {
	// İki taraf da dolu ve farklı olmalı — kendi kendine bildirim yok,
	// eksik taraf FK hatası yerine sessiz no-op.
	if recipientID == "" || actorID == "" || recipientID == actorID {
		return nil, nil
	}

	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown notification type: %s", pkg.ErrBadRequest, typ)
	}

	actor, err := s.actorSummary(ctx, actorID)
	if err != nil {
		return nil, err
	}

	n := &models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Actor:       &actor,
		Type:        typ,
		Meta:        meta,
	}

	// Önce kalıcılaştır — push ancak DB kaydı başarılıysa yapılır.
	if err := s.notifRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	metrics.NotificationsCreated.WithLabelValues(string(typ)).Inc()

	s.hub.EmitToUser(recipientID, ws.Event{Op: ws.OpNotification, Data: n})

	log.Printf("[notification] %s: actor=%s recipient=%s", typ, actorID, recipientID)
	return n, nil
}

func (s *notificationService) List(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	return s.notifRepo.ListByRecipient(ctx, userID, limit)
}

func (s *notificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID string, notificationID int64) error {
	return s.notifRepo.MarkRead(ctx, notificationID, userID)
}

func (s *notificationService) MarkReadBatch(ctx context.Context, userID string, ids []int64) (int64, error) {
	return s.notifRepo.MarkReadBatch(ctx, userID, ids)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

func (s *notificationService) Delete(ctx context.Context, userID string, notificationID int64) error {
	return s.notifRepo.Delete(ctx, notificationID, userID)
}

// actorSummary, actor'ün hafif görünümünü cache üzerinden döner.
func (s *notificationService) actorSummary(ctx context.Context, actorID string) (models.UserSummary, error) {
	if s.actorCache != nil {
		if summary, ok := s.actorCache.Get(actorID); ok {
			return summary, nil
		}
	}

	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return models.UserSummary{}, fmt.Errorf("failed to load notification actor: %w", err)
	}

	summary := user.Summary()
	if s.actorCache != nil {
		s.actorCache.Set(actorID, summary)
	}
	return summary, nil
}
