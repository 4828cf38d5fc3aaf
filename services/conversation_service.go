// Package services — Sohbet yönetimi.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/akinalp/pulse/models"
	"github.com/akinalp/pulse/pkg"
	"github.com/akinalp/pulse/repository"
)

// ConversationService interface'i.
type ConversationService interface {
	// Start, verilen kullanıcıyla sohbet başlatır; zaten varsa mevcut
	// sohbeti döner. Kendinle sohbet başlatılamaz.
	Start(ctx context.Context, userID, otherUserID string) (*models.Conversation, error)

	// Get, sohbeti döner (taraf kontrolü ile).
	Get(ctx context.Context, userID string, conversationID int64) (*models.Conversation, error)

	// List, kullanıcının sohbetlerini zenginleştirilmiş görünümle döner.
	List(ctx context.Context, userID string) ([]models.ConversationSummary, error)

	// Delete, sohbeti ve tüm mesajlarını siler (taraf kontrolü ile).
	Delete(ctx context.Context, userID string, conversationID int64) error
}

// conversationService, ConversationService implementasyonu.
type conversationService struct {
	convRepo repository.ConversationRepository
	userRepo repository.UserRepository
}

// NewConversationService, constructor.
func NewConversationService(
	convRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
) ConversationService {
	return &conversationService{
		convRepo: convRepo,
		userRepo: userRepo,
	}
}

func (s *conversationService) Start(ctx context.Context, userID, otherUserID string) (*models.Conversation, error) {
	if userID == otherUserID {
		return nil, fmt.Errorf("%w: cannot start a conversation with yourself", pkg.ErrBadRequest)
	}

	// Karşı taraf gerçekten var mı?
	if _, err := s.userRepo.GetByID(ctx, otherUserID); err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", pkg.ErrNotFound)
		}
		return nil, err
	}

	return s.convRepo.GetOrCreate(ctx, userID, otherUserID)
}

func (s *conversationService) Get(ctx context.Context, userID string, conversationID int64) (*models.Conversation, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !conv.HasParticipant(userID) {
		return nil, fmt.Errorf("%w: not a participant of this conversation", pkg.ErrForbidden)
	}

	return conv, nil
}

func (s *conversationService) List(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	return s.convRepo.ListByUser(ctx, userID)
}

func (s *conversationService) Delete(ctx context.Context, userID string, conversationID int64) error {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}

	if !conv.HasParticipant(userID) {
		return fmt.Errorf("%w: not a participant of this conversation", pkg.ErrForbidden)
	}

	return s.convRepo.Delete(ctx, conversationID)
}
