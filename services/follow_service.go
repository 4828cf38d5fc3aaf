// Package services — Takip ilişkisi.
package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/akinalp/pulse/models"
	"github.com/akinalp/pulse/pkg"
	"github.com/akinalp/pulse/repository"
)

// FollowService interface'i.
type FollowService interface {
	// Toggle, takip ilişkisini tersine çevirir. Yalnızca yeni takip
	// bildirim üretir — takibi bırakmak bildirim üretmez.
	Toggle(ctx context.Context, followerID, followingID string) (*models.FollowResult, error)
}

// followService, FollowService implementasyonu.
type followService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	notifier   NotificationService
}

// NewFollowService, constructor.
func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	notifier NotificationService,
) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

func (s *followService) Toggle(ctx context.Context, followerID, followingID string) (*models.FollowResult, error) {
	if followerID == followingID {
		return nil, fmt.Errorf("%w: cannot follow yourself", pkg.ErrBadRequest)
	}

	if _, err := s.userRepo.GetByID(ctx, followingID); err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", pkg.ErrNotFound)
		}
		return nil, err
	}

	result, err := s.followRepo.Toggle(ctx, followerID, followingID)
	if err != nil {
		return nil, err
	}

	if result.Following {
		if _, err := s.notifier.CreateAndPush(ctx, followingID, followerID,
			models.NotificationFollow, nil); err != nil {
			log.Printf("[follow] failed to push follow notification: %v", err)
		}
	}

	return result, nil
}
