// Package repository — FollowRepository interface tanımı.
package repository

import (
	"context"

	"github.com/akinalp/pulse/models"
)

// FollowRepository, takip ilişkisi işlemleri için interface.
type FollowRepository interface {
	// Toggle, takip ilişkisini tersine çevirir: yoksa ekler
	// (following=true), varsa kaldırır (following=false).
	Toggle(ctx context.Context, followerID, followingID string) (*models.FollowResult, error)

	// IsFollowing, follower'ın following'i takip edip etmediğini döner.
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)

	// CountFollowers, kullanıcının takipçi sayısını döner.
	CountFollowers(ctx context.Context, userID string) (int, error)
}
