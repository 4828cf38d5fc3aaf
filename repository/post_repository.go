// Package repository — PostRepository interface tanımı.
package repository

import (
	"context"

	"github.com/akinalp/pulse/models"
)

// PostRepository, blog post, beğeni ve yorum işlemleri için interface.
type PostRepository interface {
	// Create, yeni post kaydeder; ID ve zaman alanları doldurulur.
	// Slug benzersizdir — çakışmada pkg.ErrAlreadyExists döner.
	Create(ctx context.Context, post *models.Post) error

	// GetByID, post'u beğeni sayısıyla birlikte döner.
	GetByID(ctx context.Context, id int64) (*models.Post, error)

	// List, postları yeniden eskiye döner.
	List(ctx context.Context, limit int) ([]models.Post, error)

	// ToggleLike, beğeniyi tersine çevirir: yoksa ekler (liked=true),
	// varsa kaldırır (liked=false). Güncel beğeni sayısı ile döner.
	ToggleLike(ctx context.Context, postID int64, userID string) (*models.LikeResult, error)

	// CreateComment, post'a yorum ekler; ID ve created_at doldurulur.
	CreateComment(ctx context.Context, comment *models.Comment) error

	// ListComments, post'un yorumlarını eskiden yeniye, yazar özetiyle döner.
	ListComments(ctx context.Context, postID int64) ([]models.Comment, error)

	// CountComments, post'un toplam yorum sayısını döner.
	CountComments(ctx context.Context, postID int64) (int, error)
}
