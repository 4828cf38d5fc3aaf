// Package services — Post, beğeni ve yorum işlemleri.
//
// Beğeni ve yorum iki kanala yayılır:
// 1. Post sahibine bildirim (kullanıcı odasına, self-suppression ile)
// 2. Post odasına canlı sayaç eventi (postu o an açık tutan herkese)
package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode"

	"github.com/akinalp/pulse/models"
	"github.com/akinalp/pulse/pkg"
	"github.com/akinalp/pulse/repository"
	"github.com/akinalp/pulse/ws"
)

// PostService interface'i.
type PostService interface {
	Create(ctx context.Context, authorID, title, body string) (*models.Post, error)
	Get(ctx context.Context, postID int64) (*models.Post, error)
	List(ctx context.Context, limit int) ([]models.Post, error)

	// ToggleLike, beğeniyi tersine çevirir. Yalnızca yeni beğeni
	// bildirim üretir — beğeni geri çekmek bildirim üretmez.
	ToggleLike(ctx context.Context, userID string, postID int64) (*models.LikeResult, error)

	// AddComment, yorum ekler ve post sahibine bildirim push eder.
	AddComment(ctx context.Context, userID string, postID int64, req *models.CreateCommentRequest) (*models.Comment, error)

	ListComments(ctx context.Context, postID int64) ([]models.Comment, error)
}

// postService, PostService implementasyonu.
type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	notifier NotificationService
	hub      ws.EventPublisher
}

// NewPostService, constructor.
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	notifier NotificationService,
	hub ws.EventPublisher,
) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
		notifier: notifier,
		hub:      hub,
	}
}

func (s *postService) Create(ctx context.Context, authorID, title, body string) (*models.Post, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return nil, fmt.Errorf("%w: title and body are required", pkg.ErrBadRequest)
	}

	slug := slugify(title)
	if slug == "" {
		return nil, fmt.Errorf("%w: title must contain at least one letter or digit", pkg.ErrBadRequest)
	}

	post := &models.Post{AuthorID: authorID, Title: title, Slug: slug, Body: body}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err // aynı slug'lı post varsa ErrAlreadyExists
	}

	return post, nil
}

// slugify, başlıktan URL-güvenli slug üretir: küçük harf, harf/rakam dışı
// karakterler atılır, boşluklar tire olur. "Go'da Kanallar" → "goda-kanallar".
func slugify(title string) string {
	var b strings.Builder
	lastDash := true // baştaki tireleri bastır
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func (s *postService) Get(ctx context.Context, postID int64) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

func (s *postService) List(ctx context.Context, limit int) ([]models.Post, error) {
	return s.postRepo.List(ctx, limit)
}

func (s *postService) ToggleLike(ctx context.Context, userID string, postID int64) (*models.LikeResult, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	result, err := s.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	action := "unliked"
	if result.Liked {
		action = "liked"
	}

	// Canlı sayaç: postu açık tutan herkes güncel beğeni sayısını görür.
	s.hub.EmitToRoom(ws.PostRoom(postID), ws.Event{
		Op: ws.OpPostLikeUpdated,
		Data: map[string]any{
			"postId":    postID,
			"likeCount": result.LikeCount,
			"action":    action,
		},
	})

	// Bildirim SADECE yeni beğenide — geri çekme sessizdir.
	if result.Liked {
		if _, err := s.notifier.CreateAndPush(ctx, post.AuthorID, userID, models.NotificationLike,
			map[string]any{"postId": postID, "slug": post.Slug}); err != nil {
			log.Printf("[post] failed to push like notification: %v", err)
		}
	}

	return result, nil
}

func (s *postService) AddComment(ctx context.Context, userID string, postID int64, req *models.CreateCommentRequest) (*models.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: userID,
		Content:  req.Content,
	}
	if err := s.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if author, err := s.userRepo.GetByID(ctx, userID); err == nil {
		summary := author.Summary()
		comment.Author = &summary
	}

	commentCount, err := s.postRepo.CountComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	s.hub.EmitToRoom(ws.PostRoom(postID), ws.Event{
		Op: ws.OpPostCommentCreated,
		Data: map[string]any{
			"postId":       postID,
			"comment":      comment,
			"commentCount": commentCount,
		},
	})

	if _, err := s.notifier.CreateAndPush(ctx, post.AuthorID, userID, models.NotificationComment,
		map[string]any{"postId": postID, "slug": post.Slug, "commentId": comment.ID}); err != nil {
		log.Printf("[post] failed to push comment notification: %v", err)
	}

	return comment, nil
}

func (s *postService) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	return s.postRepo.ListComments(ctx, postID)
}
