// Package models — Blog post, beğeni ve yorum modelleri.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Post, bir blog yazısını temsil eder.
type Post struct {
	ID        int64     `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Body      string    `json:"body"`
	LikeCount int       `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment, bir post'a yapılan yorumu temsil eder.
type Comment struct {
	ID        int64        `json:"id"`
	PostID    int64        `json:"post_id"`
	AuthorID  string       `json:"-"`
	Author    *UserSummary `json:"author"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
}

// CreatePostRequest, post oluşturma isteği.
type CreatePostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CreateCommentRequest, yorum ekleme isteği.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// Validate, CreateCommentRequest geçerlilik kontrolü.
func (r *CreateCommentRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	if r.Content == "" {
		return fmt.Errorf("content is required")
	}
	if utf8.RuneCountInString(r.Content) > 1000 {
		return fmt.Errorf("comment cannot exceed 1000 characters")
	}
	return nil
}

// LikeResult, beğeni toggle işleminin sonucu.
// Liked=true yeni beğeni eklendi, false mevcut beğeni kaldırıldı demektir.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}
