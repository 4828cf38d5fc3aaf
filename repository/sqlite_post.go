package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/pulse/database"
	"github.com/akinalp/pulse/models"
	"github.com/akinalp/pulse/pkg"
)

// sqlitePostRepo, PostRepository'nin SQLite implementasyonu.
type sqlitePostRepo struct {
	db database.TxQuerier
}

// NewSQLitePostRepo, constructor.
func NewSQLitePostRepo(db database.TxQuerier) PostRepository {
	return &sqlitePostRepo{db: db}
}

func (r *sqlitePostRepo) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (author_id, title, slug, body)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, post.AuthorID, post.Title, post.Slug, post.Body).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: a post with this title already exists", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *sqlitePostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT p.id, p.author_id, p.title, p.slug, p.body, p.created_at, p.updated_at,
		       (SELECT COUNT(*) FROM post_likes WHERE post_id = p.id)
		FROM posts p WHERE p.id = ?`

	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.AuthorID, &post.Title, &post.Slug, &post.Body,
		&post.CreatedAt, &post.UpdatedAt, &post.LikeCount,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

func (r *sqlitePostRepo) List(ctx context.Context, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT p.id, p.author_id, p.title, p.slug, p.body, p.created_at, p.updated_at,
		       (SELECT COUNT(*) FROM post_likes WHERE post_id = p.id)
		FROM posts p
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Slug, &p.Body, &p.CreatedAt, &p.UpdatedAt, &p.LikeCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

func (r *sqlitePostRepo) ToggleLike(ctx context.Context, postID int64, userID string) (*models.LikeResult, error) {
	// Önce silmeyi dene — satır silindiyse beğeni vardı, toggle kaldırdı.
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id = ? AND user_id = ?`, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}

	liked := false
	if affected == 0 {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO post_likes (post_id, user_id) VALUES (?, ?)`, postID, userID)
		if err != nil {
			// Eşzamanlı çift tıklama UNIQUE'e takılabilir — beğeni zaten var.
			if !isUniqueViolation(err) {
				return nil, fmt.Errorf("failed to insert like: %w", err)
			}
		}
		liked = true
	}

	var count int
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM post_likes WHERE post_id = ?`, postID).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	return &models.LikeResult{Liked: liked, LikeCount: count}, nil
}

func (r *sqlitePostRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, author_id, content)
		VALUES (?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		comment.PostID, comment.AuthorID, comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *sqlitePostRepo) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.content, c.created_at,
		       u.id, u.name, u.avatar_url
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = ?
		ORDER BY c.created_at ASC, c.id ASC`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		c := models.Comment{Author: &models.UserSummary{}}
		err := rows.Scan(
			&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt,
			&c.Author.ID, &c.Author.Name, &c.Author.AvatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (r *sqlitePostRepo) CountComments(ctx context.Context, postID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE post_id = ?`, postID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}
