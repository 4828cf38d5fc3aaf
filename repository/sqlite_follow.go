package repository

import (
	"context"
	"fmt"

	"github.com/akinalp/pulse/database"
	"github.com/akinalp/pulse/models"
)

// sqliteFollowRepo, FollowRepository'nin SQLite implementasyonu.
type sqliteFollowRepo struct {
	db database.TxQuerier
}

// NewSQLiteFollowRepo, constructor.
func NewSQLiteFollowRepo(db database.TxQuerier) FollowRepository {
	return &sqliteFollowRepo{db: db}
}

func (r *sqliteFollowRepo) Toggle(ctx context.Context, followerID, followingID string) (*models.FollowResult, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND following_id = ?`,
		followerID, followingID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle follow: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}

	if affected > 0 {
		return &models.FollowResult{Following: false}, nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO follows (follower_id, following_id) VALUES (?, ?)`,
		followerID, followingID)
	if err != nil {
		if !isUniqueViolation(err) {
			return nil, fmt.Errorf("failed to insert follow: %w", err)
		}
	}

	return &models.FollowResult{Following: true}, nil
}

func (r *sqliteFollowRepo) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE follower_id = ? AND following_id = ?`,
		followerID, followingID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return exists > 0, nil
}

func (r *sqliteFollowRepo) CountFollowers(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE following_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return count, nil
}
