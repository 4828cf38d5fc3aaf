package models

import "time"

// Follow, takip ilişkisini temsil eder: follower, following'i takip eder.
type Follow struct {
	ID          int64     `json:"id"`
	FollowerID  string    `json:"follower_id"`
	FollowingID string    `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// FollowResult, takip toggle işleminin sonucu.
type FollowResult struct {
	Following bool `json:"following"`
}
