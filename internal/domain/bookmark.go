package domain

import "time"

// Bookmark marks an article as saved by a user. The (UserID, ArticleID)
// pair is the identity; the store enforces at most one row per pair.
type Bookmark struct {
	ID        string
	UserID    string
	ArticleID string
	CreatedAt time.Time
}
