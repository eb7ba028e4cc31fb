package domain

import "time"

// Comment belongs to an article. AuthorID anchors the deletion policy.
type Comment struct {
	ID         string
	ArticleID  string
	AuthorID   string
	AuthorName string
	Text       string
	CreatedAt  time.Time
}
