package domain

import "time"

// Article is the aggregate for published news items. AuthorID anchors
// ownership checks for update and delete.
type Article struct {
	ID        string
	AuthorID  string
	Title     string
	Content   string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
