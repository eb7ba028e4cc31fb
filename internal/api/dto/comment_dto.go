package dto

import "time"

// CreateCommentRequest payload for adding a comment.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// CommentResponse representation of a comment.
type CommentResponse struct {
	ID         string    `json:"id"`
	ArticleID  string    `json:"article_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}
