package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventArticlePublished EventType = "article_published"
	EventArticleUpdated   EventType = "article_updated"
	EventArticleDeleted   EventType = "article_deleted"
	EventCommentAdded     EventType = "comment_added"
	EventCommentDeleted   EventType = "comment_deleted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ArticleID string      `json:"article_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ArticlePublishedPayload payload.
type ArticlePublishedPayload struct {
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID   string `json:"comment_id"`
	BodyPreview string `json:"body_preview"`
}

// CommentDeletedPayload payload.
type CommentDeletedPayload struct {
	CommentID string `json:"comment_id"`
}
