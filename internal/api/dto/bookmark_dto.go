package dto

import "time"

// BookmarkStateResponse reports the bookmark state after a toggle or check.
type BookmarkStateResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

// BookmarkResponse representation of a saved bookmark with its article.
type BookmarkResponse struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Article   ArticleResponse `json:"article"`
}
