package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/news-service/internal/domain"
	"github.com/spec-kit/news-service/internal/repository"
	apperrors "github.com/spec-kit/news-service/pkg/util"
)

// BookmarkService implements the bookmark toggle and self-scoped reads.
type BookmarkService struct {
	bookmarks repository.BookmarkRepository
	articles  repository.ArticleRepository
}

// BookmarkDependencies bundles requirements for bookmark service.
type BookmarkDependencies struct {
	BookmarkRepo repository.BookmarkRepository
	ArticleRepo  repository.ArticleRepository
}

// NewBookmarkService constructs the service.
func NewBookmarkService(deps BookmarkDependencies) *BookmarkService {
	return &BookmarkService{
		bookmarks: deps.BookmarkRepo,
		articles:  deps.ArticleRepo,
	}
}

// Toggle flips the bookmark state for (userID, articleID): present rows are
// deleted, absent rows created. The read-then-write is not locked; the
// store's unique constraint on the pair arbitrates concurrent toggles. When
// this call loses such a race (duplicate insert, or delete that matched
// nothing), the state is re-read exactly once and reported as observed. A
// failure after that single retry surfaces as a conflict.
func (s *BookmarkService) Toggle(ctx context.Context, userID, articleID string) (bool, error) {
	if _, err := s.articles.GetByID(ctx, articleID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.NewNotFound("article", nil)
		}
		return false, err
	}

	_, err := s.bookmarks.Get(ctx, userID, articleID)
	switch {
	case err == nil:
		if delErr := s.bookmarks.Delete(ctx, userID, articleID); delErr != nil {
			if errors.Is(delErr, pgx.ErrNoRows) {
				return s.observedState(ctx, userID, articleID)
			}
			return false, delErr
		}
		return false, nil
	case errors.Is(err, pgx.ErrNoRows):
		bookmark := &domain.Bookmark{UserID: userID, ArticleID: articleID}
		if createErr := s.bookmarks.Create(ctx, bookmark); createErr != nil {
			if errors.Is(createErr, repository.ErrDuplicateBookmark) {
				return s.observedState(ctx, userID, articleID)
			}
			return false, createErr
		}
		return true, nil
	default:
		return false, err
	}
}

// IsBookmarked reports whether the user has bookmarked the article.
func (s *BookmarkService) IsBookmarked(ctx context.Context, userID, articleID string) (bool, error) {
	return s.observedState(ctx, userID, articleID)
}

// ListForUser returns the user's bookmarks with their articles, newest first.
func (s *BookmarkService) ListForUser(ctx context.Context, userID string) ([]repository.BookmarkedArticle, error) {
	return s.bookmarks.ListByUser(ctx, userID)
}

func (s *BookmarkService) observedState(ctx context.Context, userID, articleID string) (bool, error) {
	_, err := s.bookmarks.Get(ctx, userID, articleID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return false, apperrors.NewConflict("bookmark state unresolved", nil)
}
