package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/news-service/internal/auth"
	"github.com/spec-kit/news-service/internal/domain"
	"github.com/spec-kit/news-service/internal/events"
	"github.com/spec-kit/news-service/internal/repository"
	apperrors "github.com/spec-kit/news-service/pkg/util"
)

// CommentService coordinates comment workflows.
type CommentService struct {
	comments   repository.CommentRepository
	articles   repository.ArticleRepository
	dispatcher events.Dispatcher
}

// CommentDependencies bundles requirements for comment service.
type CommentDependencies struct {
	CommentRepo repository.CommentRepository
	ArticleRepo repository.ArticleRepository
	Dispatcher  events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		comments:   deps.CommentRepo,
		articles:   deps.ArticleRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ListByArticle returns comments for an article, newest first.
func (s *CommentService) ListByArticle(ctx context.Context, articleID string) ([]domain.Comment, error) {
	return s.comments.ListByArticle(ctx, articleID)
}

// Add creates a comment on an existing article.
func (s *CommentService) Add(ctx context.Context, principal *auth.Principal, articleID, text string) (*domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("comment text required", nil)
	}

	if _, err := s.articles.GetByID(ctx, articleID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("article", nil)
		}
		return nil, err
	}

	comment := &domain.Comment{
		ArticleID: articleID,
		AuthorID:  principal.ID,
		Text:      text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventCommentAdded,
		ArticleID: articleID,
		Actor:     actorFor(principal),
		Payload: events.CommentAddedPayload{
			CommentID:   comment.ID,
			BodyPreview: preview(text),
		},
	})
	return comment, nil
}

// Delete removes a comment. The author always may; a publisher may delete any
// comment. Existence is checked before the ownership decision.
func (s *CommentService) Delete(ctx context.Context, principal *auth.Principal, commentID string) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("comment", nil)
		}
		return err
	}
	if err := auth.Authorize(principal, comment.AuthorID, domain.RolePublisher); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("comment", nil)
		}
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventCommentDeleted,
		ArticleID: comment.ArticleID,
		Actor:     actorFor(principal),
		Payload:   events.CommentDeletedPayload{CommentID: commentID},
	})
	return nil
}

func (s *CommentService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func preview(text string) string {
	const max = 80
	if len(text) <= max {
		return text
	}
	return text[:max]
}
