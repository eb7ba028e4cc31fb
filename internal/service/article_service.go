package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/news-service/internal/auth"
	"github.com/spec-kit/news-service/internal/domain"
	"github.com/spec-kit/news-service/internal/events"
	"github.com/spec-kit/news-service/internal/persistence"
	"github.com/spec-kit/news-service/internal/repository"
	apperrors "github.com/spec-kit/news-service/pkg/util"
)

// ArticleService coordinates article workflows.
type ArticleService struct {
	articles   repository.ArticleRepository
	cache      *persistence.Redis
	dispatcher events.Dispatcher
}

// ArticleDependencies bundles requirements for article service.
type ArticleDependencies struct {
	ArticleRepo repository.ArticleRepository
	Cache       *persistence.Redis
	Dispatcher  events.Dispatcher
}

// ArticleInput describes creation/update payload.
type ArticleInput struct {
	Title    string
	Content  string
	Category string
}

// ArticleListFilter describes listing filters.
type ArticleListFilter struct {
	Category   *string
	SearchTerm *string
	Limit      int
	Offset     int
}

// NewArticleService constructs the service.
func NewArticleService(deps ArticleDependencies) *ArticleService {
	return &ArticleService{
		articles:   deps.ArticleRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// Create publishes a new article authored by the principal. Creation rights
// are enforced by the publisher role gate on the route; ownership is recorded
// here.
func (s *ArticleService) Create(ctx context.Context, principal *auth.Principal, input ArticleInput) (*domain.Article, error) {
	article := &domain.Article{
		AuthorID: principal.ID,
		Title:    strings.TrimSpace(input.Title),
		Content:  strings.TrimSpace(input.Content),
		Category: strings.TrimSpace(input.Category),
	}
	if article.Title == "" || article.Content == "" {
		return nil, apperrors.NewValidationError("title and content required", nil)
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventArticlePublished,
		ArticleID: article.ID,
		Actor:     actorFor(principal),
		Payload: events.ArticlePublishedPayload{
			Title:    article.Title,
			Category: article.Category,
		},
	})
	return article, nil
}

// Get fetches a single article, serving from the read cache when possible.
func (s *ArticleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	if cached := s.cache.GetArticle(ctx, id); cached != nil {
		return cached, nil
	}
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("article", nil)
		}
		return nil, err
	}
	s.cache.SetArticle(ctx, article)
	return article, nil
}

// List returns articles newest first, optionally filtered.
func (s *ArticleService) List(ctx context.Context, filter ArticleListFilter) ([]domain.Article, error) {
	return s.articles.ListWithFilter(ctx, repository.ArticleFilter{
		Category:   filter.Category,
		SearchTerm: filter.SearchTerm,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// Update edits an article. Existence is checked before ownership so absent
// articles report not-found rather than forbidden. Only the exact author may
// update; the publisher role grants no override here.
func (s *ArticleService) Update(ctx context.Context, principal *auth.Principal, id string, input ArticleInput) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("article", nil)
		}
		return nil, err
	}
	if err := auth.Authorize(principal, article.AuthorID); err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		article.Title = title
	}
	if content := strings.TrimSpace(input.Content); content != "" {
		article.Content = content
	}
	if category := strings.TrimSpace(input.Category); category != "" {
		article.Category = category
	}

	if err := s.articles.Update(ctx, article); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("article", nil)
		}
		return nil, err
	}
	s.cache.InvalidateArticle(ctx, article.ID)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventArticleUpdated,
		ArticleID: article.ID,
		Actor:     actorFor(principal),
	})
	return article, nil
}

// Delete removes an article; author-only, same ordering as Update.
func (s *ArticleService) Delete(ctx context.Context, principal *auth.Principal, id string) error {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("article", nil)
		}
		return err
	}
	if err := auth.Authorize(principal, article.AuthorID); err != nil {
		return err
	}

	if err := s.articles.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("article", nil)
		}
		return err
	}
	s.cache.InvalidateArticle(ctx, id)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventArticleDeleted,
		ArticleID: id,
		Actor:     actorFor(principal),
	})
	return nil
}

func (s *ArticleService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorFor(principal *auth.Principal) events.Actor {
	if principal == nil {
		return events.Actor{}
	}
	return events.Actor{UserID: principal.ID, Role: string(principal.Role)}
}
