package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/news-service/internal/domain"
	"github.com/spec-kit/news-service/internal/repository"
)

type fakeArticleRepo struct {
	mu       sync.Mutex
	seq      int
	articles map[string]domain.Article
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: make(map[string]domain.Article)}
}

func (r *fakeArticleRepo) Create(_ context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	article.ID = fmt.Sprintf("article-%d", r.seq)
	article.CreatedAt = time.Now()
	article.UpdatedAt = article.CreatedAt
	r.articles[article.ID] = *article
	return nil
}

func (r *fakeArticleRepo) Update(_ context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[article.ID]; !ok {
		return pgx.ErrNoRows
	}
	article.UpdatedAt = time.Now()
	r.articles[article.ID] = *article
	return nil
}

func (r *fakeArticleRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.articles, id)
	return nil
}

func (r *fakeArticleRepo) GetByID(_ context.Context, id string) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	article, ok := r.articles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &article, nil
}

func (r *fakeArticleRepo) ListWithFilter(_ context.Context, _ repository.ArticleFilter) ([]domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Article, 0, len(r.articles))
	for _, article := range r.articles {
		result = append(result, article)
	}
	return result, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	seq      int
	comments map[string]domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]domain.Comment)}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	comment.ID = fmt.Sprintf("comment-%d", r.seq)
	comment.CreatedAt = time.Now()
	r.comments[comment.ID] = *comment
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment, ok := r.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &comment, nil
}

func (r *fakeCommentRepo) ListByArticle(_ context.Context, articleID string) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Comment
	for _, comment := range r.comments {
		if comment.ArticleID == articleID {
			result = append(result, comment)
		}
	}
	return result, nil
}

// fakeBookmarkRepo enforces pair uniqueness the way the real store does, and
// exposes hooks so tests can interleave a competing toggle between the
// service's lookup and its write.
type fakeBookmarkRepo struct {
	mu           sync.Mutex
	seq          int
	rows         map[string]domain.Bookmark
	beforeCreate func()
	beforeDelete func()
}

func newFakeBookmarkRepo() *fakeBookmarkRepo {
	return &fakeBookmarkRepo{rows: make(map[string]domain.Bookmark)}
}

func pairKey(userID, articleID string) string {
	return userID + "|" + articleID
}

func (r *fakeBookmarkRepo) Create(_ context.Context, bookmark *domain.Bookmark) error {
	if hook := r.beforeCreate; hook != nil {
		r.beforeCreate = nil
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey(bookmark.UserID, bookmark.ArticleID)
	if _, ok := r.rows[key]; ok {
		return repository.ErrDuplicateBookmark
	}
	r.seq++
	bookmark.ID = fmt.Sprintf("bookmark-%d", r.seq)
	bookmark.CreatedAt = time.Now()
	r.rows[key] = *bookmark
	return nil
}

func (r *fakeBookmarkRepo) Delete(_ context.Context, userID, articleID string) error {
	if hook := r.beforeDelete; hook != nil {
		r.beforeDelete = nil
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey(userID, articleID)
	if _, ok := r.rows[key]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.rows, key)
	return nil
}

func (r *fakeBookmarkRepo) Get(_ context.Context, userID, articleID string) (*domain.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bookmark, ok := r.rows[pairKey(userID, articleID)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &bookmark, nil
}

func (r *fakeBookmarkRepo) ListByUser(_ context.Context, userID string) ([]repository.BookmarkedArticle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []repository.BookmarkedArticle
	for _, bookmark := range r.rows {
		if bookmark.UserID == userID {
			result = append(result, repository.BookmarkedArticle{Bookmark: bookmark})
		}
	}
	return result, nil
}

func (r *fakeBookmarkRepo) insert(userID, articleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.rows[pairKey(userID, articleID)] = domain.Bookmark{
		ID:        fmt.Sprintf("bookmark-%d", r.seq),
		UserID:    userID,
		ArticleID: articleID,
		CreatedAt: time.Now(),
	}
}

func (r *fakeBookmarkRepo) remove(userID, articleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, pairKey(userID, articleID))
}

func (r *fakeBookmarkRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}
