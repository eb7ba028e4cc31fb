package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/news-service/internal/domain"
)

// ErrDuplicateBookmark is returned by Create when the (user, article) pair
// already exists. The unique constraint in the store is the source of truth;
// concurrent toggles rely on it rather than on any in-process lock.
var ErrDuplicateBookmark = errors.New("bookmark already exists")

const uniqueViolationCode = "23505"

// BookmarkedArticle pairs a bookmark with its article for listings.
type BookmarkedArticle struct {
	Bookmark domain.Bookmark
	Article  domain.Article
}

// BookmarkRepository encapsulates bookmark persistence.
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *domain.Bookmark) error
	Delete(ctx context.Context, userID, articleID string) error
	Get(ctx context.Context, userID, articleID string) (*domain.Bookmark, error)
	ListByUser(ctx context.Context, userID string) ([]BookmarkedArticle, error)
}

type bookmarkRepository struct {
	pool *pgxpool.Pool
}

// NewBookmarkRepository instantiates repository.
func NewBookmarkRepository(pool *pgxpool.Pool) BookmarkRepository {
	return &bookmarkRepository{pool: pool}
}

func (r *bookmarkRepository) Create(ctx context.Context, bookmark *domain.Bookmark) error {
	const query = `
        INSERT INTO bookmarks (user_id, article_id)
        VALUES ($1,$2)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		bookmark.UserID,
		bookmark.ArticleID,
	).Scan(&bookmark.ID, &bookmark.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicateBookmark
		}
		return err
	}
	return nil
}

func (r *bookmarkRepository) Delete(ctx context.Context, userID, articleID string) error {
	const query = `DELETE FROM bookmarks WHERE user_id=$1 AND article_id=$2`
	cmd, err := r.pool.Exec(ctx, query, userID, articleID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookmarkRepository) Get(ctx context.Context, userID, articleID string) (*domain.Bookmark, error) {
	const query = `
        SELECT id, user_id, article_id, created_at
        FROM bookmarks WHERE user_id=$1 AND article_id=$2`
	var bookmark domain.Bookmark
	if err := r.pool.QueryRow(ctx, query, userID, articleID).Scan(
		&bookmark.ID,
		&bookmark.UserID,
		&bookmark.ArticleID,
		&bookmark.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (r *bookmarkRepository) ListByUser(ctx context.Context, userID string) ([]BookmarkedArticle, error) {
	const query = `
        SELECT b.id, b.user_id, b.article_id, b.created_at,
               a.id, a.author_id, a.title, a.content, a.category, a.created_at, a.updated_at
        FROM bookmarks b JOIN articles a ON a.id = b.article_id
        WHERE b.user_id=$1
        ORDER BY b.created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []BookmarkedArticle
	for rows.Next() {
		var item BookmarkedArticle
		if err := rows.Scan(
			&item.Bookmark.ID,
			&item.Bookmark.UserID,
			&item.Bookmark.ArticleID,
			&item.Bookmark.CreatedAt,
			&item.Article.ID,
			&item.Article.AuthorID,
			&item.Article.Title,
			&item.Article.Content,
			&item.Article.Category,
			&item.Article.CreatedAt,
			&item.Article.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
