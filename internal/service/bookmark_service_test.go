package service

import (
	"context"
	"sync"
	"testing"

	"github.com/spec-kit/news-service/internal/domain"
	apperrors "github.com/spec-kit/news-service/pkg/util"
)

func newBookmarkFixture(t *testing.T) (*BookmarkService, *fakeBookmarkRepo, string) {
	t.Helper()
	articles := newFakeArticleRepo()
	article := &domain.Article{AuthorID: "author-1", Title: "t", Content: "c"}
	if err := articles.Create(context.Background(), article); err != nil {
		t.Fatalf("seed article: %v", err)
	}
	bookmarks := newFakeBookmarkRepo()
	svc := NewBookmarkService(BookmarkDependencies{
		BookmarkRepo: bookmarks,
		ArticleRepo:  articles,
	})
	return svc, bookmarks, article.ID
}

func TestToggleFlipsState(t *testing.T) {
	svc, repo, articleID := newBookmarkFixture(t)
	ctx := context.Background()

	bookmarked, err := svc.Toggle(ctx, "user-1", articleID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !bookmarked {
		t.Fatalf("first toggle must bookmark")
	}
	if repo.count() != 1 {
		t.Fatalf("expected 1 bookmark, got %d", repo.count())
	}

	bookmarked, err = svc.Toggle(ctx, "user-1", articleID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if bookmarked {
		t.Fatalf("second toggle must remove the bookmark")
	}
	if repo.count() != 0 {
		t.Fatalf("expected empty store, got %d", repo.count())
	}
}

func TestToggleOddSequenceInverts(t *testing.T) {
	svc, repo, articleID := newBookmarkFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Toggle(ctx, "user-1", articleID); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}
	if repo.count() != 1 {
		t.Fatalf("odd toggle count must leave the bookmark, got %d rows", repo.count())
	}

	bookmarked, err := svc.IsBookmarked(ctx, "user-1", articleID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !bookmarked {
		t.Fatalf("expected bookmarked after odd toggles")
	}
}

func TestToggleMissingArticle(t *testing.T) {
	svc, _, _ := newBookmarkFixture(t)

	_, err := svc.Toggle(context.Background(), "user-1", "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if code := apperrors.ToDomainError(err).Code; code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}
}

func TestToggleCreateConflictRetriesLookup(t *testing.T) {
	// A concurrent toggle wins the insert between our lookup and our
	// create. The unique constraint rejects the second insert; the engine
	// must re-read once and report the observed state, not the conflict.
	svc, repo, articleID := newBookmarkFixture(t)
	repo.beforeCreate = func() { repo.insert("user-1", articleID) }

	bookmarked, err := svc.Toggle(context.Background(), "user-1", articleID)
	if err != nil {
		t.Fatalf("toggle must absorb the conflict: %v", err)
	}
	if !bookmarked {
		t.Fatalf("expected bookmarked=true after losing the insert race")
	}
	if repo.count() != 1 {
		t.Fatalf("expected exactly one bookmark, got %d", repo.count())
	}
}

func TestToggleDeleteRaceRetriesLookup(t *testing.T) {
	svc, repo, articleID := newBookmarkFixture(t)
	repo.insert("user-1", articleID)
	repo.beforeDelete = func() { repo.remove("user-1", articleID) }

	bookmarked, err := svc.Toggle(context.Background(), "user-1", articleID)
	if err != nil {
		t.Fatalf("toggle must absorb the lost delete: %v", err)
	}
	if bookmarked {
		t.Fatalf("expected bookmarked=false after the concurrent removal")
	}
	if repo.count() != 0 {
		t.Fatalf("expected empty store, got %d", repo.count())
	}
}

func TestConcurrentTogglesNeverCrash(t *testing.T) {
	svc, repo, articleID := newBookmarkFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Toggle(ctx, "user-1", articleID)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("toggle %d surfaced error: %v", i, err)
		}
	}
	if repo.count() > 1 {
		t.Fatalf("uniqueness violated: %d rows for one pair", repo.count())
	}
}

func TestCheckAndList(t *testing.T) {
	svc, _, articleID := newBookmarkFixture(t)
	ctx := context.Background()

	bookmarked, err := svc.IsBookmarked(ctx, "user-1", articleID)
	if err != nil || bookmarked {
		t.Fatalf("expected unbookmarked, got %v %v", bookmarked, err)
	}

	if _, err := svc.Toggle(ctx, "user-1", articleID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	items, err := svc.ListForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(items))
	}

	other, err := svc.ListForUser(ctx, "user-2")
	if err != nil {
		t.Fatalf("list other: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("bookmarks must be self-scoped, got %d", len(other))
	}
}
