package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/news-service/internal/api/dto"
	"github.com/spec-kit/news-service/internal/auth"
	"github.com/spec-kit/news-service/internal/service"
	apperrors "github.com/spec-kit/news-service/pkg/util"
)

// BookmarksHandler manages self-scoped bookmark endpoints.
type BookmarksHandler struct {
	service *service.BookmarkService
}

// NewBookmarksHandler constructs handler.
func NewBookmarksHandler(bookmarkService *service.BookmarkService) *BookmarksHandler {
	return &BookmarksHandler{service: bookmarkService}
}

// Toggle POST /bookmarks/:articleId.
func (h *BookmarksHandler) Toggle(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	bookmarked, err := h.service.Toggle(c.Context(), principal.ID, c.Params("articleId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.BookmarkStateResponse{Bookmarked: bookmarked})
}

// List GET /bookmarks.
func (h *BookmarksHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	items, err := h.service.ListForUser(c.Context(), principal.ID)
	if err != nil {
		return err
	}
	responses := make([]dto.BookmarkResponse, 0, len(items))
	for i := range items {
		responses = append(responses, dto.BookmarkResponse{
			ID:        items[i].Bookmark.ID,
			CreatedAt: items[i].Bookmark.CreatedAt,
			Article:   articleResponse(&items[i].Article),
		})
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Check GET /bookmarks/check/:articleId.
func (h *BookmarksHandler) Check(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	bookmarked, err := h.service.IsBookmarked(c.Context(), principal.ID, c.Params("articleId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.BookmarkStateResponse{Bookmarked: bookmarked})
}
