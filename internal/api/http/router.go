package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/news-service/internal/api/http/handlers"
	"github.com/spec-kit/news-service/internal/auth"
	"github.com/spec-kit/news-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Articles       *handlers.ArticlesHandler
	Comments       *handlers.CommentsHandler
	Bookmarks      *handlers.BookmarksHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/reset/request", cfg.Users.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Users.ConfirmPasswordReset)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Users.ChangePassword)

	articles := app.Group("/articles")
	articles.Get("/", cfg.Articles.List)
	articles.Get("/:id", cfg.Articles.Get)
	articles.Post("/", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RolePublisher), cfg.Articles.Create)
	articles.Put("/:id", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RolePublisher), cfg.Articles.Update)
	articles.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RolePublisher), cfg.Articles.Delete)

	comments := app.Group("/comments")
	comments.Get("/:articleId", cfg.Comments.List)
	comments.Post("/:articleId", cfg.AuthMiddleware.Handle, cfg.Comments.Add)
	comments.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Comments.Delete)

	bookmarks := app.Group("/bookmarks", cfg.AuthMiddleware.Handle)
	bookmarks.Get("/", cfg.Bookmarks.List)
	bookmarks.Get("/check/:articleId", cfg.Bookmarks.Check)
	bookmarks.Post("/:articleId", cfg.Bookmarks.Toggle)
}
