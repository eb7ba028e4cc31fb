package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/news-service/internal/domain"
	apperrors "github.com/spec-kit/news-service/pkg/util"
)

// RequireRole ensures the principal's role is in the allowed set. It must run
// after AuthMiddleware.Handle.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewInsufficientRole("insufficient role")
		}
		return c.Next()
	}
}
