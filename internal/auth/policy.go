package auth

import (
	"github.com/spec-kit/news-service/internal/domain"
	apperrors "github.com/spec-kit/news-service/pkg/util"
)

// Authorize decides whether the principal may mutate a resource owned by
// ownerID. The owner always may; any principal whose role is in overrideRoles
// may as well. Articles pass no override roles (author-only), comment
// deletion passes RolePublisher. Callers must check resource existence first
// so absent resources report NOT_FOUND rather than FORBIDDEN.
func Authorize(principal *Principal, ownerID string, overrideRoles ...domain.Role) error {
	if principal == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if principal.ID == ownerID {
		return nil
	}
	for _, role := range overrideRoles {
		if principal.Role == role {
			return nil
		}
	}
	return apperrors.NewForbidden("not allowed to modify this resource")
}
