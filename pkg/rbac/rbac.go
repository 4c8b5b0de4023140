// Package rbac gates route groups by the role claim the auth middleware put
// in the request context. The admin surface mounts rbac.HasRole("admin")
// behind middleware.AuthMiddleware.
package rbac

import (
	"net/http"

	"github.com/thanhvudev/furnimart/pkg/middleware"
	"github.com/thanhvudev/furnimart/pkg/response"
)

// HasRole allows the request through only when the context role is one of
// roles. Without a preceding AuthMiddleware there is no role and every
// request is refused.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok || !allowed[role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
