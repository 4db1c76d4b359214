package middleware

import (
	"context"

	"github.com/heartmarshall/precast-backend/internal/domain"
	"github.com/heartmarshall/precast-backend/pkg/ctxutil"
)

// RequireAdmin guards account management inside handlers. Anonymous
// requests get ErrUnauthorized, operators without the admin role get
// ErrForbidden.
func RequireAdmin(ctx context.Context) error {
	id, ok := ctxutil.IdentityFromCtx(ctx)
	switch {
	case !ok:
		return domain.ErrUnauthorized
	case !id.IsAdmin():
		return domain.ErrForbidden
	}
	return nil
}
