// Package ctxutil carries request-scoped values through context.Context:
// the authenticated operator and the request id.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const (
	identityKey ctxKey = iota
	requestIDKey
)

// RoleAdmin is the role allowed to manage operator accounts.
const RoleAdmin = "admin"

// Identity is the operator a request was authenticated as.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// WithIdentity stores the authenticated operator in the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromCtx returns the operator stored by WithIdentity. It reports
// false for anonymous requests and for a nil user id.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.UserID == uuid.Nil {
		return Identity{}, false
	}
	return id, true
}

// UserIDFromCtx is IdentityFromCtx narrowed to the user id.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := IdentityFromCtx(ctx)
	return id.UserID, ok
}

// IsAdminCtx reports whether the request was authenticated as an admin.
func IsAdminCtx(ctx context.Context) bool {
	id, ok := IdentityFromCtx(ctx)
	return ok && id.IsAdmin()
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx returns the request ID, or "" if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
