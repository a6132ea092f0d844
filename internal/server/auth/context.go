package auth

import (
	"context"

	"connectrpc.com/authn"

	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

// Authenticator resolves a bearer token to the account it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// WithUser stores the authenticated user in ctx. The HTTP middleware does
// this itself; the gRPC interceptor and tests call it directly.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return authn.SetInfo(ctx, user)
}

// UserFromContext returns the authenticated user bound to ctx.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := authn.GetInfo(ctx).(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
