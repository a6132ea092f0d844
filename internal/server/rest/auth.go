package rest

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/authn"
	"connectrpc.com/connect"
	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/auth"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

// Authenticate resolves the account behind the bearer token of req. A
// missing, malformed, forged or expired token and an unknown account all
// produce the same Unauthenticated error; store failures are reported as
// Unavailable or Internal instead.
func Authenticate(ctx context.Context, req *http.Request, users auth.Authenticator, logger logging.Logger) (*models.User, error) {
	token, ok := auth.TokenFromHeader(req.Header.Get(common.AuthorizationHeaderName))
	if !ok {
		return nil, authn.Errorf("unauthorized")
	}

	user, err := users.Authenticate(ctx, token)
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, common.ErrorUnauthorized):
		return nil, authn.Errorf("unauthorized")
	case errors.Is(err, common.ErrorUnavailable):
		logger.Warn(ctx, "authentication unavailable", "error", err)
		return nil, connect.NewError(connect.CodeUnavailable, errors.New("service unavailable"))
	default:
		logger.Error(ctx, "authentication failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, errors.New("internal error"))
	}
}

// NewAuthMiddleware returns middleware that binds the authenticated
// *models.User to the request context, readable with auth.UserFromContext.
func NewAuthMiddleware(users auth.Authenticator, logger logging.Logger) *authn.Middleware {
	return authn.NewMiddleware(func(ctx context.Context, req *http.Request) (any, error) {
		return Authenticate(ctx, req, users, logger)
	})
}
