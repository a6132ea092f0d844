// Package services contains server-side business logic. This file implements
// UserService, which handles signup, signin and resolving access tokens back
// to accounts.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/auth"
	"github.com/dmitrijs2005/gophtasks/internal/server/config"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/users"
)

// UserService provides authentication-related operations:
//   - SignUp: validate and create accounts
//   - SignIn: verify credentials and mint access tokens
//   - Authenticate: resolve an access token to its account
type UserService struct {
	users                       users.Repository
	hasher                      *auth.PasswordHasher
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	databaseTimeout             time.Duration
	now                         func() time.Time
	newSalt                     func() ([]byte, error)
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, hasher *auth.PasswordHasher, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		users:                       m.Users(),
		hasher:                      hasher,
		logger:                      logger.With("module", "users"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		databaseTimeout:             cfg.DatabaseTimeout,
		now:                         time.Now,
		newSalt:                     hasher.NewSalt,
	}
}

// SignUp creates an account. Invalid input yields a *common.ValidationError
// before the store is touched; a taken username yields
// common.ErrorAlreadyExists.
func (s *UserService) SignUp(ctx context.Context, username, password string) error {
	if err := auth.ValidateCredentials(username, password); err != nil {
		return err
	}

	salt, err := s.newSalt()
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	hash, err := s.hasher.Hash(ctx, password, salt)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = storeCall(ctx, s.databaseTimeout, func(ctx context.Context) (*models.User, error) {
		return s.users.Create(ctx, &models.User{UserName: username, PasswordHash: hash, Salt: salt})
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return fmt.Errorf("username %q: %w", username, err)
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user signed up", "username", username)
	return nil
}

// SignIn verifies the credentials and returns a signed access token. An
// unknown username and a wrong password both yield common.ErrorUnauthorized
// and cost one password hash each.
func (s *UserService) SignIn(ctx context.Context, username, password string) (string, error) {
	user, err := storeCall(ctx, s.databaseTimeout, func(ctx context.Context) (*models.User, error) {
		return s.users.GetUserByLogin(ctx, username)
	})
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return "", fmt.Errorf("error looking up user: %w", err)
		}
		if _, err := s.hasher.Hash(ctx, password, s.throwawaySalt(ctx)); err != nil {
			return "", fmt.Errorf("hash password: %w", err)
		}
		return "", common.ErrorUnauthorized
	}

	ok, err := s.hasher.Verify(ctx, password, user.Salt, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.UserName, s.jwtSecret, s.now(), s.accessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %w", common.ErrorInternal, err)
	}

	s.logger.Debug(ctx, "user signed in", "username", user.UserName)
	return token, nil
}

// Authenticate resolves token to the account it was issued for. Bad
// signatures, expired tokens and deleted accounts all yield
// common.ErrorUnauthorized; store failures are returned as they are.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	subject, err := auth.GetSubjectFromToken(token, s.jwtSecret, s.now())
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "reason", err)
		return nil, common.ErrorUnauthorized
	}

	user, err := storeCall(ctx, s.databaseTimeout, func(ctx context.Context) (*models.User, error) {
		return s.users.GetUserByLogin(ctx, subject)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error resolving token subject: %w", err)
	}

	return user, nil
}

// throwawaySalt returns a fresh salt for hashing on behalf of an unknown
// user. A zero salt of the same size is used if randomness fails, so the
// caller still pays for exactly one hash.
func (s *UserService) throwawaySalt(ctx context.Context) []byte {
	salt, err := s.newSalt()
	if err != nil {
		s.logger.Warn(ctx, "throwaway salt unavailable", "error", err)
		return make([]byte, auth.SaltSize)
	}
	return salt
}
