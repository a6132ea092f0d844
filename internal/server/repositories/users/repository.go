package users

import (
	"context"

	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

// Repository persists accounts. Create returns common.ErrorAlreadyExists when
// the username is taken; GetUserByLogin returns common.ErrorNotFound when no
// account has that username.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
