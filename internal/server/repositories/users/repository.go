package users

import (
	"context"

	"github.com/dverbis/itemkeeper/internal/server/models"
)

// Repository is the persistence surface for user accounts. Lookups that
// match nothing return common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
