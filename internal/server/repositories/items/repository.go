package items

import (
	"context"

	"github.com/dverbis/itemkeeper/internal/server/models"
)

// Repository is the persistence surface for items. Every operation is
// scoped to an owner; an id that exists under a different owner behaves
// exactly like a missing one (common.ErrorNotFound).
type Repository interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Item, error)
	GetByID(ctx context.Context, id, ownerID string) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) (*models.Item, error)
	Delete(ctx context.Context, id, ownerID string) error
}
