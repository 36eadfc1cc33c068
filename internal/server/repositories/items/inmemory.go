package items

import (
	"context"
	"sync"
	"time"

	"github.com/dverbis/itemkeeper/internal/common"
	"github.com/dverbis/itemkeeper/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used by tests and by the
// in-process server harness. Listing preserves insertion order.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*models.Item
	order []string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[string]*models.Item)}
}

func (r *InMemoryRepository) Create(_ context.Context, item *models.Item) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := *item
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now().UTC()
	}
	r.items[i.ID] = &i
	r.order = append(r.order, i.ID)

	out := i
	return &out, nil
}

func (r *InMemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Item, 0)
	for _, id := range r.order {
		if item, ok := r.items[id]; ok && item.OwnerID == ownerID {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id, ownerID string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok || item.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	out := *item
	return &out, nil
}

func (r *InMemoryRepository) Update(_ context.Context, item *models.Item) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[item.ID]
	if !ok || stored.OwnerID != item.OwnerID {
		return nil, common.ErrorNotFound
	}

	now := time.Now().UTC()
	stored.Title = item.Title
	stored.Description = item.Description
	stored.UpdatedAt = &now

	out := *stored
	return &out, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.OwnerID != ownerID {
		return common.ErrorNotFound
	}

	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
