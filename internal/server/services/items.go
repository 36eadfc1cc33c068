package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dverbis/itemkeeper/internal/server/models"
	"github.com/dverbis/itemkeeper/internal/server/repositories/items"
)

type ItemService struct {
	repo items.Repository
}

func NewItemService(repo items.Repository) *ItemService {
	return &ItemService{repo: repo}
}

// List returns all items owned by ownerID, oldest first.
func (s *ItemService) List(ctx context.Context, ownerID string) ([]models.Item, error) {
	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing items: %w", err)
	}
	return list, nil
}

// Create stores a new item for ownerID.
func (s *ItemService) Create(ctx context.Context, ownerID, title, description string) (*models.Item, error) {
	item := &models.Item{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
	}

	item, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("error creating item: %w", err)
	}
	return item, nil
}

// Get returns a single item owned by ownerID, or common.ErrorNotFound when
// the id is unknown or belongs to someone else.
func (s *ItemService) Get(ctx context.Context, id, ownerID string) (*models.Item, error) {
	return s.repo.GetByID(ctx, id, ownerID)
}

// Update applies the non-nil fields to an item owned by ownerID and returns
// the updated record. A nil field keeps the stored value.
func (s *ItemService) Update(ctx context.Context, id, ownerID string, title, description *string) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if title != nil {
		item.Title = *title
	}
	if description != nil {
		item.Description = *description
	}

	item, err = s.repo.Update(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("error updating item: %w", err)
	}
	return item, nil
}

// Delete removes an item owned by ownerID.
func (s *ItemService) Delete(ctx context.Context, id, ownerID string) error {
	return s.repo.Delete(ctx, id, ownerID)
}
