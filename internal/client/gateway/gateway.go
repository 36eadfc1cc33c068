// Package gateway is the authenticated call surface for item data. It
// reads the current access token from the session on every call, attaches
// it to the outbound request, and reacts to credential rejection by
// forcing the session out. Callers never handle tokens themselves.
package gateway

import (
	"context"

	"github.com/dverbis/itemkeeper/internal/client/api"
	"github.com/dverbis/itemkeeper/internal/client/models"
	"github.com/dverbis/itemkeeper/internal/logging"
)

// Session is the slice of the session store the gateway needs: the live
// token for outbound calls, and forced logout when the server rejects it.
type Session interface {
	Token() string
	ForceLogout(ctx context.Context) error
}

// Gateway wraps the item API with per-call credential attachment.
type Gateway struct {
	api     api.ItemClient
	session Session
	logger  logging.Logger
}

func New(client api.ItemClient, session Session, logger logging.Logger) *Gateway {
	return &Gateway{
		api:     client,
		session: session,
		logger:  logger.With("component", "gateway"),
	}
}

// ListItems fetches all items owned by the current user.
func (g *Gateway) ListItems(ctx context.Context) ([]models.Item, error) {
	items, err := g.api.ListItems(ctx, g.session.Token())
	if err != nil {
		return nil, g.intercept(ctx, err)
	}
	return items, nil
}

// CreateItem creates a new item from draft.
func (g *Gateway) CreateItem(ctx context.Context, draft models.ItemDraft) (*models.Item, error) {
	item, err := g.api.CreateItem(ctx, g.session.Token(), draft)
	if err != nil {
		return nil, g.intercept(ctx, err)
	}
	return item, nil
}

// UpdateItem replaces the stored fields of the identified item.
func (g *Gateway) UpdateItem(ctx context.Context, id string, draft models.ItemDraft) (*models.Item, error) {
	item, err := g.api.UpdateItem(ctx, g.session.Token(), id, draft)
	if err != nil {
		return nil, g.intercept(ctx, err)
	}
	return item, nil
}

// DeleteItem removes the identified item.
func (g *Gateway) DeleteItem(ctx context.Context, id string) error {
	if err := g.api.DeleteItem(ctx, g.session.Token(), id); err != nil {
		return g.intercept(ctx, err)
	}
	return nil
}

// intercept inspects a failed call. A rejected credential ends the session
// immediately so the caller lands on the login flow; every other failure
// passes through unchanged for local handling.
func (g *Gateway) intercept(ctx context.Context, err error) error {
	if api.IsKind(err, api.KindSessionExpired) {
		g.logger.Warn(ctx, "credential rejected on protected call, ending session")
		if logoutErr := g.session.ForceLogout(ctx); logoutErr != nil {
			g.logger.Error(ctx, "forced logout failed", "err", logoutErr)
		}
	}
	return err
}
