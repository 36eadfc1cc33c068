// Package api is the HTTP codec for the remote itemkeeper API. It shapes
// requests, decodes responses, and normalizes every failure into an *Error
// with a Kind and optional server-supplied detail. It holds no session
// state: the access token is passed in by the caller on each call.
package api

import (
	"context"

	"github.com/dverbis/itemkeeper/internal/client/models"
)

// Client is the full remote API surface used by the client.
type Client interface {
	AuthClient
	ItemClient
}

// AuthClient covers the credential endpoints consumed by the session store.
type AuthClient interface {
	// Login exchanges credentials for an access token and the user record.
	Login(ctx context.Context, username, password string) (string, *models.User, error)

	// Register creates a new account. It performs no session state change;
	// the caller must log in afterwards.
	Register(ctx context.Context, email, username, password string) (*models.User, error)

	// Me resolves the user identified by token. Used during rehydration to
	// validate a persisted credential.
	Me(ctx context.Context, token string) (*models.User, error)
}

// ItemClient covers the protected item endpoints consumed by the gateway.
// An empty token dispatches the request without a credential.
type ItemClient interface {
	ListItems(ctx context.Context, token string) ([]models.Item, error)
	CreateItem(ctx context.Context, token string, draft models.ItemDraft) (*models.Item, error)
	UpdateItem(ctx context.Context, token, id string, draft models.ItemDraft) (*models.Item, error)
	DeleteItem(ctx context.Context, token, id string) error
}
