package session

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dverbis/itemkeeper/internal/client/api"
	"github.com/dverbis/itemkeeper/internal/client/gateway"
	"github.com/dverbis/itemkeeper/internal/client/models"
	"github.com/dverbis/itemkeeper/internal/client/repositories/metadata"
	"github.com/dverbis/itemkeeper/internal/common"
	"github.com/dverbis/itemkeeper/internal/logging"
	serverconfig "github.com/dverbis/itemkeeper/internal/server/config"
	"github.com/dverbis/itemkeeper/internal/server/httpapi"
	itemsrepo "github.com/dverbis/itemkeeper/internal/server/repositories/items"
	usersrepo "github.com/dverbis/itemkeeper/internal/server/repositories/users"
	"github.com/dverbis/itemkeeper/internal/server/services"
)

func newSlot(t *testing.T) metadata.Repository {
	t.Helper()
	return metadata.NewSQLiteRepository(setupDB(t))
}

// startServer runs the real HTTP API on in-memory repositories so the whole
// client stack can be exercised over the wire.
func startServer(t *testing.T, tokenValidity time.Duration) *httptest.Server {
	t.Helper()

	cfg := &serverconfig.Config{
		SecretKey:                   "e2e-secret",
		AccessTokenValidityDuration: tokenValidity,
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	us := services.NewUserService(usersrepo.NewInMemoryRepository(), cfg)
	is := services.NewItemService(itemsrepo.NewInMemoryRepository())

	ts := httptest.NewServer(httpapi.NewServer(us, is, logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestEndToEnd_RegisterLoginRehydrate(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t, time.Hour)

	client := api.NewHTTPClient(ts.URL, 5*time.Second)
	slot := newSlot(t)

	store := NewStore(client, slot, testLogger())
	require.NoError(t, store.Initialize(ctx))
	require.Equal(t, StatusAnonymous, store.Status())

	require.NoError(t, store.Register(ctx, "a@x.com", "alice", "secret1"))
	require.NoError(t, store.Login(ctx, "alice", "secret1"))
	require.Equal(t, StatusAuthenticated, store.Status())
	require.Equal(t, "alice", store.User().Username)

	// a second store over the same slot restores the session from disk
	restored := NewStore(client, slot, testLogger())
	require.NoError(t, restored.Initialize(ctx))
	require.Equal(t, StatusAuthenticated, restored.Status())
	require.Equal(t, "alice", restored.User().Username)
}

func TestEndToEnd_GatewayCRUD(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t, time.Hour)

	client := api.NewHTTPClient(ts.URL, 5*time.Second)
	store := NewStore(client, newSlot(t), testLogger())
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.Register(ctx, "a@x.com", "alice", "secret1"))
	require.NoError(t, store.Login(ctx, "alice", "secret1"))

	gw := gateway.New(client, store, testLogger())

	created, err := gw.CreateItem(ctx, models.ItemDraft{Title: "first", Description: "d"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := gw.UpdateItem(ctx, created.ID, models.ItemDraft{Title: "renamed", Description: "d2"})
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Title)

	list, err := gw.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "renamed", list[0].Title)

	require.NoError(t, gw.DeleteItem(ctx, created.ID))

	list, err = gw.ListItems(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestEndToEnd_ExpiredTokenForcesLogout(t *testing.T) {
	ctx := context.Background()
	// tokens minted by this server are already expired
	ts := startServer(t, -1*time.Second)

	client := api.NewHTTPClient(ts.URL, 5*time.Second)
	slot := newSlot(t)
	store := NewStore(client, slot, testLogger())
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.Register(ctx, "a@x.com", "alice", "secret1"))
	require.NoError(t, store.Login(ctx, "alice", "secret1"))
	require.Equal(t, StatusAuthenticated, store.Status())

	gw := gateway.New(client, store, testLogger())

	_, err := gw.ListItems(ctx)
	require.True(t, api.IsKind(err, api.KindSessionExpired))

	// the gateway must have ended the session and erased the credential
	require.Equal(t, StatusAnonymous, store.Status())
	v, err := slot.Get(ctx, common.CredentialSlotKey)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestEndToEnd_StaleCredentialRejectedOnRehydration(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t, time.Hour)

	client := api.NewHTTPClient(ts.URL, 5*time.Second)
	slot := newSlot(t)
	require.NoError(t, slot.Set(ctx, common.CredentialSlotKey, []byte("garbage-token")))

	store := NewStore(client, slot, testLogger())
	require.NoError(t, store.Initialize(ctx))
	require.Equal(t, StatusAnonymous, store.Status())

	v, err := slot.Get(ctx, common.CredentialSlotKey)
	require.NoError(t, err)
	require.Nil(t, v)
}
