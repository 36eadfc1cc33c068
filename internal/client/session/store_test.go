package session

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dverbis/itemkeeper/internal/client/models"
	"github.com/dverbis/itemkeeper/internal/client/repositories/metadata"
	"github.com/dverbis/itemkeeper/internal/common"
	"github.com/dverbis/itemkeeper/internal/logging"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:sessionstore?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
DELETE FROM metadata;
`)
	require.NoError(t, err)
	return db
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestStore(t *testing.T, client *fakeAuthClient) (*Store, metadata.Repository) {
	t.Helper()
	slot := metadata.NewSQLiteRepository(setupDB(t))
	return NewStore(client, slot, testLogger()), slot
}

func slotValue(t *testing.T, slot metadata.Repository) []byte {
	t.Helper()
	v, err := slot.Get(context.Background(), common.CredentialSlotKey)
	require.NoError(t, err)
	return v
}

// ---- fake auth client ----

type fakeAuthClient struct {
	LoginToken string
	LoginUser  *models.User
	LoginErr   error

	RegisterUser *models.User
	RegisterErr  error

	MeUser *models.User
	MeErr  error

	LastLoginUsername string
	LastMeToken       string
	RegisterCalls     int
}

func (f *fakeAuthClient) Login(_ context.Context, username, _ string) (string, *models.User, error) {
	f.LastLoginUsername = username
	if f.LoginErr != nil {
		return "", nil, f.LoginErr
	}
	return f.LoginToken, f.LoginUser.Clone(), nil
}

func (f *fakeAuthClient) Register(_ context.Context, _, _, _ string) (*models.User, error) {
	f.RegisterCalls++
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	return f.RegisterUser.Clone(), nil
}

func (f *fakeAuthClient) Me(_ context.Context, token string) (*models.User, error) {
	f.LastMeToken = token
	if f.MeErr != nil {
		return nil, f.MeErr
	}
	return f.MeUser.Clone(), nil
}

// ---- tests ----

func TestStore_StartsUnresolved(t *testing.T) {
	store, _ := newTestStore(t, &fakeAuthClient{})
	require.Equal(t, StatusUnresolved, store.Status())
	require.Nil(t, store.User())
	require.Empty(t, store.Token())
}

func TestStore_Initialize_NoCredential_Anonymous(t *testing.T) {
	ctx := context.Background()
	client := &fakeAuthClient{}
	store, _ := newTestStore(t, client)

	require.NoError(t, store.Initialize(ctx))
	require.Equal(t, StatusAnonymous, store.Status())
	// no remote call must happen without a stored credential
	require.Empty(t, client.LastMeToken)
}

func TestStore_Initialize_AcceptedCredential_Authenticated(t *testing.T) {
	ctx := context.Background()
	client := &fakeAuthClient{MeUser: &models.User{ID: "u1", Username: "alice", Email: "a@x.com"}}
	store, slot := newTestStore(t, client)

	require.NoError(t, slot.Set(ctx, common.CredentialSlotKey, []byte("tok-stored")))

	require.NoError(t, store.Initialize(ctx))
	require.Equal(t, StatusAuthenticated, store.Status())
	require.Equal(t, "alice", store.User().Username)
	require.Equal(t, "tok-stored", store.Token())
	require.Equal(t, "tok-stored", client.LastMeToken)
}

func TestStore_Initialize_RejectedCredential_ErasesSlot(t *testing.T) {
	ctx := context.Background()
	client := &fakeAuthClient{MeErr: common.ErrorUnauthorized}
	store, slot := newTestStore(t, client)

	require.NoError(t, slot.Set(ctx, common.CredentialSlotKey, []byte("tok-stale")))

	require.NoError(t, store.Initialize(ctx))
	require.Equal(t, StatusAnonymous, store.Status())
	require.Nil(t, slotValue(t, slot))
}

func TestStore_Initialize_SecondCallIsNoop(t *testing.T) {
	ctx := context.Background()
	client := &fakeAuthClient{MeUser: &models.User{ID: "u1", Username: "alice"}}
	store, slot := newTestStore(t, client)

	require.NoError(t, slot.Set(ctx, common.CredentialSlotKey, []byte("tok")))
	require.NoError(t, store.Initialize(ctx))
	require.Equal(t, StatusAuthenticated, store.Status())

	// status never goes back to Unresolved, and a second Initialize does
	// not re-resolve
	client.MeErr = common.ErrorUnauthorized
	require.NoError(t, store.Initialize(ctx))
	require.Equal(t, StatusAuthenticated, store.Status())
}

func TestStore_Login_Success_PersistsCredential(t *testing.T) {
	ctx := context.Background()
	client := &fakeAuthClient{
		LoginToken: "tok-fresh",
		LoginUser:  &models.User{ID: "u1", Username: "alice", Email: "a@x.com"},
	}
	store, slot := newTestStore(t, client)
	require.NoError(t, store.Initialize(ctx))

	require.NoError(t, store.Login(ctx, "alice", "correct"))
	require.Equal(t, StatusAuthenticated, store.Status())
	require.Equal(t, "tok-fresh", store.Token())
	require.Equal(t, []byte("tok-fresh"), slotValue(t, slot))
}

func TestStore_Login_Failure_StateUnchanged(t *testing.T) {
	ctx := context.Background()
	client := &fakeAuthClient{LoginErr: common.ErrorUnauthorized}
	store, slot := newTestStore(t, client)
	require.NoError(t, store.Initialize(ctx))

	err := store.Login(ctx, "bob", "wrong")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	require.Equal(t, StatusAnonymous, store.Status())
	require.Empty(t, store.Token())
	require.Nil(t, slotValue(t, slot))
}

func TestStore_Register_NoSessionStateChange(t *testing.T) {
	ctx := context.Background()
	client := &fakeAuthClient{RegisterUser: &models.User{ID: "u2", Username: "bob"}}
	store, slot := newTestStore(t, client)
	require.NoError(t, store.Initialize(ctx))

	require.NoError(t, store.Register(ctx, "e@x.com", "bob", "secret1"))
	require.Equal(t, 1, client.RegisterCalls)
	require.Equal(t, StatusAnonymous, store.Status())
	require.Nil(t, store.User())
	require.Nil(t, slotValue(t, slot))
}

func TestStore_Logout_Idempotent(t *testing.T) {
	ctx := context.Background()
	client := &fakeAuthClient{
		LoginToken: "tok",
		LoginUser:  &models.User{ID: "u1", Username: "alice"},
	}
	store, slot := newTestStore(t, client)
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.Login(ctx, "alice", "pw"))

	require.NoError(t, store.Logout(ctx))
	require.Equal(t, StatusAnonymous, store.Status())
	require.Nil(t, slotValue(t, slot))

	// already anonymous: still succeeds, still anonymous
	require.NoError(t, store.Logout(ctx))
	require.Equal(t, StatusAnonymous, store.Status())
	require.Nil(t, slotValue(t, slot))
}

func TestStore_ForceLogout_ClearsEverything(t *testing.T) {
	ctx := context.Background()
	client := &fakeAuthClient{
		LoginToken: "tok",
		LoginUser:  &models.User{ID: "u1", Username: "alice"},
	}
	store, slot := newTestStore(t, client)
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.Login(ctx, "alice", "pw"))

	require.NoError(t, store.ForceLogout(ctx))
	require.Equal(t, StatusAnonymous, store.Status())
	require.Nil(t, store.User())
	require.Empty(t, store.Token())
	require.Nil(t, slotValue(t, slot))
}

func TestStore_OnChange_FiresOnTransitions(t *testing.T) {
	ctx := context.Background()
	client := &fakeAuthClient{
		LoginToken: "tok",
		LoginUser:  &models.User{ID: "u1", Username: "alice"},
	}
	store, _ := newTestStore(t, client)

	var seen []Status
	store.OnChange(func(s Status) { seen = append(seen, s) })

	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.Login(ctx, "alice", "pw"))
	require.NoError(t, store.Logout(ctx))
	require.NoError(t, store.Logout(ctx)) // no transition, no callback

	require.Equal(t, []Status{StatusAnonymous, StatusAuthenticated, StatusAnonymous}, seen)
}
