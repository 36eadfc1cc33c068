package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dverbis/itemkeeper/internal/client/api"
	"github.com/dverbis/itemkeeper/internal/client/gateway"
	"github.com/dverbis/itemkeeper/internal/client/models"
	"github.com/dverbis/itemkeeper/internal/client/repositories/metadata"
	"github.com/dverbis/itemkeeper/internal/client/session"
	"github.com/dverbis/itemkeeper/internal/logging"

	_ "modernc.org/sqlite"
)

func stubInputs(t *testing.T, lines []string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		line := lines[i]
		i++
		return line, nil
	}
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		return append([]byte(nil), password...), nil
	}
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

type fakeAPI struct {
	regEmail    string
	regUsername string
	regPassword string
	regErr      error

	loginErr error
	token    string
	user     *models.User

	items []models.Item
}

func (f *fakeAPI) Login(_ context.Context, username, password string) (string, *models.User, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.token, f.user, nil
}

func (f *fakeAPI) Register(_ context.Context, email, username, password string) (*models.User, error) {
	f.regEmail, f.regUsername, f.regPassword = email, username, password
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &models.User{ID: "u1", Email: email, Username: username}, nil
}

func (f *fakeAPI) Me(context.Context, string) (*models.User, error) { return f.user, nil }

func (f *fakeAPI) ListItems(_ context.Context, _ string) ([]models.Item, error) {
	return f.items, nil
}

func (f *fakeAPI) CreateItem(_ context.Context, _ string, draft models.ItemDraft) (*models.Item, error) {
	item := models.Item{ID: "i1", Title: draft.Title, Description: draft.Description}
	f.items = append(f.items, item)
	return &item, nil
}

func (f *fakeAPI) UpdateItem(_ context.Context, _, id string, draft models.ItemDraft) (*models.Item, error) {
	return &models.Item{ID: id, Title: draft.Title, Description: draft.Description}, nil
}

func (f *fakeAPI) DeleteItem(context.Context, string, string) error { return nil }

func newTestApp(t *testing.T, remote *fakeAPI) *App {
	t.Helper()

	db, err := sql.Open("sqlite", "file:clitests?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL); DELETE FROM metadata;`); err != nil {
		t.Fatal(err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	store := session.NewStore(remote, metadata.NewSQLiteRepository(db), logger)
	gw := gateway.New(remote, store, logger)

	return &App{
		logger:  logger,
		db:      db,
		store:   store,
		gateway: gw,
		reader:  bufio.NewReader(strings.NewReader("")),
	}
}

func TestRegister_Success(t *testing.T) {
	remote := &fakeAPI{}
	a := newTestApp(t, remote)

	restore := stubInputs(t, []string{"alice@example.org", "alice"}, []byte("secret1"))
	defer restore()

	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if remote.regEmail != "alice@example.org" || remote.regUsername != "alice" {
		t.Fatalf("Register args mismatch: %q %q", remote.regEmail, remote.regUsername)
	}
	if remote.regPassword != "secret1" {
		t.Fatalf("Register pass mismatch: %q", remote.regPassword)
	}
	if got := a.store.Status(); got == session.StatusAuthenticated {
		t.Fatalf("register must not log the user in, got %v", got)
	}
}

func TestRegister_ShortPasswordNeverSent(t *testing.T) {
	remote := &fakeAPI{}
	a := newTestApp(t, remote)

	restore := stubInputs(t, []string{"a@x.com", "bob"}, []byte("abc"))
	defer restore()

	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if remote.regUsername != "" {
		t.Fatalf("short password must be rejected before the request, got call with %q", remote.regUsername)
	}
}

func TestLogin_SuccessEntersDashboard(t *testing.T) {
	remote := &fakeAPI{
		token: "tok",
		user:  &models.User{ID: "u1", Username: "alice", Email: "a@x.com"},
		items: []models.Item{{ID: "i1", Title: "first"}},
	}
	a := newTestApp(t, remote)

	restore := stubInputs(t, []string{"alice"}, []byte("secret1"))
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if a.store.Status() != session.StatusAuthenticated {
		t.Fatalf("want authenticated, got %v", a.store.Status())
	}
}

func TestLogin_FailureStaysAnonymous(t *testing.T) {
	remote := &fakeAPI{loginErr: &api.Error{Kind: api.KindAuthRejected, Detail: "Incorrect username or password"}}
	a := newTestApp(t, remote)

	restore := stubInputs(t, []string{"alice"}, []byte("wrong"))
	defer restore()

	if err := a.Login(context.Background()); err == nil {
		t.Fatal("want error")
	}
	if a.store.Status() == session.StatusAuthenticated {
		t.Fatal("failed login must not authenticate")
	}
}

func TestLogout(t *testing.T) {
	remote := &fakeAPI{token: "tok", user: &models.User{ID: "u1", Username: "alice"}}
	a := newTestApp(t, remote)

	restore := stubInputs(t, []string{"alice"}, []byte("secret1"))
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if a.store.Status() != session.StatusAnonymous {
		t.Fatalf("want anonymous, got %v", a.store.Status())
	}
}
