package repomanager

import (
	"context"
	"database/sql"

	"github.com/dverbis/itemkeeper/internal/dbx"
	"github.com/dverbis/itemkeeper/internal/server/repositories/items"
	"github.com/dverbis/itemkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Items(db dbx.DBTX) items.Repository
}
