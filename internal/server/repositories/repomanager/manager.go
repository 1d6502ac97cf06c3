// Package repomanager bundles repository construction and schema migrations
// behind one interface so services can be wired against fakes in tests.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/campushub/identity/internal/dbx"
	"github.com/campushub/identity/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
