package sqlite

import (
	"database/sql"

	"github.com/soloday/soloday/internal/backend/store"
)

// Tx scopes the repositories to a single database transaction.
type Tx struct {
	tx *sql.Tx
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

func (t *Tx) Challenges() store.Challenges     { return &challengesRepo{db: t.tx} }
func (t *Tx) Identities() store.Identities     { return &identitiesRepo{db: t.tx} }
func (t *Tx) Profiles() store.Profiles         { return &profilesRepo{db: t.tx} }
func (t *Tx) AuthSessions() store.AuthSessions { return &authSessionsRepo{db: t.tx} }
func (t *Tx) Dreams() store.Dreams             { return &dreamsRepo{db: t.tx} }
