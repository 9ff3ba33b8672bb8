package storage

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX, driver Driver) *Queries {
	return &Queries{db: db, driver: driver}
}

type Queries struct {
	db     DBTX
	driver Driver
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{
		db:     tx,
		driver: q.driver,
	}
}
