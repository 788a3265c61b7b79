package repositories

import "database/sql"

// Tx is an executor bound to a transaction. *sql.Tx satisfies it.
type Tx interface {
	SQLExecutor
	Commit() error
	Rollback() error
}

// DB is the handle services hold: it runs statements directly and opens
// transactions. Services that never touch transactions still accept it so the
// wiring stays uniform.
type DB interface {
	SQLExecutor
	Begin() (Tx, error)
}

// WrapDB adapts *sql.DB to DB. The indirection exists because sql.DB.Begin
// returns the concrete *sql.Tx type.
func WrapDB(db *sql.DB) DB { return sqlDB{db} }

type sqlDB struct{ *sql.DB }

func (d sqlDB) Begin() (Tx, error) {
	tx, err := d.DB.Begin()
	if err != nil {
		return nil, err
	}
	return tx, nil
}
