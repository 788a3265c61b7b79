package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It can be used to wrap more specific driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrInUse is returned when a delete is blocked by rows referencing the record.
	ErrInUse = errors.New("record is referenced by other records")
)

// SQLExecutor defines an interface that can be satisfied by *sql.DB or *sql.Tx.
// This allows repository methods to be used within transactions or with a direct
// DB connection.
type SQLExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// appendDateRange adds calendar-date bounds on the given timestamp column.
// Both bounds are inclusive and compare by date, not time of day. Dates are
// YYYY-MM-DD strings validated by the service layer. Returns the updated
// condition list, args, and next placeholder index.
func appendDateRange(conditions []string, args []interface{}, argIdx int, column string, start, end *string) ([]string, []interface{}, int) {
	if start != nil && *start != "" {
		conditions = append(conditions, fmt.Sprintf("%s::date >= $%d", column, argIdx))
		args = append(args, *start)
		argIdx++
	}
	if end != nil && *end != "" {
		conditions = append(conditions, fmt.Sprintf("%s::date <= $%d", column, argIdx))
		args = append(args, *end)
		argIdx++
	}
	return conditions, args, argIdx
}

// whereClause joins conditions into a WHERE clause, or returns "" when empty.
func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}
