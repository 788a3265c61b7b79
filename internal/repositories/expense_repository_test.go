package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

// stubExecutor returns canned results for Exec; the query methods are unused
// by the paths under test.
type stubExecutor struct {
	execResult sql.Result
	execErr    error
}

func (s stubExecutor) Exec(query string, args ...interface{}) (sql.Result, error) {
	return s.execResult, s.execErr
}
func (s stubExecutor) QueryRow(query string, args ...interface{}) *sql.Row        { return nil }
func (s stubExecutor) Query(query string, args ...interface{}) (*sql.Rows, error) { return nil, nil }

type stubResult struct{ rows int64 }

func (r stubResult) LastInsertId() (int64, error) { return 0, nil }
func (r stubResult) RowsAffected() (int64, error) { return r.rows, nil }

func TestDeleteCategoryMapsForeignKeyViolationToInUse(t *testing.T) {
	repo := &expenseRepository{}
	executor := stubExecutor{execErr: &pq.Error{
		Code:       "23503", // foreign_key_violation
		Constraint: "expenses_category_id_fkey",
	}}

	err := repo.DeleteCategory(executor, 3)
	assert.ErrorIs(t, err, ErrInUse)
	assert.NotErrorIs(t, err, ErrDatabaseError)
}

func TestDeleteCategoryWrapsOtherExecErrors(t *testing.T) {
	repo := &expenseRepository{}
	executor := stubExecutor{execErr: errors.New("connection reset")}

	err := repo.DeleteCategory(executor, 3)
	assert.ErrorIs(t, err, ErrDatabaseError)
}

func TestDeleteCategoryReportsMissingRow(t *testing.T) {
	repo := &expenseRepository{}

	err := repo.DeleteCategory(stubExecutor{execResult: stubResult{rows: 0}}, 3)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, repo.DeleteCategory(stubExecutor{execResult: stubResult{rows: 1}}, 3))
}
