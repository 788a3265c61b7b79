package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shopledger_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// ExpenseRepository defines the interface for expense and expense-category
// database operations, including the expense-side aggregations.
type ExpenseRepository interface {
	// ExpenseCategory methods
	CreateCategory(executor SQLExecutor, category *models.ExpenseCategory) (int64, error)
	GetCategoryByID(id int64) (*models.ExpenseCategory, error)
	GetCategories(categoryType *string) ([]models.ExpenseCategory, error)
	DeleteCategory(executor SQLExecutor, id int64) error

	// Expense methods
	CreateExpense(executor SQLExecutor, expense *models.Expense) (int64, error)
	GetExpenses(start, end *string) ([]models.Expense, error)
	DeleteExpense(executor SQLExecutor, expenseID int64) error

	// Aggregations
	GetExpenseSummaryByType(start, end *string) (map[string]float64, error)
	GetExpensesByCategory(start, end *string) ([]models.CategoryExpenseTotal, error)
	GetTotalExpenses(start, end *string) (float64, error)
}

type expenseRepository struct {
	db *sql.DB
}

// NewExpenseRepository creates a new instance of ExpenseRepository.
func NewExpenseRepository(db *sql.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

// --- ExpenseCategory Methods ---

func (r *expenseRepository) CreateCategory(executor SQLExecutor, category *models.ExpenseCategory) (int64, error) {
	query := `INSERT INTO expense_categories (name, category_type, created_at)
	          VALUES ($1, $2, $3)
	          RETURNING id`

	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query, category.Name, category.CategoryType, category.CreatedAt).Scan(&category.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: expense category '%s' already exists (constraint: %s)", ErrDuplicateKey, category.Name, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating expense category: %v", ErrDatabaseError, err)
	}
	return category.ID, nil
}

func (r *expenseRepository) GetCategoryByID(id int64) (*models.ExpenseCategory, error) {
	category := &models.ExpenseCategory{}
	query := `SELECT id, name, category_type, created_at FROM expense_categories WHERE id = $1`

	err := r.db.QueryRow(query, id).Scan(&category.ID, &category.Name, &category.CategoryType, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting expense category by ID %d: %v", ErrDatabaseError, id, err)
	}
	return category, nil
}

func (r *expenseRepository) GetCategories(categoryType *string) ([]models.ExpenseCategory, error) {
	categories := []models.ExpenseCategory{}

	query := `SELECT id, name, category_type, created_at FROM expense_categories`
	var args []interface{}
	if categoryType != nil && *categoryType != "" {
		query += ` WHERE category_type = $1 ORDER BY name`
		args = append(args, *categoryType)
	} else {
		query += ` ORDER BY category_type, name`
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying expense categories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.ExpenseCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.CategoryType, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning expense category: %v", ErrDatabaseError, err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating expense category rows: %v", ErrDatabaseError, err)
	}
	return categories, nil
}

// DeleteCategory refuses to remove a category that expenses still reference.
// The foreign key enforces that atomically with the delete itself, so a
// concurrent insert cannot slip past a separate pre-check.
func (r *expenseRepository) DeleteCategory(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM expense_categories WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: expense category ID %d has expenses recorded against it (constraint: %s)", ErrInUse, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting expense category ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Expense Methods ---

func (r *expenseRepository) CreateExpense(executor SQLExecutor, expense *models.Expense) (int64, error) {
	query := `INSERT INTO expenses (category_id, amount, description, expense_date, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	if expense.ExpenseDate.IsZero() {
		expense.ExpenseDate = time.Now()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		expense.CategoryID, expense.Amount, expense.Description, expense.ExpenseDate, expense.CreatedAt,
	).Scan(&expense.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, fmt.Errorf("%w: expense references unknown category ID %d (constraint: %s)", ErrDatabaseError, expense.CategoryID, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating expense: %v", ErrDatabaseError, err)
	}
	return expense.ID, nil
}

func (r *expenseRepository) GetExpenses(start, end *string) ([]models.Expense, error) {
	expenses := []models.Expense{}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT e.id, e.category_id, e.amount, e.description, e.expense_date, e.created_at,
               ec.name as category_name, ec.category_type
        FROM expenses e
        JOIN expense_categories ec ON e.category_id = ec.id
    `)

	var conditions []string
	var args []interface{}
	conditions, args, _ = appendDateRange(conditions, args, 1, "e.expense_date", start, end)
	queryBuilder.WriteString(whereClause(conditions))
	queryBuilder.WriteString(" ORDER BY e.expense_date DESC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying expenses: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.CategoryID, &e.Amount, &e.Description, &e.ExpenseDate, &e.CreatedAt, &e.CategoryName, &e.CategoryType); err != nil {
			return nil, fmt.Errorf("%w: scanning expense: %v", ErrDatabaseError, err)
		}
		expenses = append(expenses, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating expense rows: %v", ErrDatabaseError, err)
	}
	return expenses, nil
}

func (r *expenseRepository) DeleteExpense(executor SQLExecutor, expenseID int64) error {
	result, err := executor.Exec(`DELETE FROM expenses WHERE id = $1`, expenseID)
	if err != nil {
		return fmt.Errorf("%w: deleting expense ID %d: %v", ErrDatabaseError, expenseID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Aggregations ---

// GetExpenseSummaryByType sums amounts per category type over an optional
// calendar-date range. Types with no matching expenses are absent from the
// map; callers treat missing keys as zero.
func (r *expenseRepository) GetExpenseSummaryByType(start, end *string) (map[string]float64, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT ec.category_type, COALESCE(SUM(e.amount), 0) as total_amount
        FROM expense_categories ec
        LEFT JOIN expenses e ON ec.id = e.category_id
    `)

	var conditions []string
	var args []interface{}
	conditions, args, _ = appendDateRange(conditions, args, 1, "e.expense_date", start, end)
	queryBuilder.WriteString(whereClause(conditions))
	queryBuilder.WriteString(" GROUP BY ec.category_type")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying expense summary by type: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	summary := map[string]float64{}
	for rows.Next() {
		var categoryType string
		var total float64
		if err := rows.Scan(&categoryType, &total); err != nil {
			return nil, fmt.Errorf("%w: scanning expense summary row: %v", ErrDatabaseError, err)
		}
		summary[categoryType] = total
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating expense summary rows: %v", ErrDatabaseError, err)
	}
	return summary, nil
}

// GetExpensesByCategory totals per category. Unlike the daily trend, the LEFT
// JOIN keeps zero-total categories in the result; the asymmetry is deliberate.
func (r *expenseRepository) GetExpensesByCategory(start, end *string) ([]models.CategoryExpenseTotal, error) {
	results := []models.CategoryExpenseTotal{}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT ec.id, ec.name, ec.category_type,
               COALESCE(SUM(e.amount), 0) as total_amount,
               COUNT(e.id) as expense_count
        FROM expense_categories ec
        LEFT JOIN expenses e ON ec.id = e.category_id
    `)

	var conditions []string
	var args []interface{}
	conditions, args, _ = appendDateRange(conditions, args, 1, "e.expense_date", start, end)
	queryBuilder.WriteString(whereClause(conditions))
	queryBuilder.WriteString(" GROUP BY ec.id, ec.name, ec.category_type ORDER BY total_amount DESC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying expenses by category: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ct models.CategoryExpenseTotal
		if err := rows.Scan(&ct.CategoryID, &ct.CategoryName, &ct.CategoryType, &ct.TotalAmount, &ct.ExpenseCount); err != nil {
			return nil, fmt.Errorf("%w: scanning category total: %v", ErrDatabaseError, err)
		}
		results = append(results, ct)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating category total rows: %v", ErrDatabaseError, err)
	}
	return results, nil
}

func (r *expenseRepository) GetTotalExpenses(start, end *string) (float64, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT COALESCE(SUM(amount), 0) FROM expenses`)

	var conditions []string
	var args []interface{}
	conditions, args, _ = appendDateRange(conditions, args, 1, "expense_date", start, end)
	queryBuilder.WriteString(whereClause(conditions))

	var total float64
	if err := r.db.QueryRow(queryBuilder.String(), args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: querying total expenses: %v", ErrDatabaseError, err)
	}
	return total, nil
}
