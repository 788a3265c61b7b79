package models

import "time"

// Expense category types. COGS-typed categories are tracked but excluded from
// the net-profit subtraction, because per-unit cost is already inside gross
// profit.
const (
	CategoryTypeOperating = "operating"
	CategoryTypeCOGS      = "cogs"
)

// ExpenseCategory groups expenses and carries the operating/cogs distinction
// the profit analysis depends on.
type ExpenseCategory struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" db:"name"`
	CategoryType string    `json:"category_type" db:"category_type"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Expense is a single recorded cost, always attached to a category.
type Expense struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"category_id" db:"category_id"`
	Amount       float64   `json:"amount" db:"amount"`
	Description  *string   `json:"description,omitempty" db:"description"`
	ExpenseDate  time.Time `json:"expense_date" db:"expense_date"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	CategoryName string    `json:"category_name,omitempty"` // joined from expense_categories
	CategoryType string    `json:"category_type,omitempty"` // joined from expense_categories
}

// CategoryExpenseTotal is one row of the per-category expense aggregation.
// Categories without expenses in range appear with zero totals.
type CategoryExpenseTotal struct {
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name"`
	CategoryType string  `json:"category_type"`
	TotalAmount  float64 `json:"total_amount"`
	ExpenseCount int     `json:"expense_count"`
}
