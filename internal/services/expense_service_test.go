package services

import (
	"testing"

	"shopledger_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func operatingCategory(id int64, name string) models.ExpenseCategory {
	return models.ExpenseCategory{ID: id, Name: name, CategoryType: models.CategoryTypeOperating}
}

func TestCreateCategoryValidation(t *testing.T) {
	svc := NewExpenseService(nil, &fakeExpenseRepo{})

	_, err := svc.CreateCategory(CategoryRequest{Name: "", CategoryType: models.CategoryTypeOperating})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateCategory(CategoryRequest{Name: "Fuel", CategoryType: "capital"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateCategoryDuplicate(t *testing.T) {
	repo := &fakeExpenseRepo{categories: []models.ExpenseCategory{operatingCategory(1, "Rent")}}
	svc := NewExpenseService(nil, repo)

	_, err := svc.CreateCategory(CategoryRequest{Name: "Rent", CategoryType: models.CategoryTypeOperating})
	assert.ErrorIs(t, err, ErrCategoryTaken)
}

func TestDeleteCategoryInUse(t *testing.T) {
	repo := &fakeExpenseRepo{
		categories: []models.ExpenseCategory{operatingCategory(1, "Rent")},
		expenses:   []models.Expense{{ID: 1, CategoryID: 1, Amount: 500}},
	}
	svc := NewExpenseService(nil, repo)

	assert.ErrorIs(t, svc.DeleteCategory(1), ErrCategoryInUse)
	assert.ErrorIs(t, svc.DeleteCategory(42), ErrCategoryNotFound)
}

func TestCreateExpense(t *testing.T) {
	repo := &fakeExpenseRepo{categories: []models.ExpenseCategory{operatingCategory(1, "Rent")}}
	svc := NewExpenseService(nil, repo)

	expense, err := svc.CreateExpense(ExpenseRequest{CategoryID: 1, Amount: 5000, Description: "September rent", ExpenseDate: "2025-09-01"})
	require.NoError(t, err)
	assert.Equal(t, "Rent", expense.CategoryName)
	assert.Equal(t, models.CategoryTypeOperating, expense.CategoryType)
	assert.Equal(t, "2025-09-01", expense.ExpenseDate.Format("2006-01-02"))
	require.NotNil(t, expense.Description)
	assert.Equal(t, "September rent", *expense.Description)
}

func TestCreateExpenseValidation(t *testing.T) {
	repo := &fakeExpenseRepo{categories: []models.ExpenseCategory{operatingCategory(1, "Rent")}}
	svc := NewExpenseService(nil, repo)

	_, err := svc.CreateExpense(ExpenseRequest{CategoryID: 1, Amount: 0})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateExpense(ExpenseRequest{CategoryID: 1, Amount: -10})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateExpense(ExpenseRequest{CategoryID: 9, Amount: 10})
	assert.ErrorIs(t, err, ErrUnknownCategoryID)

	_, err = svc.CreateExpense(ExpenseRequest{CategoryID: 1, Amount: 10, ExpenseDate: "Sept 1"})
	assert.ErrorIs(t, err, ErrDateFormat)
}

func TestGetCategoriesTypeFilter(t *testing.T) {
	svc := NewExpenseService(nil, &fakeExpenseRepo{})

	_, err := svc.GetCategories("capital")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.GetCategories(models.CategoryTypeCOGS)
	assert.NoError(t, err)

	_, err = svc.GetCategories("")
	assert.NoError(t, err)
}

func TestGetExpensesRejectsBadRange(t *testing.T) {
	svc := NewExpenseService(nil, &fakeExpenseRepo{})

	_, err := svc.GetExpenses("2025-05-10", "2025-05-01")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.GetTotalExpenses("bad", "")
	assert.ErrorIs(t, err, ErrDateFormat)
}
