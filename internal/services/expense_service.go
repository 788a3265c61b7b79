package services

import (
	"errors"
	"fmt"
	"time"

	"shopledger_backend/internal/models"
	"shopledger_backend/internal/repositories"
	"shopledger_backend/pkg/utils"
)

// --- Custom Service Errors ---
var (
	ErrCategoryNotFound  = errors.New("expense category not found")
	ErrCategoryTaken     = errors.New("expense category name already exists")
	ErrCategoryInUse     = errors.New("expense category has recorded expenses")
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrUnknownCategoryID = errors.New("unknown expense category")
)

// --- Data Transfer Objects (DTOs) ---

// CategoryRequest DTO
type CategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	CategoryType string `json:"category_type" binding:"required"`
}

// ExpenseRequest DTO
type ExpenseRequest struct {
	CategoryID  int64   `json:"category_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description"`
	ExpenseDate string  `json:"expense_date"` // YYYY-MM-DD, defaults to today
}

// --- ExpenseService Interface ---
type ExpenseService interface {
	CreateCategory(req CategoryRequest) (*models.ExpenseCategory, error)
	GetCategories(categoryType string) ([]models.ExpenseCategory, error)
	DeleteCategory(id int64) error

	CreateExpense(req ExpenseRequest) (*models.Expense, error)
	GetExpenses(startDate, endDate string) ([]models.Expense, error)
	DeleteExpense(expenseID int64) error

	GetExpensesByCategory(startDate, endDate string) ([]models.CategoryExpenseTotal, error)
	GetTotalExpenses(startDate, endDate string) (float64, error)
}

// --- expenseService Implementation ---
type expenseService struct {
	db          repositories.DB
	expenseRepo repositories.ExpenseRepository
}

// NewExpenseService creates a new instance of ExpenseService.
func NewExpenseService(db repositories.DB, expenseRepo repositories.ExpenseRepository) ExpenseService {
	return &expenseService{db: db, expenseRepo: expenseRepo}
}

func validCategoryType(categoryType string) bool {
	return categoryType == models.CategoryTypeOperating || categoryType == models.CategoryTypeCOGS
}

func (s *expenseService) CreateCategory(req CategoryRequest) (*models.ExpenseCategory, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}
	if !validCategoryType(req.CategoryType) {
		return nil, fmt.Errorf("%w: category type must be '%s' or '%s'",
			ErrValidation, models.CategoryTypeOperating, models.CategoryTypeCOGS)
	}

	category := &models.ExpenseCategory{Name: req.Name, CategoryType: req.CategoryType}
	if _, err := s.expenseRepo.CreateCategory(s.db, category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrCategoryTaken
		}
		return nil, fmt.Errorf("failed to create expense category: %w", err)
	}
	return category, nil
}

func (s *expenseService) GetCategories(categoryType string) ([]models.ExpenseCategory, error) {
	if categoryType != "" && !validCategoryType(categoryType) {
		return nil, fmt.Errorf("%w: category type must be '%s' or '%s'",
			ErrValidation, models.CategoryTypeOperating, models.CategoryTypeCOGS)
	}
	var filter *string
	if categoryType != "" {
		filter = &categoryType
	}
	return s.expenseRepo.GetCategories(filter)
}

func (s *expenseService) DeleteCategory(id int64) error {
	err := s.expenseRepo.DeleteCategory(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCategoryNotFound
		}
		if errors.Is(err, repositories.ErrInUse) {
			return ErrCategoryInUse
		}
		return fmt.Errorf("failed to delete expense category: %w", err)
	}
	return nil
}

func (s *expenseService) CreateExpense(req ExpenseRequest) (*models.Expense, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	category, err := s.expenseRepo.GetCategoryByID(req.CategoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownCategoryID
		}
		return nil, fmt.Errorf("failed to check expense category: %w", err)
	}

	expense := &models.Expense{
		CategoryID:   req.CategoryID,
		Amount:       req.Amount,
		Description:  utils.NewNullString(req.Description),
		CategoryName: category.Name,
		CategoryType: category.CategoryType,
	}
	if req.ExpenseDate != "" {
		parsed, err := time.Parse(dateLayout, req.ExpenseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: expense_date '%s'", ErrDateFormat, req.ExpenseDate)
		}
		expense.ExpenseDate = parsed
	}

	if _, err := s.expenseRepo.CreateExpense(s.db, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return expense, nil
}

func (s *expenseService) GetExpenses(startDate, endDate string) ([]models.Expense, error) {
	start, end, err := normalizeDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.expenseRepo.GetExpenses(start, end)
}

func (s *expenseService) DeleteExpense(expenseID int64) error {
	err := s.expenseRepo.DeleteExpense(s.db, expenseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

func (s *expenseService) GetExpensesByCategory(startDate, endDate string) ([]models.CategoryExpenseTotal, error) {
	start, end, err := normalizeDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.expenseRepo.GetExpensesByCategory(start, end)
}

func (s *expenseService) GetTotalExpenses(startDate, endDate string) (float64, error) {
	start, end, err := normalizeDateRange(startDate, endDate)
	if err != nil {
		return 0, err
	}
	return s.expenseRepo.GetTotalExpenses(start, end)
}
