package handlers

import (
	"errors"
	"net/http"

	"shopledger_backend/internal/services"
	"shopledger_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler holds the expense service.
type ExpenseHandler struct {
	expenseService services.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(es services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: es}
}

func respondExpenseError(c *gin.Context, err error, action string) {
	utils.LogError(err, action+": Error from expenseService")
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Expense category not found.", err.Error()))
	case errors.Is(err, services.ErrExpenseNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Expense not found.", err.Error()))
	case errors.Is(err, services.ErrCategoryTaken):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Expense category name already exists.", err.Error()))
	case errors.Is(err, services.ErrCategoryInUse):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Expense category has recorded expenses and cannot be deleted.", err.Error()))
	case errors.Is(err, services.ErrUnknownCategoryID):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Unknown expense category.", err.Error()))
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrDateFormat):
		utils.RespondValidationFailed(c, err.Error())
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process expense request.", "Internal error"))
	}
}

// CreateCategory adds an expense category.
func (h *ExpenseHandler) CreateCategory(c *gin.Context) {
	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	category, err := h.expenseService.CreateCategory(req)
	if err != nil {
		respondExpenseError(c, err, "CreateCategory")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// GetCategories lists categories, optionally filtered by type.
func (h *ExpenseHandler) GetCategories(c *gin.Context) {
	categories, err := h.expenseService.GetCategories(c.Query("type"))
	if err != nil {
		respondExpenseError(c, err, "GetCategories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// DeleteCategory removes an unused category.
func (h *ExpenseHandler) DeleteCategory(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid category ID.", err.Error()))
		return
	}

	if err := h.expenseService.DeleteCategory(id); err != nil {
		respondExpenseError(c, err, "DeleteCategory")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully."})
}

// CreateExpense records an expense against a category.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req services.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	expense, err := h.expenseService.CreateExpense(req)
	if err != nil {
		respondExpenseError(c, err, "CreateExpense")
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// GetExpenses lists expenses with their categories over an optional range.
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	expenses, err := h.expenseService.GetExpenses(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		respondExpenseError(c, err, "GetExpenses")
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// DeleteExpense removes an expense.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid expense ID.", err.Error()))
		return
	}

	if err := h.expenseService.DeleteExpense(id); err != nil {
		respondExpenseError(c, err, "DeleteExpense")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully."})
}

// GetExpensesByCategory totals expenses per category over an optional range.
func (h *ExpenseHandler) GetExpensesByCategory(c *gin.Context) {
	totals, err := h.expenseService.GetExpensesByCategory(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		respondExpenseError(c, err, "GetExpensesByCategory")
		return
	}
	c.JSON(http.StatusOK, totals)
}

// GetTotalExpenses returns the expense sum over an optional range.
func (h *ExpenseHandler) GetTotalExpenses(c *gin.Context) {
	total, err := h.expenseService.GetTotalExpenses(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		respondExpenseError(c, err, "GetTotalExpenses")
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_expenses": total})
}
