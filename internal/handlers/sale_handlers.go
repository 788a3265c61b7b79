package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"shopledger_backend/internal/services"
	"shopledger_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SaleHandler holds the sale service.
type SaleHandler struct {
	saleService services.SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(ss services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: ss}
}

// RecordSale registers a sale and decrements stock atomically.
func (h *SaleHandler) RecordSale(c *gin.Context) {
	var req services.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	sale, err := h.saleService.RecordSale(req)
	if err != nil {
		utils.LogError(err, "RecordSale: Error from saleService.RecordSale")
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Product not found.", err.Error()))
		case errors.Is(err, services.ErrInsufficientStock):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeInsufficientStock, "Not enough stock for this sale.", err.Error()))
		case errors.Is(err, services.ErrValidation):
			utils.RespondValidationFailed(c, err.Error())
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record sale.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// GetSales lists sales, newest first, with optional product and date filters.
func (h *SaleHandler) GetSales(c *gin.Context) {
	var productID *int64
	if raw := c.Query("product_id"); raw != "" {
		parsed, err := utils.StrToInt64(raw)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid product_id.", err.Error()))
			return
		}
		productID = &parsed
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid limit.", "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	sales, err := h.saleService.GetSales(productID, c.Query("start_date"), c.Query("end_date"), limit)
	if err != nil {
		utils.LogError(err, "GetSales: Error from saleService.GetSales")
		if errors.Is(err, services.ErrDateFormat) || errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, err.Error())
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve sales.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, sales)
}

// GetSaleByID fetches one sale with its product name.
func (h *SaleHandler) GetSaleByID(c *gin.Context) {
	saleID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid sale ID.", err.Error()))
		return
	}

	sale, err := h.saleService.GetSaleByID(saleID)
	if err != nil {
		utils.LogError(err, "GetSaleByID: Error from saleService.GetSaleByID")
		if errors.Is(err, services.ErrSaleNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Sale not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve sale.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, sale)
}

// GetSalesSummary returns total count, revenue and gross profit.
func (h *SaleHandler) GetSalesSummary(c *gin.Context) {
	summary, err := h.saleService.GetSalesSummary()
	if err != nil {
		utils.LogError(err, "GetSalesSummary: Error from saleService.GetSalesSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve sales summary.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, summary)
}
