package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"shopledger_backend/internal/services"
	"shopledger_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid "+name+".", name+" must be a non-negative integer"))
		return 0, false
	}
	return parsed, true
}

// GetProfitAnalysis returns the combined revenue/profit/expense breakdown.
func (h *ReportHandler) GetProfitAnalysis(c *gin.Context) {
	analysis, err := h.reportService.GetProfitAnalysis(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		utils.LogError(err, "GetProfitAnalysis: Error from reportService.GetProfitAnalysis")
		if errors.Is(err, services.ErrDateFormat) || errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, err.Error())
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute profit analysis.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// GetProfitPerProduct returns the per-product profit ranking.
func (h *ReportHandler) GetProfitPerProduct(c *gin.Context) {
	results, err := h.reportService.GetProfitPerProduct()
	if err != nil {
		utils.LogError(err, "GetProfitPerProduct: Error from reportService.GetProfitPerProduct")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute profit per product.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetBestSellingProducts returns the top products by units sold.
func (h *ReportHandler) GetBestSellingProducts(c *gin.Context) {
	limit, ok := queryInt(c, "limit", services.DashboardBestSellerLimit)
	if !ok {
		return
	}

	results, err := h.reportService.GetBestSellingProducts(limit)
	if err != nil {
		utils.LogError(err, "GetBestSellingProducts: Error from reportService.GetBestSellingProducts")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute best sellers.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetSalesData returns the raw daily trend for the chart widgets.
func (h *ReportHandler) GetSalesData(c *gin.Context) {
	days, ok := queryInt(c, "days", services.DefaultSalesDataDays)
	if !ok {
		return
	}

	trend, err := h.reportService.GetDailyProfitTrend(days)
	if err != nil {
		utils.LogError(err, "GetSalesData: Error from reportService.GetDailyProfitTrend")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute sales data.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, trend)
}

// GetReportOverview returns the full reports-page payload.
func (h *ReportHandler) GetReportOverview(c *gin.Context) {
	days, ok := queryInt(c, "days", services.DefaultTrendDays)
	if !ok {
		return
	}

	overview, err := h.reportService.GetReportOverview(days)
	if err != nil {
		utils.LogError(err, "GetReportOverview: Error from reportService.GetReportOverview")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build report overview.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, overview)
}

// GetDashboardSummary returns the dashboard metrics in one response.
func (h *ReportHandler) GetDashboardSummary(c *gin.Context) {
	summary, err := h.reportService.GetDashboardSummary()
	if err != nil {
		utils.LogError(err, "GetDashboardSummary: Error from reportService.GetDashboardSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build dashboard summary.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, summary)
}
