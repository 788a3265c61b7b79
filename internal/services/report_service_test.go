package services

import (
	"testing"

	"shopledger_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfitAnalysis(t *testing.T) {
	saleRepo := &fakeSaleRepo{revenue: 50000, grossProfit: 10000}
	expenseRepo := &fakeExpenseRepo{summaryByType: map[string]float64{
		models.CategoryTypeOperating: 5000,
		models.CategoryTypeCOGS:      2000,
	}}
	svc := NewReportService(saleRepo, expenseRepo, &fakeProductRepo{})

	analysis, err := svc.GetProfitAnalysis("", "")
	require.NoError(t, err)

	assert.Equal(t, 50000.0, analysis.TotalRevenue)
	assert.Equal(t, 10000.0, analysis.TotalGrossProfit)
	assert.Equal(t, 2000.0, analysis.TotalCOGS)
	assert.Equal(t, 5000.0, analysis.TotalOperatingExpenses)
	assert.Equal(t, 7000.0, analysis.TotalExpenses)
	// Net profit subtracts operating expenses only; COGS stays out.
	assert.Equal(t, 5000.0, analysis.NetProfit)
	assert.InDelta(t, 20.0, analysis.GrossProfitMargin, 1e-9)
	assert.InDelta(t, 10.0, analysis.NetProfitMargin, 1e-9)
}

func TestGetProfitAnalysisZeroRevenue(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	expenseRepo := &fakeExpenseRepo{summaryByType: map[string]float64{
		models.CategoryTypeOperating: 300,
	}}
	svc := NewReportService(saleRepo, expenseRepo, &fakeProductRepo{})

	analysis, err := svc.GetProfitAnalysis("", "")
	require.NoError(t, err)

	assert.Equal(t, -300.0, analysis.NetProfit)
	assert.Zero(t, analysis.GrossProfitMargin)
	assert.Zero(t, analysis.NetProfitMargin)
}

func TestGetProfitAnalysisMissingTypesAreZero(t *testing.T) {
	svc := NewReportService(&fakeSaleRepo{revenue: 100, grossProfit: 40}, &fakeExpenseRepo{summaryByType: map[string]float64{}}, &fakeProductRepo{})

	analysis, err := svc.GetProfitAnalysis("", "")
	require.NoError(t, err)
	assert.Zero(t, analysis.TotalCOGS)
	assert.Zero(t, analysis.TotalOperatingExpenses)
	assert.Equal(t, 40.0, analysis.NetProfit)
}

func TestGetProfitAnalysisRejectsBadDates(t *testing.T) {
	svc := NewReportService(&fakeSaleRepo{}, &fakeExpenseRepo{}, &fakeProductRepo{})

	_, err := svc.GetProfitAnalysis("2025-13-40", "")
	assert.ErrorIs(t, err, ErrDateFormat)

	_, err = svc.GetProfitAnalysis("2025-02-10", "2025-02-01")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetReportOverview(t *testing.T) {
	saleRepo := &fakeSaleRepo{
		perProduct: []models.ProductProfit{
			{ProductID: 1, ProductName: "Widget", TotalQuantity: 6, TotalRevenue: 720, TotalProfit: 120},
			{ProductID: 2, ProductName: "Gadget", TotalQuantity: 3, TotalRevenue: 300, TotalProfit: 60},
			{ProductID: 3, ProductName: "Dud", TotalQuantity: 0, TotalRevenue: 0, TotalProfit: 0},
		},
		trend: []models.DailyTrendPoint{
			{Date: "2025-08-01", DailyRevenue: 200, DailyGrossProfit: 40},
			{Date: "2025-08-02", DailyRevenue: 500, DailyGrossProfit: 90},
			{Date: "2025-08-04", DailyRevenue: 320, DailyGrossProfit: 50},
		},
		summary: models.SalesSummary{TotalSales: 9, TotalRevenue: 1020, TotalGrossProfit: 180},
	}
	svc := NewReportService(saleRepo, &fakeExpenseRepo{}, &fakeProductRepo{})

	overview, err := svc.GetReportOverview(30)
	require.NoError(t, err)

	// Averages divide all-time totals by the days present in the trend.
	assert.InDelta(t, 340.0, overview.DailyAvgRevenue, 1e-9)
	assert.InDelta(t, 60.0, overview.DailyAvgProfit, 1e-9)
	assert.InDelta(t, 3.0, overview.DailyAvgItems, 1e-9)

	assert.Equal(t, "2025-08-02", overview.BestDayDate)
	assert.Equal(t, 500.0, overview.BestDayRevenue)
	assert.Equal(t, "500.00", overview.BestDayDisplay)

	// (320 - 200) / 200 * 100
	assert.InDelta(t, 60.0, overview.GrowthRate, 1e-9)

	assert.Len(t, overview.TopProducts, 3)
	assert.Equal(t, []string{"2025-08-01", "2025-08-02", "2025-08-04"}, overview.TrendChart.Labels)
	// Zero-revenue products are dropped from the distribution chart.
	assert.Equal(t, []string{"Widget", "Gadget"}, overview.DistributionChart.Labels)
}

func TestGetReportOverviewAveragesUseAllTimeTotals(t *testing.T) {
	// The per-product totals span all recorded sales while the trend covers a
	// window; all three averages divide the former by the latter's day count.
	saleRepo := &fakeSaleRepo{
		perProduct: []models.ProductProfit{
			{ProductID: 1, ProductName: "Widget", TotalQuantity: 10, TotalRevenue: 1000, TotalProfit: 250},
		},
		trend: []models.DailyTrendPoint{
			{Date: "2025-08-01", DailyRevenue: 100, DailyGrossProfit: 20},
			{Date: "2025-08-02", DailyRevenue: 200, DailyGrossProfit: 30},
		},
		summary: models.SalesSummary{TotalSales: 10, TotalRevenue: 1000, TotalGrossProfit: 250},
	}
	svc := NewReportService(saleRepo, &fakeExpenseRepo{}, &fakeProductRepo{})

	overview, err := svc.GetReportOverview(7)
	require.NoError(t, err)

	assert.InDelta(t, 500.0, overview.DailyAvgRevenue, 1e-9)
	assert.InDelta(t, 125.0, overview.DailyAvgProfit, 1e-9)
	assert.InDelta(t, 5.0, overview.DailyAvgItems, 1e-9)
}

func TestGetReportOverviewEmptyTrend(t *testing.T) {
	svc := NewReportService(&fakeSaleRepo{}, &fakeExpenseRepo{}, &fakeProductRepo{})

	overview, err := svc.GetReportOverview(0)
	require.NoError(t, err)

	assert.Equal(t, "N/A", overview.BestDayDate)
	assert.Zero(t, overview.BestDayRevenue)
	assert.Zero(t, overview.DailyAvgRevenue)
	assert.Zero(t, overview.GrowthRate)
	assert.Empty(t, overview.TrendChart.Labels)
}

func TestGetReportOverviewTopProductsCapped(t *testing.T) {
	perProduct := make([]models.ProductProfit, 8)
	for i := range perProduct {
		perProduct[i] = models.ProductProfit{ProductID: int64(i + 1), ProductName: "P", TotalProfit: float64(100 - i)}
	}
	svc := NewReportService(&fakeSaleRepo{perProduct: perProduct}, &fakeExpenseRepo{}, &fakeProductRepo{})

	overview, err := svc.GetReportOverview(7)
	require.NoError(t, err)
	assert.Len(t, overview.TopProducts, TopProductsLimit)
	assert.Len(t, overview.ProfitPerProduct, 8)
}

func TestGrowthRate(t *testing.T) {
	assert.Zero(t, growthRate(nil))
	assert.Zero(t, growthRate([]models.DailyTrendPoint{{DailyRevenue: 50}}))
	assert.Zero(t, growthRate([]models.DailyTrendPoint{{DailyRevenue: 0}, {DailyRevenue: 80}}))
	assert.InDelta(t, -50.0, growthRate([]models.DailyTrendPoint{{DailyRevenue: 100}, {DailyRevenue: 50}}), 1e-9)
}

func TestGetDashboardSummary(t *testing.T) {
	saleRepo := &fakeSaleRepo{
		summary:     models.SalesSummary{TotalSales: 4, TotalRevenue: 800, TotalGrossProfit: 150},
		sales:       []models.Sale{{ID: 1, ProductID: 1, QuantitySold: 2}},
		bestSellers: []models.BestSeller{{ProductID: 1, ProductName: "Widget", TotalSold: 6}},
	}
	productRepo := &fakeProductRepo{
		products: []models.Product{
			{ID: 1, Name: "Widget", Quantity: 3},
			{ID: 2, Name: "Gadget", Quantity: 40},
		},
		productCount: 2,
		totalUnits:   43,
	}
	svc := NewReportService(saleRepo, &fakeExpenseRepo{}, productRepo)

	summary, err := svc.GetDashboardSummary()
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Summary.TotalSales)
	require.Len(t, summary.LowStock, 1)
	assert.Equal(t, "Widget", summary.LowStock[0].Name)
	assert.Equal(t, 2, summary.TotalProducts)
	assert.Equal(t, 43, summary.TotalItems)
	assert.Len(t, summary.RecentSales, 1)
	assert.Len(t, summary.BestSelling, 1)
}
