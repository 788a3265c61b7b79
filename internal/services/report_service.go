package services

import (
	"fmt"

	"shopledger_backend/internal/models"
	"shopledger_backend/internal/repositories"
	"shopledger_backend/pkg/utils"
)

// Defaults for the report and dashboard windows.
const (
	DefaultTrendDays         = 30
	DefaultSalesDataDays     = 7
	TopProductsLimit         = 5
	DashboardLowStockLimit   = 10
	DashboardBestSellerLimit = 5
	DashboardRecentSales     = 10
)

// --- ReportService Interface ---
type ReportService interface {
	GetProfitAnalysis(startDate, endDate string) (*models.ProfitAnalysis, error)
	GetProfitPerProduct() ([]models.ProductProfit, error)
	GetBestSellingProducts(limit int) ([]models.BestSeller, error)
	GetDailyProfitTrend(days int) ([]models.DailyTrendPoint, error)
	GetReportOverview(days int) (*models.ReportOverview, error)
	GetDashboardSummary() (*models.DashboardSummary, error)
}

// --- reportService Implementation ---
type reportService struct {
	saleRepo    repositories.SaleRepository
	expenseRepo repositories.ExpenseRepository
	productRepo repositories.ProductRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(
	saleRepo repositories.SaleRepository,
	expenseRepo repositories.ExpenseRepository,
	productRepo repositories.ProductRepository,
) ReportService {
	return &reportService{saleRepo: saleRepo, expenseRepo: expenseRepo, productRepo: productRepo}
}

// safeMargin returns part/total as a percentage, 0 when total is zero.
func safeMargin(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

// GetProfitAnalysis combines the sales and expense sides over an optional date
// range. Net profit subtracts operating expenses only: gross profit already
// carries the buying cost of each unit sold, so subtracting COGS-typed
// expenses as well would count the cost of goods twice.
func (s *reportService) GetProfitAnalysis(startDate, endDate string) (*models.ProfitAnalysis, error) {
	start, end, err := normalizeDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	revenue, grossProfit, err := s.saleRepo.GetSalesTotals(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales for profit analysis: %w", err)
	}

	expensesByType, err := s.expenseRepo.GetExpenseSummaryByType(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses for profit analysis: %w", err)
	}
	cogs := expensesByType[models.CategoryTypeCOGS]
	operating := expensesByType[models.CategoryTypeOperating]

	netProfit := grossProfit - operating
	return &models.ProfitAnalysis{
		TotalRevenue:           revenue,
		TotalGrossProfit:       grossProfit,
		TotalCOGS:              cogs,
		TotalOperatingExpenses: operating,
		TotalExpenses:          cogs + operating,
		NetProfit:              netProfit,
		GrossProfitMargin:      safeMargin(grossProfit, revenue),
		NetProfitMargin:        safeMargin(netProfit, revenue),
	}, nil
}

func (s *reportService) GetProfitPerProduct() ([]models.ProductProfit, error) {
	return s.saleRepo.GetProfitPerProduct()
}

func (s *reportService) GetBestSellingProducts(limit int) ([]models.BestSeller, error) {
	if limit <= 0 {
		limit = DashboardBestSellerLimit
	}
	return s.saleRepo.GetBestSellingProducts(limit)
}

func (s *reportService) GetDailyProfitTrend(days int) ([]models.DailyTrendPoint, error) {
	if days <= 0 {
		days = DefaultSalesDataDays
	}
	return s.saleRepo.GetDailyProfitTrend(days)
}

// GetReportOverview assembles the reports page: per-product profit, top
// products, the daily trend with derived averages, the best day, the growth
// rate and the chart series.
func (s *reportService) GetReportOverview(days int) (*models.ReportOverview, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}

	profitPerProduct, err := s.saleRepo.GetProfitPerProduct()
	if err != nil {
		return nil, fmt.Errorf("failed to get profit per product: %w", err)
	}

	trend, err := s.saleRepo.GetDailyProfitTrend(days)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily trend: %w", err)
	}

	summary, err := s.saleRepo.GetSalesSummary()
	if err != nil {
		return nil, fmt.Errorf("failed to get sales summary: %w", err)
	}

	overview := &models.ReportOverview{
		ProfitPerProduct: profitPerProduct,
		TopProducts:      topByProfit(profitPerProduct, TopProductsLimit),
		DailyTrend:       trend,
		ProfitMargin:     safeMargin(summary.TotalGrossProfit, summary.TotalRevenue),
		BestDayDate:      "N/A",
	}

	// Averages divide the all-time per-product totals by the number of days
	// that actually saw sales; empty days are not in the trend and do not
	// dilute them.
	if len(trend) > 0 {
		var totalRevenue, totalProfit float64
		var totalItems int
		for _, pp := range profitPerProduct {
			totalRevenue += pp.TotalRevenue
			totalProfit += pp.TotalProfit
			totalItems += pp.TotalQuantity
		}
		tradingDays := float64(len(trend))
		overview.DailyAvgRevenue = totalRevenue / tradingDays
		overview.DailyAvgProfit = totalProfit / tradingDays
		overview.DailyAvgItems = float64(totalItems) / tradingDays

		best := trend[0]
		for _, point := range trend[1:] {
			if point.DailyRevenue > best.DailyRevenue {
				best = point
			}
		}
		overview.BestDayDate = best.Date
		overview.BestDayRevenue = best.DailyRevenue
		overview.BestDayDisplay = utils.FormatCurrency(best.DailyRevenue)

		overview.GrowthRate = growthRate(trend)
	}

	overview.ProfitChart = productProfitSeries(overview.TopProducts)
	overview.TrendChart = trendSeries(trend)
	overview.DistributionChart = revenueDistributionSeries(profitPerProduct)

	return overview, nil
}

// GetDashboardSummary gathers the key dashboard figures in one response.
func (s *reportService) GetDashboardSummary() (*models.DashboardSummary, error) {
	summary, err := s.saleRepo.GetSalesSummary()
	if err != nil {
		return nil, fmt.Errorf("failed to get sales summary: %w", err)
	}

	lowStock, err := s.productRepo.GetLowStockProducts(DashboardLowStockLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock products: %w", err)
	}

	bestSelling, err := s.saleRepo.GetBestSellingProducts(DashboardBestSellerLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get best sellers: %w", err)
	}

	recentSales, err := s.saleRepo.GetSales(models.SaleFilters{Limit: DashboardRecentSales})
	if err != nil {
		return nil, fmt.Errorf("failed to get recent sales: %w", err)
	}

	productCount, totalUnits, err := s.productRepo.GetStockTotals()
	if err != nil {
		return nil, fmt.Errorf("failed to get stock totals: %w", err)
	}

	return &models.DashboardSummary{
		Summary:       *summary,
		LowStock:      lowStock,
		BestSelling:   bestSelling,
		RecentSales:   recentSales,
		TotalProducts: productCount,
		TotalItems:    totalUnits,
	}, nil
}

// topByProfit returns the first n rows of the profit ranking, which the
// repository already sorts by total profit descending.
func topByProfit(ranked []models.ProductProfit, n int) []models.ProductProfit {
	if len(ranked) <= n {
		return ranked
	}
	return ranked[:n]
}

// growthRate compares the first and last trend points as a percentage.
// Undefined with fewer than two points or a zero baseline; reported as 0.
func growthRate(trend []models.DailyTrendPoint) float64 {
	if len(trend) < 2 {
		return 0
	}
	first := trend[0].DailyRevenue
	last := trend[len(trend)-1].DailyRevenue
	if first <= 0 {
		return 0
	}
	return (last - first) / first * 100
}

func productProfitSeries(products []models.ProductProfit) models.ChartSeries {
	series := models.ChartSeries{Labels: []string{}, Values: []float64{}}
	for _, p := range products {
		series.Labels = append(series.Labels, p.ProductName)
		series.Values = append(series.Values, p.TotalProfit)
	}
	return series
}

func trendSeries(trend []models.DailyTrendPoint) models.ChartSeries {
	series := models.ChartSeries{Labels: []string{}, Values: []float64{}}
	for _, point := range trend {
		series.Labels = append(series.Labels, point.Date)
		series.Values = append(series.Values, point.DailyRevenue)
	}
	return series
}

func revenueDistributionSeries(products []models.ProductProfit) models.ChartSeries {
	series := models.ChartSeries{Labels: []string{}, Values: []float64{}}
	for _, p := range products {
		if p.TotalRevenue == 0 {
			continue
		}
		series.Labels = append(series.Labels, p.ProductName)
		series.Values = append(series.Values, p.TotalRevenue)
	}
	return series
}
