package models

// SalesSummary aggregates every recorded sale. An empty sales table yields
// zeros, never an error.
type SalesSummary struct {
	TotalSales       int     `json:"total_sales"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalGrossProfit float64 `json:"total_gross_profit"`
}

// ProductProfit is one row of the per-product profit aggregation. Products with
// no sales are included with zero totals.
type ProductProfit struct {
	ProductID     int64   `json:"product_id"`
	ProductName   string  `json:"product_name"`
	ImageFilename *string `json:"image_filename,omitempty"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalProfit   float64 `json:"total_profit"`
}

// BestSeller is one row of the best-selling ranking, ordered by units sold.
type BestSeller struct {
	ProductID     int64   `json:"product_id"`
	ProductName   string  `json:"product_name"`
	ImageFilename *string `json:"image_filename,omitempty"`
	TotalSold     int     `json:"total_sold"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// DailyTrendPoint is one calendar day of the trailing sales trend. Days with
// no sales are not present in the series.
type DailyTrendPoint struct {
	Date             string  `json:"date"` // YYYY-MM-DD
	DailyRevenue     float64 `json:"daily_revenue"`
	DailyGrossProfit float64 `json:"daily_gross_profit"`
}

// ProfitAnalysis is the combined gross/net profit picture over a date range.
// NetProfit subtracts operating expenses only; COGS-typed expenses are
// reported but deliberately left out of the subtraction since gross profit
// already carries buying cost per unit sold.
type ProfitAnalysis struct {
	TotalRevenue           float64 `json:"total_revenue"`
	TotalGrossProfit       float64 `json:"total_gross_profit"`
	TotalCOGS              float64 `json:"total_cogs"`
	TotalOperatingExpenses float64 `json:"total_operating_expenses"`
	TotalExpenses          float64 `json:"total_expenses"`
	NetProfit              float64 `json:"net_profit"`
	GrossProfitMargin      float64 `json:"gross_profit_margin"`
	NetProfitMargin        float64 `json:"net_profit_margin"`
}

// ChartSeries is a chart-ready label/value pairing consumed by the frontend
// renderer.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// ReportOverview backs the reports page: per-product profit, derived averages
// and rates, and the chart series.
type ReportOverview struct {
	ProfitPerProduct  []ProductProfit   `json:"profit_per_product"`
	TopProducts       []ProductProfit   `json:"top_products"`
	DailyTrend        []DailyTrendPoint `json:"daily_trend"`
	DailyAvgRevenue   float64           `json:"daily_avg_revenue"`
	DailyAvgProfit    float64           `json:"daily_avg_profit"`
	DailyAvgItems     float64           `json:"daily_avg_items"`
	ProfitMargin      float64           `json:"profit_margin"`
	BestDayDate       string            `json:"best_day_date"` // "N/A" when the trend is empty
	BestDayRevenue    float64           `json:"best_day_revenue"`
	BestDayDisplay    string            `json:"best_day_revenue_display"`
	GrowthRate        float64           `json:"growth_rate"`
	ProfitChart       ChartSeries       `json:"profit_chart"`
	TrendChart        ChartSeries       `json:"trend_chart"`
	DistributionChart ChartSeries       `json:"distribution_chart"`
}

// DashboardSummary holds the key metrics for the admin dashboard.
type DashboardSummary struct {
	Summary       SalesSummary `json:"summary"`
	LowStock      []Product    `json:"low_stock"`
	BestSelling   []BestSeller `json:"best_selling"`
	RecentSales   []Sale       `json:"recent_sales"`
	TotalProducts int          `json:"total_products"`
	TotalItems    int          `json:"total_items"` // units on hand across all products
}
