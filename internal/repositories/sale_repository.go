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

// SaleRepository defines the interface for sale-related database operations,
// including the sales-side aggregations the reports are built from.
type SaleRepository interface {
	CreateSale(executor SQLExecutor, sale *models.Sale) (int64, error)
	GetSaleByID(saleID int64) (*models.Sale, error)
	GetSales(filters models.SaleFilters) ([]models.Sale, error)
	GetSalesSummary() (*models.SalesSummary, error)
	GetSalesTotals(start, end *string) (revenue float64, grossProfit float64, err error)
	GetProfitPerProduct() ([]models.ProductProfit, error)
	GetBestSellingProducts(limit int) ([]models.BestSeller, error)
	GetDailyProfitTrend(days int) ([]models.DailyTrendPoint, error)
}

type saleRepository struct {
	db *sql.DB
}

// NewSaleRepository creates a new instance of SaleRepository.
func NewSaleRepository(db *sql.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) CreateSale(executor SQLExecutor, sale *models.Sale) (int64, error) {
	query := `INSERT INTO sales (product_id, quantity_sold, total_price, profit, sale_date)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	if sale.SaleDate.IsZero() {
		sale.SaleDate = time.Now()
	}

	err := executor.QueryRow(query,
		sale.ProductID, sale.QuantitySold, sale.TotalPrice, sale.Profit, sale.SaleDate,
	).Scan(&sale.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, fmt.Errorf("%w: sale references unknown product ID %d (constraint: %s)", ErrDatabaseError, sale.ProductID, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating sale: %v", ErrDatabaseError, err)
	}
	return sale.ID, nil
}

func (r *saleRepository) GetSaleByID(saleID int64) (*models.Sale, error) {
	sale := &models.Sale{}
	query := `SELECT s.id, s.product_id, s.quantity_sold, s.total_price, s.profit, s.sale_date,
	                 p.name as product_name
	          FROM sales s
	          JOIN products p ON s.product_id = p.id
	          WHERE s.id = $1`

	err := r.db.QueryRow(query, saleID).Scan(
		&sale.ID, &sale.ProductID, &sale.QuantitySold, &sale.TotalPrice, &sale.Profit,
		&sale.SaleDate, &sale.ProductName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting sale by ID %d: %v", ErrDatabaseError, saleID, err)
	}
	return sale, nil
}

func (r *saleRepository) GetSales(filters models.SaleFilters) ([]models.Sale, error) {
	sales := []models.Sale{}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT s.id, s.product_id, s.quantity_sold, s.total_price, s.profit, s.sale_date,
               p.name as product_name
        FROM sales s
        JOIN products p ON s.product_id = p.id
    `)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filters.ProductID != nil {
		conditions = append(conditions, fmt.Sprintf("s.product_id = $%d", argIdx))
		args = append(args, *filters.ProductID)
		argIdx++
	}
	conditions, args, argIdx = appendDateRange(conditions, args, argIdx, "s.sale_date", filters.StartDate, filters.EndDate)

	queryBuilder.WriteString(whereClause(conditions))
	queryBuilder.WriteString(" ORDER BY s.sale_date DESC")

	if filters.Limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argIdx))
		args = append(args, filters.Limit)
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sales: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.QuantitySold, &s.TotalPrice, &s.Profit, &s.SaleDate, &s.ProductName); err != nil {
			return nil, fmt.Errorf("%w: scanning sale: %v", ErrDatabaseError, err)
		}
		sales = append(sales, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sale rows: %v", ErrDatabaseError, err)
	}
	return sales, nil
}

// GetSalesSummary totals every recorded sale. COALESCE keeps an empty table
// at zeros instead of NULL scan failures.
func (r *saleRepository) GetSalesSummary() (*models.SalesSummary, error) {
	summary := &models.SalesSummary{}
	query := `SELECT COUNT(*),
	                 COALESCE(SUM(total_price), 0),
	                 COALESCE(SUM(profit), 0)
	          FROM sales`

	err := r.db.QueryRow(query).Scan(&summary.TotalSales, &summary.TotalRevenue, &summary.TotalGrossProfit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sales summary: %v", ErrDatabaseError, err)
	}
	return summary, nil
}

// GetSalesTotals returns revenue and gross profit restricted to an optional
// calendar-date range. Feeds the profit analysis.
func (r *saleRepository) GetSalesTotals(start, end *string) (float64, float64, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT COALESCE(SUM(total_price), 0), COALESCE(SUM(profit), 0) FROM sales`)

	var conditions []string
	var args []interface{}
	conditions, args, _ = appendDateRange(conditions, args, 1, "sale_date", start, end)
	queryBuilder.WriteString(whereClause(conditions))

	var revenue, grossProfit float64
	err := r.db.QueryRow(queryBuilder.String(), args...).Scan(&revenue, &grossProfit)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: querying sales totals: %v", ErrDatabaseError, err)
	}
	return revenue, grossProfit, nil
}

// GetProfitPerProduct aggregates sold quantity, revenue and profit for every
// product. The LEFT JOIN keeps products with zero sales in the result.
func (r *saleRepository) GetProfitPerProduct() ([]models.ProductProfit, error) {
	results := []models.ProductProfit{}
	query := `SELECT p.id, p.name, p.image_filename,
	                 COALESCE(SUM(s.quantity_sold), 0) as total_quantity,
	                 COALESCE(SUM(s.total_price), 0) as total_revenue,
	                 COALESCE(SUM(s.profit), 0) as total_profit
	          FROM products p
	          LEFT JOIN sales s ON p.id = s.product_id
	          GROUP BY p.id, p.name, p.image_filename
	          ORDER BY total_profit DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying profit per product: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var pp models.ProductProfit
		if err := rows.Scan(&pp.ProductID, &pp.ProductName, &pp.ImageFilename, &pp.TotalQuantity, &pp.TotalRevenue, &pp.TotalProfit); err != nil {
			return nil, fmt.Errorf("%w: scanning product profit: %v", ErrDatabaseError, err)
		}
		results = append(results, pp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product profit rows: %v", ErrDatabaseError, err)
	}
	return results, nil
}

// GetBestSellingProducts ranks products by units sold. Ties resolve by product
// ID ascending so the ordering is stable across calls.
func (r *saleRepository) GetBestSellingProducts(limit int) ([]models.BestSeller, error) {
	results := []models.BestSeller{}
	query := `SELECT p.id, p.name, p.image_filename,
	                 COALESCE(SUM(s.quantity_sold), 0) as total_sold,
	                 COALESCE(SUM(s.total_price), 0) as total_revenue
	          FROM products p
	          LEFT JOIN sales s ON p.id = s.product_id
	          GROUP BY p.id, p.name, p.image_filename
	          ORDER BY total_sold DESC, p.id ASC
	          LIMIT $1`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying best selling products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bs models.BestSeller
		if err := rows.Scan(&bs.ProductID, &bs.ProductName, &bs.ImageFilename, &bs.TotalSold, &bs.TotalRevenue); err != nil {
			return nil, fmt.Errorf("%w: scanning best seller: %v", ErrDatabaseError, err)
		}
		results = append(results, bs)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating best seller rows: %v", ErrDatabaseError, err)
	}
	return results, nil
}

// GetDailyProfitTrend groups sales by calendar date over a trailing window
// ending today. Days without sales produce no row; the series is sparse.
func (r *saleRepository) GetDailyProfitTrend(days int) ([]models.DailyTrendPoint, error) {
	trend := []models.DailyTrendPoint{}
	query := `SELECT TO_CHAR(sale_date::date, 'YYYY-MM-DD') as day,
	                 COALESCE(SUM(total_price), 0) as daily_revenue,
	                 COALESCE(SUM(profit), 0) as daily_gross_profit
	          FROM sales
	          WHERE sale_date::date >= CURRENT_DATE - $1::int
	          GROUP BY sale_date::date
	          ORDER BY sale_date::date`

	rows, err := r.db.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("%w: querying daily profit trend: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var point models.DailyTrendPoint
		if err := rows.Scan(&point.Date, &point.DailyRevenue, &point.DailyGrossProfit); err != nil {
			return nil, fmt.Errorf("%w: scanning trend point: %v", ErrDatabaseError, err)
		}
		trend = append(trend, point)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating trend rows: %v", ErrDatabaseError, err)
	}
	return trend, nil
}
