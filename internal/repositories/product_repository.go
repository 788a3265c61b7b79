package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shopledger_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// ProductRepository defines the interface for product-related database operations.
type ProductRepository interface {
	CreateProduct(executor SQLExecutor, product *models.Product) (int64, error)
	GetProductByID(id int64) (*models.Product, error)
	GetProducts() ([]models.Product, error)
	UpdateProduct(executor SQLExecutor, product *models.Product) error
	UpdateImage(executor SQLExecutor, productID int64, imageFilename *string) error
	DeleteProduct(executor SQLExecutor, id int64) error
	GetLowStockProducts(threshold int) ([]models.Product, error)
	GetPricing(executor SQLExecutor, id int64) (*models.Product, error)
	DecrementStock(executor SQLExecutor, productID int64, quantity int) (bool, error)
	GetStockTotals() (productCount int, totalUnits int, err error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) CreateProduct(executor SQLExecutor, product *models.Product) (int64, error) {
	query := `INSERT INTO products (name, buying_price, selling_price, quantity, image_filename, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		product.Name, product.BuyingPrice, product.SellingPrice, product.Quantity,
		product.ImageFilename, product.CreatedAt,
	).Scan(&product.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating product: %v", ErrDatabaseError, err)
	}
	return product.ID, nil
}

func (r *productRepository) GetProductByID(id int64) (*models.Product, error) {
	product := &models.Product{}
	query := `SELECT id, name, buying_price, selling_price, quantity, image_filename, created_at
	          FROM products WHERE id = $1`

	err := r.db.QueryRow(query, id).Scan(
		&product.ID, &product.Name, &product.BuyingPrice, &product.SellingPrice,
		&product.Quantity, &product.ImageFilename, &product.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by ID %d: %v", ErrDatabaseError, id, err)
	}
	return product, nil
}

func (r *productRepository) GetProducts() ([]models.Product, error) {
	products := []models.Product{}
	query := `SELECT id, name, buying_price, selling_price, quantity, image_filename, created_at
	          FROM products ORDER BY name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.BuyingPrice, &p.SellingPrice, &p.Quantity, &p.ImageFilename, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product rows: %v", ErrDatabaseError, err)
	}
	return products, nil
}

func (r *productRepository) UpdateProduct(executor SQLExecutor, product *models.Product) error {
	query := `UPDATE products
	          SET name = $1, buying_price = $2, selling_price = $3, quantity = $4
	          WHERE id = $5`

	result, err := executor.Exec(query,
		product.Name, product.BuyingPrice, product.SellingPrice, product.Quantity, product.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating product ID %d: %v", ErrDatabaseError, product.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) UpdateImage(executor SQLExecutor, productID int64, imageFilename *string) error {
	result, err := executor.Exec(`UPDATE products SET image_filename = $1 WHERE id = $2`, imageFilename, productID)
	if err != nil {
		return fmt.Errorf("%w: updating image for product ID %d: %v", ErrDatabaseError, productID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) DeleteProduct(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: product ID %d is referenced by recorded sales (constraint: %s)", ErrInUse, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetLowStockProducts returns products at or below the threshold, the emptiest
// shelves first.
func (r *productRepository) GetLowStockProducts(threshold int) ([]models.Product, error) {
	products := []models.Product{}
	query := `SELECT id, name, buying_price, selling_price, quantity, image_filename, created_at
	          FROM products
	          WHERE quantity <= $1
	          ORDER BY quantity ASC`

	rows, err := r.db.Query(query, threshold)
	if err != nil {
		return nil, fmt.Errorf("%w: querying low stock products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.BuyingPrice, &p.SellingPrice, &p.Quantity, &p.ImageFilename, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning low stock product: %v", ErrDatabaseError, err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating low stock rows: %v", ErrDatabaseError, err)
	}
	return products, nil
}

// GetPricing reads the price fields used to snapshot a sale. Accepts an
// executor so the read can share the sale transaction.
func (r *productRepository) GetPricing(executor SQLExecutor, id int64) (*models.Product, error) {
	product := &models.Product{}
	query := `SELECT id, name, buying_price, selling_price, quantity FROM products WHERE id = $1`

	err := executor.QueryRow(query, id).Scan(
		&product.ID, &product.Name, &product.BuyingPrice, &product.SellingPrice, &product.Quantity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting pricing for product ID %d: %v", ErrDatabaseError, id, err)
	}
	return product, nil
}

// DecrementStock performs the check-and-decrement as one conditional update.
// Returns false when the product is missing or has fewer than quantity units;
// concurrent sellers cannot jointly oversell because the stock check and the
// write are a single statement.
func (r *productRepository) DecrementStock(executor SQLExecutor, productID int64, quantity int) (bool, error) {
	query := `UPDATE products
	          SET quantity = quantity - $1
	          WHERE id = $2 AND quantity >= $1`

	result, err := executor.Exec(query, quantity, productID)
	if err != nil {
		return false, fmt.Errorf("%w: decrementing stock for product ID %d: %v", ErrDatabaseError, productID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: getting rows affected for stock decrement ID %d: %v", ErrDatabaseError, productID, err)
	}
	return rowsAffected == 1, nil
}

func (r *productRepository) GetStockTotals() (int, int, error) {
	var productCount, totalUnits int
	query := `SELECT COUNT(*), COALESCE(SUM(quantity), 0) FROM products`
	if err := r.db.QueryRow(query).Scan(&productCount, &totalUnits); err != nil {
		return 0, 0, fmt.Errorf("%w: querying stock totals: %v", ErrDatabaseError, err)
	}
	return productCount, totalUnits, nil
}
