package database

import (
	"database/sql"
	"fmt"

	"shopledger_backend/internal/models"
	"shopledger_backend/pkg/utils"

	_ "github.com/lib/pq" // PostgreSQL driver
	"golang.org/x/crypto/bcrypt"
)

// Config holds the connection settings for the Postgres pool.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL CHECK (role IN ('admin', 'employee')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS products (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    buying_price DOUBLE PRECISION NOT NULL CHECK (buying_price >= 0),
    selling_price DOUBLE PRECISION NOT NULL,
    quantity INTEGER NOT NULL CHECK (quantity >= 0),
    image_filename TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS sales (
    id BIGSERIAL PRIMARY KEY,
    product_id BIGINT NOT NULL REFERENCES products (id),
    quantity_sold INTEGER NOT NULL CHECK (quantity_sold > 0),
    total_price DOUBLE PRECISION NOT NULL,
    profit DOUBLE PRECISION NOT NULL,
    sale_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS expense_categories (
    id BIGSERIAL PRIMARY KEY,
    name TEXT UNIQUE NOT NULL,
    category_type TEXT NOT NULL CHECK (category_type IN ('operating', 'cogs')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS expenses (
    id BIGSERIAL PRIMARY KEY,
    category_id BIGINT NOT NULL REFERENCES expense_categories (id),
    amount DOUBLE PRECISION NOT NULL CHECK (amount > 0),
    description TEXT,
    expense_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_sales_product_id ON sales (product_id);
CREATE INDEX IF NOT EXISTS idx_sales_sale_date ON sales (sale_date);
CREATE INDEX IF NOT EXISTS idx_expenses_category_id ON expenses (category_id);
CREATE INDEX IF NOT EXISTS idx_expenses_expense_date ON expenses (expense_date);
`

// defaultCategories are seeded once; ON CONFLICT keeps re-runs idempotent.
var defaultCategories = []struct {
	Name string
	Type string
}{
	{"Cost of Goods Sold", models.CategoryTypeCOGS},
	{"Rent", models.CategoryTypeOperating},
	{"Salaries", models.CategoryTypeOperating},
	{"Utilities", models.CategoryTypeOperating},
	{"Marketing", models.CategoryTypeOperating},
	{"Office Supplies", models.CategoryTypeOperating},
	{"Insurance", models.CategoryTypeOperating},
	{"Maintenance", models.CategoryTypeOperating},
	{"Other Operating Expenses", models.CategoryTypeOperating},
}

// Connect opens the Postgres pool, verifies connectivity, applies the schema
// and seeds initial data. The pool is returned to the caller; there is no
// package-level connection.
func Connect(cfg Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := seed(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("applying database schema: %w", err)
	}
	return nil
}

// seed creates the default expense categories and, when the users table is
// empty, a bootstrap admin account whose password comes from ADMIN_PASSWORD.
func seed(db *sql.DB) error {
	for _, category := range defaultCategories {
		_, err := db.Exec(
			`INSERT INTO expense_categories (name, category_type) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			category.Name, category.Type,
		)
		if err != nil {
			return fmt.Errorf("seeding expense category %q: %w", category.Name, err)
		}
	}

	var userCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&userCount); err != nil {
		return fmt.Errorf("counting users for seed: %w", err)
	}
	if userCount > 0 {
		return nil
	}

	adminPassword := utils.Getenv("ADMIN_PASSWORD", "admin123")
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing bootstrap admin password: %w", err)
	}
	_, err = db.Exec(
		`INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3)`,
		utils.Getenv("ADMIN_USERNAME", "admin"), string(hash), models.RoleAdmin,
	)
	if err != nil {
		return fmt.Errorf("seeding bootstrap admin: %w", err)
	}
	utils.LogInfo("Bootstrap admin account created", map[string]interface{}{"username": utils.Getenv("ADMIN_USERNAME", "admin")})
	return nil
}
