package models

import "time"

// Sale records a completed sale. TotalPrice and Profit are snapshots taken at
// sale time; later edits to the product's prices do not change them.
type Sale struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id" db:"product_id"`
	QuantitySold int       `json:"quantity_sold" db:"quantity_sold"`
	TotalPrice   float64   `json:"total_price" db:"total_price"`
	Profit       float64   `json:"profit" db:"profit"`
	SaleDate     time.Time `json:"sale_date" db:"sale_date"`
	ProductName  string    `json:"product_name,omitempty"` // joined from products
}

// SaleFilters narrows sale listings.
type SaleFilters struct {
	ProductID *int64  `form:"product_id"`
	StartDate *string `form:"start_date"` // YYYY-MM-DD
	EndDate   *string `form:"end_date"`   // YYYY-MM-DD
	Limit     int     `form:"limit"`
}
