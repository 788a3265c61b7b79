package models

import "time"

// Product is a stocked item offered for sale. SellingPrice must stay strictly
// above BuyingPrice and Quantity never goes negative; both rules are enforced
// by the product service before any write.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name" db:"name"`
	BuyingPrice   float64   `json:"buying_price" db:"buying_price"`
	SellingPrice  float64   `json:"selling_price" db:"selling_price"`
	Quantity      int       `json:"quantity" db:"quantity"`
	ImageFilename *string   `json:"image_filename,omitempty" db:"image_filename"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
