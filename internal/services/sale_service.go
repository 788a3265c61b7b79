package services

import (
	"errors"
	"fmt"

	"shopledger_backend/internal/models"
	"shopledger_backend/internal/repositories"
)

// --- Custom Service Errors ---
var (
	ErrSaleNotFound      = errors.New("sale not found")
	ErrInsufficientStock = errors.New("insufficient stock for requested quantity")
)

// --- Data Transfer Objects (DTOs) ---

// RecordSaleRequest DTO
type RecordSaleRequest struct {
	ProductID    int64 `json:"product_id" binding:"required"`
	QuantitySold int   `json:"quantity_sold" binding:"required"`
}

// --- SaleService Interface ---
type SaleService interface {
	RecordSale(req RecordSaleRequest) (*models.Sale, error)
	GetSaleByID(saleID int64) (*models.Sale, error)
	GetSales(productID *int64, startDate, endDate string, limit int) ([]models.Sale, error)
	GetSalesSummary() (*models.SalesSummary, error)
}

// --- saleService Implementation ---
type saleService struct {
	db          repositories.DB
	saleRepo    repositories.SaleRepository
	productRepo repositories.ProductRepository
}

// NewSaleService creates a new instance of SaleService.
func NewSaleService(db repositories.DB, saleRepo repositories.SaleRepository, productRepo repositories.ProductRepository) SaleService {
	return &saleService{db: db, saleRepo: saleRepo, productRepo: productRepo}
}

// computeSaleFigures snapshots the product's pricing into the sale row. Later
// price edits must not rewrite history, so both figures are fixed here.
func computeSaleFigures(product *models.Product, quantity int) (totalPrice, profit float64) {
	totalPrice = product.SellingPrice * float64(quantity)
	profit = (product.SellingPrice - product.BuyingPrice) * float64(quantity)
	return totalPrice, profit
}

// RecordSale validates the request, then decrements stock and inserts the sale
// in one transaction. The decrement is a conditional single-statement update,
// so two concurrent sales cannot jointly oversell the same product.
func (s *saleService) RecordSale(req RecordSaleRequest) (*models.Sale, error) {
	if req.QuantitySold <= 0 {
		return nil, fmt.Errorf("%w: quantity sold must be positive", ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for sale: %v", err)
	}
	defer tx.Rollback()

	product, err := s.productRepo.GetPricing(tx, req.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product for sale: %w", err)
	}

	decremented, err := s.productRepo.DecrementStock(tx, req.ProductID, req.QuantitySold)
	if err != nil {
		return nil, fmt.Errorf("failed to decrement stock: %w", err)
	}
	if !decremented {
		// The product existed at the read above, so a zero-row update means
		// the stock check failed.
		return nil, fmt.Errorf("%w: product '%s' has %d unit(s), requested %d",
			ErrInsufficientStock, product.Name, product.Quantity, req.QuantitySold)
	}

	totalPrice, profit := computeSaleFigures(product, req.QuantitySold)
	sale := &models.Sale{
		ProductID:    req.ProductID,
		QuantitySold: req.QuantitySold,
		TotalPrice:   totalPrice,
		Profit:       profit,
		ProductName:  product.Name,
	}
	if _, err := s.saleRepo.CreateSale(tx, sale); err != nil {
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale: %v", err)
	}
	return sale, nil
}

func (s *saleService) GetSaleByID(saleID int64) (*models.Sale, error) {
	sale, err := s.saleRepo.GetSaleByID(saleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return sale, nil
}

func (s *saleService) GetSales(productID *int64, startDate, endDate string, limit int) ([]models.Sale, error) {
	start, end, err := normalizeDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	filters := models.SaleFilters{
		ProductID: productID,
		StartDate: start,
		EndDate:   end,
		Limit:     limit,
	}
	return s.saleRepo.GetSales(filters)
}

func (s *saleService) GetSalesSummary() (*models.SalesSummary, error) {
	return s.saleRepo.GetSalesSummary()
}
