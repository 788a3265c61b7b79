package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"shopledger_backend/internal/models"
	"shopledger_backend/internal/repositories"
	"shopledger_backend/pkg/utils"
)

// --- Custom Service Errors ---
var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductInUse    = errors.New("product has recorded sales and cannot be deleted")
)

// --- Data Transfer Objects (DTOs) ---

// ProductRequest DTO, shared by create and update.
type ProductRequest struct {
	Name         string  `json:"name" binding:"required"`
	BuyingPrice  float64 `json:"buying_price"`
	SellingPrice float64 `json:"selling_price"`
	Quantity     int     `json:"quantity"`
}

// --- ProductService Interface ---
type ProductService interface {
	CreateProduct(req ProductRequest) (*models.Product, error)
	GetProductByID(id int64) (*models.Product, error)
	GetProducts() ([]models.Product, error)
	UpdateProduct(id int64, req ProductRequest) (*models.Product, error)
	AttachImage(id int64, filename string) error
	DeleteProduct(id int64) error
	GetLowStockProducts(threshold int) ([]models.Product, error)
}

// --- productService Implementation ---
type productService struct {
	db          repositories.DB
	productRepo repositories.ProductRepository
	uploadDir   string
}

// NewProductService creates a new instance of ProductService.
func NewProductService(db repositories.DB, productRepo repositories.ProductRepository, uploadDir string) ProductService {
	return &productService{db: db, productRepo: productRepo, uploadDir: uploadDir}
}

func validateProductRequest(req ProductRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if req.BuyingPrice < 0 {
		return fmt.Errorf("%w: buying price cannot be negative", ErrValidation)
	}
	if req.SellingPrice <= req.BuyingPrice {
		return fmt.Errorf("%w: selling price must exceed buying price", ErrValidation)
	}
	if req.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	return nil
}

func (s *productService) CreateProduct(req ProductRequest) (*models.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:         req.Name,
		BuyingPrice:  req.BuyingPrice,
		SellingPrice: req.SellingPrice,
		Quantity:     req.Quantity,
	}
	if _, err := s.productRepo.CreateProduct(s.db, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *productService) GetProductByID(id int64) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (s *productService) GetProducts() ([]models.Product, error) {
	return s.productRepo.GetProducts()
}

func (s *productService) UpdateProduct(id int64, req ProductRequest) (*models.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:           id,
		Name:         req.Name,
		BuyingPrice:  req.BuyingPrice,
		SellingPrice: req.SellingPrice,
		Quantity:     req.Quantity,
	}
	if err := s.productRepo.UpdateProduct(s.db, product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return s.GetProductByID(id)
}

// AttachImage records an already-saved upload as the product's image and
// removes the previous file, if any, once the row points at the new one.
func (s *productService) AttachImage(id int64, filename string) error {
	current, err := s.productRepo.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to load product for image update: %w", err)
	}

	if err := s.productRepo.UpdateImage(s.db, id, &filename); err != nil {
		return fmt.Errorf("failed to update product image: %w", err)
	}

	if current.ImageFilename != nil && *current.ImageFilename != filename {
		s.removeImageFile(*current.ImageFilename)
	}
	return nil
}

// DeleteProduct removes a product. Products referenced by sales are kept; the
// image file is cleaned up only after the row delete succeeds.
func (s *productService) DeleteProduct(id int64) error {
	current, err := s.productRepo.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to load product for delete: %w", err)
	}

	if err := s.productRepo.DeleteProduct(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		if errors.Is(err, repositories.ErrInUse) {
			return ErrProductInUse
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if current.ImageFilename != nil {
		s.removeImageFile(*current.ImageFilename)
	}
	return nil
}

func (s *productService) GetLowStockProducts(threshold int) ([]models.Product, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: threshold cannot be negative", ErrValidation)
	}
	return s.productRepo.GetLowStockProducts(threshold)
}

// removeImageFile is best effort; a missing or locked file only logs.
func (s *productService) removeImageFile(filename string) {
	path := filepath.Join(s.uploadDir, filepath.Base(filename))
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		utils.LogError(err, fmt.Sprintf("failed to remove product image %s", path))
	}
}
