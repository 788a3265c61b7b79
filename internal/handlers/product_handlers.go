package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"shopledger_backend/internal/services"
	"shopledger_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ProductHandler holds the product service and the upload directory.
type ProductHandler struct {
	productService services.ProductService
	uploadDir      string
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(ps services.ProductService, uploadDir string) *ProductHandler {
	return &ProductHandler{productService: ps, uploadDir: uploadDir}
}

func respondProductError(c *gin.Context, err error, action string) {
	utils.LogError(err, action+": Error from productService")
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Product not found.", err.Error()))
	case errors.Is(err, services.ErrProductInUse):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Product has recorded sales and cannot be deleted.", err.Error()))
	case errors.Is(err, services.ErrValidation):
		utils.RespondValidationFailed(c, err.Error())
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process product request.", "Internal error"))
	}
}

// CreateProduct adds a product to the catalog.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	product, err := h.productService.CreateProduct(req)
	if err != nil {
		respondProductError(c, err, "CreateProduct")
		return
	}
	c.JSON(http.StatusCreated, product)
}

// GetProducts lists the catalog.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.GetProducts()
	if err != nil {
		respondProductError(c, err, "GetProducts")
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProductByID fetches one product.
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid product ID.", err.Error()))
		return
	}

	product, err := h.productService.GetProductByID(id)
	if err != nil {
		respondProductError(c, err, "GetProductByID")
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProduct replaces a product's editable fields.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid product ID.", err.Error()))
		return
	}

	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	product, err := h.productService.UpdateProduct(id, req)
	if err != nil {
		respondProductError(c, err, "UpdateProduct")
		return
	}
	c.JSON(http.StatusOK, product)
}

// UploadProductImage accepts a multipart image, stores it under the uploads
// directory with a generated name and attaches it to the product.
func (h *ProductHandler) UploadProductImage(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid product ID.", err.Error()))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Image file is required (form field 'image').", err.Error()))
		return
	}
	if !utils.IsAllowedImageExtension(file.Filename) {
		utils.RespondValidationFailed(c, "unsupported image type; allowed: png, jpg, jpeg, gif, webp")
		return
	}

	storedName := utils.GenerateUploadFilename(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, storedName)); err != nil {
		utils.LogError(err, "UploadProductImage: Failed to save uploaded file")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to store uploaded image.", "Internal error"))
		return
	}

	if err := h.productService.AttachImage(id, storedName); err != nil {
		respondProductError(c, err, "UploadProductImage")
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_filename": storedName})
}

// DeleteProduct removes a product and its image file.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid product ID.", err.Error()))
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		respondProductError(c, err, "DeleteProduct")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully."})
}

// GetLowStockProducts lists products at or below the stock threshold.
func (h *ProductHandler) GetLowStockProducts(c *gin.Context) {
	threshold := services.DashboardLowStockLimit
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid threshold.", err.Error()))
			return
		}
		threshold = parsed
	}

	products, err := h.productService.GetLowStockProducts(threshold)
	if err != nil {
		respondProductError(c, err, "GetLowStockProducts")
		return
	}
	c.JSON(http.StatusOK, products)
}
