package router

import (
	"shopledger_backend/internal/handlers"
	"shopledger_backend/internal/middleware"
	"shopledger_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes sets up the account management routes. Admin only.
func SetupUserRoutes(authenticatedGroup *gin.RouterGroup, userHandler *handlers.UserHandler) {
	userRoutes := authenticatedGroup.Group("/users")
	userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		userRoutes.GET("", userHandler.GetUsers)
		userRoutes.POST("", userHandler.CreateUser)
		userRoutes.POST("/:id/reset-password", userHandler.ResetPassword)
		userRoutes.PATCH("/:id/role", userHandler.UpdateRole)
		userRoutes.DELETE("/:id", userHandler.DeleteUser)
	}
}

// SetupProductRoutes sets up the product routes. Reads are open to both roles;
// catalog writes are admin only.
func SetupProductRoutes(authenticatedGroup *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	productReadRoutes := authenticatedGroup.Group("/products")
	productReadRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleEmployee))
	{
		productReadRoutes.GET("", productHandler.GetProducts)
		productReadRoutes.GET("/low-stock", productHandler.GetLowStockProducts)
		productReadRoutes.GET("/:id", productHandler.GetProductByID)
	}

	productWriteRoutes := authenticatedGroup.Group("/products")
	productWriteRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		productWriteRoutes.POST("", productHandler.CreateProduct)
		productWriteRoutes.PUT("/:id", productHandler.UpdateProduct)
		productWriteRoutes.POST("/:id/image", productHandler.UploadProductImage)
		productWriteRoutes.DELETE("/:id", productHandler.DeleteProduct)
	}
}

// SetupSaleRoutes sets up the point-of-sale routes. Both roles record and
// browse sales; rows are immutable so there is no update or delete.
func SetupSaleRoutes(authenticatedGroup *gin.RouterGroup, saleHandler *handlers.SaleHandler) {
	saleRoutes := authenticatedGroup.Group("/sales")
	saleRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleEmployee))
	{
		saleRoutes.POST("", saleHandler.RecordSale)
		saleRoutes.GET("", saleHandler.GetSales)
		saleRoutes.GET("/summary", saleHandler.GetSalesSummary)
		saleRoutes.GET("/:id", saleHandler.GetSaleByID)
	}
}

// SetupExpenseRoutes sets up the expense and category routes. Admin only.
func SetupExpenseRoutes(authenticatedGroup *gin.RouterGroup, expenseHandler *handlers.ExpenseHandler) {
	categoryRoutes := authenticatedGroup.Group("/expense-categories")
	categoryRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		categoryRoutes.POST("", expenseHandler.CreateCategory)
		categoryRoutes.GET("", expenseHandler.GetCategories)
		categoryRoutes.DELETE("/:id", expenseHandler.DeleteCategory)
	}

	expenseRoutes := authenticatedGroup.Group("/expenses")
	expenseRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		expenseRoutes.POST("", expenseHandler.CreateExpense)
		expenseRoutes.GET("", expenseHandler.GetExpenses)
		expenseRoutes.GET("/by-category", expenseHandler.GetExpensesByCategory)
		expenseRoutes.GET("/total", expenseHandler.GetTotalExpenses)
		expenseRoutes.DELETE("/:id", expenseHandler.DeleteExpense)
	}
}

// SetupReportRoutes sets up the report routes. Admin only.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		reportRoutes.GET("/profit-analysis", reportHandler.GetProfitAnalysis)
		reportRoutes.GET("/profit-per-product", reportHandler.GetProfitPerProduct)
		reportRoutes.GET("/best-sellers", reportHandler.GetBestSellingProducts)
		reportRoutes.GET("/sales-data", reportHandler.GetSalesData)
		reportRoutes.GET("/overview", reportHandler.GetReportOverview)
	}
}

// SetupDashboardRoutes sets up the dashboard routes.
func SetupDashboardRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	dashboardRoutes := authenticatedGroup.Group("/dashboard")
	dashboardRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleEmployee))
	{
		dashboardRoutes.GET("/summary", reportHandler.GetDashboardSummary)
	}
}
