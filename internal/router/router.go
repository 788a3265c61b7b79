package router

import (
	"database/sql"

	"shopledger_backend/internal/handlers"
	"shopledger_backend/internal/middleware"
	"shopledger_backend/internal/repositories"
	"shopledger_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, uploadDir string) {
	// Initialize Repositories
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	saleRepo := repositories.NewSaleRepository(db)
	expenseRepo := repositories.NewExpenseRepository(db)

	// Initialize Services
	dbHandle := repositories.WrapDB(db)
	authService := services.NewAuthService(dbHandle, userRepo)
	userService := services.NewUserService(dbHandle, userRepo)
	productService := services.NewProductService(dbHandle, productRepo, uploadDir)
	saleService := services.NewSaleService(dbHandle, saleRepo, productRepo)
	expenseService := services.NewExpenseService(dbHandle, expenseRepo)
	reportService := services.NewReportService(saleRepo, expenseRepo, productRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService, uploadDir)
	saleHandler := handlers.NewSaleHandler(saleService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Uploaded product images are served statically.
	engine.Static("/uploads", uploadDir)

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupUserRoutes(authenticated, userHandler)
		SetupProductRoutes(authenticated, productHandler)
		SetupSaleRoutes(authenticated, saleHandler)
		SetupExpenseRoutes(authenticated, expenseHandler)
		SetupReportRoutes(authenticated, reportHandler)
		SetupDashboardRoutes(authenticated, reportHandler)
	}
}

// SetupPublicAuthRoutes wires the routes reachable without a token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.LoginUser)
	group.POST("/refresh-token", authHandler.RefreshToken)
}

// SetupAuthenticatedAuthRoutes wires the token-bound auth routes.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/logout", authHandler.LogoutUser)
	group.GET("/me", authHandler.GetCurrentUser)
	group.POST("/change-password", authHandler.ChangePassword)
}
