package handlers

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	_ "github.com/spendlens/spendlens_backend/cmd/docs"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/middleware"
	"github.com/spendlens/spendlens_backend/internal/platform/config"
	"github.com/spendlens/spendlens_backend/internal/utils"
)

// registerCustomValidators installs the txnkind tag used by the transaction
// DTOs. Transfer is reserved in the data model and rejected at the edge.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("txnkind", func(fl validator.FieldLevel) bool {
			kind := fl.Field().String()
			return kind == "expense" || kind == "income"
		})
	}
}

// RegisterRoutes wires middleware and every endpoint onto the router.
func RegisterRoutes(router *gin.Engine, services *portssvc.ServiceContainer, cfg *config.Config, logger *slog.Logger, posthogClient *utils.PosthogClientWrapper) {
	registerCustomValidators()

	router.Use(middleware.StructuredLoggingMiddleware(logger))
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.PosthogMiddleware(posthogClient))

	router.GET("/health", HealthCheck)
	if !cfg.IsProduction {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := NewAuthHandler(services, cfg)
	userHandler := NewUserHandler(services)
	transactionHandler := NewTransactionHandler(services)
	reportingHandler := NewReportingHandler(services)

	loginLimiter := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 5})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", middleware.RateLimit(loginLimiter), authHandler.Login)
		auth.POST("/google", middleware.RateLimit(loginLimiter), authHandler.GoogleSignIn)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/users/me", userHandler.GetMe)

		transactions := protected.Group("/transactions")
		{
			transactions.GET("", transactionHandler.ListTransactions)
			transactions.POST("", transactionHandler.CreateTransaction)
			transactions.POST("/import", transactionHandler.ImportTransactions)
			transactions.PUT("/:id", transactionHandler.UpdateTransaction)
			transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
		}

		reports := protected.Group("/reports")
		{
			reports.GET("/spending", reportingHandler.GetSpending)
			reports.GET("/budgets", reportingHandler.GetBudgets)
			reports.GET("/summary", reportingHandler.GetSummary)
		}
	}
}
