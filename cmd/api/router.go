package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"alupro-backend/internal/shared"
	"alupro-backend/internal/shared/middleware"
	"alupro-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
		middleware.ClientIPMiddleware(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupProductRoutes(v1, c)
		setupPromoRoutes(v1, c)
		setupOrderRoutes(v1, c)
		setupContentRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
		auth.GET("/me", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.Me)
	}
}

// ========================================
// PRODUCT + REVIEW ROUTES (PUBLIC)
// ========================================
func setupProductRoutes(v1 *gin.RouterGroup, c *container.Container) {
	products := v1.Group("/products")
	{
		products.GET("", c.ProductHandler.ListProducts)
		products.GET("/featured", c.ProductHandler.FeaturedProducts)
		products.GET("/:slug", c.ProductHandler.GetProduct)
		products.GET("/:slug/related", c.ProductHandler.RelatedProducts)

		products.GET("/:slug/reviews", c.ReviewHandler.ListProductReviews)
		products.POST("/:slug/reviews", c.ReviewHandler.SubmitReview)
	}
}

// ========================================
// PROMO ROUTES (PUBLIC)
// ========================================
func setupPromoRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/promo-codes/validate", c.PromoPublicHandler.ValidatePromoCode)
}

// ========================================
// ORDER ROUTES (CUSTOMER)
// ========================================
func setupOrderRoutes(v1 *gin.RouterGroup, c *container.Container) {
	orders := v1.Group("/orders")
	{
		// Guest checkout allowed, a valid token links the order to the account
		orders.POST("", middleware.OptionalAuthMiddleware(c.JWTManager), c.OrderHandler.CreateOrder)

		authed := orders.Group("", middleware.AuthMiddleware(c.JWTManager))
		authed.GET("/my", c.OrderHandler.GetMyOrders)
		authed.GET("/:id", c.OrderHandler.GetOrder)
	}
}

// ========================================
// CONTENT ROUTES (CONTACT, SETTINGS, PAGES)
// ========================================
func setupContentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/contact", c.ContactHandler.SubmitMessage)
	v1.GET("/settings", c.SettingsHandler.GetSettings)
	v1.GET("/pages/:key", c.PageHandler.GetPage)
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin", middleware.AuthMiddleware(c.JWTManager))

	admin.GET("/dashboard", middleware.RequireRoles(shared.BackOffice...), c.DashboardHandler.GetSummary)

	// super_admin, admin
	orders := admin.Group("/orders", middleware.RequireRoles(shared.OrderManagers...))
	{
		orders.GET("", c.OrderHandler.ListOrders)
		// before /:id so "export" is not parsed as an id
		orders.GET("/export", c.OrderHandler.ExportOrders)
		orders.GET("/:id", c.OrderHandler.AdminGetOrder)
		orders.PATCH("/:id", c.OrderHandler.UpdateStatus)
		orders.GET("/:id/history", c.OrderHandler.GetHistory)
	}

	promos := admin.Group("/promo-codes", middleware.RequireRoles(shared.OrderManagers...))
	{
		promos.GET("", c.PromoAdminHandler.ListPromoCodes)
		promos.POST("", c.PromoAdminHandler.CreatePromoCode)
		promos.GET("/:id", c.PromoAdminHandler.GetPromoCode)
		promos.PUT("/:id", c.PromoAdminHandler.UpdatePromoCode)
		promos.DELETE("/:id", c.PromoAdminHandler.DeletePromoCode)
		promos.PATCH("/:id/toggle", c.PromoAdminHandler.TogglePromoCode)
	}

	users := admin.Group("/users", middleware.RequireRoles(shared.OrderManagers...))
	{
		users.GET("", c.UserHandler.ListUsers)
		users.PATCH("/:id/role", c.UserHandler.UpdateRole)
	}

	settings := admin.Group("", middleware.RequireRoles(shared.OrderManagers...))
	{
		settings.PUT("/settings", c.SettingsHandler.UpdateSettings)
		settings.POST("/media/images", c.MediaHandler.UploadImage)
		settings.POST("/media/videos", c.MediaHandler.UploadVideo)
	}

	// super_admin, admin, editor
	products := admin.Group("/products", middleware.RequireRoles(shared.ContentManagers...))
	{
		products.GET("", c.ProductHandler.AdminListProducts)
		products.POST("", c.ProductHandler.CreateProduct)
		products.GET("/:id", c.ProductHandler.AdminGetProduct)
		products.PUT("/:id", c.ProductHandler.UpdateProduct)
		products.DELETE("/:id", c.ProductHandler.DeleteProduct)
		products.POST("/:id/images", c.ProductHandler.UploadImage)
	}

	reviews := admin.Group("/reviews", middleware.RequireRoles(shared.ContentManagers...))
	{
		reviews.GET("", c.ReviewHandler.AdminListReviews)
		reviews.PATCH("/:id/approve", c.ReviewHandler.ApproveReview)
		reviews.DELETE("/:id", c.ReviewHandler.DeleteReview)
	}

	admin.PUT("/pages/:key", middleware.RequireRoles(shared.ContentManagers...), c.PageHandler.UpdatePage)

	// super_admin, admin, support
	messages := admin.Group("/messages", middleware.RequireRoles(shared.MessageHandlers...))
	{
		messages.GET("", c.ContactHandler.ListMessages)
		messages.PATCH("/:id/read", c.ContactHandler.MarkRead)
		messages.POST("/:id/reply", c.ContactHandler.Reply)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}
		statusCode := http.StatusOK

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// Redis is optional: settings and pages fall back to Postgres
		redisStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		}

		storageStatus := "ok"
		if err := appCtx.Storage.HealthCheck(ctx); err != nil {
			storageStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"storage":  storageStatus,
		}

		c.JSON(statusCode, health)
	}
}
