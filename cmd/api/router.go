package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"institute-backend/internal/shared/middleware"
	"institute-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(nil),
	)

	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/static", "./web/static")

	// Health check
	router.GET("/healthz", healthCheckHandler(c))

	setupPublicRoutes(router, c)
	setupAdminPageRoutes(router, c)
	setupAPIRoutes(router, c)

	// Unknown paths get the branded 404 page instead of gin's default.
	router.NoRoute(c.WebHandler.NotFoundPage)

	return router
}

// ========================================
// PUBLIC SITE ROUTES
// ========================================
func setupPublicRoutes(router *gin.Engine, c *container.Container) {
	router.GET("/", c.WebHandler.Home)
	router.GET("/blog", c.WebHandler.BlogList)
	router.GET("/blog/:slug", c.WebHandler.BlogDetail)
}

// ========================================
// ADMIN PAGE ROUTES
// ========================================
func setupAdminPageRoutes(router *gin.Engine, c *container.Container) {
	router.GET("/admin/login", c.AuthHandler.LoginPage)
	router.POST("/admin/login", c.AuthHandler.Login)
	router.POST("/admin/logout", c.AuthHandler.Logout)

	// Pages behind the gate render the login form for anonymous
	// visitors instead of redirecting, so a bookmarked editor URL
	// still lands somewhere useful.
	admin := router.Group("/admin")
	admin.Use(middleware.AdminPageGate(c.JWTManager, c.Config.JWT.SessionCookieName))
	{
		admin.GET("", c.WebHandler.AdminDashboard)
		admin.GET("/create", c.WebHandler.AdminCreate)
		admin.GET("/edit/:id", c.WebHandler.AdminEdit)
	}
}

// ========================================
// API ROUTES
// ========================================
func setupAPIRoutes(router *gin.Engine, c *container.Container) {
	api := router.Group("/api")
	{
		api.POST("/contact", c.ContactHandler.Relay)

		adminAPI := api.Group("/admin")
		adminAPI.Use(
			middleware.AuthMiddleware(c.JWTManager, c.Config.JWT.SessionCookieName),
			middleware.AdminMiddleware(),
		)
		{
			adminAPI.GET("/posts", c.PostHandler.ListPosts)
			adminAPI.POST("/posts", c.PostHandler.CreatePost)
			adminAPI.GET("/posts/:id", c.PostHandler.GetPost)
			adminAPI.PUT("/posts/:id", c.PostHandler.UpdatePost)
			adminAPI.POST("/posts/:id/cover", c.PostHandler.UploadCover)
		}
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"services":  gin.H{},
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis; the cache is optional so a failure never flips
		// the overall status.
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
