package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/aceauto-richmond/aceauto-service-api/config"
	"github.com/aceauto-richmond/aceauto-service-api/controllers"
	"github.com/aceauto-richmond/aceauto-service-api/middleware"
	"github.com/aceauto-richmond/aceauto-service-api/storage"
	"github.com/aceauto-richmond/aceauto-service-api/store"
)

func main() {
	// Basic logging
	log.Println("Starting AceAuto Service API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	config.SetConfig(cfg)

	// Open the configured slot store
	ctx := context.Background()
	if err := config.ConnectStorage(ctx, cfg); err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}

	// Hydrate the application store (seed data on first run)
	latency := time.Duration(cfg.SubmitLatencyMS) * time.Millisecond
	config.SetStore(store.New(ctx, config.GetStorage(), latency))
	log.Println("Store hydrated successfully")

	// Initialize Gin router
	router := setupRouter()

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with CORS and all API routes
func setupRouter() *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Storage status endpoint
		v1.GET("/storage/status", storageStatus)

		// Public request intake and guest lookup
		v1.POST("/service-requests", controllers.SubmitServiceRequest)
		v1.POST("/service-requests/lookup", controllers.LookupServiceRequest)
		v1.GET("/requests/statuses", controllers.ListStatuses)

		// Customer session
		v1.POST("/auth/customer/login", controllers.CustomerLogin)
		v1.POST("/auth/customer/logout", controllers.CustomerLogout)
		v1.GET("/auth/customer/demo-accounts", controllers.ListDemoCustomers)
		v1.GET("/auth/customer/me", middleware.RequireCustomer(), controllers.GetCustomerMe)
		v1.GET("/my/requests", middleware.RequireCustomer(), controllers.ListMyRequests)

		// Tech portal
		v1.POST("/auth/tech/login", controllers.TechLogin)
		v1.POST("/auth/tech/logout", controllers.TechLogout)

		tech := v1.Group("", middleware.RequireTech())
		{
			tech.GET("/auth/tech/me", controllers.GetTechMe)
			tech.GET("/tech/requests", controllers.ListTechRequests)
			tech.GET("/tech/techs", controllers.ListTechs)
			tech.POST("/tech/requests/:id/assign", controllers.AssignRequest)
			tech.POST("/tech/requests/:id/advance", controllers.AdvanceRequestStatus)
			tech.PATCH("/tech/requests/:id/status", controllers.SetRequestStatus)
			tech.GET("/admin/requests", middleware.RequireAdmin(), controllers.ListAllRequests)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "AceAuto Service API is running",
	})
}

// storageStatus reports the active storage driver and probes the state slot
func storageStatus(c *gin.Context) {
	st := config.GetStorage()
	if st == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_ERROR",
				"message": "Storage is not initialized",
			},
		})
		return
	}

	driver := ""
	if cfg := config.GetConfig(); cfg != nil {
		driver = cfg.StorageDriver
	}

	stateExists := true
	if _, err := st.Get(c.Request.Context(), storage.SlotState); err != nil {
		if err != storage.ErrSlotNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "STORAGE_ERROR",
					"message": "Failed to probe the state slot",
				},
			})
			return
		}
		stateExists = false
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Storage connected",
		"data": gin.H{
			"driver":       driver,
			"state_exists": stateExists,
		},
	})
}
