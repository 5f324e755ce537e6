package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aceauto-richmond/aceauto-service-api/config"
	"github.com/aceauto-richmond/aceauto-service-api/middleware"
	"github.com/aceauto-richmond/aceauto-service-api/models"
)

// Demo identities used for the simulated third-party logins. No real OAuth
// happens anywhere; picking a provider just selects a canned account.
var providerDemoAccounts = map[models.AuthProvider]struct {
	Email string
	Name  string
}{
	models.ProviderApple:  {Email: "apple.user@example.com", Name: "Apple User"},
	models.ProviderGoogle: {Email: "google.user@example.com", Name: "Google User"},
}

// CustomerLoginRequest represents the request body for a customer login
type CustomerLoginRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// CustomerLogin handles POST /api/v1/auth/customer/login - "logs in" a
// customer by ensuring an account exists and writing the session slot.
// There is no password; this mirrors the original demo's login flow.
func CustomerLogin(c *gin.Context) {
	var req CustomerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	provider := models.AuthProvider(req.Provider)
	if provider == "" {
		provider = models.ProviderEmail
	}
	if !models.IsValidProvider(provider) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PROVIDER",
				"message": "Provider must be one of: email, apple, google",
			},
		})
		return
	}

	email := req.Email
	name := req.Name
	if demo, ok := providerDemoAccounts[provider]; ok {
		email = demo.Email
		name = demo.Name
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_EMAIL",
				"message": "Email is required to log in",
			},
		})
		return
	}

	customer := config.GetStore().EnsureCustomer(c.Request.Context(), email, name, provider)

	if err := middleware.SaveCustomerSession(c.Request.Context(), config.GetStorage(), customer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_ERROR",
				"message": "Failed to save session",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}

// CustomerLogout handles POST /api/v1/auth/customer/logout
func CustomerLogout(c *gin.Context) {
	if err := middleware.ClearCustomerSession(c.Request.Context(), config.GetStorage()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_ERROR",
				"message": "Failed to clear session",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}

// GetCustomerMe handles GET /api/v1/auth/customer/me - returns the current
// customer session
func GetCustomerMe(c *gin.Context) {
	customer, err := middleware.GetCustomer(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract customer session",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}

// TechLoginRequest represents the request body for a tech portal login
type TechLoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// TechLogin handles POST /api/v1/auth/tech/login - matches the email
// against the fixed technician roster and writes the tech session slot
func TechLogin(c *gin.Context) {
	var req TechLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	tech, ok := config.GetStore().FindTechByEmail(req.Email)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "No technician account with that email",
			},
		})
		return
	}

	if err := middleware.SaveTechSession(c.Request.Context(), config.GetStorage(), tech); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_ERROR",
				"message": "Failed to save session",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tech,
	})
}

// TechLogout handles POST /api/v1/auth/tech/logout
func TechLogout(c *gin.Context) {
	if err := middleware.ClearTechSession(c.Request.Context(), config.GetStorage()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_ERROR",
				"message": "Failed to clear session",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}

// GetTechMe handles GET /api/v1/auth/tech/me - returns the current tech
// session
func GetTechMe(c *gin.Context) {
	tech, err := middleware.GetTech(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract tech session",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tech,
	})
}

// ListDemoCustomers handles GET /api/v1/auth/customer/demo-accounts - the
// canned accounts the login page offers
func ListDemoCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    config.GetStore().ListDemoCustomers(),
	})
}
