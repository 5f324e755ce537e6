package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aceauto-richmond/aceauto-service-api/config"
	"github.com/aceauto-richmond/aceauto-service-api/models"
	"github.com/aceauto-richmond/aceauto-service-api/storage"
)

// Context keys set by the session middleware
const (
	contextKeyCustomer = "customer"
	contextKeyTech     = "tech"
)

// RequireCustomer only lets the request through when a customer session
// exists. The session record is hydrated into the Gin context.
func RequireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := LoadCustomerSession(c.Request.Context(), config.GetStorage())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Customer login required",
				},
			})
			c.Abort()
			return
		}
		c.Set(contextKeyCustomer, customer)
		c.Next()
	}
}

// RequireTech only lets the request through when a tech session exists
func RequireTech() gin.HandlerFunc {
	return func(c *gin.Context) {
		tech, err := LoadTechSession(c.Request.Context(), config.GetStorage())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Tech login required",
				},
			})
			c.Abort()
			return
		}
		c.Set(contextKeyTech, tech)
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. It must run after RequireTech.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		tech, err := GetTech(c)
		if err != nil || !tech.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Admin access required",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetCustomer extracts the logged-in customer from the Gin context
func GetCustomer(c *gin.Context) (models.CustomerUser, error) {
	value, exists := c.Get(contextKeyCustomer)
	if !exists {
		return models.CustomerUser{}, &AuthError{Code: "MISSING_SESSION", Message: "Customer session not found in context"}
	}
	customer, ok := value.(models.CustomerUser)
	if !ok {
		return models.CustomerUser{}, &AuthError{Code: "INVALID_SESSION", Message: "Customer session is not in the expected format"}
	}
	return customer, nil
}

// GetTech extracts the logged-in tech from the Gin context
func GetTech(c *gin.Context) (models.TechUser, error) {
	value, exists := c.Get(contextKeyTech)
	if !exists {
		return models.TechUser{}, &AuthError{Code: "MISSING_SESSION", Message: "Tech session not found in context"}
	}
	tech, ok := value.(models.TechUser)
	if !ok {
		return models.TechUser{}, &AuthError{Code: "INVALID_SESSION", Message: "Tech session is not in the expected format"}
	}
	return tech, nil
}

// SaveCustomerSession writes the current-customer session slot
func SaveCustomerSession(ctx context.Context, st storage.Store, customer models.CustomerUser) error {
	data, err := json.Marshal(customer)
	if err != nil {
		return fmt.Errorf("failed to serialize customer session: %w", err)
	}
	return st.Put(ctx, storage.SlotCustomerSession, data)
}

// LoadCustomerSession reads the current-customer session slot
func LoadCustomerSession(ctx context.Context, st storage.Store) (models.CustomerUser, error) {
	data, err := st.Get(ctx, storage.SlotCustomerSession)
	if err != nil {
		return models.CustomerUser{}, err
	}
	var customer models.CustomerUser
	if err := json.Unmarshal(data, &customer); err != nil {
		return models.CustomerUser{}, fmt.Errorf("corrupt customer session: %w", err)
	}
	if customer.ID == "" {
		return models.CustomerUser{}, errors.New("empty customer session")
	}
	return customer, nil
}

// ClearCustomerSession deletes the current-customer session slot
func ClearCustomerSession(ctx context.Context, st storage.Store) error {
	return st.Delete(ctx, storage.SlotCustomerSession)
}

// SaveTechSession writes the current-tech session slot
func SaveTechSession(ctx context.Context, st storage.Store, tech models.TechUser) error {
	data, err := json.Marshal(tech)
	if err != nil {
		return fmt.Errorf("failed to serialize tech session: %w", err)
	}
	return st.Put(ctx, storage.SlotTechSession, data)
}

// LoadTechSession reads the current-tech session slot
func LoadTechSession(ctx context.Context, st storage.Store) (models.TechUser, error) {
	data, err := st.Get(ctx, storage.SlotTechSession)
	if err != nil {
		return models.TechUser{}, err
	}
	var tech models.TechUser
	if err := json.Unmarshal(data, &tech); err != nil {
		return models.TechUser{}, fmt.Errorf("corrupt tech session: %w", err)
	}
	if tech.ID == "" {
		return models.TechUser{}, errors.New("empty tech session")
	}
	return tech, nil
}

// ClearTechSession deletes the current-tech session slot
func ClearTechSession(ctx context.Context, st storage.Store) error {
	return st.Delete(ctx, storage.SlotTechSession)
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
