package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/aceauto-richmond/aceauto-service-api/config"
	"github.com/aceauto-richmond/aceauto-service-api/models"
	"github.com/aceauto-richmond/aceauto-service-api/storage"
)

func setupSessionTest(t *testing.T) *storage.MemoryStore {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mem := storage.NewMemoryStore()
	config.SetStorage(mem)
	return mem
}

func TestCustomerSessionRoundTrip(t *testing.T) {
	mem := setupSessionTest(t)
	ctx := context.Background()

	customer := models.CustomerUser{
		ID:           "cust_driver_richmond",
		Email:        "driver.richmond@example.com",
		Name:         "Richmond Driver",
		AuthProvider: models.ProviderEmail,
	}
	assert.NoError(t, SaveCustomerSession(ctx, mem, customer))

	loaded, err := LoadCustomerSession(ctx, mem)
	assert.NoError(t, err)
	assert.Equal(t, customer, loaded)

	assert.NoError(t, ClearCustomerSession(ctx, mem))
	_, err = LoadCustomerSession(ctx, mem)
	assert.ErrorIs(t, err, storage.ErrSlotNotFound)
}

func TestTechSessionRoundTrip(t *testing.T) {
	mem := setupSessionTest(t)
	ctx := context.Background()

	tech := models.TechUser{ID: "tech_jordan", Name: "Jordan (Tech)", Email: "tech.jordan@aceauto.example", Role: models.RoleTech}
	assert.NoError(t, SaveTechSession(ctx, mem, tech))

	loaded, err := LoadTechSession(ctx, mem)
	assert.NoError(t, err)
	assert.Equal(t, tech, loaded)

	assert.NoError(t, ClearTechSession(ctx, mem))
	_, err = LoadTechSession(ctx, mem)
	assert.ErrorIs(t, err, storage.ErrSlotNotFound)
}

func TestLoadSessionRejectsCorruptSlot(t *testing.T) {
	mem := setupSessionTest(t)
	ctx := context.Background()

	assert.NoError(t, mem.Put(ctx, storage.SlotCustomerSession, []byte("{not json")))
	_, err := LoadCustomerSession(ctx, mem)
	assert.Error(t, err)

	assert.NoError(t, mem.Put(ctx, storage.SlotTechSession, []byte(`{}`)))
	_, err = LoadTechSession(ctx, mem)
	assert.Error(t, err, "a session record without an id is invalid")
}

func sessionTestRouter() *gin.Engine {
	router := gin.New()
	router.GET("/customer-only", RequireCustomer(), func(c *gin.Context) {
		customer, err := GetCustomer(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": customer})
	})
	router.GET("/tech-only", RequireTech(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	router.GET("/admin-only", RequireTech(), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func TestRequireCustomer(t *testing.T) {
	mem := setupSessionTest(t)
	router := sessionTestRouter()

	// no session
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/customer-only", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errObj := response["error"].(map[string]interface{})
	assert.Equal(t, "UNAUTHORIZED", errObj["code"])

	// with a session the customer reaches the handler
	customer := models.CustomerUser{ID: "cust_1", Email: "c@example.com", AuthProvider: models.ProviderEmail}
	assert.NoError(t, SaveCustomerSession(context.Background(), mem, customer))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/customer-only", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "cust_1", data["id"])
}

func TestRequireTechAndAdmin(t *testing.T) {
	mem := setupSessionTest(t)
	router := sessionTestRouter()

	// no session at all
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/tech-only", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// a plain tech passes the tech gate but not the admin gate
	tech := models.TechUser{ID: "tech_riley", Name: "Riley (Tech)", Email: "tech.riley@aceauto.example", Role: models.RoleTech}
	assert.NoError(t, SaveTechSession(context.Background(), mem, tech))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/tech-only", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/admin-only", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// the admin passes both
	admin := models.TechUser{ID: "tech_admin_1", Name: "Shop Admin", Email: "admin@aceauto.example", Role: models.RoleAdmin}
	assert.NoError(t, SaveTechSession(context.Background(), mem, admin))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/admin-only", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
