package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/aceauto-richmond/aceauto-service-api/config"
	"github.com/aceauto-richmond/aceauto-service-api/middleware"
	"github.com/aceauto-richmond/aceauto-service-api/storage"
	"github.com/aceauto-richmond/aceauto-service-api/store"
)

// setupControllerTest wires a fresh seeded store and memory storage into
// the config globals, mirroring how the server does it at startup
func setupControllerTest(t *testing.T) (*store.Store, *storage.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := storage.NewMemoryStore()
	s := store.New(context.Background(), mem, 0)
	config.SetStorage(mem)
	config.SetStore(s)
	config.SetConfig(&config.Config{StorageDriver: config.DriverMemory, GoEnv: "test"})
	return s, mem
}

func postJSON(router *gin.Engine, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func requestTestRouter() *gin.Engine {
	router := gin.New()
	router.POST("/service-requests", SubmitServiceRequest)
	router.POST("/service-requests/lookup", LookupServiceRequest)
	router.GET("/requests/statuses", ListStatuses)
	router.GET("/my/requests", middleware.RequireCustomer(), ListMyRequests)
	return router
}

func TestSubmitServiceRequestEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "Successfully submit as guest",
			requestBody: map[string]interface{}{
				"client": map[string]interface{}{
					"name":  "Casey Driver",
					"phone": "804-555-0134",
				},
				"vehicle": map[string]interface{}{
					"description": "2018 Honda Civic",
					"mileage":     "60,000",
				},
				"details": map[string]interface{}{
					"concern": "Brake squeal",
					"urgency": "soon",
				},
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.True(t, response["success"].(bool))
				data := response["data"].(map[string]interface{})
				assert.Regexp(t, `^REQ-\d+$`, data["id"])
				assert.Equal(t, "submitted", data["status"])
				assert.Equal(t, data["createdAt"], data["updatedAt"])

				client := data["client"].(map[string]interface{})
				assert.Equal(t, "Casey Driver", client["name"])
				assert.Equal(t, false, client["hasAccount"])

				details := data["details"].(map[string]interface{})
				assert.Equal(t, "Brake squeal", details["concern"])
				assert.Equal(t, "soon", details["urgency"])
			},
		},
		{
			name: "Fail with missing client name",
			requestBody: map[string]interface{}{
				"client":  map[string]interface{}{},
				"vehicle": map[string]interface{}{"description": "2018 Honda Civic"},
				"details": map[string]interface{}{"concern": "Brake squeal"},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with missing vehicle description",
			requestBody: map[string]interface{}{
				"client":  map[string]interface{}{"name": "Casey Driver"},
				"vehicle": map[string]interface{}{},
				"details": map[string]interface{}{"concern": "Brake squeal"},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with missing concern",
			requestBody: map[string]interface{}{
				"client":  map[string]interface{}{"name": "Casey Driver"},
				"vehicle": map[string]interface{}{"description": "2018 Honda Civic"},
				"details": map[string]interface{}{},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with unknown urgency",
			requestBody: map[string]interface{}{
				"client":  map[string]interface{}{"name": "Casey Driver"},
				"vehicle": map[string]interface{}{"description": "2018 Honda Civic"},
				"details": map[string]interface{}{"concern": "Brake squeal", "urgency": "immediately"},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "INVALID_URGENCY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupControllerTest(t)
			router := requestTestRouter()

			w := postJSON(router, "/service-requests", tt.requestBody)
			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errObj := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errObj["code"])
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestSubmitLinksLoggedInCustomer(t *testing.T) {
	s, mem := setupControllerTest(t)
	router := requestTestRouter()

	customer, ok := s.FindCustomerByEmail("driver.richmond@example.com")
	assert.True(t, ok)
	assert.NoError(t, middleware.SaveCustomerSession(context.Background(), mem, customer))

	w := postJSON(router, "/service-requests", map[string]interface{}{
		"client":  map[string]interface{}{"name": "Richmond Driver"},
		"vehicle": map[string]interface{}{"description": "2014 Honda Accord EX-L"},
		"details": map[string]interface{}{"concern": "Oil change"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	client := data["client"].(map[string]interface{})
	assert.Equal(t, true, client["hasAccount"])
	assert.Equal(t, customer.ID, client["accountId"])
	assert.Equal(t, customer.Email, client["email"], "session email fills in when the form omits one")
}

func TestLookupServiceRequestEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Find by email",
			requestBody: map[string]interface{}{
				"request_id": "REQ-1001",
				"contact":    "Driver.Richmond@example.com",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Find by phone with different formatting",
			requestBody: map[string]interface{}{
				"request_id": "REQ-1002",
				"contact":    "(804) 441-4309",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Mismatched contact is indistinguishable from a missing id",
			requestBody: map[string]interface{}{
				"request_id": "REQ-1001",
				"contact":    "stranger@example.com",
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "REQUEST_NOT_FOUND",
		},
		{
			name: "Unknown id",
			requestBody: map[string]interface{}{
				"request_id": "REQ-9999",
				"contact":    "driver.richmond@example.com",
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "REQUEST_NOT_FOUND",
		},
		{
			name:           "Missing fields",
			requestBody:    map[string]interface{}{"request_id": "REQ-1001"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupControllerTest(t)
			router := requestTestRouter()

			w := postJSON(router, "/service-requests/lookup", tt.requestBody)
			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			if tt.expectedError != "" {
				errObj := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errObj["code"])
				return
			}

			data := response["data"].(map[string]interface{})
			request := data["request"].(map[string]interface{})
			assert.Equal(t, tt.requestBody["request_id"], request["id"])
			assert.NotEmpty(t, data["status_label"])
		})
	}
}

func TestListMyRequestsEndpoint(t *testing.T) {
	s, mem := setupControllerTest(t)
	router := requestTestRouter()

	// without a session
	req, _ := http.NewRequest("GET", "/my/requests", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// with a session, only that customer's requests come back
	customer, ok := s.FindCustomerByEmail("fleet.manager@example.com")
	assert.True(t, ok)
	assert.NoError(t, middleware.SaveCustomerSession(context.Background(), mem, customer))

	req, _ = http.NewRequest("GET", "/my/requests", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	assert.Equal(t, "REQ-1002", data[0].(map[string]interface{})["id"])
}

func TestListStatusesEndpoint(t *testing.T) {
	setupControllerTest(t)
	router := requestTestRouter()

	req, _ := http.NewRequest("GET", "/requests/statuses", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 8)

	first := data[0].(map[string]interface{})
	assert.Equal(t, "submitted", first["value"])
	assert.Equal(t, "Submitted", first["label"])
	last := data[len(data)-1].(map[string]interface{})
	assert.Equal(t, "paid", last["value"])
	assert.Equal(t, "Paid", last["label"])
}
