package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aceauto-richmond/aceauto-service-api/config"
	"github.com/aceauto-richmond/aceauto-service-api/middleware"
	"github.com/aceauto-richmond/aceauto-service-api/models"
	"github.com/aceauto-richmond/aceauto-service-api/store"
)

// SubmitClientPayload is the contact portion of a submission
type SubmitClientPayload struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

// SubmitVehiclePayload describes the vehicle
type SubmitVehiclePayload struct {
	Description string `json:"description" binding:"required"`
	Mileage     string `json:"mileage"`
}

// SubmitDetailsPayload holds the problem description
type SubmitDetailsPayload struct {
	Concern       string `json:"concern" binding:"required"`
	WhenStarted   string `json:"when_started"`
	DashLights    string `json:"dash_lights"`
	PreferredTime string `json:"preferred_time"`
	Urgency       string `json:"urgency"`
}

// SubmitServiceRequestRequest represents the request body for submitting a
// service request
type SubmitServiceRequestRequest struct {
	Client  SubmitClientPayload  `json:"client" binding:"required"`
	Vehicle SubmitVehiclePayload `json:"vehicle" binding:"required"`
	Details SubmitDetailsPayload `json:"details" binding:"required"`
}

// SubmitServiceRequest handles POST /api/v1/service-requests - submits a new
// request as a guest, or linked to the current customer session if one exists
func SubmitServiceRequest(c *gin.Context) {
	var req SubmitServiceRequestRequest
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

	urgency := models.Urgency(req.Details.Urgency)
	if !models.IsValidUrgency(urgency) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_URGENCY",
				"message": "Urgency must be one of: today, soon, routine",
			},
		})
		return
	}

	input := store.SubmitInput{
		Client: store.ClientInput{
			Name:  req.Client.Name,
			Email: req.Client.Email,
			Phone: req.Client.Phone,
		},
		Vehicle: models.VehicleInfo{
			Description: req.Vehicle.Description,
			Mileage:     req.Vehicle.Mileage,
		},
		Details: models.RequestDetails{
			Concern:       req.Details.Concern,
			WhenStarted:   req.Details.WhenStarted,
			DashLights:    req.Details.DashLights,
			PreferredTime: req.Details.PreferredTime,
			Urgency:       urgency,
		},
	}

	// Link the request to the logged-in customer when a session exists.
	// Guests submit without one; that's not an error.
	if customer, err := middleware.LoadCustomerSession(c.Request.Context(), config.GetStorage()); err == nil {
		input.Client.AccountID = customer.ID
		if input.Client.Email == "" {
			input.Client.Email = customer.Email
		}
	}

	request := config.GetStore().SubmitServiceRequest(c.Request.Context(), input)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    request,
	})
}

// LookupServiceRequestRequest represents the request body for the guest
// status lookup
type LookupServiceRequestRequest struct {
	RequestID string `json:"request_id" binding:"required"`
	Contact   string `json:"contact" binding:"required"`
}

// LookupServiceRequest handles POST /api/v1/service-requests/lookup - finds
// a request by id, gated on the contact string matching the stored email or
// phone. A wrong contact gets the same response as an unknown id.
func LookupServiceRequest(c *gin.Context) {
	var req LookupServiceRequestRequest
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

	request, ok := config.GetStore().GetRequestByIDForContact(req.RequestID, req.Contact)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REQUEST_NOT_FOUND",
				"message": "No request matches that id and contact",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"request":      request,
			"status_label": models.StatusLabel(request.Status),
		},
	})
}

// ListMyRequests handles GET /api/v1/my/requests - lists the logged-in
// customer's requests
func ListMyRequests(c *gin.Context) {
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

	requests := config.GetStore().ListCustomerRequests(customer.ID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
	})
}

// ListStatuses handles GET /api/v1/requests/statuses - returns the request
// lifecycle in order, with display labels
func ListStatuses(c *gin.Context) {
	statuses := models.AllStatuses()
	out := make([]gin.H, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, gin.H{
			"value": s,
			"label": models.StatusLabel(s),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    out,
	})
}
