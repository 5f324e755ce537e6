package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aceauto-richmond/aceauto-service-api/config"
	"github.com/aceauto-richmond/aceauto-service-api/middleware"
	"github.com/aceauto-richmond/aceauto-service-api/models"
)

// ListTechRequests handles GET /api/v1/tech/requests - the logged-in tech's
// assigned requests
func ListTechRequests(c *gin.Context) {
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

	requests := config.GetStore().ListRequestsForTech(tech.ID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
	})
}

// ListAllRequests handles GET /api/v1/admin/requests - every request,
// newest first (admins only)
func ListAllRequests(c *gin.Context) {
	requests := config.GetStore().ListAllRequestsForAdmin()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
	})
}

// ListTechs handles GET /api/v1/tech/techs - the roster a request can be
// assigned to
func ListTechs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    config.GetStore().ListTechUsers(),
	})
}

// AssignRequestRequest represents the request body for assigning a tech
type AssignRequestRequest struct {
	TechID string `json:"tech_id" binding:"required"`
}

// AssignRequest handles POST /api/v1/tech/requests/:id/assign - assigns a
// tech to a request. A request still in "submitted" moves to "accepted".
func AssignRequest(c *gin.Context) {
	var req AssignRequestRequest
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

	if _, ok := config.GetStore().FindTechByID(req.TechID); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TECH_NOT_FOUND",
				"message": "No technician with that id",
			},
		})
		return
	}

	request, ok := config.GetStore().AssignRequest(c.Request.Context(), c.Param("id"), req.TechID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REQUEST_NOT_FOUND",
				"message": "No request with that id",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    request,
	})
}

// AdvanceRequestStatus handles POST /api/v1/tech/requests/:id/advance -
// moves a request one step forward in the lifecycle. Advancing a request
// already at "paid" leaves it there.
func AdvanceRequestStatus(c *gin.Context) {
	request, ok := config.GetStore().AdvanceRequestStatus(c.Request.Context(), c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REQUEST_NOT_FOUND",
				"message": "No request with that id",
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

// SetRequestStatusRequest represents the request body for force-setting a
// status
type SetRequestStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetRequestStatus handles PATCH /api/v1/tech/requests/:id/status -
// force-sets a request's status to any lifecycle value. No ordering check
// is made; the portal UI uses the advance endpoint for the normal path.
func SetRequestStatus(c *gin.Context) {
	var req SetRequestStatusRequest
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

	status := models.Status(req.Status)
	if !models.IsValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Status is not a recognized lifecycle value",
			},
		})
		return
	}

	request, ok := config.GetStore().UpdateRequestStatus(c.Request.Context(), c.Param("id"), status)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REQUEST_NOT_FOUND",
				"message": "No request with that id",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    request,
	})
}
