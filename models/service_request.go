package models

import (
	"time"
)

// Urgency is the customer's self-reported urgency tag
type Urgency string

// Urgency tags; the empty string means "not specified"
const (
	UrgencyToday   Urgency = "today"
	UrgencySoon    Urgency = "soon"
	UrgencyRoutine Urgency = "routine"
	UrgencyNone    Urgency = ""
)

// IsValidUrgency reports whether u is a recognized urgency tag
func IsValidUrgency(u Urgency) bool {
	switch u {
	case UrgencyToday, UrgencySoon, UrgencyRoutine, UrgencyNone:
		return true
	}
	return false
}

// ClientInfo holds the contact details supplied with a service request.
// AccountID is a weak reference to a CustomerUser; it carries no ownership.
type ClientInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	HasAccount bool   `json:"hasAccount"`
	AccountID  string `json:"accountId,omitempty"`
}

// VehicleInfo describes the vehicle the request is about
type VehicleInfo struct {
	Description string `json:"description"`
	Mileage     string `json:"mileage,omitempty"`
}

// RequestDetails holds the free-text problem description
type RequestDetails struct {
	Concern       string  `json:"concern"`
	WhenStarted   string  `json:"whenStarted,omitempty"`
	DashLights    string  `json:"dashLights,omitempty"`
	PreferredTime string  `json:"preferredTime,omitempty"`
	Urgency       Urgency `json:"urgency,omitempty"`
}

// ServiceRequest is a unit of customer-reported vehicle work.
// AssignedTechID is a weak reference to a TechUser.
type ServiceRequest struct {
	ID             string         `json:"id"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	Client         ClientInfo     `json:"client"`
	Vehicle        VehicleInfo    `json:"vehicle"`
	Details        RequestDetails `json:"details"`
	Status         Status         `json:"status"`
	AssignedTechID string         `json:"assignedTechId,omitempty"`
}
