package store

import (
	"time"

	"github.com/aceauto-richmond/aceauto-service-api/models"
)

// seedCustomers returns the demo customer accounts used when no persisted
// state exists yet
func seedCustomers() []models.CustomerUser {
	return []models.CustomerUser{
		{
			ID:           "cust_driver_richmond",
			Email:        "driver.richmond@example.com",
			Name:         "Richmond Driver",
			AuthProvider: models.ProviderEmail,
		},
		{
			ID:           "cust_fleet_manager",
			Email:        "fleet.manager@example.com",
			Name:         "Fleet Manager",
			AuthProvider: models.ProviderEmail,
		},
	}
}

// seedTechUsers returns the fixed technician roster. Tech accounts are
// never created at runtime; this set is the whole shop.
func seedTechUsers() []models.TechUser {
	return []models.TechUser{
		{
			ID:    "tech_admin_1",
			Name:  "Shop Admin",
			Email: "admin@aceauto.example",
			Role:  models.RoleAdmin,
		},
		{
			ID:    "tech_jordan",
			Name:  "Jordan (Tech)",
			Email: "tech.jordan@aceauto.example",
			Role:  models.RoleTech,
		},
		{
			ID:    "tech_riley",
			Name:  "Riley (Tech)",
			Email: "tech.riley@aceauto.example",
			Role:  models.RoleTech,
		},
	}
}

// seedRequests returns two in-flight demo requests so the portal has
// something to show on first run
func seedRequests(now time.Time) []models.ServiceRequest {
	return []models.ServiceRequest{
		{
			ID:        "REQ-1001",
			CreatedAt: now,
			UpdatedAt: now,
			Client: models.ClientInfo{
				Name:       "Richmond Driver",
				Email:      "driver.richmond@example.com",
				HasAccount: true,
				AccountID:  "cust_driver_richmond",
			},
			Vehicle: models.VehicleInfo{
				Description: "2014 Honda Accord EX-L",
				Mileage:     "145,200",
			},
			Details: models.RequestDetails{
				Concern:       "Check engine light on, slight rough idle at stop lights.",
				WhenStarted:   "Started earlier this week, seems about the same.",
				DashLights:    "Check engine light is solid, nothing flashing.",
				PreferredTime: "Tomorrow after 9am",
				Urgency:       models.UrgencySoon,
			},
			Status:         models.StatusAccepted,
			AssignedTechID: "tech_jordan",
		},
		{
			ID:        "REQ-1002",
			CreatedAt: now,
			UpdatedAt: now,
			Client: models.ClientInfo{
				Name:       "Fleet Manager",
				Email:      "fleet.manager@example.com",
				Phone:      "804-441-4309",
				HasAccount: true,
				AccountID:  "cust_fleet_manager",
			},
			Vehicle: models.VehicleInfo{
				Description: "2019 Ford Transit (fleet van)",
				Mileage:     "82,340",
			},
			Details: models.RequestDetails{
				Concern:       "Brake squeal under light braking, worse when loaded.",
				WhenStarted:   "Noticed over the last month.",
				DashLights:    "No warning lights.",
				PreferredTime: "This week, mornings",
				Urgency:       models.UrgencySoon,
			},
			Status:         models.StatusScheduled,
			AssignedTechID: "tech_riley",
		},
	}
}
