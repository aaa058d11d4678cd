package store

import "github.com/statops/permitdesk/internal/inventory"

// DefaultRoster is the canonical department set used by the in-memory dev
// mode. Deployments load the roster from the departments table instead.
func DefaultRoster() []inventory.Department {
	return []inventory.Department{
		{ID: "dept-agriculture", Name: "Department of Agriculture", ShortName: "Agriculture", Status: inventory.StatusActive},
		{ID: "dept-commerce", Name: "Department of Commerce", ShortName: "Commerce", Status: inventory.StatusActive},
		{ID: "dept-environment", Name: "Department of Environmental Quality", ShortName: "Environment", Status: inventory.StatusActive},
		{ID: "dept-fish-game", Name: "Department of Fish & Game", ShortName: "Fish & Game", Status: inventory.StatusActive},
		{ID: "dept-health", Name: "Department of Health", ShortName: "Health", Status: inventory.StatusActive},
		{ID: "dept-labor", Name: "Department of Labor", ShortName: "Labor", Status: inventory.StatusActive},
		{ID: "dept-motor-vehicles", Name: "Department of Motor Vehicles", ShortName: "DMV", Status: inventory.StatusActive},
		{ID: "dept-revenue", Name: "Department of Revenue", ShortName: "Revenue", Status: inventory.StatusActive},
	}
}
