package domain

import (
	"time"

	"github.com/google/uuid"
)

type WorkOrderStatus string

const (
	WorkOrderOpen       WorkOrderStatus = "open"
	WorkOrderInProgress WorkOrderStatus = "in_progress"
	WorkOrderCompleted  WorkOrderStatus = "completed"
)

func ValidWorkOrderStatus(s string) bool {
	switch WorkOrderStatus(s) {
	case WorkOrderOpen, WorkOrderInProgress, WorkOrderCompleted:
		return true
	}
	return false
}

type WorkOrder struct {
	ID         uuid.UUID       `json:"id"`
	OrgID      uuid.UUID       `json:"org_id"`
	VehicleID  uuid.UUID       `json:"vehicle_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Status     WorkOrderStatus `json:"status"`
	Title      string          `json:"title"`
	Notes      string          `json:"notes,omitempty"`
	OpenedAt   time.Time       `json:"opened_at"`
	ClosedAt   *time.Time      `json:"closed_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
