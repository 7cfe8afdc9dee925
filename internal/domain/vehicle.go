package domain

import (
	"time"

	"github.com/google/uuid"
)

type Vehicle struct {
	ID         uuid.UUID  `json:"id"`
	OrgID      uuid.UUID  `json:"org_id"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	FleetID    *uuid.UUID `json:"fleet_id,omitempty"`
	VIN        string     `json:"vin,omitempty"`
	Plate      string     `json:"plate"`
	Make       string     `json:"make"`
	Model      string     `json:"model"`
	Year       int        `json:"year,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
