package domain

import "time"

type ServiceType string

const (
	ServiceTypeRoutine    ServiceType = "ROUTINE"
	ServiceTypeRepair     ServiceType = "REPAIR"
	ServiceTypeInspection ServiceType = "INSPECTION"
	ServiceTypeTires      ServiceType = "TIRES"
	ServiceTypeOther      ServiceType = "OTHER"
)

// ServiceRecord is an append-only entry in a vehicle's maintenance log.
// Records are created only by the service recorder and are never mutated
// or deleted. MileageAtService must be >= the vehicle's baseline at the
// time of creation.
type ServiceRecord struct {
	ID               string      `json:"id"`
	VehicleID        string      `json:"vehicle_id"`
	MileageAtService int64       `json:"mileage_at_service"`
	ServiceType      ServiceType `json:"service_type"`
	CostCents        int64       `json:"cost_cents"`
	PerformedBy      string      `json:"performed_by"`
	Date             time.Time   `json:"date"`
	Notes            string      `json:"notes"`
	CreatedAt        time.Time   `json:"created_at"`
}

// ServiceDetails is the caller-supplied portion of a service record.
type ServiceDetails struct {
	Mileage     int64       `json:"mileage"`
	ServiceType ServiceType `json:"service_type"`
	CostCents   int64       `json:"cost_cents"`
	PerformedBy string      `json:"performed_by"`
	Date        time.Time   `json:"date"`
	Notes       string      `json:"notes"`
}
