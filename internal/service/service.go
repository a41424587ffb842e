package service

import (
	"context"

	"github.com/Poscom2010/Fleetrack-sub000/internal/domain"
	"github.com/Poscom2010/Fleetrack-sub000/internal/maintenance"
)

// VehicleStatus pairs a vehicle with its computed service status for list
// views and digests.
type VehicleStatus struct {
	Vehicle domain.Vehicle     `json:"vehicle"`
	Status  maintenance.Status `json:"status"`
}

// FleetService is the single entry point the collaborator layer consumes.
// It fixes the transaction boundaries: callers never perform multi-step
// read-modify-write sequences themselves. Every method may block on the
// backing store; callers must not hold in-process locks across a call.
type FleetService interface {
	// Vehicles
	AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, companyID string) ([]domain.Vehicle, error)
	UpdateMileage(ctx context.Context, vehicleID string, mileage int64) error

	// Service lifecycle
	GetServiceStatus(ctx context.Context, vehicleID string) (*maintenance.Status, error)
	CompleteService(ctx context.Context, vehicleID string, details domain.ServiceDetails) (string, error)
	ServiceHistory(ctx context.Context, vehicleID string) ([]domain.ServiceRecord, error)
	VehiclesDue(ctx context.Context, companyID string) ([]VehicleStatus, error)

	// Assignments
	AssignVehicle(ctx context.Context, companyID, vehicleID, driverID, assignedBy string) (string, error)
	UnassignDriver(ctx context.Context, driverID string) error
	CurrentAssignmentForDriver(ctx context.Context, driverID string) (*domain.VehicleAssignment, error)
	CurrentAssignmentForVehicle(ctx context.Context, vehicleID string) (*domain.VehicleAssignment, error)
	AssignmentHistory(ctx context.Context, driverID string) ([]domain.VehicleAssignment, error)
	ActiveAssignments(ctx context.Context, companyID string) ([]domain.VehicleAssignment, error)
}

type EmailService interface {
	SendServiceDueDigest(ctx context.Context, email, companyName string, due []VehicleStatus) error
	SendOverdueAlert(ctx context.Context, email, registration string, status maintenance.Status) error
}
