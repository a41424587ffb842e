package service

import (
	"context"
	"fmt"

	"github.com/Poscom2010/Fleetrack-sub000/internal/domain"
	"github.com/Poscom2010/Fleetrack-sub000/internal/maintenance"
	"github.com/Poscom2010/Fleetrack-sub000/internal/repository"
)

// fleetService is the facade over the service recorder and the assignment
// coordinator. No business rules live here beyond input checks; it exists
// so callers get single-call transaction boundaries.
type fleetService struct {
	vehicleRepo repository.VehicleRepository
	recorder    *serviceRecorder
	coordinator *assignmentCoordinator
}

func NewFleetService(
	vehicleRepo repository.VehicleRepository,
	recordRepo repository.ServiceRecordRepository,
	assignmentRepo repository.AssignmentRepository,
	driverRepo repository.DriverRepository,
) FleetService {
	return &fleetService{
		vehicleRepo: vehicleRepo,
		recorder:    newServiceRecorder(vehicleRepo, recordRepo),
		coordinator: newAssignmentCoordinator(assignmentRepo, vehicleRepo, driverRepo),
	}
}

func (s *fleetService) AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	if vehicle.CompanyID == "" {
		return fmt.Errorf("company id is required: %w", domain.ErrInvalidInput)
	}
	if vehicle.CurrentMileage < 0 || vehicle.LastServiceMileage < 0 {
		return fmt.Errorf("mileage must be non-negative: %w", domain.ErrInvalidInput)
	}
	if vehicle.LastServiceMileage > vehicle.CurrentMileage {
		return fmt.Errorf("last service mileage above current mileage: %w", domain.ErrInvalidInput)
	}
	return s.vehicleRepo.Create(ctx, vehicle)
}

func (s *fleetService) GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, vehicleID)
}

func (s *fleetService) ListVehicles(ctx context.Context, companyID string) ([]domain.Vehicle, error) {
	return s.vehicleRepo.ListByCompany(ctx, companyID)
}

// UpdateMileage records a new odometer reading. Mileage is monotonic: a
// reading below the vehicle's baseline is a data-entry error, not a reset.
func (s *fleetService) UpdateMileage(ctx context.Context, vehicleID string, mileage int64) error {
	if mileage < 0 {
		return fmt.Errorf("mileage must be non-negative, got %d: %w", mileage, domain.ErrInvalidInput)
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if mileage < vehicle.LastServiceMileage {
		return fmt.Errorf("reading %d below service baseline %d: %w",
			mileage, vehicle.LastServiceMileage, domain.ErrInvariantViolation)
	}
	return s.vehicleRepo.UpdateMileage(ctx, vehicleID, mileage)
}

func (s *fleetService) GetServiceStatus(ctx context.Context, vehicleID string) (*maintenance.Status, error) {
	return s.recorder.Status(ctx, vehicleID)
}

func (s *fleetService) CompleteService(ctx context.Context, vehicleID string, details domain.ServiceDetails) (string, error) {
	return s.recorder.RecordService(ctx, vehicleID, details)
}

func (s *fleetService) ServiceHistory(ctx context.Context, vehicleID string) ([]domain.ServiceRecord, error) {
	return s.recorder.History(ctx, vehicleID)
}

func (s *fleetService) VehiclesDue(ctx context.Context, companyID string) ([]VehicleStatus, error) {
	return s.recorder.Due(ctx, companyID)
}

func (s *fleetService) AssignVehicle(ctx context.Context, companyID, vehicleID, driverID, assignedBy string) (string, error) {
	return s.coordinator.Assign(ctx, companyID, vehicleID, driverID, assignedBy)
}

func (s *fleetService) UnassignDriver(ctx context.Context, driverID string) error {
	return s.coordinator.Unassign(ctx, driverID)
}

func (s *fleetService) CurrentAssignmentForDriver(ctx context.Context, driverID string) (*domain.VehicleAssignment, error) {
	return s.coordinator.CurrentForDriver(ctx, driverID)
}

func (s *fleetService) CurrentAssignmentForVehicle(ctx context.Context, vehicleID string) (*domain.VehicleAssignment, error) {
	return s.coordinator.CurrentForVehicle(ctx, vehicleID)
}

func (s *fleetService) AssignmentHistory(ctx context.Context, driverID string) ([]domain.VehicleAssignment, error) {
	return s.coordinator.History(ctx, driverID)
}

func (s *fleetService) ActiveAssignments(ctx context.Context, companyID string) ([]domain.VehicleAssignment, error) {
	return s.coordinator.ActiveByCompany(ctx, companyID)
}
