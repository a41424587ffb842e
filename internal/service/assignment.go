package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Poscom2010/Fleetrack-sub000/internal/domain"
	"github.com/Poscom2010/Fleetrack-sub000/internal/logger"
	"github.com/Poscom2010/Fleetrack-sub000/internal/repository"
)

const (
	assignMaxAttempts = 3
	assignBackoff     = 50 * time.Millisecond
)

// assignmentCoordinator enforces the one-active-assignment-per-driver and
// per-vehicle invariant. The repository performs the close-then-insert
// sequence in one transaction; the coordinator validates input, stamps
// server-side times and retries on detected write conflicts.
type assignmentCoordinator struct {
	assignmentRepo repository.AssignmentRepository
	vehicleRepo    repository.VehicleRepository
	driverRepo     repository.DriverRepository
}

func newAssignmentCoordinator(
	assignmentRepo repository.AssignmentRepository,
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
) *assignmentCoordinator {
	return &assignmentCoordinator{
		assignmentRepo: assignmentRepo,
		vehicleRepo:    vehicleRepo,
		driverRepo:     driverRepo,
	}
}

func (c *assignmentCoordinator) Assign(ctx context.Context, companyID, vehicleID, driverID, assignedBy string) (string, error) {
	if companyID == "" || vehicleID == "" || driverID == "" {
		return "", fmt.Errorf("company, vehicle and driver ids are required: %w", domain.ErrInvalidInput)
	}

	// Referenced entities must exist before any write.
	if _, err := c.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		return "", err
	}
	if _, err := c.driverRepo.GetByID(ctx, driverID); err != nil {
		return "", err
	}

	assignment := &domain.VehicleAssignment{
		CompanyID:  companyID,
		VehicleID:  vehicleID,
		DriverID:   driverID,
		AssignedBy: assignedBy,
		StartDate:  time.Now().UTC(),
	}

	var err error
	for attempt := 1; attempt <= assignMaxAttempts; attempt++ {
		err = c.assignmentRepo.Assign(ctx, assignment)
		if err == nil {
			return assignment.ID, nil
		}
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			return "", err
		}
		logger.Warn("Assignment conflict, retrying",
			"vehicle_id", vehicleID, "driver_id", driverID, "attempt", attempt)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, ctx.Err())
		case <-time.After(time.Duration(attempt) * assignBackoff):
		}
	}
	return "", err
}

// Unassign closes the driver's active assignment. A driver without an
// active assignment is a no-op, not an error, which makes retries safe.
func (c *assignmentCoordinator) Unassign(ctx context.Context, driverID string) error {
	if driverID == "" {
		return fmt.Errorf("driver id is required: %w", domain.ErrInvalidInput)
	}

	closed, err := c.assignmentRepo.CloseActiveByDriver(ctx, driverID, time.Now().UTC())
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("Assignment closed", "assignment_id", closed.ID,
		"driver_id", closed.DriverID, "vehicle_id", closed.VehicleID)
	return nil
}

func (c *assignmentCoordinator) CurrentForDriver(ctx context.Context, driverID string) (*domain.VehicleAssignment, error) {
	return c.assignmentRepo.GetActiveByDriver(ctx, driverID)
}

func (c *assignmentCoordinator) CurrentForVehicle(ctx context.Context, vehicleID string) (*domain.VehicleAssignment, error) {
	return c.assignmentRepo.GetActiveByVehicle(ctx, vehicleID)
}

func (c *assignmentCoordinator) History(ctx context.Context, driverID string) ([]domain.VehicleAssignment, error) {
	return c.assignmentRepo.ListByDriver(ctx, driverID)
}

func (c *assignmentCoordinator) ActiveByCompany(ctx context.Context, companyID string) ([]domain.VehicleAssignment, error) {
	return c.assignmentRepo.ListActiveByCompany(ctx, companyID)
}
