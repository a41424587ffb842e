package repository

import (
	"context"
	"time"

	"github.com/Poscom2010/Fleetrack-sub000/internal/domain"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	ListByCompany(ctx context.Context, companyID string) ([]domain.Vehicle, error)
	UpdateMileage(ctx context.Context, id string, mileage int64) error

	// RecordService atomically appends a service record and resets the
	// vehicle's baseline (lastServiceMileage, lastServiceDate) in a single
	// transaction. A reader never observes one without the other.
	RecordService(ctx context.Context, vehicleID string, record *domain.ServiceRecord) error
}

type ServiceRecordRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ServiceRecord, error)
	ListByVehicle(ctx context.Context, vehicleID string) ([]domain.ServiceRecord, error)
}

type AssignmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.VehicleAssignment, error)
	GetActiveByDriver(ctx context.Context, driverID string) (*domain.VehicleAssignment, error)
	GetActiveByVehicle(ctx context.Context, vehicleID string) (*domain.VehicleAssignment, error)
	ListByDriver(ctx context.Context, driverID string) ([]domain.VehicleAssignment, error)
	ListByVehicle(ctx context.Context, vehicleID string) ([]domain.VehicleAssignment, error)
	ListActiveByCompany(ctx context.Context, companyID string) ([]domain.VehicleAssignment, error)

	// Assign closes the driver's and the vehicle's active assignments (if
	// any) and inserts the new active record, all in one transaction. Two
	// racing calls touching the same driver or vehicle serialize: one
	// commits first, the other either serializes after it or fails with
	// domain.ErrConcurrencyConflict.
	Assign(ctx context.Context, assignment *domain.VehicleAssignment) error

	// CloseActiveByDriver closes the driver's active assignment at the given
	// time. Returns the closed record, or domain.ErrNotFound when the driver
	// has no active assignment.
	CloseActiveByDriver(ctx context.Context, driverID string, at time.Time) (*domain.VehicleAssignment, error)
}

type DriverRepository interface {
	Create(ctx context.Context, driver *domain.Driver) error
	GetByID(ctx context.Context, id string) (*domain.Driver, error)
	ListByCompany(ctx context.Context, companyID string) ([]domain.Driver, error)
}
