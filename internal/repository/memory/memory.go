// Package memory implements the repository interfaces on in-process maps.
// It backs unit and property tests and the store.type "memory" dev mode.
// A single store-wide mutex serializes mutations, which subsumes the
// per-company serialization the assignment invariants need.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Poscom2010/Fleetrack-sub000/internal/domain"
	"github.com/Poscom2010/Fleetrack-sub000/internal/repository"

	"github.com/google/uuid"
)

// core is the shared state behind the per-entity repositories.
type core struct {
	mu          sync.RWMutex
	vehicles    map[string]*domain.Vehicle
	drivers     map[string]*domain.Driver
	records     map[string]*domain.ServiceRecord
	assignments map[string]*domain.VehicleAssignment
}

type Store struct {
	repository.VehicleRepository
	repository.ServiceRecordRepository
	repository.AssignmentRepository
	repository.DriverRepository
}

func NewStore() *Store {
	c := &core{
		vehicles:    make(map[string]*domain.Vehicle),
		drivers:     make(map[string]*domain.Driver),
		records:     make(map[string]*domain.ServiceRecord),
		assignments: make(map[string]*domain.VehicleAssignment),
	}
	return &Store{
		VehicleRepository:       &vehicleRepo{c},
		ServiceRecordRepository: &serviceRecordRepo{c},
		AssignmentRepository:    &assignmentRepo{c},
		DriverRepository:        &driverRepo{c},
	}
}

type vehicleRepo struct{ *core }

func (r *vehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.ServiceIntervalKm == 0 {
		v.ServiceIntervalKm = domain.DefaultServiceIntervalKm
	}
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now

	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *vehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vehicles[id]
	if !ok {
		return nil, fmt.Errorf("vehicle %s: %w", id, domain.ErrNotFound)
	}
	cp := *v
	return &cp, nil
}

func (r *vehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vehicles[v.ID]; !ok {
		return fmt.Errorf("vehicle %s: %w", v.ID, domain.ErrNotFound)
	}
	v.UpdatedAt = time.Now().UTC()
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *vehicleRepo) ListByCompany(ctx context.Context, companyID string) ([]domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var vehicles []domain.Vehicle
	for _, v := range r.vehicles {
		if v.CompanyID == companyID {
			vehicles = append(vehicles, *v)
		}
	}
	sort.Slice(vehicles, func(i, j int) bool { return vehicles[i].Registration < vehicles[j].Registration })
	return vehicles, nil
}

func (r *vehicleRepo) UpdateMileage(ctx context.Context, id string, mileage int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vehicles[id]
	if !ok {
		return fmt.Errorf("vehicle %s: %w", id, domain.ErrNotFound)
	}
	v.CurrentMileage = mileage
	v.UpdatedAt = time.Now().UTC()
	return nil
}

// RecordService appends the record and resets the baseline under one lock
// acquisition, so no reader ever sees one half of the write.
func (r *vehicleRepo) RecordService(ctx context.Context, vehicleID string, rec *domain.ServiceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vehicles[vehicleID]
	if !ok {
		return fmt.Errorf("vehicle %s: %w", vehicleID, domain.ErrNotFound)
	}
	if rec.MileageAtService < v.LastServiceMileage {
		return fmt.Errorf("service mileage %d below baseline %d: %w",
			rec.MileageAtService, v.LastServiceMileage, domain.ErrInvariantViolation)
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.VehicleID = vehicleID
	rec.CreatedAt = time.Now().UTC()

	cp := *rec
	r.records[rec.ID] = &cp

	v.LastServiceMileage = rec.MileageAtService
	d := rec.Date
	v.LastServiceDate = &d
	v.UpdatedAt = rec.CreatedAt
	return nil
}

type serviceRecordRepo struct{ *core }

func (r *serviceRecordRepo) GetByID(ctx context.Context, id string) (*domain.ServiceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("service record %s: %w", id, domain.ErrNotFound)
	}
	cp := *rec
	return &cp, nil
}

func (r *serviceRecordRepo) ListByVehicle(ctx context.Context, vehicleID string) ([]domain.ServiceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []domain.ServiceRecord
	for _, rec := range r.records {
		if rec.VehicleID == vehicleID {
			records = append(records, *rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

type driverRepo struct{ *core }

func (r *driverRepo) Create(ctx context.Context, d *domain.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.CreatedAt = time.Now().UTC()
	cp := *d
	r.drivers[d.ID] = &cp
	return nil
}

func (r *driverRepo) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.drivers[id]
	if !ok {
		return nil, fmt.Errorf("driver %s: %w", id, domain.ErrNotFound)
	}
	cp := *d
	return &cp, nil
}

func (r *driverRepo) ListByCompany(ctx context.Context, companyID string) ([]domain.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var drivers []domain.Driver
	for _, d := range r.drivers {
		if d.CompanyID == companyID {
			drivers = append(drivers, *d)
		}
	}
	sort.Slice(drivers, func(i, j int) bool { return drivers[i].Name < drivers[j].Name })
	return drivers, nil
}
