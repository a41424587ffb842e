package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Poscom2010/Fleetrack-sub000/internal/domain"

	"github.com/google/uuid"
)

type assignmentRepo struct{ *core }

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*domain.VehicleAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.assignments[id]
	if !ok {
		return nil, fmt.Errorf("assignment %s: %w", id, domain.ErrNotFound)
	}
	cp := *a
	return &cp, nil
}

func (r *assignmentRepo) GetActiveByDriver(ctx context.Context, driverID string) (*domain.VehicleAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a := r.activeByDriverLocked(driverID); a != nil {
		cp := *a
		return &cp, nil
	}
	return nil, fmt.Errorf("active assignment for driver %s: %w", driverID, domain.ErrNotFound)
}

func (r *assignmentRepo) GetActiveByVehicle(ctx context.Context, vehicleID string) (*domain.VehicleAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a := r.activeByVehicleLocked(vehicleID); a != nil {
		cp := *a
		return &cp, nil
	}
	return nil, fmt.Errorf("active assignment for vehicle %s: %w", vehicleID, domain.ErrNotFound)
}

func (r *assignmentRepo) ListByDriver(ctx context.Context, driverID string) ([]domain.VehicleAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.VehicleAssignment
	for _, a := range r.assignments {
		if a.DriverID == driverID {
			out = append(out, *a)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *assignmentRepo) ListByVehicle(ctx context.Context, vehicleID string) ([]domain.VehicleAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.VehicleAssignment
	for _, a := range r.assignments {
		if a.VehicleID == vehicleID {
			out = append(out, *a)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *assignmentRepo) ListActiveByCompany(ctx context.Context, companyID string) ([]domain.VehicleAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.VehicleAssignment
	for _, a := range r.assignments {
		if a.CompanyID == companyID && a.IsActive {
			out = append(out, *a)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// Assign closes the driver's and vehicle's active assignments and inserts
// the new record while holding the store lock for the whole sequence, so
// racing assigns serialize fully.
func (r *assignmentRepo) Assign(ctx context.Context, a *domain.VehicleAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev := r.activeByDriverLocked(a.DriverID); prev != nil {
		prev.Close(a.StartDate)
	}
	if prev := r.activeByVehicleLocked(a.VehicleID); prev != nil {
		prev.Close(a.StartDate)
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.IsActive = true
	a.EndDate = nil
	a.CreatedAt = time.Now().UTC()

	cp := *a
	r.assignments[a.ID] = &cp
	return nil
}

func (r *assignmentRepo) CloseActiveByDriver(ctx context.Context, driverID string, at time.Time) (*domain.VehicleAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := r.activeByDriverLocked(driverID)
	if a == nil {
		return nil, fmt.Errorf("active assignment for driver %s: %w", driverID, domain.ErrNotFound)
	}
	a.Close(at)
	cp := *a
	return &cp, nil
}

func (r *assignmentRepo) activeByDriverLocked(driverID string) *domain.VehicleAssignment {
	for _, a := range r.assignments {
		if a.DriverID == driverID && a.IsActive {
			return a
		}
	}
	return nil
}

func (r *assignmentRepo) activeByVehicleLocked(vehicleID string) *domain.VehicleAssignment {
	for _, a := range r.assignments {
		if a.VehicleID == vehicleID && a.IsActive {
			return a
		}
	}
	return nil
}

func sortNewestFirst(assignments []domain.VehicleAssignment) {
	sort.Slice(assignments, func(i, j int) bool {
		if !assignments[i].StartDate.Equal(assignments[j].StartDate) {
			return assignments[i].StartDate.After(assignments[j].StartDate)
		}
		return assignments[i].CreatedAt.After(assignments[j].CreatedAt)
	})
}
