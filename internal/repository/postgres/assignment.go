package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Poscom2010/Fleetrack-sub000/internal/domain"
	"github.com/Poscom2010/Fleetrack-sub000/internal/repository"

	"github.com/google/uuid"
)

type assignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) repository.AssignmentRepository {
	return &assignmentRepository{db: db}
}

const assignmentColumns = `id, company_id, vehicle_id, driver_id, assigned_by, start_date, end_date, is_active, created_at`

func scanAssignment(row interface{ Scan(...interface{}) error }) (*domain.VehicleAssignment, error) {
	a := &domain.VehicleAssignment{}
	err := row.Scan(&a.ID, &a.CompanyID, &a.VehicleID, &a.DriverID, &a.AssignedBy,
		&a.StartDate, &a.EndDate, &a.IsActive, &a.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (*domain.VehicleAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM vehicle_assignments WHERE id = $1`
	return scanAssignment(r.db.QueryRowContext(ctx, query, id))
}

func (r *assignmentRepository) GetActiveByDriver(ctx context.Context, driverID string) (*domain.VehicleAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM vehicle_assignments WHERE driver_id = $1 AND is_active`
	return scanAssignment(r.db.QueryRowContext(ctx, query, driverID))
}

func (r *assignmentRepository) GetActiveByVehicle(ctx context.Context, vehicleID string) (*domain.VehicleAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM vehicle_assignments WHERE vehicle_id = $1 AND is_active`
	return scanAssignment(r.db.QueryRowContext(ctx, query, vehicleID))
}

func (r *assignmentRepository) ListByDriver(ctx context.Context, driverID string) ([]domain.VehicleAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM vehicle_assignments WHERE driver_id = $1 ORDER BY start_date DESC, created_at DESC`
	return r.list(ctx, query, driverID)
}

func (r *assignmentRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]domain.VehicleAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM vehicle_assignments WHERE vehicle_id = $1 ORDER BY start_date DESC, created_at DESC`
	return r.list(ctx, query, vehicleID)
}

func (r *assignmentRepository) ListActiveByCompany(ctx context.Context, companyID string) ([]domain.VehicleAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM vehicle_assignments WHERE company_id = $1 AND is_active ORDER BY start_date DESC`
	return r.list(ctx, query, companyID)
}

func (r *assignmentRepository) list(ctx context.Context, query string, arg interface{}) ([]domain.VehicleAssignment, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var assignments []domain.VehicleAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}
	return assignments, mapError(rows.Err())
}

// Assign closes any active assignment held by the driver or the vehicle and
// inserts the new active record, all under one transaction. The active rows
// are locked with FOR UPDATE so a racing assign for the same driver or
// vehicle blocks until this one commits; if Postgres detects a deadlock or
// the partial unique index trips, the error maps to ErrConcurrencyConflict
// and the coordinator retries.
func (r *assignmentRepository) Assign(ctx context.Context, a *domain.VehicleAssignment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err)
	}
	defer tx.Rollback()

	now := a.StartDate
	if err := closeActiveLocked(ctx, tx, "driver_id", a.DriverID, now); err != nil {
		return err
	}
	if err := closeActiveLocked(ctx, tx, "vehicle_id", a.VehicleID, now); err != nil {
		return err
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.IsActive = true
	a.EndDate = nil
	a.CreatedAt = time.Now().UTC()

	insert := `INSERT INTO vehicle_assignments (` + assignmentColumns + `)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := tx.ExecContext(ctx, insert, a.ID, a.CompanyID, a.VehicleID, a.DriverID,
		a.AssignedBy, a.StartDate, nil, true, a.CreatedAt); err != nil {
		return mapError(err)
	}

	return mapError(tx.Commit())
}

// closeActiveLocked locks and closes the single active assignment matching
// column = value, if one exists.
func closeActiveLocked(ctx context.Context, tx *sql.Tx, column, value string, at time.Time) error {
	var id string
	var startDate time.Time
	lock := fmt.Sprintf(`SELECT id, start_date FROM vehicle_assignments WHERE %s = $1 AND is_active FOR UPDATE`, column)
	err := tx.QueryRowContext(ctx, lock, value).Scan(&id, &startDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return mapError(err)
	}

	if at.Before(startDate) {
		at = startDate
	}
	update := `UPDATE vehicle_assignments SET end_date=$1, is_active=false WHERE id=$2 AND is_active`
	if _, err := tx.ExecContext(ctx, update, at, id); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *assignmentRepository) CloseActiveByDriver(ctx context.Context, driverID string, at time.Time) (*domain.VehicleAssignment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, mapError(err)
	}
	defer tx.Rollback()

	lock := `SELECT ` + assignmentColumns + ` FROM vehicle_assignments WHERE driver_id = $1 AND is_active FOR UPDATE`
	a, err := scanAssignment(tx.QueryRowContext(ctx, lock, driverID))
	if err != nil {
		return nil, err
	}

	a.Close(at)
	update := `UPDATE vehicle_assignments SET end_date=$1, is_active=false WHERE id=$2 AND is_active`
	if _, err := tx.ExecContext(ctx, update, a.EndDate, a.ID); err != nil {
		return nil, mapError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, mapError(err)
	}
	return a, nil
}
