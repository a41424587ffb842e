package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Poscom2010/Fleetrack-sub000/internal/domain"
	"github.com/Poscom2010/Fleetrack-sub000/internal/repository"

	"github.com/google/uuid"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, company_id, registration, make, model, current_mileage, last_service_mileage, last_service_date, service_interval_km, created_at, updated_at`

func scanVehicle(row interface{ Scan(...interface{}) error }) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := row.Scan(&v.ID, &v.CompanyID, &v.Registration, &v.Make, &v.Model,
		&v.CurrentMileage, &v.LastServiceMileage, &v.LastServiceDate,
		&v.ServiceIntervalKm, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return v, nil
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.ServiceIntervalKm == 0 {
		v.ServiceIntervalKm = domain.DefaultServiceIntervalKm
	}
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now

	query := `INSERT INTO vehicles (` + vehicleColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query, v.ID, v.CompanyID, v.Registration, v.Make, v.Model,
		v.CurrentMileage, v.LastServiceMileage, v.LastServiceDate, v.ServiceIntervalKm,
		v.CreatedAt, v.UpdatedAt)
	return mapError(err)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return scanVehicle(r.db.QueryRowContext(ctx, query, id))
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET registration=$1, make=$2, model=$3, current_mileage=$4,
	          last_service_mileage=$5, last_service_date=$6, service_interval_km=$7, updated_at=$8
	          WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query, v.Registration, v.Make, v.Model, v.CurrentMileage,
		v.LastServiceMileage, v.LastServiceDate, v.ServiceIntervalKm, time.Now().UTC(), v.ID)
	if err != nil {
		return mapError(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if rows == 0 {
		return fmt.Errorf("vehicle %s: %w", v.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *vehicleRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE company_id = $1 ORDER BY registration`
	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, mapError(rows.Err())
}

func (r *vehicleRepository) UpdateMileage(ctx context.Context, id string, mileage int64) error {
	query := `UPDATE vehicles SET current_mileage=$1, updated_at=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, mileage, time.Now().UTC(), id)
	if err != nil {
		return mapError(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if rows == 0 {
		return fmt.Errorf("vehicle %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// RecordService appends the service record and resets the vehicle baseline
// in one transaction. The vehicle row is locked first so concurrent service
// recordings against the same vehicle serialize.
func (r *vehicleRepository) RecordService(ctx context.Context, vehicleID string, rec *domain.ServiceRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err)
	}
	defer tx.Rollback()

	var lastServiceMileage int64
	lockQuery := `SELECT last_service_mileage FROM vehicles WHERE id = $1 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, lockQuery, vehicleID).Scan(&lastServiceMileage); err != nil {
		return mapError(err)
	}
	if rec.MileageAtService < lastServiceMileage {
		return fmt.Errorf("service mileage %d below baseline %d: %w",
			rec.MileageAtService, lastServiceMileage, domain.ErrInvariantViolation)
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.VehicleID = vehicleID
	rec.CreatedAt = time.Now().UTC()

	insert := `INSERT INTO service_records (id, vehicle_id, mileage_at_service, service_type, cost_cents, performed_by, date, notes, created_at)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := tx.ExecContext(ctx, insert, rec.ID, rec.VehicleID, rec.MileageAtService,
		rec.ServiceType, rec.CostCents, rec.PerformedBy, rec.Date, rec.Notes, rec.CreatedAt); err != nil {
		return mapError(err)
	}

	update := `UPDATE vehicles SET last_service_mileage=$1, last_service_date=$2, updated_at=$3 WHERE id=$4`
	if _, err := tx.ExecContext(ctx, update, rec.MileageAtService, rec.Date, rec.CreatedAt, vehicleID); err != nil {
		return mapError(err)
	}

	return mapError(tx.Commit())
}
