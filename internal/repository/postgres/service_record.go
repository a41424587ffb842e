package postgres

import (
	"context"
	"database/sql"

	"github.com/Poscom2010/Fleetrack-sub000/internal/domain"
	"github.com/Poscom2010/Fleetrack-sub000/internal/repository"
)

type serviceRecordRepository struct {
	db *sql.DB
}

func NewServiceRecordRepository(db *sql.DB) repository.ServiceRecordRepository {
	return &serviceRecordRepository{db: db}
}

const serviceRecordColumns = `id, vehicle_id, mileage_at_service, service_type, cost_cents, performed_by, date, notes, created_at`

func (r *serviceRecordRepository) GetByID(ctx context.Context, id string) (*domain.ServiceRecord, error) {
	rec := &domain.ServiceRecord{}
	query := `SELECT ` + serviceRecordColumns + ` FROM service_records WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rec.ID, &rec.VehicleID, &rec.MileageAtService,
		&rec.ServiceType, &rec.CostCents, &rec.PerformedBy, &rec.Date, &rec.Notes, &rec.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return rec, nil
}

func (r *serviceRecordRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]domain.ServiceRecord, error) {
	query := `SELECT ` + serviceRecordColumns + ` FROM service_records WHERE vehicle_id = $1 ORDER BY date DESC, created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var records []domain.ServiceRecord
	for rows.Next() {
		var rec domain.ServiceRecord
		if err := rows.Scan(&rec.ID, &rec.VehicleID, &rec.MileageAtService, &rec.ServiceType,
			&rec.CostCents, &rec.PerformedBy, &rec.Date, &rec.Notes, &rec.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		records = append(records, rec)
	}
	return records, mapError(rows.Err())
}
