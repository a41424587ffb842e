package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Poscom2010/Fleetrack-sub000/internal/domain"
	"github.com/Poscom2010/Fleetrack-sub000/internal/repository"

	"github.com/google/uuid"
)

type driverRepository struct {
	db *sql.DB
}

func NewDriverRepository(db *sql.DB) repository.DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) Create(ctx context.Context, d *domain.Driver) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.CreatedAt = time.Now().UTC()
	query := `INSERT INTO drivers (id, company_id, name, email, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, d.ID, d.CompanyID, d.Name, d.Email, d.CreatedAt)
	return mapError(err)
}

func (r *driverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	d := &domain.Driver{}
	query := `SELECT id, company_id, name, email, created_at FROM drivers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.CompanyID, &d.Name, &d.Email, &d.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return d, nil
}

func (r *driverRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Driver, error) {
	query := `SELECT id, company_id, name, email, created_at FROM drivers WHERE company_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var drivers []domain.Driver
	for rows.Next() {
		var d domain.Driver
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.Name, &d.Email, &d.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		drivers = append(drivers, d)
	}
	return drivers, mapError(rows.Err())
}
