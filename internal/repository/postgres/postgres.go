package postgres

import (
	"database/sql"

	"github.com/Poscom2010/Fleetrack-sub000/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.VehicleRepository
	repository.ServiceRecordRepository
	repository.AssignmentRepository
	repository.DriverRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		VehicleRepository:       NewVehicleRepository(db),
		ServiceRecordRepository: NewServiceRecordRepository(db),
		AssignmentRepository:    NewAssignmentRepository(db),
		DriverRepository:        NewDriverRepository(db),
	}
}
