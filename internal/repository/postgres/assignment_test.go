package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/Poscom2010/Fleetrack-sub000/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentRepository_Assign_ClosesConflictsAndInserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	prevStart := start.Add(-24 * time.Hour)

	mock.ExpectBegin()
	// The driver already holds a vehicle; that row locks and closes.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, start_date FROM vehicle_assignments WHERE driver_id = $1 AND is_active FOR UPDATE`)).
		WithArgs("d1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date"}).AddRow("old-a", prevStart))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE vehicle_assignments SET end_date=$1, is_active=false WHERE id=$2 AND is_active`)).
		WithArgs(start, "old-a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// The vehicle is free.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, start_date FROM vehicle_assignments WHERE vehicle_id = $1 AND is_active FOR UPDATE`)).
		WithArgs("v1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date"}))
	mock.ExpectExec(`INSERT INTO vehicle_assignments`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewAssignmentRepository(db)
	a := &domain.VehicleAssignment{
		CompanyID: "c1",
		VehicleID: "v1",
		DriverID:  "d1",
		StartDate: start,
	}
	require.NoError(t, repo.Assign(context.Background(), a))
	assert.NotEmpty(t, a.ID)
	assert.True(t, a.IsActive)
	assert.Nil(t, a.EndDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A close time earlier than the previous start clamps to the start so the
// closed record keeps endDate >= startDate.
func TestAssignmentRepository_Assign_ClampsEndDateToStart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	prevStart := start.Add(time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, start_date FROM vehicle_assignments WHERE driver_id = $1 AND is_active FOR UPDATE`)).
		WithArgs("d1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date"}).AddRow("old-a", prevStart))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE vehicle_assignments SET end_date=$1, is_active=false WHERE id=$2 AND is_active`)).
		WithArgs(prevStart, "old-a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, start_date FROM vehicle_assignments WHERE vehicle_id = $1 AND is_active FOR UPDATE`)).
		WithArgs("v1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date"}))
	mock.ExpectExec(`INSERT INTO vehicle_assignments`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewAssignmentRepository(db)
	a := &domain.VehicleAssignment{CompanyID: "c1", VehicleID: "v1", DriverID: "d1", StartDate: start}
	require.NoError(t, repo.Assign(context.Background(), a))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_Assign_SerializationFailureMapsToConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, start_date FROM vehicle_assignments WHERE driver_id = $1 AND is_active FOR UPDATE`)).
		WithArgs("d1").
		WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()

	repo := NewAssignmentRepository(db)
	a := &domain.VehicleAssignment{CompanyID: "c1", VehicleID: "v1", DriverID: "d1", StartDate: time.Now().UTC()}
	err = repo.Assign(context.Background(), a)
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_Assign_UniqueIndexMapsToConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, start_date FROM vehicle_assignments WHERE driver_id = $1 AND is_active FOR UPDATE`)).
		WithArgs("d1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date"}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, start_date FROM vehicle_assignments WHERE vehicle_id = $1 AND is_active FOR UPDATE`)).
		WithArgs("v1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date"}))
	mock.ExpectExec(`INSERT INTO vehicle_assignments`).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	repo := NewAssignmentRepository(db)
	a := &domain.VehicleAssignment{CompanyID: "c1", VehicleID: "v1", DriverID: "d1", StartDate: time.Now().UTC()}
	err = repo.Assign(context.Background(), a)
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_CloseActiveByDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	at := start.Add(2 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + assignmentColumns + ` FROM vehicle_assignments WHERE driver_id = $1 AND is_active FOR UPDATE`)).
		WithArgs("d1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "company_id", "vehicle_id", "driver_id", "assigned_by",
			"start_date", "end_date", "is_active", "created_at",
		}).AddRow("a1", "c1", "v1", "d1", "admin", start, nil, true, start))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE vehicle_assignments SET end_date=$1, is_active=false WHERE id=$2 AND is_active`)).
		WithArgs(at, "a1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewAssignmentRepository(db)
	closed, err := repo.CloseActiveByDriver(context.Background(), "d1", at)
	require.NoError(t, err)
	assert.Equal(t, "a1", closed.ID)
	assert.False(t, closed.IsActive)
	require.NotNil(t, closed.EndDate)
	assert.Equal(t, at, *closed.EndDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_CloseActiveByDriver_NoActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM vehicle_assignments WHERE driver_id = \$1 AND is_active FOR UPDATE`).
		WithArgs("d1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	repo := NewAssignmentRepository(db)
	_, err = repo.CloseActiveByDriver(context.Background(), "d1", time.Now().UTC())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_ListByDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t1 := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	t0 := t1.Add(-24 * time.Hour)
	end := t1

	mock.ExpectQuery(`SELECT .+ FROM vehicle_assignments WHERE driver_id = \$1 ORDER BY start_date DESC`).
		WithArgs("d1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "company_id", "vehicle_id", "driver_id", "assigned_by",
			"start_date", "end_date", "is_active", "created_at",
		}).
			AddRow("a2", "c1", "v2", "d1", "admin", t1, nil, true, t1).
			AddRow("a1", "c1", "v1", "d1", "admin", t0, end, false, t0))

	repo := NewAssignmentRepository(db)
	history, err := repo.ListByDriver(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].IsActive)
	assert.False(t, history[1].IsActive)
	require.NotNil(t, history[1].EndDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
