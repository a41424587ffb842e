package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/Poscom2010/Fleetrack-sub000/internal/domain"
	"github.com/Poscom2010/Fleetrack-sub000/internal/logger"
	"github.com/Poscom2010/Fleetrack-sub000/internal/maintenance"
	"github.com/Poscom2010/Fleetrack-sub000/internal/repository"
)

// serviceRecorder writes service records and resets the vehicle's service
// counter. The append and the baseline reset happen in one repository
// transaction.
type serviceRecorder struct {
	vehicleRepo repository.VehicleRepository
	recordRepo  repository.ServiceRecordRepository
}

func newServiceRecorder(vehicleRepo repository.VehicleRepository, recordRepo repository.ServiceRecordRepository) *serviceRecorder {
	return &serviceRecorder{vehicleRepo: vehicleRepo, recordRepo: recordRepo}
}

func (s *serviceRecorder) RecordService(ctx context.Context, vehicleID string, details domain.ServiceDetails) (string, error) {
	if vehicleID == "" {
		return "", fmt.Errorf("vehicle id is required: %w", domain.ErrInvalidInput)
	}
	if details.Mileage <= 0 {
		return "", fmt.Errorf("service mileage must be positive, got %d: %w", details.Mileage, domain.ErrInvalidInput)
	}
	if details.Date.IsZero() {
		return "", fmt.Errorf("service date is required: %w", domain.ErrInvalidInput)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return "", err
	}

	// A service recorded below the current odometer reading is tolerated
	// (late data entry), only logged. Below the previous baseline it is
	// rejected by the repository transaction.
	if details.Mileage < vehicle.CurrentMileage {
		logger.Warn("Service recorded below current mileage",
			"vehicle_id", vehicleID,
			"service_mileage", details.Mileage,
			"current_mileage", vehicle.CurrentMileage)
	}

	record := &domain.ServiceRecord{
		VehicleID:        vehicleID,
		MileageAtService: details.Mileage,
		ServiceType:      details.ServiceType,
		CostCents:        details.CostCents,
		PerformedBy:      details.PerformedBy,
		Date:             details.Date,
		Notes:            details.Notes,
	}
	if record.ServiceType == "" {
		record.ServiceType = domain.ServiceTypeRoutine
	}

	if err := s.vehicleRepo.RecordService(ctx, vehicleID, record); err != nil {
		return "", err
	}

	logger.Info("Service recorded", "vehicle_id", vehicleID,
		"record_id", record.ID, "mileage", record.MileageAtService)
	return record.ID, nil
}

func (s *serviceRecorder) Status(ctx context.Context, vehicleID string) (*maintenance.Status, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	st := maintenance.ComputeStatus(vehicle.CurrentMileage, vehicle.LastServiceMileage, vehicle.ServiceIntervalKm)
	return &st, nil
}

func (s *serviceRecorder) History(ctx context.Context, vehicleID string) ([]domain.ServiceRecord, error) {
	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	return s.recordRepo.ListByVehicle(ctx, vehicleID)
}

// Due lists the company's vehicles with IsDue status, most urgent first.
func (s *serviceRecorder) Due(ctx context.Context, companyID string) ([]VehicleStatus, error) {
	vehicles, err := s.vehicleRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	var due []VehicleStatus
	for _, v := range vehicles {
		st := maintenance.ComputeStatus(v.CurrentMileage, v.LastServiceMileage, v.ServiceIntervalKm)
		if st.IsDue {
			due = append(due, VehicleStatus{Vehicle: v, Status: st})
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].Status.Urgency != due[j].Status.Urgency {
			return due[i].Status.Urgency > due[j].Status.Urgency
		}
		return due[i].Status.RemainingKm < due[j].Status.RemainingKm
	})
	return due, nil
}
