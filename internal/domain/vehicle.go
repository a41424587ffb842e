package domain

import "time"

// Vehicle is a company-owned vehicle tracked by odometer readings.
// CurrentMileage is the latest operator-entered reading; LastServiceMileage
// is the counter baseline set by the service recorder. Mileage is monotonic:
// a reading below the baseline is a data-entry error, not a reset.
type Vehicle struct {
	ID                 string     `json:"id"`
	CompanyID          string     `json:"company_id"`
	Registration       string     `json:"registration"`
	Make               string     `json:"make"`
	Model              string     `json:"model"`
	CurrentMileage     int64      `json:"current_mileage"`
	LastServiceMileage int64      `json:"last_service_mileage"`
	LastServiceDate    *time.Time `json:"last_service_date,omitempty"`
	ServiceIntervalKm  int64      `json:"service_interval_km"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// DefaultServiceIntervalKm applies when a vehicle is created without an
// explicit interval.
const DefaultServiceIntervalKm = 5000
