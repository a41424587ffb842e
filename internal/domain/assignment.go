package domain

import "time"

// VehicleAssignment links one driver to one vehicle within a company for a
// bounded period. A record is created active (EndDate nil) and closed by
// setting EndDate. Closed records never reopen; reassignment always creates
// a new record. The full set of records is the audit trail of who drove
// what, and when.
//
// Invariants, across all records of a company:
//   - at most one active assignment per driver
//   - at most one active assignment per vehicle
//   - EndDate, once set, is >= StartDate
type VehicleAssignment struct {
	ID         string     `json:"id"`
	CompanyID  string     `json:"company_id"`
	VehicleID  string     `json:"vehicle_id"`
	DriverID   string     `json:"driver_id"`
	AssignedBy string     `json:"assigned_by"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Close marks the assignment ended at the given time. Closing an already
// closed record is a no-op.
func (a *VehicleAssignment) Close(at time.Time) {
	if !a.IsActive {
		return
	}
	if at.Before(a.StartDate) {
		at = a.StartDate
	}
	a.EndDate = &at
	a.IsActive = false
}
