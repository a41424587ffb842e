// Package maintenance computes service-due status from odometer scalars.
// It is the single source of truth for the status bands and booleans the
// UI, alerts and batch queries all share.
package maintenance

// Band is the coarse service-due classification of a vehicle.
type Band string

const (
	BandNotConfigured Band = "NOT_CONFIGURED"
	BandOk            Band = "OK"
	BandApproaching   Band = "APPROACHING"
	BandWarning       Band = "WARNING"
	BandCritical      Band = "CRITICAL"
	BandOverdue       Band = "OVERDUE"
)

// Band boundaries in km remaining until the next service.
const (
	criticalWithinKm    = 500
	warningWithinKm     = 1000
	approachingWithinKm = 2000
)

// Status is the derived service state of a vehicle. It is recomputed on
// every read from the three stored scalars and never persisted.
type Status struct {
	Band         Band    `json:"band"`
	SinceService int64   `json:"since_service_km"`
	RemainingKm  int64   `json:"remaining_km"`
	PercentUsed  float64 `json:"percent_used"`
	Urgency      float64 `json:"urgency"`

	// The three booleans are the contract other components rely on. They
	// are derived from RemainingKm only, so the bands above can be retuned
	// without changing them: due within 1000 km, critical within 500,
	// overdue at or past zero.
	IsDue      bool `json:"is_due"`
	IsCritical bool `json:"is_critical"`
	IsOverdue  bool `json:"is_overdue"`
}

// ComputeStatus derives the service status from the current odometer
// reading, the baseline recorded at the last service, and the service
// interval. A zero or negative interval yields BandNotConfigured.
//
// Pure and deterministic; safe to call concurrently. The caller is
// responsible for the monotonicity invariant (last <= current); the
// calculator only computes off it.
func ComputeStatus(currentMileage, lastServiceMileage, intervalKm int64) Status {
	if intervalKm <= 0 {
		return Status{Band: BandNotConfigured}
	}

	since := currentMileage - lastServiceMileage
	remaining := intervalKm - since

	pct := float64(since) * 100 / float64(intervalKm)
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	st := Status{
		SinceService: since,
		RemainingKm:  remaining,
		PercentUsed:  pct,
		IsDue:        remaining <= warningWithinKm,
		IsCritical:   remaining <= criticalWithinKm,
		IsOverdue:    remaining <= 0,
	}

	switch {
	case remaining <= 0:
		st.Band = BandOverdue
		st.Urgency = 100
	case remaining <= criticalWithinKm:
		st.Band = BandCritical
		st.Urgency = 90
	case remaining <= warningWithinKm:
		st.Band = BandWarning
		st.Urgency = 70
	case remaining <= approachingWithinKm:
		st.Band = BandApproaching
		st.Urgency = 40
	default:
		st.Band = BandOk
		st.Urgency = pct - 50
		if st.Urgency < 0 {
			st.Urgency = 0
		}
	}

	return st
}
