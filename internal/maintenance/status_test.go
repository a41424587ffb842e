package maintenance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatus_Bands(t *testing.T) {
	tests := []struct {
		name      string
		current   int64
		last      int64
		interval  int64
		band      Band
		remaining int64
		urgency   float64
	}{
		{"fresh after service", 10000, 10000, 5000, BandOk, 5000, 0},
		{"half way", 12500, 10000, 5000, BandOk, 2500, 0},
		{"just past half", 12600, 10000, 5000, BandOk, 2400, 2},
		{"approaching boundary", 13000, 10000, 5000, BandApproaching, 2000, 40},
		{"warning boundary", 14000, 10000, 5000, BandWarning, 1000, 70},
		{"critical", 14600, 10000, 5000, BandCritical, 400, 90},
		{"critical boundary", 14500, 10000, 5000, BandCritical, 500, 90},
		{"due exactly", 15000, 10000, 5000, BandOverdue, 0, 100},
		{"overdue", 15500, 10000, 5000, BandOverdue, -500, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := ComputeStatus(tt.current, tt.last, tt.interval)
			assert.Equal(t, tt.band, st.Band)
			assert.Equal(t, tt.remaining, st.RemainingKm)
			assert.Equal(t, tt.urgency, st.Urgency)
		})
	}
}

func TestComputeStatus_CriticalScenario(t *testing.T) {
	// interval=5000, last=10000, current=14600
	st := ComputeStatus(14600, 10000, 5000)

	assert.Equal(t, BandCritical, st.Band)
	assert.Equal(t, int64(4600), st.SinceService)
	assert.Equal(t, int64(400), st.RemainingKm)
	assert.True(t, st.IsDue)
	assert.True(t, st.IsCritical)
	assert.False(t, st.IsOverdue)
}

func TestComputeStatus_OverdueScenario(t *testing.T) {
	// interval=5000, last=10000, current=15500
	st := ComputeStatus(15500, 10000, 5000)

	assert.Equal(t, BandOverdue, st.Band)
	assert.Equal(t, int64(-500), st.RemainingKm)
	assert.True(t, st.IsOverdue)
	assert.True(t, st.IsCritical)
	assert.True(t, st.IsDue)
	assert.Equal(t, float64(100), st.Urgency)
	assert.Equal(t, float64(100), st.PercentUsed)
}

func TestComputeStatus_NotConfigured(t *testing.T) {
	t.Run("Zero interval", func(t *testing.T) {
		st := ComputeStatus(12000, 10000, 0)
		assert.Equal(t, BandNotConfigured, st.Band)
		assert.False(t, st.IsDue)
	})

	t.Run("Negative interval", func(t *testing.T) {
		st := ComputeStatus(12000, 10000, -1)
		assert.Equal(t, BandNotConfigured, st.Band)
	})
}

// The booleans must stay nested (overdue implies critical implies due) for
// every input, regardless of how the display bands get retuned.
func TestComputeStatus_BooleansAreNested(t *testing.T) {
	for current := int64(10000); current <= 16500; current += 37 {
		st := ComputeStatus(current, 10000, 5000)
		if st.IsOverdue {
			assert.True(t, st.IsCritical, "overdue at %d must be critical", current)
		}
		if st.IsCritical {
			assert.True(t, st.IsDue, "critical at %d must be due", current)
		}
	}
}

func TestComputeStatus_Deterministic(t *testing.T) {
	a := ComputeStatus(14321, 9876, 5000)
	b := ComputeStatus(14321, 9876, 5000)
	assert.Equal(t, a, b)
}

func TestComputeStatus_PercentUsedClamped(t *testing.T) {
	t.Run("Below zero", func(t *testing.T) {
		// Baseline above current only happens on bad data; the calculator
		// still clamps rather than returning a negative percentage.
		st := ComputeStatus(9000, 10000, 5000)
		assert.Equal(t, float64(0), st.PercentUsed)
	})

	t.Run("Above hundred", func(t *testing.T) {
		st := ComputeStatus(20000, 10000, 5000)
		assert.Equal(t, float64(100), st.PercentUsed)
	})
}
