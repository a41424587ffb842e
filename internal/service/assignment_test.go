package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/Poscom2010/Fleetrack-sub000/internal/domain"
	"github.com/Poscom2010/Fleetrack-sub000/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFleet(t *testing.T) (FleetService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewFleetService(
		store.VehicleRepository,
		store.ServiceRecordRepository,
		store.AssignmentRepository,
		store.DriverRepository,
	)
	return svc, store
}

func seedVehicle(t *testing.T, store *memory.Store, companyID, registration string) string {
	t.Helper()
	v := &domain.Vehicle{CompanyID: companyID, Registration: registration, ServiceIntervalKm: 5000}
	require.NoError(t, store.VehicleRepository.Create(context.Background(), v))
	return v.ID
}

func seedDriver(t *testing.T, store *memory.Store, companyID, name string) string {
	t.Helper()
	d := &domain.Driver{CompanyID: companyID, Name: name}
	require.NoError(t, store.DriverRepository.Create(context.Background(), d))
	return d.ID
}

func TestAssignVehicle_ReassignVehicleToNewDriver(t *testing.T) {
	svc, store := newTestFleet(t)
	ctx := context.Background()

	v1 := seedVehicle(t, store, "c1", "ABC-001")
	d1 := seedDriver(t, store, "c1", "Alice")
	d2 := seedDriver(t, store, "c1", "Bob")

	// assign(V1, D1) then assign(V1, D2): D1's record closes, D2 holds V1.
	_, err := svc.AssignVehicle(ctx, "c1", v1, d1, "admin")
	require.NoError(t, err)
	_, err = svc.AssignVehicle(ctx, "c1", v1, d2, "admin")
	require.NoError(t, err)

	current, err := svc.CurrentAssignmentForVehicle(ctx, v1)
	require.NoError(t, err)
	assert.Equal(t, d2, current.DriverID)
	assert.True(t, current.IsActive)

	_, err = svc.CurrentAssignmentForDriver(ctx, d1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	history, err := svc.AssignmentHistory(ctx, d1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].IsActive)
	require.NotNil(t, history[0].EndDate)
	assert.False(t, history[0].EndDate.Before(history[0].StartDate))
}

func TestAssignVehicle_MoveDriverToNewVehicle(t *testing.T) {
	svc, store := newTestFleet(t)
	ctx := context.Background()

	v1 := seedVehicle(t, store, "c1", "ABC-001")
	v2 := seedVehicle(t, store, "c1", "ABC-002")
	d1 := seedDriver(t, store, "c1", "Alice")

	// assign(V1, D1) then assign(V2, D1): V1 frees up, D1 drives V2.
	_, err := svc.AssignVehicle(ctx, "c1", v1, d1, "admin")
	require.NoError(t, err)
	_, err = svc.AssignVehicle(ctx, "c1", v2, d1, "admin")
	require.NoError(t, err)

	current, err := svc.CurrentAssignmentForDriver(ctx, d1)
	require.NoError(t, err)
	assert.Equal(t, v2, current.VehicleID)

	_, err = svc.CurrentAssignmentForVehicle(ctx, v1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	history, err := svc.AssignmentHistory(ctx, d1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	// Newest first
	assert.Equal(t, v2, history[0].VehicleID)
	assert.True(t, history[0].IsActive)
	assert.Equal(t, v1, history[1].VehicleID)
	assert.False(t, history[1].IsActive)
}

func TestAssignVehicle_Validation(t *testing.T) {
	svc, store := newTestFleet(t)
	ctx := context.Background()

	v1 := seedVehicle(t, store, "c1", "ABC-001")
	d1 := seedDriver(t, store, "c1", "Alice")

	t.Run("Missing ids", func(t *testing.T) {
		_, err := svc.AssignVehicle(ctx, "c1", "", d1, "admin")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Unknown vehicle", func(t *testing.T) {
		_, err := svc.AssignVehicle(ctx, "c1", "no-such-vehicle", d1, "admin")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Unknown driver", func(t *testing.T) {
		_, err := svc.AssignVehicle(ctx, "c1", v1, "no-such-driver", "admin")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUnassignDriver_Idempotent(t *testing.T) {
	svc, store := newTestFleet(t)
	ctx := context.Background()

	v1 := seedVehicle(t, store, "c1", "ABC-001")
	d1 := seedDriver(t, store, "c1", "Alice")

	_, err := svc.AssignVehicle(ctx, "c1", v1, d1, "admin")
	require.NoError(t, err)

	require.NoError(t, svc.UnassignDriver(ctx, d1))

	// Second unassign is a no-op, not an error, and adds no record.
	require.NoError(t, svc.UnassignDriver(ctx, d1))

	history, err := svc.AssignmentHistory(ctx, d1)
	require.NoError(t, err)
	assert.Len(t, history, 1)
	assert.False(t, history[0].IsActive)
}

// After any sequence of assigns and unassigns, no driver and no vehicle may
// hold more than one active assignment, and closed records never reopen.
func TestAssignments_InvariantUnderRandomInterleaving(t *testing.T) {
	svc, store := newTestFleet(t)
	ctx := context.Background()

	const companyID = "c1"
	rng := rand.New(rand.NewSource(42))

	var vehicles, drivers []string
	for i := 0; i < 5; i++ {
		vehicles = append(vehicles, seedVehicle(t, store, companyID, fmt.Sprintf("V-%03d", i)))
		drivers = append(drivers, seedDriver(t, store, companyID, fmt.Sprintf("Driver %d", i)))
	}

	for i := 0; i < 500; i++ {
		if rng.Intn(4) == 0 {
			err := svc.UnassignDriver(ctx, drivers[rng.Intn(len(drivers))])
			require.NoError(t, err)
		} else {
			v := vehicles[rng.Intn(len(vehicles))]
			d := drivers[rng.Intn(len(drivers))]
			_, err := svc.AssignVehicle(ctx, companyID, v, d, "admin")
			require.NoError(t, err)
		}
	}

	activeByDriver := map[string]int{}
	activeByVehicle := map[string]int{}
	for _, d := range drivers {
		history, err := svc.AssignmentHistory(ctx, d)
		require.NoError(t, err)
		for _, a := range history {
			if a.IsActive {
				assert.Nil(t, a.EndDate)
				activeByDriver[a.DriverID]++
				activeByVehicle[a.VehicleID]++
			} else {
				require.NotNil(t, a.EndDate)
				assert.False(t, a.EndDate.Before(a.StartDate))
			}
		}
	}
	for d, n := range activeByDriver {
		assert.LessOrEqual(t, n, 1, "driver %s has %d active assignments", d, n)
	}
	for v, n := range activeByVehicle {
		assert.LessOrEqual(t, n, 1, "vehicle %s has %d active assignments", v, n)
	}

	// The company-wide active view agrees with the per-driver view.
	active, err := svc.ActiveAssignments(ctx, companyID)
	require.NoError(t, err)
	assert.Len(t, active, len(activeByDriver))
}

// Two concurrent assigns for the same vehicle must leave exactly one driver
// holding it.
func TestAssignVehicle_ConcurrentAssignsSameVehicle(t *testing.T) {
	svc, store := newTestFleet(t)
	ctx := context.Background()

	v1 := seedVehicle(t, store, "c1", "ABC-001")
	d1 := seedDriver(t, store, "c1", "Alice")
	d2 := seedDriver(t, store, "c1", "Bob")

	var wg sync.WaitGroup
	for _, d := range []string{d1, d2} {
		wg.Add(1)
		go func(driverID string) {
			defer wg.Done()
			_, err := svc.AssignVehicle(ctx, "c1", v1, driverID, "admin")
			assert.NoError(t, err)
		}(d)
	}
	wg.Wait()

	current, err := svc.CurrentAssignmentForVehicle(ctx, v1)
	require.NoError(t, err)
	assert.Contains(t, []string{d1, d2}, current.DriverID)

	// The loser's record is closed; only one assignment is active overall.
	active, err := svc.ActiveAssignments(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, v1, active[0].VehicleID)
}

func TestAssignVehicle_ConcurrentAssignsManyPairs(t *testing.T) {
	svc, store := newTestFleet(t)
	ctx := context.Background()

	const companyID = "c1"
	var vehicles, drivers []string
	for i := 0; i < 4; i++ {
		vehicles = append(vehicles, seedVehicle(t, store, companyID, fmt.Sprintf("V-%03d", i)))
		drivers = append(drivers, seedDriver(t, store, companyID, fmt.Sprintf("Driver %d", i)))
	}

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v := vehicles[i%len(vehicles)]
			d := drivers[(i/2)%len(drivers)]
			if i%5 == 0 {
				assert.NoError(t, svc.UnassignDriver(ctx, d))
				return
			}
			_, err := svc.AssignVehicle(ctx, companyID, v, d, "admin")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	active, err := svc.ActiveAssignments(ctx, companyID)
	require.NoError(t, err)

	seenDrivers := map[string]bool{}
	seenVehicles := map[string]bool{}
	for _, a := range active {
		assert.False(t, seenDrivers[a.DriverID], "driver %s active twice", a.DriverID)
		assert.False(t, seenVehicles[a.VehicleID], "vehicle %s active twice", a.VehicleID)
		seenDrivers[a.DriverID] = true
		seenVehicles[a.VehicleID] = true
	}
}

func TestUnassignDriver_RequiresID(t *testing.T) {
	svc, _ := newTestFleet(t)
	err := svc.UnassignDriver(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAssignVehicle_StartBeforeCloseNeverOverlaps(t *testing.T) {
	svc, store := newTestFleet(t)
	ctx := context.Background()

	v1 := seedVehicle(t, store, "c1", "ABC-001")
	d1 := seedDriver(t, store, "c1", "Alice")

	_, err := svc.AssignVehicle(ctx, "c1", v1, d1, "admin")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = svc.AssignVehicle(ctx, "c1", v1, d1, "admin")
	require.NoError(t, err)

	history, err := svc.AssignmentHistory(ctx, d1)
	require.NoError(t, err)
	require.Len(t, history, 2)

	closed, open := history[1], history[0]
	require.NotNil(t, closed.EndDate)
	assert.False(t, open.StartDate.Before(*closed.EndDate))
}
