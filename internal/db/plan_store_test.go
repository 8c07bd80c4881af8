package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ht-932/MeltSortGrow/internal/lattice"
	"github.com/ht-932/MeltSortGrow/internal/movement"
	"github.com/ht-932/MeltSortGrow/internal/msg"
	"github.com/ht-932/MeltSortGrow/internal/testutil"
	"github.com/ht-932/MeltSortGrow/internal/timeutil"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "plans.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func samplePlan(t *testing.T, seed uint64) *msg.Result {
	t.Helper()
	res, err := msg.Plan(testutil.Scatter(t, 4, 4, seed), testutil.Scatter(t, 4, 4, seed+100))
	require.NoError(t, err)
	return res
}

func TestMigrateUpDown(t *testing.T) {
	db := openTestDB(t)

	version, dirty, err := db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)

	// Up again is a no-op.
	require.NoError(t, db.MigrateUp())

	require.NoError(t, db.MigrateDown())
	version, _, err = db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	require.NoError(t, db.MigrateDown())
	version, _, err = db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)

	var n int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'plans'`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPlanStore_InsertGet(t *testing.T) {
	db := openTestDB(t)
	clock := timeutil.NewMockClock(time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC))
	store := NewPlanStore(db, clock)

	res := samplePlan(t, 1)
	id, err := store.Insert("scatter", res, 1500*time.Microsecond)
	require.NoError(t, err)
	assert.Len(t, id, 36)

	got, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "scatter", got.Name)
	assert.Equal(t, res.Log.Len(), got.MovementCount)
	assert.Equal(t, 4, got.ModuleCount)
	assert.Equal(t, res.InitialLine.String(), got.InitialLine)
	assert.Equal(t, 1500*time.Microsecond, got.Duration)
	assert.True(t, got.CreatedAt.Equal(clock.Now()))
	assert.True(t, got.Initial.Equal(res.Initial))
	assert.True(t, got.Goal.Equal(res.Goal))

	if diff := cmp.Diff(res.Log.Movements(), got.Movements, cmp.Comparer(func(a, b lattice.Position) bool { return a == b })); diff != "" {
		t.Errorf("archived movements mismatch (-want +got):\n%s", diff)
	}

	byPrefix, err := store.Get(id[:8])
	require.NoError(t, err)
	assert.Equal(t, id, byPrefix.PlanID)
}

func TestPlanStore_HoldingBayRoundTrip(t *testing.T) {
	db := openTestDB(t)
	store := NewPlanStore(db, nil)

	initial := testutil.Row(t, 4, lattice.AxisZ, lattice.C(0, 0, 0), 3, 2, 1)
	goal := testutil.Row(t, 4, lattice.AxisZ, lattice.C(0, 0, 0), 1, 2, 3)
	res, err := msg.Plan(initial, goal)
	require.NoError(t, err)
	require.Greater(t, res.Counts[movement.PhaseSort], 0, "sorting should use the holding bay")

	id, err := store.Insert("", res, 0)
	require.NoError(t, err)
	got, err := store.Get(id)
	require.NoError(t, err)

	held := 0
	for _, m := range got.Movements {
		if m.EntersHolding() {
			held++
		}
	}
	assert.Greater(t, held, 0)
}

func TestPlanStore_ListDelete(t *testing.T) {
	db := openTestDB(t)
	clock := timeutil.NewMockClock(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	store := NewPlanStore(db, clock)

	first, err := store.Insert("first", samplePlan(t, 2), 0)
	require.NoError(t, err)
	clock.Advance(time.Minute)
	second, err := store.Insert("second", samplePlan(t, 3), 0)
	require.NoError(t, err)

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].PlanID)
	assert.Equal(t, first, list[1].PlanID)

	require.NoError(t, store.Delete(first))
	_, err = store.Get(first)
	assert.True(t, errors.Is(err, ErrPlanNotFound), "got %v", err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM plan_movements WHERE plan_id = ?`, first).Scan(&n))
	assert.Equal(t, 0, n, "movements cascade with their plan")
}

func TestPlanStore_BadIDs(t *testing.T) {
	db := openTestDB(t)
	store := NewPlanStore(db, nil)

	_, err := store.Get("abc")
	assert.Error(t, err)
	_, err = store.Get("00000000-0000-0000-0000-000000000000")
	assert.True(t, errors.Is(err, ErrPlanNotFound))
}
