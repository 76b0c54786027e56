package services

import (
	"testing"

	"github.com/SSMShehan/serendibgo-v2-sub007/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMaterializeRangeSynthesizesMissingDays(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 3, 120)
	svc := NewAvailabilityService(db)

	// Persist one day in the middle of a three-night stay.
	blocked := models.DayMaintenance
	zero := 0
	_, err := svc.SetDay(unit, day(11), DayFields{Status: &blocked, AvailableUnits: &zero})
	require.NoError(t, err)

	views, err := svc.MaterializeRange(unit, day(10), day(13))
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.False(t, views[0].Persisted)
	assert.Equal(t, models.DayAvailable, views[0].Status)
	assert.Equal(t, 3, views[0].AvailableUnits)
	assert.Equal(t, 120.0, views[0].Price)

	assert.True(t, views[1].Persisted)
	assert.Equal(t, models.DayMaintenance, views[1].Status)
	assert.Equal(t, 0, views[1].AvailableUnits)

	assert.False(t, views[2].Persisted)
}

func TestCheckConflictsIgnoresCheckoutDay(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 1, 100)
	svc := NewAvailabilityService(db)

	blocked := models.DayBlocked
	zero := 0
	_, err := svc.SetDay(unit, day(13), DayFields{Status: &blocked, AvailableUnits: &zero})
	require.NoError(t, err)

	// Stay ends the morning of day 13; the block there must not matter.
	conflicts, err := svc.CheckConflicts(unit.Type, unit.ID, day(10), day(13), 0)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	// One more night and it does.
	conflicts, err = svc.CheckConflicts(unit.Type, unit.ID, day(10), day(14), 0)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.DayBlocked, conflicts[0].Status)
}

func TestSetDayClampsAvailableUnits(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 2, 100)
	svc := NewAvailabilityService(db)

	over := 99
	row, err := svc.SetDay(unit, day(10), DayFields{AvailableUnits: &over})
	require.NoError(t, err)
	assert.Equal(t, 2, row.AvailableUnits)

	under := -5
	row, err = svc.SetDay(unit, day(10), DayFields{AvailableUnits: &under})
	require.NoError(t, err)
	assert.Equal(t, 0, row.AvailableUnits)
}

func TestSetDayPriceOverrideRoundTrip(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 2, 100)
	svc := NewAvailabilityService(db)

	price := 150.0
	row, err := svc.SetDay(unit, day(10), DayFields{PriceOverride: &price})
	require.NoError(t, err)
	require.NotNil(t, row.PriceOverride)
	assert.Equal(t, 150.0, *row.PriceOverride)

	row, err = svc.SetDay(unit, day(10), DayFields{ClearPriceOverride: true})
	require.NoError(t, err)
	assert.Nil(t, row.PriceOverride)
}

func TestBulkSetRangeWritesEveryNight(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 2, 100)
	svc := NewAvailabilityService(db)

	status := models.DayMaintenance
	zero := 0
	rows, err := svc.BulkSetRange(unit, day(20), day(23), DayFields{Status: &status, AvailableUnits: &zero})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for _, row := range rows {
		assert.Equal(t, models.DayMaintenance, row.Status)
		assert.Equal(t, 0, row.AvailableUnits)
	}
}

func TestDecrementCreatesRowAndFlipsToBooked(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 1, 100)
	svc := NewAvailabilityService(db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return svc.DecrementForBooking(tx, unit, day(10), day(12), 1)
	})
	require.NoError(t, err)

	rows, err := svc.GetRange(unit.Type, unit.ID, day(10), day(11))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, models.DayBooked, row.Status)
		assert.Equal(t, 0, row.AvailableUnits)
		assert.Equal(t, 1, row.TotalUnits)
	}
}

func TestRestorePreservesMaintenanceDays(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 1, 100)
	svc := NewAvailabilityService(db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return svc.DecrementForBooking(tx, unit, day(10), day(13), 1)
	})
	require.NoError(t, err)

	// Operator takes the middle night offline while it is booked.
	status := models.DayMaintenance
	_, err = svc.SetDay(unit, day(11), DayFields{Status: &status})
	require.NoError(t, err)

	err = db.Transaction(func(tx *gorm.DB) error {
		return svc.RestoreForCancellation(tx, unit, day(10), day(13), 1)
	})
	require.NoError(t, err)

	rows, err := svc.GetRange(unit.Type, unit.ID, day(10), day(12))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, models.DayAvailable, rows[0].Status)
	assert.Equal(t, 1, rows[0].AvailableUnits)
	// Maintenance outlives the cancellation even though capacity returned.
	assert.Equal(t, models.DayMaintenance, rows[1].Status)
	assert.Equal(t, models.DayAvailable, rows[2].Status)
}
