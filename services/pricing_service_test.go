package services

import (
	"testing"

	"github.com/SSMShehan/serendibgo-v2-sub007/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceBasicStay(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 2, 100)
	svc := NewPricingService(db)

	quote, err := svc.Price(unit, day(10), day(12), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, quote.Nights)
	assert.Equal(t, 200.0, quote.Subtotal)
	assert.Equal(t, 20.0, quote.Taxes)
	assert.Equal(t, 10.0, quote.ServiceCharge)
	assert.Equal(t, 230.0, quote.Total)
	assert.Equal(t, "LKR", quote.Currency)
	require.Len(t, quote.PerNight, 2)
	assert.Equal(t, 100.0, quote.PerNight[0].Price)
}

func TestPriceRejectsEmptyStay(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 2, 100)
	svc := NewPricingService(db)

	_, err := svc.Price(unit, day(10), day(10), 1)
	assert.Equal(t, ErrInvalidRange, Code(err))
}

func TestPriceQuantityScalesSubtotal(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 3, 100)
	svc := NewPricingService(db)

	quote, err := svc.Price(unit, day(10), day(12), 3)
	require.NoError(t, err)

	assert.Equal(t, 600.0, quote.Subtotal)
	assert.Equal(t, 690.0, quote.Total)
}

func TestPriceSeasonalRateApplies(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 2, 100)
	svc := NewPricingService(db)

	rate := models.SeasonalRate{
		Name:       "Peak season",
		UnitType:   models.UnitTypeRoom,
		StartDate:  day(11),
		EndDate:    day(20),
		Multiplier: 1.5,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&rate).Error)

	// Night one at base, night two inside the season.
	quote, err := svc.Price(unit, day(10), day(12), 1)
	require.NoError(t, err)

	assert.Equal(t, 100.0, quote.PerNight[0].Price)
	assert.Equal(t, 150.0, quote.PerNight[1].Price)
	assert.Equal(t, 250.0, quote.Subtotal)
}

func TestPriceSeasonalRateScopedToOtherUnit(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 2, 100)
	svc := NewPricingService(db)

	otherID := unit.ID + 1
	rate := models.SeasonalRate{
		Name:       "Someone else's season",
		UnitType:   models.UnitTypeRoom,
		UnitID:     &otherID,
		StartDate:  day(0),
		EndDate:    day(30),
		Multiplier: 2,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&rate).Error)

	quote, err := svc.Price(unit, day(10), day(12), 1)
	require.NoError(t, err)
	assert.Equal(t, 200.0, quote.Subtotal)
}

func TestPriceOverrideBeatsSeasonalRate(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 2, 100)
	pricing := NewPricingService(db)
	calendar := NewAvailabilityService(db)

	rate := models.SeasonalRate{
		Name:       "Peak season",
		UnitType:   models.UnitTypeRoom,
		StartDate:  day(0),
		EndDate:    day(30),
		Multiplier: 1.5,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&rate).Error)

	override := 80.0
	_, err := calendar.SetDay(unit, day(10), DayFields{PriceOverride: &override})
	require.NoError(t, err)

	quote, err := pricing.Price(unit, day(10), day(12), 1)
	require.NoError(t, err)

	assert.Equal(t, 80.0, quote.PerNight[0].Price)
	assert.Equal(t, 150.0, quote.PerNight[1].Price)
	assert.Equal(t, 230.0, quote.Subtotal)
}

func TestPriceRoundsToCents(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 2, 99.99)
	svc := NewPricingService(db)

	quote, err := svc.Price(unit, day(10), day(13), 1)
	require.NoError(t, err)

	assert.Equal(t, 299.97, quote.Subtotal)
	assert.Equal(t, 30.0, quote.Taxes)
	assert.Equal(t, 15.0, quote.ServiceCharge)
	assert.Equal(t, 344.97, quote.Total)
}
