package services

import (
	"testing"

	"github.com/SSMShehan/serendibgo-v2-sub007/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingHappyPath(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 2, 100)
	guest := seedGuest(t, db)
	svc := NewBookingService(db)

	booking, err := svc.CreateBooking(unit, guest.ID, day(10), day(12), 1, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ReferenceCode)
	assert.Equal(t, models.BookingPending, booking.BookingStatus)
	assert.Equal(t, models.PaymentPending, booking.PaymentStatus)
	assert.Equal(t, 2, booking.Nights)
	assert.Equal(t, 200.0, booking.Subtotal)
	assert.Equal(t, 20.0, booking.Taxes)
	assert.Equal(t, 10.0, booking.ServiceCharge)
	assert.Equal(t, 230.0, booking.TotalPrice)
	assert.Equal(t, "LKR", booking.Currency)

	rows, err := svc.Availability.GetRange(unit.Type, unit.ID, day(10), day(11))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, 1, row.AvailableUnits)
		assert.Equal(t, models.DayAvailable, row.Status)
	}
}

func TestCreateBookingRejectsBadRanges(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 1, 100)
	guest := seedGuest(t, db)
	svc := NewBookingService(db)

	_, err := svc.CreateBooking(unit, guest.ID, day(12), day(10), 1, nil)
	assert.Equal(t, ErrInvalidRange, Code(err))

	_, err = svc.CreateBooking(unit, guest.ID, day(10), day(10), 1, nil)
	assert.Equal(t, ErrInvalidRange, Code(err))

	_, err = svc.CreateBooking(unit, guest.ID, day(-2), day(2), 1, nil)
	assert.Equal(t, ErrInvalidRange, Code(err))

	_, err = svc.CreateBooking(unit, guest.ID, day(10), day(12), 0, nil)
	assert.Equal(t, ErrInvalidRange, Code(err))
}

func TestCreateBookingConflictOnOverlap(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 1, 100)
	guest := seedGuest(t, db)
	svc := NewBookingService(db)

	_, err := svc.CreateBooking(unit, guest.ID, day(10), day(13), 1, nil)
	require.NoError(t, err)

	// Overlaps the last night of the first stay.
	_, err = svc.CreateBooking(unit, guest.ID, day(12), day(15), 1, nil)
	require.Error(t, err)
	assert.Equal(t, ErrConflict, Code(err))

	days := ConflictDays(err)
	require.Len(t, days, 1)
	assert.Equal(t, day(12).Format("2006-01-02"), days[0].Format("2006-01-02"))
}

func TestBackToBackStaysDoNotConflict(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 1, 100)
	guest := seedGuest(t, db)
	svc := NewBookingService(db)

	_, err := svc.CreateBooking(unit, guest.ID, day(10), day(13), 1, nil)
	require.NoError(t, err)

	// New stay checks in the day the first one checks out.
	_, err = svc.CreateBooking(unit, guest.ID, day(13), day(15), 1, nil)
	require.NoError(t, err)
}

func TestCreateBookingRespectsQuantity(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 3, 100)
	guest := seedGuest(t, db)
	svc := NewBookingService(db)

	_, err := svc.CreateBooking(unit, guest.ID, day(10), day(11), 2, nil)
	require.NoError(t, err)

	// One unit left; asking for two must fail.
	_, err = svc.CreateBooking(unit, guest.ID, day(10), day(11), 2, nil)
	require.Error(t, err)
	assert.Equal(t, ErrConflict, Code(err))

	_, err = svc.CreateBooking(unit, guest.ID, day(10), day(11), 1, nil)
	require.NoError(t, err)
}

func TestCancelBookingRestoresCalendar(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 1, 100)
	guest := seedGuest(t, db)
	svc := NewBookingService(db)

	booking, err := svc.CreateBooking(unit, guest.ID, day(10), day(12), 1, nil)
	require.NoError(t, err)

	cancelled, err := svc.CancelBooking(booking.ID, guest.ID, models.RoleTourist, "change of plans")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.BookingStatus)
	assert.Equal(t, models.RoleTourist, cancelled.CancelledBy)
	require.NotNil(t, cancelled.RefundAmount)
	// Flexible policy refunds everything.
	assert.Equal(t, 230.0, *cancelled.RefundAmount)

	// The nights are sellable again.
	_, err = svc.CreateBooking(unit, guest.ID, day(10), day(12), 1, nil)
	require.NoError(t, err)
}

func TestCancelBookingInsideCutoff(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 1, 100)
	guest := seedGuest(t, db)
	svc := NewBookingService(db)

	booking, err := svc.CreateBooking(unit, guest.ID, day(1), day(3), 1, nil)
	require.NoError(t, err)

	_, err = svc.CancelBooking(booking.ID, guest.ID, models.RoleTourist, "too late")
	require.Error(t, err)
	assert.Equal(t, ErrInvalidState, Code(err))
}

func TestCancelBookingForbiddenForStrangers(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 1, 100)
	guest := seedGuest(t, db)
	svc := NewBookingService(db)

	stranger := models.User{Email: "stranger@test.lk", Role: models.RoleTourist}
	require.NoError(t, db.Create(&stranger).Error)

	booking, err := svc.CreateBooking(unit, guest.ID, day(10), day(12), 1, nil)
	require.NoError(t, err)

	_, err = svc.CancelBooking(booking.ID, stranger.ID, models.RoleTourist, "not mine")
	assert.Equal(t, ErrForbidden, Code(err))

	// Staff may always cancel.
	staff := models.User{Email: "staff@test.lk", Role: models.RoleStaff}
	require.NoError(t, db.Create(&staff).Error)
	_, err = svc.CancelBooking(booking.ID, staff.ID, models.RoleStaff, "guest request via phone")
	require.NoError(t, err)
}

func TestBookingStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 1, 100)
	guest := seedGuest(t, db)
	svc := NewBookingService(db)

	booking, err := svc.CreateBooking(unit, guest.ID, day(10), day(12), 1, nil)
	require.NoError(t, err)

	// pending cannot jump straight to completed.
	_, err = svc.UpdateBookingStatus(booking.ID, models.BookingCompleted, unit.OwnerID, models.RoleHotelOwner)
	assert.Equal(t, ErrInvalidState, Code(err))

	// The guest cannot confirm their own booking.
	_, err = svc.UpdateBookingStatus(booking.ID, models.BookingConfirmed, guest.ID, models.RoleTourist)
	assert.Equal(t, ErrForbidden, Code(err))

	updated, err := svc.UpdateBookingStatus(booking.ID, models.BookingConfirmed, unit.OwnerID, models.RoleHotelOwner)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, updated.BookingStatus)

	// no_show is staff-only.
	_, err = svc.UpdateBookingStatus(booking.ID, models.BookingNoShow, unit.OwnerID, models.RoleHotelOwner)
	assert.Equal(t, ErrForbidden, Code(err))

	updated, err = svc.UpdateBookingStatus(booking.ID, models.BookingCompleted, unit.OwnerID, models.RoleHotelOwner)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, updated.BookingStatus)

	// Terminal.
	_, err = svc.UpdateBookingStatus(booking.ID, models.BookingConfirmed, unit.OwnerID, models.RoleHotelOwner)
	assert.Equal(t, ErrInvalidState, Code(err))
}

func TestOverrideBookingStatusRebooksCancelledNights(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 1, 100)
	guest := seedGuest(t, db)
	svc := NewBookingService(db)

	staff := models.User{Email: "ops@test.lk", Role: models.RoleStaff}
	require.NoError(t, db.Create(&staff).Error)

	booking, err := svc.CreateBooking(unit, guest.ID, day(10), day(12), 1, nil)
	require.NoError(t, err)

	_, err = svc.CancelBooking(booking.ID, guest.ID, models.RoleTourist, "oops")
	require.NoError(t, err)

	// Staff reinstates the booking; the nights get taken back.
	reinstated, err := svc.OverrideBookingStatus(booking.ID, models.BookingConfirmed, staff.ID, "cancelled by mistake")
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, reinstated.BookingStatus)

	_, err = svc.CreateBooking(unit, guest.ID, day(10), day(12), 1, nil)
	assert.Equal(t, ErrConflict, Code(err))
}

func TestMarkPaymentStatus(t *testing.T) {
	db := newTestDB(t)
	unit := seedRoom(t, db, 1, 100)
	guest := seedGuest(t, db)
	svc := NewBookingService(db)

	booking, err := svc.CreateBooking(unit, guest.ID, day(10), day(12), 1, nil)
	require.NoError(t, err)

	require.NoError(t, svc.MarkPaymentStatus(booking.ID, models.PaymentPaid))

	var reloaded models.Booking
	require.NoError(t, db.First(&reloaded, booking.ID).Error)
	assert.Equal(t, models.PaymentPaid, reloaded.PaymentStatus)

	err = svc.MarkPaymentStatus(booking.ID, "venmo")
	assert.Equal(t, ErrInvalidState, Code(err))

	err = svc.MarkPaymentStatus(99999, models.PaymentPaid)
	assert.Equal(t, ErrNotFound, Code(err))
}
