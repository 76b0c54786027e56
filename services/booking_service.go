package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/SSMShehan/serendibgo-v2-sub007/models"
	"github.com/SSMShehan/serendibgo-v2-sub007/storage"
	"github.com/SSMShehan/serendibgo-v2-sub007/utils"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingService orchestrates the booking workflow: validate the
// request, price it, persist the booking and commit the capacity
// decrement — all inside one transaction, so two overlapping requests
// can never both clear the conflict check and double-book a day.
type BookingService struct {
	DB            *gorm.DB
	Availability  *AvailabilityService
	Pricing       *PricingService
	Notifications *NotificationService
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{
		DB:            db,
		Availability:  NewAvailabilityService(db),
		Pricing:       NewPricingService(db),
		Notifications: NewNotificationService(db),
	}
}

// Legal bookingStatus transitions. no_show is a terminal alternative to
// completed; nothing leaves completed, cancelled or no_show.
var allowedTransitions = map[string][]string{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCompleted, models.BookingCancelled, models.BookingNoShow},
}

// ResolveUnit loads the booking-core snapshot for any unit type.
func ResolveUnit(db *gorm.DB, unitType string, unitID uint) (models.Unit, error) {
	switch unitType {
	case models.UnitTypeRoom:
		var room models.Room
		if err := db.Preload("Hotel").First(&room, unitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Unit{}, makeErr(ErrNotFound, "room not found")
			}
			return models.Unit{}, err
		}
		return room.AsUnit(), nil
	case models.UnitTypeVehicle:
		var vehicle models.Vehicle
		if err := db.First(&vehicle, unitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Unit{}, makeErr(ErrNotFound, "vehicle not found")
			}
			return models.Unit{}, err
		}
		return vehicle.AsUnit(), nil
	case models.UnitTypeTour:
		var tour models.Tour
		if err := db.First(&tour, unitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Unit{}, makeErr(ErrNotFound, "tour not found")
			}
			return models.Unit{}, err
		}
		return tour.AsUnit(), nil
	}
	return models.Unit{}, makeErr(ErrNotFound, "unknown unit type "+unitType)
}

func conflictFromRows(rows []models.UnitAvailability) error {
	days := make([]time.Time, 0, len(rows))
	for _, r := range rows {
		days = append(days, r.Date)
	}
	return &ConflictError{Days: days}
}

// CreateBooking books qty units of a stay [checkIn, checkOut) for a
// guest. The booking row and the per-night calendar decrements commit
// together or not at all.
func (s *BookingService) CreateBooking(unit models.Unit, guestID uint, checkIn, checkOut time.Time, qty int, guestDetails datatypes.JSON) (*models.Booking, error) {
	checkIn = utils.DateOnly(checkIn)
	checkOut = utils.DateOnly(checkOut)

	if !checkIn.Before(checkOut) {
		return nil, makeErr(ErrInvalidRange, "checkIn must be before checkOut")
	}
	if checkIn.Before(utils.Today()) {
		return nil, makeErr(ErrInvalidRange, "checkIn must not be in the past")
	}
	if qty < 1 {
		return nil, makeErr(ErrInvalidRange, "quantity must be at least 1")
	}
	if unit.Status != models.UnitActive {
		return nil, makeErr(ErrNotFound, fmt.Sprintf("%s is not open for booking", unit.Type))
	}

	quote, err := s.Pricing.Price(unit, checkIn, checkOut, qty)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ReferenceCode: uuid.NewString(),
		UnitType:      unit.Type,
		UnitID:        unit.ID,
		GuestID:       guestID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Quantity:      qty,
		GuestDetails:  guestDetails,
		BasePrice:     quote.BasePrice,
		Nights:        quote.Nights,
		Subtotal:      quote.Subtotal,
		Taxes:         quote.Taxes,
		ServiceCharge: quote.ServiceCharge,
		TotalPrice:    quote.Total,
		Currency:      quote.Currency,
		BookingStatus: models.BookingPending,
		PaymentStatus: models.PaymentPending,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		conflicts, txErr := s.Availability.checkConflictsTx(tx, unit.Type, unit.ID, checkIn, checkOut, 0)
		if txErr != nil {
			return txErr
		}
		if len(conflicts) > 0 {
			return conflictFromRows(conflicts)
		}

		if txErr := tx.Create(booking).Error; txErr != nil {
			return txErr
		}

		return s.Availability.DecrementForBooking(tx, unit, checkIn, checkOut, qty)
	})
	if err != nil {
		return nil, err
	}

	storage.InvalidateAvailability(unit.Type, unit.ID)
	go s.Notifications.BookingCreated(booking, unit)

	return booking, nil
}

// CancelBooking cancels a pending or confirmed booking more than 24
// hours before check-in, computes the refund from the unit's
// cancellation policy, and restores the calendar.
func (s *BookingService) CancelBooking(bookingID uint, actorID uint, actorRole string, reason string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, makeErr(ErrNotFound, "booking not found")
		}
		return nil, err
	}

	unit, err := ResolveUnit(s.DB, booking.UnitType, booking.UnitID)
	if err != nil {
		return nil, err
	}

	if !canActOnBooking(&booking, unit, actorID, actorRole) {
		return nil, makeErr(ErrForbidden, "not allowed to cancel this booking")
	}
	if booking.BookingStatus != models.BookingPending && booking.BookingStatus != models.BookingConfirmed {
		return nil, makeErr(ErrInvalidState, "only pending or confirmed bookings can be cancelled")
	}
	if time.Until(booking.CheckIn) <= 24*time.Hour {
		return nil, makeErr(ErrInvalidState, "bookings must be cancelled more than 24 hours before check-in")
	}

	refund := cancellationRefund(unit.CancellationPolicy, booking.TotalPrice, booking.CheckIn)
	now := time.Now().UTC()

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"booking_status":      models.BookingCancelled,
			"cancelled_at":        now,
			"cancelled_by":        actorRole,
			"cancellation_reason": reason,
			"refund_amount":       refund,
		}
		if txErr := tx.Model(&booking).Updates(updates).Error; txErr != nil {
			return txErr
		}
		return s.Availability.RestoreForCancellation(tx, unit, booking.CheckIn, booking.CheckOut, booking.Quantity)
	})
	if err != nil {
		return nil, err
	}

	booking.BookingStatus = models.BookingCancelled
	booking.CancelledAt = &now
	booking.CancelledBy = actorRole
	booking.CancellationReason = reason
	booking.RefundAmount = &refund

	storage.InvalidateAvailability(unit.Type, unit.ID)
	go s.Notifications.BookingCancelled(&booking, unit, refund)

	return &booking, nil
}

// UpdateBookingStatus applies one lifecycle transition. Confirmation
// and completion are host-side actions, no_show is staff-only, and
// cancellation funnels through CancelBooking so the 24-hour rule and
// calendar restore always apply.
func (s *BookingService) UpdateBookingStatus(bookingID uint, newStatus string, actorID uint, actorRole string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, makeErr(ErrNotFound, "booking not found")
		}
		return nil, err
	}

	unit, err := ResolveUnit(s.DB, booking.UnitType, booking.UnitID)
	if err != nil {
		return nil, err
	}

	if !canActOnBooking(&booking, unit, actorID, actorRole) {
		return nil, makeErr(ErrForbidden, "not allowed to update this booking")
	}

	allowed, ok := allowedTransitions[booking.BookingStatus]
	if !ok || !slices.Contains(allowed, newStatus) {
		return nil, makeErr(ErrInvalidState,
			fmt.Sprintf("cannot transition booking from %s to %s", booking.BookingStatus, newStatus))
	}

	switch newStatus {
	case models.BookingCancelled:
		return s.CancelBooking(bookingID, actorID, actorRole, "cancelled via status update")
	case models.BookingConfirmed, models.BookingCompleted:
		if actorID != unit.OwnerID && !models.IsStaff(actorRole) {
			return nil, makeErr(ErrForbidden, "only the unit owner or staff can do that")
		}
	case models.BookingNoShow:
		if !models.IsStaff(actorRole) {
			return nil, makeErr(ErrForbidden, "only staff can mark a no-show")
		}
	}

	if err := s.DB.Model(&booking).Update("booking_status", newStatus).Error; err != nil {
		return nil, err
	}
	booking.BookingStatus = newStatus

	go s.Notifications.BookingStatusChanged(&booking, unit, newStatus)

	return &booking, nil
}

// OverrideBookingStatus is the staff escape hatch: it skips the
// transition table and the 24-hour cancellation cutoff. Moving into
// cancelled still restores the calendar; moving out of cancelled takes
// the nights back, and fails with a conflict if they are gone.
func (s *BookingService) OverrideBookingStatus(bookingID uint, newStatus string, actorID uint, reason string) (*models.Booking, error) {
	validStatuses := []string{
		models.BookingPending,
		models.BookingConfirmed,
		models.BookingCancelled,
		models.BookingCompleted,
		models.BookingNoShow,
	}
	if !slices.Contains(validStatuses, newStatus) {
		return nil, makeErr(ErrInvalidState, "unknown booking status "+newStatus)
	}

	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, makeErr(ErrNotFound, "booking not found")
		}
		return nil, err
	}
	if booking.BookingStatus == newStatus {
		return &booking, nil
	}

	unit, err := ResolveUnit(s.DB, booking.UnitType, booking.UnitID)
	if err != nil {
		return nil, err
	}

	wasCancelled := booking.BookingStatus == models.BookingCancelled
	now := time.Now().UTC()

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"booking_status": newStatus}
		if newStatus == models.BookingCancelled {
			updates["cancelled_at"] = now
			updates["cancelled_by"] = models.RoleStaff
			updates["cancellation_reason"] = reason
		}
		if txErr := tx.Model(&booking).Updates(updates).Error; txErr != nil {
			return txErr
		}
		if newStatus == models.BookingCancelled {
			return s.Availability.RestoreForCancellation(tx, unit, booking.CheckIn, booking.CheckOut, booking.Quantity)
		}
		if wasCancelled {
			if conflicts, txErr := s.Availability.checkConflictsTx(tx, unit.Type, unit.ID, booking.CheckIn, booking.CheckOut, 0); txErr != nil {
				return txErr
			} else if len(conflicts) > 0 {
				return conflictFromRows(conflicts)
			}
			return s.Availability.DecrementForBooking(tx, unit, booking.CheckIn, booking.CheckOut, booking.Quantity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.BookingStatus = newStatus
	if newStatus == models.BookingCancelled {
		booking.CancelledAt = &now
		booking.CancelledBy = models.RoleStaff
		booking.CancellationReason = reason
	}

	storage.InvalidateAvailability(unit.Type, unit.ID)
	go s.Notifications.BookingStatusChanged(&booking, unit, newStatus)

	return &booking, nil
}

// canActOnBooking gates booking mutations to the guest who made it, the
// unit's owner, or platform staff.
func canActOnBooking(b *models.Booking, unit models.Unit, actorID uint, actorRole string) bool {
	if models.IsStaff(actorRole) {
		return true
	}
	return actorID == b.GuestID || actorID == unit.OwnerID
}

// cancellationRefund maps the unit's cancellation policy to a refund.
// Cancellability itself is the uniform 24-hour rule; the policy only
// decides how much money comes back.
func cancellationRefund(policy string, total float64, checkIn time.Time) float64 {
	daysUntilCheckIn := int(time.Until(checkIn).Hours() / 24)

	switch policy {
	case models.PolicyModerate:
		if daysUntilCheckIn >= 5 {
			return total
		}
		return round2(total * 0.5)
	case models.PolicyStrict:
		if daysUntilCheckIn >= 7 {
			return round2(total * 0.5)
		}
		return 0
	default: // flexible
		return total
	}
}

// MarkPaymentStatus records a payment-processor outcome on a booking.
// Payments themselves happen elsewhere; this is the write-back surface.
func (s *BookingService) MarkPaymentStatus(bookingID uint, status string) error {
	valid := []string{
		models.PaymentPending,
		models.PaymentPaid,
		models.PaymentPartiallyPaid,
		models.PaymentRefunded,
		models.PaymentFailed,
	}
	if !slices.Contains(valid, status) {
		return makeErr(ErrInvalidState, "unknown payment status "+status)
	}
	res := s.DB.Model(&models.Booking{}).Where("id = ?", bookingID).Update("payment_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return makeErr(ErrNotFound, "booking not found")
	}
	return nil
}
