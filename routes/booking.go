package routes

import (
	"encoding/json"
	"time"

	"github.com/SSMShehan/serendibgo-v2-sub007/models"
	"github.com/SSMShehan/serendibgo-v2-sub007/services"
	"github.com/SSMShehan/serendibgo-v2-sub007/storage"
	"github.com/SSMShehan/serendibgo-v2-sub007/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

type CreateBookingInput struct {
	CheckIn      time.Time              `json:"checkIn" validate:"required"`
	CheckOut     time.Time              `json:"checkOut" validate:"required"`
	Quantity     int                    `json:"quantity" validate:"required,gte=1,lte=20"`
	GuestDetails map[string]interface{} `json:"guestDetails"`
}

// CreateUnitBooking books a room, vehicle or tour departure for the
// authenticated guest.
func CreateUnitBooking(ctx iris.Context) {
	unit, ok := resolveUnitFromParams(ctx)
	if !ok {
		return
	}

	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var guestDetails datatypes.JSON
	if input.GuestDetails != nil {
		if raw, err := json.Marshal(input.GuestDetails); err == nil {
			guestDetails = raw
		}
	}

	svc := services.NewBookingService(storage.DB)
	booking, err := svc.CreateBooking(unit, utils.ActorID(ctx), input.CheckIn, input.CheckOut, input.Quantity, guestDetails)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	utils.JSONSuccess(ctx, "Booking created successfully", booking)
}

func GetBooking(ctx iris.Context) {
	bookingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid booking ID", ctx)
		return
	}

	var booking models.Booking
	if err := storage.DB.Preload("Guest").First(&booking, bookingID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Booking not found", ctx)
		return
	}

	unit, err := services.ResolveUnit(storage.DB, booking.UnitType, booking.UnitID)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	actorID := utils.ActorID(ctx)
	if actorID != booking.GuestID && actorID != unit.OwnerID && !models.IsStaff(utils.ActorRole(ctx)) {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "not your booking", ctx)
		return
	}

	ctx.JSON(booking)
}

// GetMyBookings lists the authenticated guest's bookings, newest first.
func GetMyBookings(ctx iris.Context) {
	var bookings []models.Booking
	res := storage.DB.
		Where("guest_id = ?", utils.ActorID(ctx)).
		Order("created_at DESC").
		Find(&bookings)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(bookings)
}

// GetUnitBookings lists bookings on a unit for its owner.
func GetUnitBookings(ctx iris.Context) {
	unit, ok := resolveUnitFromParams(ctx)
	if !ok {
		return
	}
	if !requireUnitOwnership(ctx, unit) {
		return
	}

	var bookings []models.Booking
	res := storage.DB.
		Preload("Guest").
		Where("unit_type = ? AND unit_id = ?", unit.Type, unit.ID).
		Order("created_at DESC").
		Find(&bookings)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(bookings)
}

type CancelBookingInput struct {
	Reason string `json:"reason"`
}

func CancelBooking(ctx iris.Context) {
	bookingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid booking ID", ctx)
		return
	}

	var input CancelBookingInput
	if err := ctx.ReadJSON(&input); err != nil && ctx.GetContentLength() > 0 {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	svc := services.NewBookingService(storage.DB)
	booking, err := svc.CancelBooking(bookingID, utils.ActorID(ctx), utils.ActorRole(ctx), input.Reason)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	utils.JSONSuccess(ctx, "Booking cancelled successfully", booking)
}

type UpdateBookingStatusInput struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed cancelled no_show"`
}

func UpdateBookingStatus(ctx iris.Context) {
	bookingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid booking ID", ctx)
		return
	}

	var input UpdateBookingStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	svc := services.NewBookingService(storage.DB)
	booking, err := svc.UpdateBookingStatus(bookingID, input.Status, utils.ActorID(ctx), utils.ActorRole(ctx))
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	utils.JSONSuccess(ctx, "Booking status updated", booking)
}

type PaymentStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending paid partially_paid refunded failed"`
}

// SetBookingPaymentStatus is the write-back surface for the payment
// integration; staff only.
func SetBookingPaymentStatus(ctx iris.Context) {
	bookingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid booking ID", ctx)
		return
	}

	var input PaymentStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	svc := services.NewBookingService(storage.DB)
	if err := svc.MarkPaymentStatus(bookingID, input.Status); err != nil {
		handleServiceError(err, ctx)
		return
	}

	utils.JSONSuccess(ctx, "Payment status updated", iris.Map{"id": bookingID, "paymentStatus": input.Status})
}
