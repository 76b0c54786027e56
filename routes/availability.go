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

// Availability and calendar management endpoints

// parseRangeParams reads startDate/endDate query params (YYYY-MM-DD).
func parseRangeParams(ctx iris.Context) (time.Time, time.Time, bool) {
	startStr := ctx.URLParam("startDate")
	endStr := ctx.URLParam("endDate")
	if startStr == "" || endStr == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "startDate and endDate are required", ctx)
		return time.Time{}, time.Time{}, false
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid startDate format", ctx)
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid endDate format", ctx)
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "endDate must not be before startDate", ctx)
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// QueryAvailability answers "can this unit be booked over these days"
// with a per-day breakdown. Both dates are inclusive calendar days.
// Responses are cached per unit and range; calendar mutations
// invalidate the unit's cache.
func QueryAvailability(ctx iris.Context) {
	unit, ok := resolveUnitFromParams(ctx)
	if !ok {
		return
	}
	start, end, ok := parseRangeParams(ctx)
	if !ok {
		return
	}

	cacheKey := storage.AvailabilityCacheKey(unit.Type, unit.ID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if cached, hit := storage.GetCachedAvailability(cacheKey); hit {
		ctx.ContentType("application/json")
		ctx.WriteString(cached)
		return
	}

	svc := services.NewAvailabilityService(storage.DB)
	days, err := svc.MaterializeRange(unit, start, end.AddDate(0, 0, 1))
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	isAvailable := true
	totalAvailable := unit.TotalUnits
	for _, day := range days {
		if models.IsBlocking(day.Status) || day.AvailableUnits < 1 {
			isAvailable = false
		}
		if day.AvailableUnits < totalAvailable {
			totalAvailable = day.AvailableUnits
		}
	}

	payload := iris.Map{
		"success":             true,
		"isAvailable":         isAvailable,
		"totalAvailableUnits": totalAvailable,
		"perDayDetail":        days,
	}
	if raw, err := json.Marshal(payload); err == nil {
		storage.CacheAvailability(cacheKey, string(raw))
	}

	ctx.JSON(payload)
}

// GetUnitCalendar returns the raw persisted rows for a range — the
// owner-facing calendar view. Missing days are simply absent.
func GetUnitCalendar(ctx iris.Context) {
	unit, ok := resolveUnitFromParams(ctx)
	if !ok {
		return
	}
	if !requireUnitOwnership(ctx, unit) {
		return
	}
	start, end, ok := parseRangeParams(ctx)
	if !ok {
		return
	}

	svc := services.NewAvailabilityService(storage.DB)
	rows, err := svc.GetRange(unit.Type, unit.ID, start, end)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": rows})
}

type SetDayInput struct {
	Date           time.Time `json:"date" validate:"required"`
	Status         *string   `json:"status" validate:"omitempty,oneof=available booked offline_booked maintenance blocked out_of_order"`
	AvailableUnits *int      `json:"availableUnits" validate:"omitempty,gte=0"`
	TotalUnits     *int      `json:"totalUnits" validate:"omitempty,gte=1"`
	PriceOverride  *float64  `json:"priceOverride" validate:"omitempty,gte=0"`
	ClearOverride  bool      `json:"clearPriceOverride"`
	Note           string    `json:"note"`
}

// SetUnitDay upserts a single calendar day — the owner's direct edit.
func SetUnitDay(ctx iris.Context) {
	unit, ok := resolveUnitFromParams(ctx)
	if !ok {
		return
	}
	if !requireUnitOwnership(ctx, unit) {
		return
	}

	var input SetDayInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	fields := services.DayFields{
		Status:             input.Status,
		AvailableUnits:     input.AvailableUnits,
		TotalUnits:         input.TotalUnits,
		PriceOverride:      input.PriceOverride,
		ClearPriceOverride: input.ClearOverride,
	}
	if input.Note != "" {
		if raw, err := json.Marshal(models.BlockDetail{Reason: input.Note}); err == nil {
			fields.Detail = datatypes.JSON(raw)
		}
	}

	svc := services.NewAvailabilityService(storage.DB)
	row, err := svc.SetDay(unit, input.Date, fields)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	utils.Audit(ctx, "calendar.set_day", unit.Type, unit.ID, nil, row)
	utils.JSONSuccess(ctx, "Calendar day updated", row)
}

type ScheduleRangeInput struct {
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"` // inclusive
	Reason    string    `json:"reason"`
	Priority  string    `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// scheduleBlockingRange is shared by maintenance and blocking: both take
// an inclusive operator date range, refuse to stomp on existing
// non-available days, then bulk-write the status.
func scheduleBlockingRange(ctx iris.Context, status string, detail interface{}) {
	unit, ok := resolveUnitFromParams(ctx)
	if !ok {
		return
	}
	if !requireUnitOwnership(ctx, unit) {
		return
	}

	var input ScheduleRangeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if input.EndDate.Before(input.StartDate) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "endDate must not be before startDate", ctx)
		return
	}

	// Inclusive operator range -> exclusive core range.
	end := utils.DateOnly(input.EndDate).AddDate(0, 0, 1)

	svc := services.NewAvailabilityService(storage.DB)
	conflicts, err := svc.CheckConflicts(unit.Type, unit.ID, input.StartDate, end, 0)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	if len(conflicts) > 0 {
		days := make([]time.Time, 0, len(conflicts))
		for _, c := range conflicts {
			days = append(days, c.Date)
		}
		handleServiceError(&services.ConflictError{Days: days}, ctx)
		return
	}

	var detailJSON datatypes.JSON
	switch d := detail.(type) {
	case models.MaintenanceDetail:
		d.Reason = input.Reason
		d.Priority = input.Priority
		if raw, err := json.Marshal(d); err == nil {
			detailJSON = raw
		}
	case models.BlockDetail:
		d.Reason = input.Reason
		if raw, err := json.Marshal(d); err == nil {
			detailJSON = raw
		}
	}

	zero := 0
	rows, err := svc.BulkSetRange(unit, input.StartDate, end, services.DayFields{
		Status:         &status,
		AvailableUnits: &zero,
		Detail:         detailJSON,
	})
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	utils.Audit(ctx, "calendar."+status, unit.Type, unit.ID, nil, input)
	utils.JSONSuccess(ctx, "Dates scheduled as "+status, rows)
}

func ScheduleMaintenance(ctx iris.Context) {
	scheduleBlockingRange(ctx, models.DayMaintenance, models.MaintenanceDetail{})
}

func BlockUnitDates(ctx iris.Context) {
	scheduleBlockingRange(ctx, models.DayBlocked, models.BlockDetail{})
}

type OfflineBookingInput struct {
	CheckIn    time.Time `json:"checkIn" validate:"required"`
	CheckOut   time.Time `json:"checkOut" validate:"required"` // exclusive, like any stay
	GuestName  string    `json:"guestName" validate:"required"`
	GuestPhone string    `json:"guestPhone"`
	Source     string    `json:"source" validate:"omitempty,oneof=walk_in phone agency"`
	Note       string    `json:"note"`
}

// CreateOfflineBooking records a reservation made outside the platform
// so its nights stop being sold online.
func CreateOfflineBooking(ctx iris.Context) {
	unit, ok := resolveUnitFromParams(ctx)
	if !ok {
		return
	}
	if !requireUnitOwnership(ctx, unit) {
		return
	}

	var input OfflineBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !input.CheckIn.Before(input.CheckOut) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "checkIn must be before checkOut", ctx)
		return
	}

	svc := services.NewAvailabilityService(storage.DB)
	conflicts, err := svc.CheckConflicts(unit.Type, unit.ID, input.CheckIn, input.CheckOut, 0)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}
	if len(conflicts) > 0 {
		days := make([]time.Time, 0, len(conflicts))
		for _, c := range conflicts {
			days = append(days, c.Date)
		}
		handleServiceError(&services.ConflictError{Days: days}, ctx)
		return
	}

	var detailJSON datatypes.JSON
	if raw, err := json.Marshal(models.OfflineBookingDetail{
		GuestName:  input.GuestName,
		GuestPhone: input.GuestPhone,
		Source:     input.Source,
		Note:       input.Note,
	}); err == nil {
		detailJSON = raw
	}

	status := models.DayOfflineBooked
	zero := 0
	rows, err := svc.BulkSetRange(unit, input.CheckIn, input.CheckOut, services.DayFields{
		Status:         &status,
		AvailableUnits: &zero,
		Detail:         detailJSON,
	})
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	utils.Audit(ctx, "calendar.offline_booking", unit.Type, unit.ID, nil, input)
	utils.JSONSuccess(ctx, "Offline booking recorded", rows)
}
