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

// Staff / admin operations: permission templates, seasonal rates,
// platform-wide booking oversight and the audit trail.

type PermissionTemplateInput struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Role        string   `json:"role" validate:"required,oneof=tourist hotel_owner vehicle_owner guide staff admin"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions" validate:"required,min=1"`
	IsDefault   bool     `json:"isDefault"`
}

func CreatePermissionTemplate(ctx iris.Context) {
	var input PermissionTemplateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	permissionsJSON, _ := json.Marshal(input.Permissions)
	template := models.PermissionTemplate{
		Name:        input.Name,
		Role:        input.Role,
		Description: input.Description,
		Permissions: datatypes.JSON(permissionsJSON),
		IsDefault:   input.IsDefault,
	}

	if input.IsDefault {
		storage.DB.Model(&models.PermissionTemplate{}).
			Where("role = ?", input.Role).
			Update("is_default", false)
	}

	if res := storage.DB.Create(&template); res.Error != nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "template name already in use", ctx)
		return
	}

	utils.Audit(ctx, "permission_template.create", "permission_template", template.ID, nil, template)
	utils.JSONSuccess(ctx, "Permission template created", template)
}

func GetPermissionTemplates(ctx iris.Context) {
	db := storage.DB
	if role := ctx.URLParam("role"); role != "" {
		db = db.Where("role = ?", role)
	}

	var templates []models.PermissionTemplate
	if res := db.Order("role, name").Find(&templates); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(templates)
}

func UpdatePermissionTemplate(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid template ID", ctx)
		return
	}

	var template models.PermissionTemplate
	if err := storage.DB.First(&template, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input PermissionTemplateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := template
	permissionsJSON, _ := json.Marshal(input.Permissions)
	template.Name = input.Name
	template.Role = input.Role
	template.Description = input.Description
	template.Permissions = datatypes.JSON(permissionsJSON)
	template.IsDefault = input.IsDefault

	if input.IsDefault {
		storage.DB.Model(&models.PermissionTemplate{}).
			Where("role = ? AND id <> ?", input.Role, template.ID).
			Update("is_default", false)
	}

	if res := storage.DB.Save(&template); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "permission_template.update", "permission_template", template.ID, before, template)
	utils.JSONSuccess(ctx, "Permission template updated", template)
}

func DeletePermissionTemplate(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid template ID", ctx)
		return
	}

	var template models.PermissionTemplate
	if err := storage.DB.First(&template, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if res := storage.DB.Delete(&template); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "permission_template.delete", "permission_template", template.ID, template, nil)
	utils.JSONSuccess(ctx, "Permission template deleted", iris.Map{"id": id})
}

type SeasonalRateInput struct {
	Name       string    `json:"name" validate:"required,max=100"`
	UnitType   string    `json:"unitType" validate:"required,oneof=room vehicle tour"`
	UnitID     *uint     `json:"unitID"`
	StartDate  time.Time `json:"startDate" validate:"required"`
	EndDate    time.Time `json:"endDate" validate:"required"` // inclusive
	Multiplier float64   `json:"multiplier" validate:"required,gt=0,lte=10"`
}

func CreateSeasonalRate(ctx iris.Context) {
	var input SeasonalRateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if input.EndDate.Before(input.StartDate) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "endDate must not be before startDate", ctx)
		return
	}

	rate := models.SeasonalRate{
		Name:       input.Name,
		UnitType:   input.UnitType,
		UnitID:     input.UnitID,
		StartDate:  utils.DateOnly(input.StartDate),
		EndDate:    utils.DateOnly(input.EndDate),
		Multiplier: input.Multiplier,
		IsActive:   true,
	}
	if res := storage.DB.Create(&rate); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if rate.UnitID != nil {
		storage.InvalidateAvailability(rate.UnitType, *rate.UnitID)
	}
	utils.Audit(ctx, "seasonal_rate.create", "seasonal_rate", rate.ID, nil, rate)
	utils.JSONSuccess(ctx, "Seasonal rate created", rate)
}

func GetSeasonalRates(ctx iris.Context) {
	db := storage.DB
	if unitType := ctx.URLParam("unitType"); unitType != "" {
		db = db.Where("unit_type = ?", unitType)
	}

	var rates []models.SeasonalRate
	if res := db.Order("start_date").Find(&rates); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(rates)
}

// DeactivateSeasonalRate retires a rate without deleting it; past
// bookings priced under it keep their snapshots anyway.
func DeactivateSeasonalRate(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid rate ID", ctx)
		return
	}

	var rate models.SeasonalRate
	if err := storage.DB.First(&rate, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	before := rate
	rate.IsActive = false
	if res := storage.DB.Save(&rate); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if rate.UnitID != nil {
		storage.InvalidateAvailability(rate.UnitType, *rate.UnitID)
	}
	utils.Audit(ctx, "seasonal_rate.deactivate", "seasonal_rate", rate.ID, before, rate)
	utils.JSONSuccess(ctx, "Seasonal rate deactivated", rate)
}

// GetAllBookings is platform-wide booking oversight with simple filters.
func GetAllBookings(ctx iris.Context) {
	db := storage.DB.Preload("Guest")
	if status := ctx.URLParam("status"); status != "" {
		db = db.Where("booking_status = ?", status)
	}
	if unitType := ctx.URLParam("unitType"); unitType != "" {
		db = db.Where("unit_type = ?", unitType)
	}
	if from := ctx.URLParam("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			db = db.Where("check_in >= ?", t)
		}
	}

	page := ctx.URLParamIntDefault("page", 1)
	limit := ctx.URLParamIntDefault("limit", 50)
	if limit > 200 {
		limit = 200
	}

	var total int64
	db.Model(&models.Booking{}).Count(&total)

	var bookings []models.Booking
	res := db.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&bookings)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, bookings, page, limit, total)
}

type OverrideBookingInput struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled no_show"`
	Reason string `json:"reason" validate:"required"`
}

// OverrideBookingStatus is the staff escape hatch: it bypasses the
// normal transition table but the calendar is still restored when the
// override lands on cancelled.
func OverrideBookingStatus(ctx iris.Context) {
	bookingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid booking ID", ctx)
		return
	}

	var input OverrideBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	svc := services.NewBookingService(storage.DB)
	booking, err := svc.OverrideBookingStatus(bookingID, input.Status, utils.ActorID(ctx), input.Reason)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	utils.Audit(ctx, "booking.override_status", "booking", booking.ID, nil, booking)
	utils.JSONSuccess(ctx, "Booking status overridden", booking)
}

// GetAuditLogs exposes the audit trail to admins.
func GetAuditLogs(ctx iris.Context) {
	db := storage.DB
	if action := ctx.URLParam("action"); action != "" {
		db = db.Where("action = ?", action)
	}
	if resourceType := ctx.URLParam("resourceType"); resourceType != "" {
		db = db.Where("resource_type = ?", resourceType)
	}

	limit := ctx.URLParamIntDefault("limit", 100)
	if limit > 500 {
		limit = 500
	}

	var logs []models.AuditLog
	if res := db.Order("created_at DESC").Limit(limit).Find(&logs); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(logs)
}
