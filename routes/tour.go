package routes

import (
	"encoding/json"

	"github.com/SSMShehan/serendibgo-v2-sub007/models"
	"github.com/SSMShehan/serendibgo-v2-sub007/storage"
	"github.com/SSMShehan/serendibgo-v2-sub007/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

type CreateTourInput struct {
	Title              string              `json:"title" validate:"required,max=256"`
	Description        string              `json:"description"`
	Itinerary          []map[string]string `json:"itinerary"`
	DurationDays       int                 `json:"durationDays" validate:"omitempty,gte=1,lte=30"`
	Capacity           int                 `json:"capacity" validate:"required,gte=1"`
	PricePerSeat       float64             `json:"pricePerSeat" validate:"required,gt=0"`
	Currency           string              `json:"currency" validate:"omitempty,len=3"`
	GuideID            *uint               `json:"guideID"`
	CancellationPolicy string              `json:"cancellationPolicy" validate:"omitempty,oneof=flexible moderate strict"`
}

func CreateTour(ctx iris.Context) {
	var input CreateTourInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	itinerary := input.Itinerary
	if itinerary == nil {
		itinerary = []map[string]string{}
	}
	itineraryJSON, _ := json.Marshal(itinerary)

	tour := models.Tour{
		OperatorID:         utils.ActorID(ctx),
		GuideID:            input.GuideID,
		Title:              input.Title,
		Description:        input.Description,
		Itinerary:          datatypes.JSON(itineraryJSON),
		DurationDays:       input.DurationDays,
		Capacity:           input.Capacity,
		PricePerSeat:       input.PricePerSeat,
		Currency:           input.Currency,
		CancellationPolicy: input.CancellationPolicy,
	}
	if tour.DurationDays == 0 {
		tour.DurationDays = 1
	}
	if tour.CancellationPolicy == "" {
		tour.CancellationPolicy = models.PolicyModerate
	}

	if input.GuideID != nil {
		var guide models.Guide
		if err := storage.DB.First(&guide, *input.GuideID).Error; err != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "guide not found", ctx)
			return
		}
	}

	if res := storage.DB.Create(&tour); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "tour.create", "tour", tour.ID, nil, tour)
	utils.JSONSuccess(ctx, "Tour created successfully", tour)
}

func GetTours(ctx iris.Context) {
	db := storage.DB.Preload("Guide").Where("status = ?", models.UnitActive)
	if maxPrice := ctx.URLParamFloat64Default("maxPrice", 0); maxPrice > 0 {
		db = db.Where("price_per_seat <= ?", maxPrice)
	}

	var tours []models.Tour
	if res := db.Order("created_at DESC").Find(&tours); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(tours)
}

func GetTour(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid tour ID", ctx)
		return
	}

	var tour models.Tour
	if err := storage.DB.Preload("Guide").Preload("Guide.User").First(&tour, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(tour)
}

func GetMyTours(ctx iris.Context) {
	var tours []models.Tour
	res := storage.DB.
		Preload("Guide").
		Where("operator_id = ?", utils.ActorID(ctx)).
		Find(&tours)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(tours)
}

type UpdateTourInput struct {
	Title              *string             `json:"title" validate:"omitempty,max=256"`
	Description        *string             `json:"description"`
	Itinerary          []map[string]string `json:"itinerary"`
	DurationDays       *int                `json:"durationDays" validate:"omitempty,gte=1,lte=30"`
	Capacity           *int                `json:"capacity" validate:"omitempty,gte=1"`
	PricePerSeat       *float64            `json:"pricePerSeat" validate:"omitempty,gt=0"`
	GuideID            *uint               `json:"guideID"`
	CancellationPolicy *string             `json:"cancellationPolicy" validate:"omitempty,oneof=flexible moderate strict"`
	Status             *string             `json:"status" validate:"omitempty,oneof=active inactive"`
}

func UpdateTour(ctx iris.Context) {
	tour, ok := loadOwnedTour(ctx)
	if !ok {
		return
	}

	var input UpdateTourInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := tour
	if input.Title != nil {
		tour.Title = *input.Title
	}
	if input.Description != nil {
		tour.Description = *input.Description
	}
	if input.Itinerary != nil {
		itineraryJSON, _ := json.Marshal(input.Itinerary)
		tour.Itinerary = datatypes.JSON(itineraryJSON)
	}
	if input.DurationDays != nil {
		tour.DurationDays = *input.DurationDays
	}
	if input.Capacity != nil {
		tour.Capacity = *input.Capacity
	}
	if input.PricePerSeat != nil {
		tour.PricePerSeat = *input.PricePerSeat
	}
	if input.GuideID != nil {
		tour.GuideID = input.GuideID
	}
	if input.CancellationPolicy != nil {
		tour.CancellationPolicy = *input.CancellationPolicy
	}
	if input.Status != nil {
		tour.Status = *input.Status
	}

	if res := storage.DB.Save(&tour); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.InvalidateAvailability(models.UnitTypeTour, tour.ID)
	utils.Audit(ctx, "tour.update", "tour", tour.ID, before, tour)
	utils.JSONSuccess(ctx, "Tour updated successfully", tour)
}

func RetireTour(ctx iris.Context) {
	tour, ok := loadOwnedTour(ctx)
	if !ok {
		return
	}

	before := tour
	tour.Status = models.UnitInactive
	if res := storage.DB.Save(&tour); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.InvalidateAvailability(models.UnitTypeTour, tour.ID)
	utils.Audit(ctx, "tour.retire", "tour", tour.ID, before, tour)
	utils.JSONSuccess(ctx, "Tour retired", tour)
}

func loadOwnedTour(ctx iris.Context) (models.Tour, bool) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid tour ID", ctx)
		return models.Tour{}, false
	}

	var tour models.Tour
	if err := storage.DB.First(&tour, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return models.Tour{}, false
	}

	if utils.ActorID(ctx) != tour.OperatorID && !models.IsStaff(utils.ActorRole(ctx)) {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "you do not manage this tour", ctx)
		return models.Tour{}, false
	}
	return tour, true
}
